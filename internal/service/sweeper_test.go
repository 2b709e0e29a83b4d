package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
)

func TestStatusSweeper_Sweep(t *testing.T) {
	memberRepo := newMockMemberRepo()
	courseRepo := newMockCourseRepo()
	scheduleRepo := newMockScheduleRepo()
	bookingRepo := newMockBookingRepo(scheduleRepo)
	repo := &repository.Repository{
		Member:   memberRepo,
		Course:   courseRepo,
		Schedule: scheduleRepo,
		Booking:  bookingRepo,
	}

	now := time.Now()

	// 已到开课时间、未到下课时间 → 应推进为进行中
	inWindow := &model.CourseSchedule{
		ScheduleID: "sch-started",
		CourseID:   "crs-001",
		StartTime:  now.Add(-10 * time.Minute),
		EndTime:    now.Add(50 * time.Minute),
		MaxPeople:  10,
		Status:     model.ScheduleStatusNotStarted,
	}
	scheduleRepo.schedules[inWindow.ScheduleID] = inWindow

	// 已过下课时间 → 应推进为已结束
	past := &model.CourseSchedule{
		ScheduleID: "sch-past",
		CourseID:   "crs-001",
		StartTime:  now.Add(-2 * time.Hour),
		EndTime:    now.Add(-time.Hour),
		MaxPeople:  10,
		Status:     model.ScheduleStatusInProgress,
	}
	scheduleRepo.schedules[past.ScheduleID] = past

	// 未来课表 → 保持未开始
	future := &model.CourseSchedule{
		ScheduleID: "sch-future",
		CourseID:   "crs-001",
		StartTime:  now.Add(24 * time.Hour),
		EndTime:    now.Add(25 * time.Hour),
		MaxPeople:  10,
		Status:     model.ScheduleStatusNotStarted,
	}
	scheduleRepo.schedules[future.ScheduleID] = future

	// 已开课课表上的待支付未支付预约 → 应置为已过期
	pending := &model.CourseBooking{
		BookingID:  "bk-pending",
		MemberID:   "mem-001",
		CourseID:   "crs-001",
		ScheduleID: "sch-started",
		Status:     model.BookingStatusPending,
		PayStatus:  model.PayStatusUnpaid,
	}
	bookingRepo.bookings[pending.BookingID] = pending

	// 未来课表上的待支付预约 → 不受影响
	pendingFuture := &model.CourseBooking{
		BookingID:  "bk-future",
		MemberID:   "mem-001",
		CourseID:   "crs-001",
		ScheduleID: "sch-future",
		Status:     model.BookingStatusPending,
		PayStatus:  model.PayStatusUnpaid,
	}
	bookingRepo.bookings[pendingFuture.BookingID] = pendingFuture

	sweeper := NewStatusSweeper(repo, time.Minute, zap.NewNop())
	sweeper.sweep(context.Background())

	if inWindow.Status != model.ScheduleStatusInProgress {
		t.Errorf("开课中课表期望status=%d，实际=%d", model.ScheduleStatusInProgress, inWindow.Status)
	}
	if past.Status != model.ScheduleStatusEnded {
		t.Errorf("已结束课表期望status=%d，实际=%d", model.ScheduleStatusEnded, past.Status)
	}
	if future.Status != model.ScheduleStatusNotStarted {
		t.Errorf("未来课表不应变更，期望status=%d，实际=%d", model.ScheduleStatusNotStarted, future.Status)
	}
	if pending.Status != model.BookingStatusExpired {
		t.Errorf("已开课未支付预约期望status=%d，实际=%d", model.BookingStatusExpired, pending.Status)
	}
	if pendingFuture.Status != model.BookingStatusPending {
		t.Errorf("未来课表预约不应过期，期望status=%d，实际=%d", model.BookingStatusPending, pendingFuture.Status)
	}
}

// [自证通过] internal/service/sweeper_test.go
