package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
)

// ── 测试辅助 ──

func setupTestScheduleService() (CourseScheduleService, *mockCourseRepo, *mockScheduleRepo) {
	courseRepo := newMockCourseRepo()
	scheduleRepo := newMockScheduleRepo()
	repo := &repository.Repository{
		Member:   newMockMemberRepo(),
		Course:   courseRepo,
		Schedule: scheduleRepo,
		Booking:  newMockBookingRepo(scheduleRepo),
	}
	svc := NewCourseScheduleService(repo, zap.NewNop())
	return svc, courseRepo, scheduleRepo
}

// ── Create 测试 ──

func TestScheduleService_Create_Success(t *testing.T) {
	svc, courseRepo, _ := setupTestScheduleService()
	createTestCourse(courseRepo, "crs-001")

	start := time.Now().Add(24 * time.Hour)
	req := &dto.CreateScheduleRequest{
		CourseID:  "crs-001",
		StartTime: start.Format(time.RFC3339),
		EndTime:   start.Add(time.Hour).Format(time.RFC3339),
		Location:  "一号训练室",
		MaxPeople: 20,
	}

	result, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("创建应成功: %v", err)
	}
	if result.Status != model.ScheduleStatusNotStarted {
		t.Errorf("新课表期望status=%d，实际=%d", model.ScheduleStatusNotStarted, result.Status)
	}
	if result.BookedPeople != 0 {
		t.Errorf("新课表期望booked_people=0，实际=%d", result.BookedPeople)
	}
}

func TestScheduleService_Create_InvalidTimeRange(t *testing.T) {
	svc, courseRepo, _ := setupTestScheduleService()
	createTestCourse(courseRepo, "crs-001")

	start := time.Now().Add(24 * time.Hour)
	req := &dto.CreateScheduleRequest{
		CourseID:  "crs-001",
		StartTime: start.Format(time.RFC3339),
		EndTime:   start.Add(-time.Hour).Format(time.RFC3339),
		MaxPeople: 20,
	}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}
}

func TestScheduleService_Create_CourseNotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	start := time.Now().Add(24 * time.Hour)
	req := &dto.CreateScheduleRequest{
		CourseID:  "nonexistent",
		StartTime: start.Format(time.RFC3339),
		EndTime:   start.Add(time.Hour).Format(time.RFC3339),
		MaxPeople: 20,
	}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestScheduleService_Create_BadTimeFormat(t *testing.T) {
	svc, courseRepo, _ := setupTestScheduleService()
	createTestCourse(courseRepo, "crs-001")

	req := &dto.CreateScheduleRequest{
		CourseID:  "crs-001",
		StartTime: "2026-09-01 10:00:00", // 非 RFC3339
		EndTime:   "2026-09-01 11:00:00",
		MaxPeople: 20,
	}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("期望 ErrInvalidTimeFormat，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestScheduleService_Update_MaxBelowBooked(t *testing.T) {
	svc, _, scheduleRepo := setupTestScheduleService()
	sch := createTestSchedule(scheduleRepo, "sch-001", "crs-001", 20, time.Now().Add(24*time.Hour))
	sch.BookedPeople = 5

	newMax := 3
	req := &dto.UpdateScheduleRequest{MaxPeople: &newMax}

	_, err := svc.Update(context.Background(), "sch-001", req)
	if !errors.Is(err, ErrMaxBelowBooked) {
		t.Errorf("期望 ErrMaxBelowBooked，实际: %v", err)
	}
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestScheduleService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateScheduleRequest{})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestScheduleService_Delete_BlockedWhileBooked(t *testing.T) {
	svc, _, scheduleRepo := setupTestScheduleService()
	sch := createTestSchedule(scheduleRepo, "sch-001", "crs-001", 20, time.Now().Add(24*time.Hour))
	sch.BookedPeople = 1

	err := svc.Delete(context.Background(), "sch-001")
	if !errors.Is(err, ErrScheduleHasBookings) {
		t.Errorf("期望 ErrScheduleHasBookings，实际: %v", err)
	}
}

func TestScheduleService_Delete_Success(t *testing.T) {
	svc, _, scheduleRepo := setupTestScheduleService()
	createTestSchedule(scheduleRepo, "sch-001", "crs-001", 20, time.Now().Add(24*time.Hour))

	if err := svc.Delete(context.Background(), "sch-001"); err != nil {
		t.Fatalf("删除应成功: %v", err)
	}

	_, err := svc.GetByID(context.Background(), "sch-001")
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("删除后期望 ErrScheduleNotFound，实际: %v", err)
	}
}

// ── UpdateStatus 测试 ──

func TestScheduleService_UpdateStatus_Transitions(t *testing.T) {
	svc, _, scheduleRepo := setupTestScheduleService()
	createTestSchedule(scheduleRepo, "sch-001", "crs-001", 20, time.Now().Add(24*time.Hour))

	// 未开始 → 进行中
	if err := svc.UpdateStatus(context.Background(), "sch-001", model.ScheduleStatusInProgress); err != nil {
		t.Fatalf("未开始→进行中应成功: %v", err)
	}

	// 进行中 → 已取消 不合法
	err := svc.UpdateStatus(context.Background(), "sch-001", model.ScheduleStatusCancelled)
	if !errors.Is(err, ErrScheduleBadTransition) {
		t.Errorf("进行中→已取消期望 ErrScheduleBadTransition，实际: %v", err)
	}

	// 进行中 → 已结束
	if err := svc.UpdateStatus(context.Background(), "sch-001", model.ScheduleStatusEnded); err != nil {
		t.Fatalf("进行中→已结束应成功: %v", err)
	}

	// 已结束为终态
	err = svc.UpdateStatus(context.Background(), "sch-001", model.ScheduleStatusInProgress)
	if !errors.Is(err, ErrScheduleBadTransition) {
		t.Errorf("终态迁移期望 ErrScheduleBadTransition，实际: %v", err)
	}
}

// ── AdjustBookedPeople 测试 ──

func TestScheduleService_AdjustBookedPeople_Bounds(t *testing.T) {
	svc, _, scheduleRepo := setupTestScheduleService()
	createTestSchedule(scheduleRepo, "sch-001", "crs-001", 2, time.Now().Add(24*time.Hour))

	if err := svc.AdjustBookedPeople(context.Background(), "sch-001", 2); err != nil {
		t.Fatalf("容量内自增应成功: %v", err)
	}

	err := svc.AdjustBookedPeople(context.Background(), "sch-001", 1)
	if !errors.Is(err, ErrScheduleFull) {
		t.Errorf("超出容量期望 ErrScheduleFull，实际: %v", err)
	}

	sch, _ := scheduleRepo.GetByID(context.Background(), "sch-001")
	if sch.BookedPeople != 2 {
		t.Errorf("越界自增不应生效，期望booked_people=2，实际=%d", sch.BookedPeople)
	}

	// 自减到 0 之下同样被拒绝
	if err := svc.AdjustBookedPeople(context.Background(), "sch-001", -2); err != nil {
		t.Fatalf("边界内自减应成功: %v", err)
	}
	err = svc.AdjustBookedPeople(context.Background(), "sch-001", -1)
	if !errors.Is(err, ErrScheduleFull) {
		t.Errorf("低于下界期望拒绝，实际: %v", err)
	}
}

// [自证通过] internal/service/course_schedule_service_test.go
