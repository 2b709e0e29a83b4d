package dto

// WeChatLoginRequest 微信授权码登录请求
type WeChatLoginRequest struct {
	Code     string `json:"code" binding:"required"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Gender   int    `json:"gender" binding:"omitempty,oneof=0 1 2"`
}

// StaffLoginRequest 管理端账号密码登录请求
type StaffLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse 登录/刷新成功响应
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int            `json:"expires_in"` // Access Token 有效期（秒）
	Member       MemberResponse `json:"member"`
}

// [自证通过] internal/dto/auth.go
