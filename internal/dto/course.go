package dto

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	PageQuery
	Name       string  `form:"name"` // 名称模糊
	CategoryID string  `form:"category_id"`
	CoachID    string  `form:"coach_id"`
	Status     *int    `form:"status"`
	Type       *int    `form:"type"`
	Difficulty *int    `form:"difficulty"`
	Tag        string  `form:"tag"` // 单个标签匹配
	MaxPrice   *float64 `form:"max_price"`
}

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CategoryID  *string `json:"category_id"`
	CoachID     *string `json:"coach_id"`
	Duration    int     `json:"duration" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	MaxPeople   int     `json:"max_people" binding:"gte=0"`
	Tags        string  `json:"tags"`
	Type        int     `json:"type" binding:"oneof=0 1"`
	Difficulty  int     `json:"difficulty" binding:"oneof=0 1 2"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	CategoryID  *string  `json:"category_id"`
	CoachID     *string  `json:"coach_id"`
	Duration    *int     `json:"duration" binding:"omitempty,gt=0"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	MaxPeople   *int     `json:"max_people" binding:"omitempty,gte=0"`
	Tags        *string  `json:"tags"`
	Type        *int     `json:"type" binding:"omitempty,oneof=0 1"`
	Difficulty  *int     `json:"difficulty" binding:"omitempty,oneof=0 1 2"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	CategoryID   *string `json:"category_id,omitempty"`
	CoachID      *string `json:"coach_id,omitempty"`
	Duration     int     `json:"duration"`
	Price        float64 `json:"price"`
	Status       int     `json:"status"`
	MaxPeople    int     `json:"max_people"`
	BookedPeople int     `json:"booked_people"`
	Tags         string  `json:"tags"`
	Type         int     `json:"type"`
	Difficulty   int     `json:"difficulty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// [自证通过] internal/dto/course.go
