package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/service"
	"github.com/myBug666/Fitlife-Pro/pkg/response"
)

// BookingHandler 课程预约模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.CourseBookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.CourseBookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// BookCourse 预约课程
// POST /api/v1/bookings
func (h *BookingHandler) BookCourse(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	var req dto.BookCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.Book(c.Request.Context(), memberID, &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// CancelBooking 取消预约（本人或管理员）
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.bookingSvc.Cancel(c.Request.Context(), c.Param("id"), memberID, role); err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, nil)
}

// CompleteBooking 核销预约（管理员）
// POST /api/v1/bookings/:id/complete
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	if err := h.bookingSvc.Complete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, nil)
}

// PayBooking 支付预约
// POST /api/v1/bookings/:id/pay
func (h *BookingHandler) PayBooking(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	booking, err := h.bookingSvc.Pay(c.Request.Context(), c.Param("id"), memberID, role, &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// GetBooking 预约详情（本人或管理员）
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.GetByID(c.Request.Context(), c.Param("id"), memberID, role)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// CheckBooked 检查当前会员在某课表上是否已预约
// GET /api/v1/bookings/check?schedule_id=xxx
func (h *BookingHandler) CheckBooked(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	scheduleID := c.Query("schedule_id")
	if scheduleID == "" {
		response.BadRequest(c, 10001, "schedule_id 不能为空")
		return
	}

	result, err := h.bookingSvc.CheckBooked(c.Request.Context(), memberID, scheduleID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMyBookings 当前会员的预约列表
// GET /api/v1/bookings/my
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	memberID, ok := MustGetMemberID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingSvc.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, bookings)
}

// ListBookings 预约列表（管理员）
// GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	bookings, total, err := h.bookingSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OKPage(c, bookings, total, req.Page, req.PageSize)
}

func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.BadRequest(c, 50001, "预约记录不存在")
	case errors.Is(err, service.ErrBookingDuplicate):
		response.BadRequest(c, 50002, "已预约该课程，请勿重复预约")
	case errors.Is(err, service.ErrScheduleExpired):
		response.BadRequest(c, 50003, "课程已开始，无法操作")
	case errors.Is(err, service.ErrScheduleCancelled):
		response.BadRequest(c, 50004, "课程已取消")
	case errors.Is(err, service.ErrBookingStateInvalid):
		response.BadRequest(c, 50005, "预约状态不允许该操作")
	case errors.Is(err, service.ErrBookingAlreadyPaid):
		response.BadRequest(c, 50006, "预约已支付")
	case errors.Is(err, service.ErrBookingForbidden):
		response.Forbidden(c, 50007, "无权操作他人的预约")
	case errors.Is(err, service.ErrCourseMismatch):
		response.BadRequest(c, 50008, "课表不属于该课程")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.BadRequest(c, 40001, "课程时间安排不存在")
	case errors.Is(err, service.ErrScheduleFull):
		response.BadRequest(c, 40002, "课程预约人数已满")
	case errors.Is(err, service.ErrMemberNotFound):
		response.BadRequest(c, 20001, "会员不存在")
	case errors.Is(err, service.ErrMemberFrozen):
		response.Forbidden(c, 20004, "会员已被冻结")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/booking_handler.go
