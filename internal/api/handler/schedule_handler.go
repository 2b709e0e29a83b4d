package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myBug666/Fitlife-Pro/internal/dto"
	"github.com/myBug666/Fitlife-Pro/internal/service"
	"github.com/myBug666/Fitlife-Pro/pkg/response"
)

// ScheduleHandler 课程时间安排模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.CourseScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.CourseScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedules 时间安排列表
// GET /api/v1/schedules
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedules, total, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKPage(c, schedules, total, req.Page, req.PageSize)
}

// ListUpcomingSchedules 即将开始的课程
// GET /api/v1/schedules/upcoming?limit=10
func (h *ScheduleHandler) ListUpcomingSchedules(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	schedules, err := h.scheduleSvc.ListUpcoming(c.Request.Context(), limit)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedules)
}

// GetSchedule 时间安排详情
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// ListCourseSchedules 课程下的时间安排
// GET /api/v1/courses/:id/schedules
func (h *ScheduleHandler) ListCourseSchedules(c *gin.Context) {
	schedules, err := h.scheduleSvc.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedules)
}

// CreateSchedule 创建时间安排（管理员）
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, schedule)
}

// UpdateSchedule 更新时间安排（管理员）
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, schedule)
}

// DeleteSchedule 删除时间安排（管理员，软删除）
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// UpdateScheduleStatus 更新课表状态（管理员）
// PUT /api/v1/schedules/:id/status
func (h *ScheduleHandler) UpdateScheduleStatus(c *gin.Context) {
	var req dto.UpdateScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.scheduleSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.BadRequest(c, 40001, "课程时间安排不存在")
	case errors.Is(err, service.ErrScheduleFull):
		response.BadRequest(c, 40002, "课程预约人数已满")
	case errors.Is(err, service.ErrScheduleHasBookings):
		response.BadRequest(c, 40003, "该课程已有用户预约，无法删除")
	case errors.Is(err, service.ErrScheduleBadTransition):
		response.BadRequest(c, 40004, "课表状态迁移不合法")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 40005, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrMaxBelowBooked):
		response.BadRequest(c, 40006, "最大人数不能小于已预约人数")
	case errors.Is(err, service.ErrCourseNotFound):
		response.BadRequest(c, 30001, "课程不存在")
	case errors.Is(err, service.ErrInvalidTimeFormat):
		response.BadRequest(c, 10001, "时间格式无效")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
