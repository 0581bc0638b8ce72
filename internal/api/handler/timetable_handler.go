package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// Create 新增课表条目
// POST /api/v1/timetables
func (h *TimetableHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.timetableSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrSubjectNotFound):
			response.NotFound(c, 13001, "科目不存在")
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 14001, "教师不存在")
		case errors.Is(err, service.ErrInvalidDayOfWeek):
			response.BadRequest(c, 21003, "非法星期值")
		case errors.Is(err, service.ErrTimetableSlotUsed):
			response.Conflict(c, 21002, "该课程此时段已排课")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 课表条目详情
// GET /api/v1/timetables/:id
func (h *TimetableHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.timetableSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrTimetableNotFound) {
			response.NotFound(c, 21001, "课表条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListByCourse 课程课表
// GET /api/v1/courses/:id/timetables
func (h *TimetableHandler) ListByCourse(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.timetableSvc.ListByCourse(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 更新课表条目
// PUT /api/v1/timetables/:id
func (h *TimetableHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.timetableSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrTimetableNotFound):
			response.NotFound(c, 21001, "课表条目不存在")
		case errors.Is(err, service.ErrInvalidDayOfWeek):
			response.BadRequest(c, 21003, "非法星期值")
		case errors.Is(err, service.ErrTimetableSlotUsed):
			response.Conflict(c, 21002, "该课程此时段已排课")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Delete 删除课表条目
// DELETE /api/v1/timetables/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.timetableSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrTimetableNotFound) {
			response.NotFound(c, 21001, "课表条目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
