package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Create 录入考勤
// POST /api/v1/attendance
func (h *AttendanceHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 16001, "学生不存在")
		case errors.Is(err, service.ErrSubjectNotFound):
			response.NotFound(c, 13001, "科目不存在")
		case errors.Is(err, service.ErrAttendanceExists):
			response.Conflict(c, 17002, "该学生当日该科目的考勤已存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 考勤详情
// GET /api/v1/attendance/:id
func (h *AttendanceHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.NotFound(c, 17001, "考勤记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListByStudent 学生考勤列表
// GET /api/v1/students/:id/attendance
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.attendanceSvc.ListByStudent(c.Request.Context(), callerID, c.Param("id"), &page)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// Update 修改考勤
// PUT /api/v1/attendance/:id
func (h *AttendanceHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.NotFound(c, 17001, "考勤记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除考勤
// DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.attendanceSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAttendanceNotFound) {
			response.NotFound(c, 17001, "考勤记录不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
