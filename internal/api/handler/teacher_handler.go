package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// TeacherHandler 教师模块 HTTP 处理器
type TeacherHandler struct {
	teacherSvc service.TeacherService
}

// NewTeacherHandler 创建 TeacherHandler
func NewTeacherHandler(teacherSvc service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc}
}

// Create 创建教师
// POST /api/v1/teachers
func (h *TeacherHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			response.NotFound(c, 14002, "档案不存在")
		case errors.Is(err, service.ErrProfileRoleMismatch):
			response.BadRequest(c, 14003, "档案角色与实体类型不匹配")
		case errors.Is(err, service.ErrProfileAlreadyBound):
			response.Conflict(c, 14004, "档案已绑定其他实体")
		case errors.Is(err, service.ErrEmployeeIDExists):
			response.Conflict(c, 14005, "工号已存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 教师详情
// GET /api/v1/teachers/:id
func (h *TeacherHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.teacherSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 14001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 教师列表
// GET /api/v1/teachers
func (h *TeacherHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.teacherSvc.List(c.Request.Context(), callerID)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 更新教师
// PUT /api/v1/teachers/:id
func (h *TeacherHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 14001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除教师
// DELETE /api/v1/teachers/:id
func (h *TeacherHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.teacherSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrTeacherNotFound) {
			response.NotFound(c, 14001, "教师不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// AddSubject 新增授课安排
// POST /api/v1/teachers/:id/subjects
func (h *TeacherHandler) AddSubject(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddTeacherSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.teacherSvc.AddSubject(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 14001, "教师不存在")
		case errors.Is(err, service.ErrSubjectNotFound):
			response.NotFound(c, 13001, "科目不存在")
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrTeacherSubjectExists):
			response.Conflict(c, 14006, "该授课安排已存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// ListSubjects 授课安排列表
// GET /api/v1/teachers/:id/subjects
func (h *TeacherHandler) ListSubjects(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.teacherSvc.ListSubjects(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// RemoveSubject 移除授课安排
// DELETE /api/v1/teachers/:id/subjects/:subjectId
func (h *TeacherHandler) RemoveSubject(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	courseID := c.Query("course_id")
	if err := h.teacherSvc.RemoveSubject(c.Request.Context(), callerID, c.Param("id"), c.Param("subjectId"), courseID); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
