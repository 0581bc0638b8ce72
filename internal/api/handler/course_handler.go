package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// Create 创建课程
// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCourseCodeExists):
			response.Conflict(c, 12002, "课程编码已存在")
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 14001, "教师不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrCourseNotFound) {
			response.NotFound(c, 12001, "课程不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 课程列表
// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.List(c.Request.Context(), callerID)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 14001, "教师不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// Delete 删除课程
// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrCourseHasStudents):
			response.Conflict(c, 12003, "课程下仍有学生，无法删除")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// AddSubject 课程挂载科目
// POST /api/v1/courses/:id/subjects
func (h *CourseHandler) AddSubject(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddCourseSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.AddSubject(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			response.NotFound(c, 12001, "课程不存在")
		case errors.Is(err, service.ErrSubjectNotFound):
			response.NotFound(c, 13001, "科目不存在")
		case errors.Is(err, service.ErrCourseSubjectExists):
			response.Conflict(c, 12004, "课程已挂载该科目")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// ListSubjects 课程科目列表
// GET /api/v1/courses/:id/subjects
func (h *CourseHandler) ListSubjects(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.ListSubjects(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// RemoveSubject 课程移除科目
// DELETE /api/v1/courses/:id/subjects/:subjectId
func (h *CourseHandler) RemoveSubject(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.courseSvc.RemoveSubject(c.Request.Context(), callerID, c.Param("id"), c.Param("subjectId")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
