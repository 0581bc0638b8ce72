package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Create 布置作业
// POST /api/v1/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			response.NotFound(c, 13001, "科目不存在")
		case errors.Is(err, service.ErrTeacherNotFound):
			response.NotFound(c, 14001, "教师不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 作业详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.assignmentSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 18001, "作业不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 作业列表
// GET /api/v1/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.assignmentSvc.List(c.Request.Context(), callerID, &page)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// Update 更新作业
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 18001, "作业不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除作业
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 18001, "作业不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Submit 学生提交作业
// POST /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) Submit(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.Submit(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, 18001, "作业不存在")
		case errors.Is(err, service.ErrStudentNotFound):
			response.NotFound(c, 16001, "学生不存在")
		case errors.Is(err, service.ErrSubmissionExists):
			response.Conflict(c, 18003, "该学生已提交过此作业")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// ListSubmissions 作业提交列表
// GET /api/v1/assignments/:id/submissions
func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.assignmentSvc.ListSubmissions(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, 18001, "作业不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GradeSubmission 批改作业提交
// PUT /api/v1/submissions/:id/grade
func (h *AssignmentHandler) GradeSubmission(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.assignmentSvc.GradeSubmission(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.NotFound(c, 18002, "作业提交不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
