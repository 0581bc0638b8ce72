package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// ExamHandler 考试模块 HTTP 处理器
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler 创建 ExamHandler
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// Create 创建考试
// POST /api/v1/exams
func (h *ExamHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.examSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, result)
}

// Get 考试详情
// GET /api/v1/exams/:id
func (h *ExamHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.examSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 19001, "考试不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 考试列表
// GET /api/v1/exams
func (h *ExamHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.examSvc.List(c.Request.Context(), callerID, &page)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, page.GetPage(), page.GetPageSize())
}

// Update 更新考试
// PUT /api/v1/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.examSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 19001, "考试不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除考试
// DELETE /api/v1/exams/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.examSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrExamNotFound) {
			response.NotFound(c, 19001, "考试不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
