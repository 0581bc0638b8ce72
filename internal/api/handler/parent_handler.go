package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/dto"
	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// ParentHandler 家长模块 HTTP 处理器
type ParentHandler struct {
	parentSvc service.ParentService
}

// NewParentHandler 创建 ParentHandler
func NewParentHandler(parentSvc service.ParentService) *ParentHandler {
	return &ParentHandler{parentSvc: parentSvc}
}

// Create 创建家长
// POST /api/v1/parents
func (h *ParentHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.parentSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			response.NotFound(c, 14002, "档案不存在")
		case errors.Is(err, service.ErrProfileRoleMismatch):
			response.BadRequest(c, 14003, "档案角色与实体类型不匹配")
		case errors.Is(err, service.ErrParentProfileExists):
			response.Conflict(c, 15002, "该档案已绑定家长")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Get 家长详情
// GET /api/v1/parents/:id
func (h *ParentHandler) Get(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.parentSvc.GetByID(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrParentNotFound) {
			response.NotFound(c, 15001, "家长不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// List 家长列表
// GET /api/v1/parents
func (h *ParentHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.parentSvc.List(c.Request.Context(), callerID)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Update 更新家长
// PUT /api/v1/parents/:id
func (h *ParentHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.parentSvc.Update(c.Request.Context(), callerID, c.Param("id"), &req)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrParentNotFound) {
			response.NotFound(c, 15001, "家长不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// Delete 删除家长
// DELETE /api/v1/parents/:id
func (h *ParentHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.parentSvc.Delete(c.Request.Context(), callerID, c.Param("id")); err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		if errors.Is(err, service.ErrParentNotFound) {
			response.NotFound(c, 15001, "家长不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
