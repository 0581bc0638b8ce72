package handler

import (
	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Dashboard 按调用者角色返回对应视图
// GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashboardSvc.Dashboard(c.Request.Context(), callerID)
	if err != nil {
		if forbiddenIfDenied(c, err) {
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}
