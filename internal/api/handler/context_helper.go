package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/internal/service"
	"sms-portal/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// forbiddenIfDenied 统一处理权限引擎的拒绝结果。
// 返回 true 表示已写入响应，调用方应直接 return。
func forbiddenIfDenied(c *gin.Context, err error) bool {
	if errors.Is(err, service.ErrNotAuthorized) {
		response.Forbidden(c, 10003, "无权执行该操作")
		return true
	}
	return false
}
