package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sms-portal/backend/pkg/response"
)

// MaxRequestBodyBytes 默认请求体上限
// 本服务全部是小 JSON 请求（最大的是批量排课），1MB 足够。
const MaxRequestBodyBytes int64 = 1 << 20

// BodyLimit 全局请求体大小限制中间件
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		// 检查是否因为超出限制而失败
		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}
