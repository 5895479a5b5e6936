package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/qa_board_server/internal/pkg/response"
	"github.com/qs3c/qa_board_server/internal/pkg/useragent"
	"github.com/qs3c/qa_board_server/internal/service"
)

// MobileWindow 移动端访问时段限制。
// 按 User-Agent 识别设备，移动端在窗口外一律拒绝，桌面端不受影响。
func MobileWindow(policy *service.PolicyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !useragent.IsMobile(c.GetHeader("User-Agent")) {
			c.Next()
			return
		}

		if err := policy.CheckMobileAllowed(time.Now()); err != nil {
			response.WindowClosedError(c, "当前时段不支持移动端访问")
			c.Abort()
			return
		}

		c.Next()
	}
}
