package middleware

import (
	"net/http"
	"strconv"
	"sweeps_admin/pkg/metrics"
	"sweeps_admin/pkg/response"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// MetricsMiddleware 记录 HTTP 请求指标，endpoint 使用路由模板避免标签爆炸
func MetricsMiddleware(collector *metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// CORSMiddleware 跨域设置，前端通过 cookie 携带会话
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Trace-ID"},
		ExposeHeaders:    []string{"X-Trace-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func abortInternal(c *gin.Context) {
	response.AbortWithError(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
}
