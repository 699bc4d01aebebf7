package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit 按客户端 IP 限制登录与换取 token 的频率，未配置 redis 时直接放行。
func (a *API) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.limiter == nil {
			c.Next()
			return
		}

		allowed, err := a.limiter.Allow(c.Request.Context(), c.FullPath(), c.ClientIP())
		if err != nil {
			a.logger.ErrorContext(c.Request.Context(), "rate limit check failed", "err", err)
			respondError(c, http.StatusInternalServerError, "限流检查失败")
			c.Abort()
			return
		}
		if !allowed {
			respondError(c, http.StatusTooManyRequests, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}

		c.Next()
	}
}
