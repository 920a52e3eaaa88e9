package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 构建时通过 -ldflags 注入
var Version = "dev"

// HealthHandler 健康检查 HTTP 处理器
type HealthHandler struct{}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": Version,
	})
}
