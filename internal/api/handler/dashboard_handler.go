package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

// DashboardHandler 管理端处理记录 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// List GET /admin-dashboard
func (h *DashboardHandler) List(c *gin.Context) {
	entries, err := h.dashboardSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, entries)
}

// BulkDelete DELETE /admin-dashboard/bulk-delete
func (h *DashboardHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	count, err := h.dashboardSvc.DeleteByIDs(c.Request.Context(), req.IDs)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.BulkDeleteResponse{DeletedCount: count})
}

// DeleteAll DELETE /admin-dashboard
func (h *DashboardHandler) DeleteAll(c *gin.Context) {
	count, err := h.dashboardSvc.DeleteAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dto.BulkDeleteResponse{DeletedCount: count})
}
