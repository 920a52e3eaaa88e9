package dto

import "github.com/Kyliee2004/sems-backend/internal/model"

// ── 管理端处理记录 DTO ──

// BulkDeleteRequest 批量删除处理记录
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// BulkDeleteResponse 批量删除响应
type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// EnrichedDashboardEntry 处理记录附带申请人实时头像
type EnrichedDashboardEntry struct {
	model.DashboardEntry
	ProfilePicture *string `json:"profilePicture"`
}
