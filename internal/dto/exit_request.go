package dto

import "github.com/Kyliee2004/sems-backend/internal/model"

// ── 离校申请模块 DTO ──

// SubmitExitRequestRequest 学生提交离校申请
// studentID 指向已存在的学生账户，姓名/课程等快照字段由服务端补全
type SubmitExitRequestRequest struct {
	StudentID        string `json:"studentID"        binding:"required,max=30"`
	ReasonForExit    string `json:"reasonForExit"    binding:"required,max=2000"`
	Date             string `json:"date"             binding:"required,max=30"`
	Time             string `json:"time"             binding:"required,max=30"`
	EmergencyContact string `json:"emergencyContact" binding:"omitempty,max=100"`
	GuardName        string `json:"guardName"        binding:"omitempty,max=100"`
}

// DecisionRequest 审批决定请求
// teacherID 非空即教师决定，否则为管理员决定
type DecisionRequest struct {
	Status          string `json:"status"          binding:"required,oneof=approved declined"`
	AdminResponse   string `json:"adminResponse"   binding:"omitempty,max=500"`
	TeacherID       string `json:"teacherID"       binding:"omitempty,max=30"`
	TeacherResponse string `json:"teacherResponse" binding:"omitempty,max=500"`
}

// Approved 是否为同意决定
func (r *DecisionRequest) Approved() bool { return r.Status == "approved" }

// IsTeacherDecision 是否为教师决定
func (r *DecisionRequest) IsTeacherDecision() bool { return r.TeacherID != "" }

// EnrichedExitRequest 申请视图响应 — 申请记录附带实时头像
// 学生账户已删除时 profilePicture 为 null
type EnrichedExitRequest struct {
	model.ExitRequest
	ProfilePicture *string `json:"profilePicture"`
}

// ClearHistoryResponse 清空历史响应
type ClearHistoryResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
