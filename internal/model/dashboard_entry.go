package model

import "time"

// DashboardEntry 管理端处理记录表 — 对应 dashboard_entries
// 申请进入终态时追加一条，供管理端历史页展示；可整体清空或按 id 批量删除
type DashboardEntry struct {
	ID               string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RequestID        string    `gorm:"type:uuid;not null"         json:"requestId"`
	StudentName      string    `gorm:"type:varchar(200);not null" json:"studentName"`
	StudentID        string    `gorm:"type:varchar(30);not null"  json:"studentID"`
	Reason           string    `gorm:"type:text;not null"         json:"reason"`
	Date             string    `gorm:"type:varchar(30);not null"  json:"date"`
	Time             string    `gorm:"type:varchar(30);not null"  json:"time"`
	Status           string    `gorm:"type:varchar(20);not null"  json:"status"`
	AdminResponse    string    `gorm:"type:varchar(500);not null;default:''" json:"adminResponse"`
	GuardName        string    `gorm:"type:varchar(100);not null;default:''" json:"guardName"`
	EmergencyContact string    `gorm:"type:varchar(100);not null;default:''" json:"emergencyContact"`
	ProcessedAt      time.Time `gorm:"not null" json:"processedAt"`
}

// TableName 指定表名
func (DashboardEntry) TableName() string { return "dashboard_entries" }
