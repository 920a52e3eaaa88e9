package model

import "time"

// 离校申请状态（闭合枚举）
// 状态由双方审批子状态推导：pending 为初始态，
// fully_approved / declined 为终态，终态后记录不再变更（批量清空除外）
const (
	StatusPending         = "pending"
	StatusAdminApproved   = "admin_approved"
	StatusTeacherApproved = "teacher_approved"
	StatusFullyApproved   = "fully_approved"
	StatusDeclined        = "declined"
)

// IsTerminalStatus 是否为终态
func IsTerminalStatus(status string) bool {
	return status == StatusFullyApproved || status == StatusDeclined
}

// AdminApproval 管理员审批子状态（嵌入 exit_requests）
type AdminApproval struct {
	Approved    bool       `gorm:"column:admin_approved;not null;default:false" json:"approved"`
	Response    string     `gorm:"column:admin_response;type:varchar(500);not null;default:''" json:"adminResponse"`
	RespondedAt *time.Time `gorm:"column:admin_responded_at" json:"respondedAt"`
}

// TeacherApproval 教师审批子状态（嵌入 exit_requests）
type TeacherApproval struct {
	Approved    bool       `gorm:"column:teacher_approved;not null;default:false" json:"approved"`
	TeacherID   string     `gorm:"column:teacher_id;type:varchar(30);not null;default:''" json:"teacherID"`
	Response    string     `gorm:"column:teacher_response;type:varchar(500);not null;default:''" json:"teacherResponse"`
	RespondedAt *time.Time `gorm:"column:teacher_responded_at" json:"respondedAt"`
}

// ExitRequest 离校申请表 — 对应 exit_requests
//
// studentID / firstName / lastName / course / yearLevel 为提交时刻的
// 账户快照（审计字段），之后不随账户变更同步；
// profilePicture 属于展示字段，读取时实时查询，不入库
type ExitRequest struct {
	ID               string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID        string          `gorm:"type:varchar(30);not null;index" json:"studentID"`
	FirstName        string          `gorm:"type:varchar(100);not null"      json:"firstName"`
	LastName         string          `gorm:"type:varchar(100);not null"      json:"lastName"`
	Course           string          `gorm:"type:varchar(50);not null"       json:"course"`
	YearLevel        string          `gorm:"type:varchar(30);not null;default:''" json:"yearLevel"`
	ReasonForExit    string          `gorm:"type:text;not null"              json:"reasonForExit"`
	Date             string          `gorm:"type:varchar(30);not null"       json:"date"`
	Time             string          `gorm:"type:varchar(30);not null"       json:"time"`
	EmergencyContact string          `gorm:"type:varchar(100);not null;default:''" json:"emergencyContact"`
	GuardName        string          `gorm:"type:varchar(100);not null;default:''" json:"guardName"`
	Status           string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubmittedAt      time.Time       `gorm:"not null" json:"submittedAt"`
	AdminApproval    AdminApproval   `gorm:"embedded" json:"adminApproval"`
	TeacherApproval  TeacherApproval `gorm:"embedded" json:"teacherApproval"`
}

// TableName 指定表名
func (ExitRequest) TableName() string { return "exit_requests" }

// StudentName 申请人姓名（提交时快照）
func (r *ExitRequest) StudentName() string { return r.FirstName + " " + r.LastName }
