package model

import "time"

// 邮件 outbox 记录状态
const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxFailed  = "failed"
)

// 邮件类别（用于日志与排障，不参与调度）
const (
	MailKindTeacherNewRequest   = "teacher_new_request"
	MailKindAdminNewRequest     = "admin_new_request"
	MailKindTeacherConfirmation = "teacher_confirmation"
	MailKindSecurityAlert       = "security_alert"
	MailKindStudentWelcome      = "student_welcome"
	MailKindTeacherWelcome      = "teacher_welcome"
	MailKindAccountUpdate       = "account_update"
	MailKindPasswordReset       = "password_reset"
)

// OutboxEmail 待发送邮件表 — 对应 email_outbox
//
// 业务写入与通知意图在同一次请求中落库，实际发送由后台调度器异步完成，
// 邮件失败只影响 outbox 记录自身，绝不影响触发它的业务操作
type OutboxEmail struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Kind          string     `gorm:"type:varchar(50);not null"  json:"kind"`
	Recipient     string     `gorm:"type:varchar(255);not null" json:"recipient"`
	Subject       string     `gorm:"type:varchar(255);not null" json:"subject"`
	Body          string     `gorm:"type:text;not null"         json:"-"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index:idx_email_outbox_due" json:"status"`
	Attempts      int        `gorm:"not null;default:0"         json:"attempts"`
	LastError     string     `gorm:"type:text;not null;default:''" json:"lastError,omitempty"`
	NextAttemptAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_email_outbox_due" json:"nextAttemptAt"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
}

// TableName 指定表名
func (OutboxEmail) TableName() string { return "email_outbox" }
