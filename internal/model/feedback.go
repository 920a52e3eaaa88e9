package model

import "time"

// 反馈类别与状态
const (
	FeedbackTypeFeedback  = "feedback"
	FeedbackTypeComplaint = "complaint"

	FeedbackPending  = "pending"
	FeedbackReviewed = "reviewed"
	FeedbackResolved = "resolved"
)

// Feedback 学生反馈/投诉表 — 对应 feedback
// rating 仅 feedback 类别要求（1-5），complaint 为空
type Feedback struct {
	ID                 string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID          string     `gorm:"type:varchar(30);not null"  json:"studentID"`
	TeacherID          string     `gorm:"type:varchar(30);not null;index" json:"teacherID"`
	FeedbackType       string     `gorm:"type:varchar(20);not null"  json:"feedbackType"`
	Subject            string     `gorm:"type:varchar(200);not null" json:"subject"`
	Message            string     `gorm:"type:text;not null"         json:"message"`
	Rating             *int       `json:"rating,omitempty"`
	Status             string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SubmittedAt        time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"submittedAt"`
	AdminResponse      string     `gorm:"type:text;not null;default:''" json:"adminResponse"`
	RespondedAt        *time.Time `json:"respondedAt,omitempty"`
	TeacherResponse    string     `gorm:"type:text;not null;default:''" json:"teacherResponse"`
	TeacherRespondedAt *time.Time `json:"teacherRespondedAt,omitempty"`
}

// TableName 指定表名
func (Feedback) TableName() string { return "feedback" }
