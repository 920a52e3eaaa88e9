package dto

// ── 反馈模块 DTO ──

// SubmitFeedbackRequest 学生提交反馈/投诉
// rating 仅 feedback 类别要求（1-5）
type SubmitFeedbackRequest struct {
	StudentID    string `json:"studentID"    binding:"required,max=30"`
	TeacherID    string `json:"teacherID"    binding:"required,max=30"`
	FeedbackType string `json:"feedbackType" binding:"required,oneof=feedback complaint"`
	Subject      string `json:"subject"      binding:"required,max=200"`
	Message      string `json:"message"      binding:"required,max=2000"`
	Rating       *int   `json:"rating"       binding:"omitempty,min=1,max=5"`
}

// RespondFeedbackRequest 管理员/教师回复反馈
type RespondFeedbackRequest struct {
	Response string `json:"response" binding:"required,max=2000"`
	Status   string `json:"status"   binding:"omitempty,oneof=pending reviewed resolved"`
}
