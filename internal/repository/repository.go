package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Student     StudentRepository
	Teacher     TeacherRepository
	Admin       AdminRepository
	ExitRequest ExitRequestRepository
	Outbox      OutboxRepository
	Dashboard   DashboardRepository
	Feedback    FeedbackRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:     NewStudentRepo(db),
		Teacher:     NewTeacherRepo(db),
		Admin:       NewAdminRepo(db),
		ExitRequest: NewExitRequestRepo(db),
		Outbox:      NewOutboxRepo(db),
		Dashboard:   NewDashboardRepo(db),
		Feedback:    NewFeedbackRepo(db),
	}
}
