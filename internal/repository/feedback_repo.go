package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/model"
)

// FeedbackRepository 学生反馈/投诉数据访问接口
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	GetByID(ctx context.Context, id string) (*model.Feedback, error)
	List(ctx context.Context) ([]model.Feedback, error)
	ListByStudentID(ctx context.Context, studentID string) ([]model.Feedback, error)
	ListByTeacherID(ctx context.Context, teacherID string) ([]model.Feedback, error)
	Update(ctx context.Context, feedback *model.Feedback) error
	Delete(ctx context.Context, id string) error
}

// feedbackRepo FeedbackRepository 的 GORM 实现
type feedbackRepo struct {
	db *gorm.DB
}

// NewFeedbackRepo 创建 FeedbackRepository 实例
func NewFeedbackRepo(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepo) GetByID(ctx context.Context, id string) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepo) List(ctx context.Context) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepo) ListByStudentID(ctx context.Context, studentID string) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepo) ListByTeacherID(ctx context.Context, teacherID string) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("submitted_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepo) Update(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Save(feedback).Error
}

func (r *feedbackRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Feedback{}).Error
}
