package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/repository"
)

// ── 反馈模块业务错误 ──

var (
	ErrFeedbackNotFound = errors.New("反馈不存在")
	ErrRatingRequired   = errors.New("feedback 类别必须带评分")
)

// FeedbackService 学生反馈/投诉业务接口
type FeedbackService interface {
	Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) (*model.Feedback, error)
	List(ctx context.Context) ([]model.Feedback, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Feedback, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Feedback, error)
	// RespondAsAdmin 管理员回复并更新状态
	RespondAsAdmin(ctx context.Context, id string, req *dto.RespondFeedbackRequest) (*model.Feedback, error)
	// RespondAsTeacher 教师回复
	RespondAsTeacher(ctx context.Context, id string, req *dto.RespondFeedbackRequest) (*model.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type feedbackService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFeedbackService 创建 FeedbackService 实例
func NewFeedbackService(repo *repository.Repository, logger *zap.Logger) FeedbackService {
	return &feedbackService{repo: repo, logger: logger}
}

func (s *feedbackService) Submit(ctx context.Context, req *dto.SubmitFeedbackRequest) (*model.Feedback, error) {
	if req.FeedbackType == model.FeedbackTypeFeedback && req.Rating == nil {
		return nil, ErrRatingRequired
	}

	// 提交目标必须是真实账户
	student, err := s.repo.Student.GetByStudentID(ctx, strings.TrimSpace(req.StudentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	teacher, err := s.repo.Teacher.GetByTeacherID(ctx, strings.TrimSpace(req.TeacherID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	feedback := &model.Feedback{
		StudentID:    student.StudentID,
		TeacherID:    teacher.TeacherID,
		FeedbackType: req.FeedbackType,
		Subject:      req.Subject,
		Message:      req.Message,
		Rating:       req.Rating,
		Status:       model.FeedbackPending,
		SubmittedAt:  time.Now(),
	}

	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		s.logger.Error("创建反馈失败", zap.String("studentID", req.StudentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("反馈已提交",
		zap.String("id", feedback.ID),
		zap.String("type", feedback.FeedbackType),
		zap.String("studentID", feedback.StudentID),
		zap.String("teacherID", feedback.TeacherID))
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	feedbacks, err := s.repo.Feedback.List(ctx)
	if err != nil {
		s.logger.Error("查询反馈列表失败", zap.Error(err))
		return nil, err
	}
	return feedbacks, nil
}

func (s *feedbackService) ListByStudent(ctx context.Context, studentID string) ([]model.Feedback, error) {
	trimmed := strings.TrimSpace(studentID)
	if trimmed == "" {
		return nil, ErrInvalidAccountID
	}
	feedbacks, err := s.repo.Feedback.ListByStudentID(ctx, trimmed)
	if err != nil {
		s.logger.Error("查询学生反馈失败", zap.String("studentID", trimmed), zap.Error(err))
		return nil, err
	}
	return feedbacks, nil
}

func (s *feedbackService) ListByTeacher(ctx context.Context, teacherID string) ([]model.Feedback, error) {
	trimmed := strings.TrimSpace(teacherID)
	if trimmed == "" {
		return nil, ErrInvalidAccountID
	}
	feedbacks, err := s.repo.Feedback.ListByTeacherID(ctx, trimmed)
	if err != nil {
		s.logger.Error("查询教师反馈失败", zap.String("teacherID", trimmed), zap.Error(err))
		return nil, err
	}
	return feedbacks, nil
}

func (s *feedbackService) RespondAsAdmin(ctx context.Context, id string, req *dto.RespondFeedbackRequest) (*model.Feedback, error) {
	feedback, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	feedback.AdminResponse = req.Response
	feedback.RespondedAt = &now
	feedback.Status = responseStatus(req.Status)
	if err := s.repo.Feedback.Update(ctx, feedback); err != nil {
		s.logger.Error("更新反馈失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) RespondAsTeacher(ctx context.Context, id string, req *dto.RespondFeedbackRequest) (*model.Feedback, error) {
	feedback, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	feedback.TeacherResponse = req.Response
	feedback.TeacherRespondedAt = &now
	feedback.Status = responseStatus(req.Status)
	if err := s.repo.Feedback.Update(ctx, feedback); err != nil {
		s.logger.Error("更新反馈失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) Delete(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Feedback.Delete(ctx, id); err != nil {
		s.logger.Error("删除反馈失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *feedbackService) get(ctx context.Context, id string) (*model.Feedback, error) {
	feedback, err := s.repo.Feedback.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		s.logger.Error("查询反馈失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return feedback, nil
}

// responseStatus 回复时未显式指定状态则置为 reviewed
func responseStatus(status string) string {
	if status == "" {
		return model.FeedbackReviewed
	}
	return status
}
