package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/repository"
)

// NotificationService 通知业务接口
//
// 所有方法只向 email_outbox 写入待发送记录，实际发送由后台调度器完成。
// 通知失败不向调用方传播为业务失败：收件人解析失败记日志后跳过，
// 仅 outbox 写入本身的错误会返回
type NotificationService interface {
	// NotifySubmission 新申请扇出：匹配的教师 + 全部管理员
	NotifySubmission(ctx context.Context, request *model.ExitRequest) error
	// NotifyTeacherDecision 教师决定后的确认邮件
	NotifyTeacherDecision(ctx context.Context, request *model.ExitRequest, teacher *model.Teacher, approved bool, response string) error
	// NotifySecurityAlert 完全批准后发往门卫邮箱，每条申请仅一次
	NotifySecurityAlert(ctx context.Context, request *model.ExitRequest) error
	NotifyAccountWelcome(ctx context.Context, kind, recipient, name, role, username string) error
	NotifyAccountUpdate(ctx context.Context, recipient, name string, updatedFields []string) error
	NotifyPasswordReset(ctx context.Context, recipient, name, resetCode string) error
}

type notificationService struct {
	repo   *repository.Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, cfg: cfg, logger: logger}
}

// ────────────────────── NotifySubmission ──────────────────────

func (s *notificationService) NotifySubmission(ctx context.Context, request *model.ExitRequest) error {
	now := time.Now()
	var emails []*model.OutboxEmail

	// 教师扇出：course/yearLevel 无法归类时不通知教师（并非错误）
	if key, ok := model.ClassifyRequest(request.Course, request.YearLevel); ok {
		teachers, err := s.repo.Teacher.ListByAssignment(ctx, string(key.Department), key.Position)
		if err != nil {
			s.logger.Error("查询匹配教师失败", zap.String("requestId", request.ID), zap.Error(err))
			return err
		}
		for i := range teachers {
			body, err := renderMailBody("teacher_new_request", map[string]interface{}{
				"TeacherName":      teachers[i].FullName(),
				"StudentName":      request.StudentName(),
				"StudentID":        request.StudentID,
				"Course":           request.Course,
				"Date":             request.Date,
				"Time":             request.Time,
				"Reason":           request.ReasonForExit,
				"EmergencyContact": request.EmergencyContact,
			})
			if err != nil {
				return err
			}
			emails = append(emails, &model.OutboxEmail{
				Kind:          model.MailKindTeacherNewRequest,
				Recipient:     teachers[i].Email,
				Subject:       fmt.Sprintf("New Exit Request from %s (%s)", request.StudentName(), request.StudentID),
				Body:          body,
				Status:        model.OutboxPending,
				NextAttemptAt: now,
				CreatedAt:     now,
			})
		}
	} else {
		s.logger.Warn("申请无法归类到任何部门，跳过教师通知",
			zap.String("requestId", request.ID),
			zap.String("course", request.Course),
			zap.String("yearLevel", request.YearLevel))
	}

	// 管理员扇出：所有管理员都收到新申请通知
	admins, err := s.repo.Admin.List(ctx)
	if err != nil {
		s.logger.Error("查询管理员列表失败", zap.String("requestId", request.ID), zap.Error(err))
		return err
	}
	for i := range admins {
		body, err := renderMailBody("admin_new_request", map[string]interface{}{
			"AdminName":   admins[i].FullName(),
			"StudentName": request.StudentName(),
			"StudentID":   request.StudentID,
			"Course":      request.Course,
			"Date":        request.Date,
			"Time":        request.Time,
			"Reason":      request.ReasonForExit,
		})
		if err != nil {
			return err
		}
		emails = append(emails, &model.OutboxEmail{
			Kind:          model.MailKindAdminNewRequest,
			Recipient:     admins[i].Email,
			Subject:       fmt.Sprintf("New Exit Request from %s (%s) - Admin Review Required", request.StudentName(), request.StudentID),
			Body:          body,
			Status:        model.OutboxPending,
			NextAttemptAt: now,
			CreatedAt:     now,
		})
	}

	if err := s.repo.Outbox.Enqueue(ctx, emails); err != nil {
		s.logger.Error("写入通知 outbox 失败", zap.String("requestId", request.ID), zap.Error(err))
		return err
	}
	s.logger.Info("新申请通知已入队",
		zap.String("requestId", request.ID),
		zap.Int("count", len(emails)))
	return nil
}

// ────────────────────── NotifyTeacherDecision ──────────────────────

func (s *notificationService) NotifyTeacherDecision(ctx context.Context, request *model.ExitRequest, teacher *model.Teacher, approved bool, response string) error {
	decision := "Approved"
	if !approved {
		decision = "Declined"
	}
	body, err := renderMailBody("teacher_confirmation", map[string]interface{}{
		"TeacherName": teacher.FullName(),
		"StudentName": request.StudentName(),
		"StudentID":   request.StudentID,
		"Decision":    decision,
		"Response":    response,
	})
	if err != nil {
		return err
	}
	return s.enqueueOne(ctx, &model.OutboxEmail{
		Kind:      model.MailKindTeacherConfirmation,
		Recipient: teacher.Email,
		Subject:   fmt.Sprintf("Exit Request %s - %s (%s)", decision, request.StudentName(), request.StudentID),
		Body:      body,
	})
}

// ────────────────────── NotifySecurityAlert ──────────────────────

func (s *notificationService) NotifySecurityAlert(ctx context.Context, request *model.ExitRequest) error {
	body, err := renderMailBody("security_alert", map[string]interface{}{
		"StudentName": request.StudentName(),
		"StudentID":   request.StudentID,
		"Course":      request.Course,
		"Date":        request.Date,
		"Time":        request.Time,
		"Reason":      request.ReasonForExit,
	})
	if err != nil {
		return err
	}
	return s.enqueueOne(ctx, &model.OutboxEmail{
		Kind:      model.MailKindSecurityAlert,
		Recipient: s.cfg.Mail.SecurityEmail,
		Subject:   fmt.Sprintf("SECURITY ALERT: Approved Exit Request - %s (%s)", request.StudentName(), request.StudentID),
		Body:      body,
	})
}

// ────────────────────── 账户类通知 ──────────────────────

func (s *notificationService) NotifyAccountWelcome(ctx context.Context, kind, recipient, name, role, username string) error {
	body, err := renderMailBody("account_welcome", map[string]interface{}{
		"Name":     name,
		"Role":     role,
		"Username": username,
	})
	if err != nil {
		return err
	}
	return s.enqueueOne(ctx, &model.OutboxEmail{
		Kind:      kind,
		Recipient: recipient,
		Subject:   "Welcome to Smart Exit Monitoring System - Account Created Successfully",
		Body:      body,
	})
}

func (s *notificationService) NotifyAccountUpdate(ctx context.Context, recipient, name string, updatedFields []string) error {
	if len(updatedFields) == 0 {
		return nil
	}
	body, err := renderMailBody("account_update", map[string]interface{}{
		"Name":          name,
		"UpdatedFields": updatedFields,
	})
	if err != nil {
		return err
	}
	return s.enqueueOne(ctx, &model.OutboxEmail{
		Kind:      model.MailKindAccountUpdate,
		Recipient: recipient,
		Subject:   "Account Information Updated - Smart Exit Monitoring System",
		Body:      body,
	})
}

func (s *notificationService) NotifyPasswordReset(ctx context.Context, recipient, name, resetCode string) error {
	body, err := renderMailBody("password_reset", map[string]interface{}{
		"Name":          name,
		"ResetCode":     resetCode,
		"ExpiryMinutes": int(s.cfg.Auth.ResetCodeTTL.Minutes()),
	})
	if err != nil {
		return err
	}
	return s.enqueueOne(ctx, &model.OutboxEmail{
		Kind:      model.MailKindPasswordReset,
		Recipient: recipient,
		Subject:   "Password Reset - Smart Exit Monitoring System",
		Body:      body,
	})
}

// ── 内部辅助方法 ──

func (s *notificationService) enqueueOne(ctx context.Context, email *model.OutboxEmail) error {
	now := time.Now()
	email.Status = model.OutboxPending
	email.NextAttemptAt = now
	email.CreatedAt = now
	if err := s.repo.Outbox.Enqueue(ctx, []*model.OutboxEmail{email}); err != nil {
		s.logger.Error("写入通知 outbox 失败",
			zap.String("kind", email.Kind),
			zap.String("recipient", email.Recipient),
			zap.Error(err))
		return err
	}
	return nil
}
