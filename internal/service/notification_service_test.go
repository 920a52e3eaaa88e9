package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/repository"
)

// ── 测试辅助 ──

func setupNotificationService() (NotificationService, *mockOutboxRepo, *mockTeacherRepo, *mockAdminRepo) {
	teachers := newMockTeacherRepo()
	admins := newMockAdminRepo()
	outbox := newMockOutboxRepo()
	repo := &repository.Repository{
		Student:     newMockStudentRepo(),
		Teacher:     teachers,
		Admin:       admins,
		ExitRequest: newMockExitRequestRepo(),
		Outbox:      outbox,
		Dashboard:   newMockDashboardRepo(),
		Feedback:    newMockFeedbackRepo(),
	}
	cfg := &config.Config{
		Mail: config.MailConfig{SecurityEmail: "security@sems.edu"},
		Auth: config.AuthConfig{ResetCodeTTL: 15 * time.Minute},
	}
	svc := NewNotificationService(repo, cfg, zap.NewNop())
	return svc, outbox, teachers, admins
}

func sampleRequest() *model.ExitRequest {
	return &model.ExitRequest{
		ID:            "req-001",
		StudentID:     "2021-001",
		FirstName:     "Juan",
		LastName:      "Cruz",
		Course:        "BSIT",
		YearLevel:     "3rd Year",
		ReasonForExit: "Medical appointment",
		Date:          "2026-09-01",
		Time:          "10:00 AM",
		Status:        model.StatusPending,
		SubmittedAt:   time.Now(),
	}
}

// ── 模板渲染测试 ──

func TestRenderMailBody_EscapesUserContent(t *testing.T) {
	body, err := renderMailBody("security_alert", map[string]interface{}{
		"StudentName": "Juan <script>alert(1)</script>",
		"StudentID":   "2021-001",
		"Course":      "BSIT",
		"Date":        "2026-09-01",
		"Time":        "10:00 AM",
		"Reason":      "x",
	})
	if err != nil {
		t.Fatalf("渲染应成功: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Error("用户内容应被转义")
	}
	if !strings.Contains(body, "2021-001") {
		t.Error("正文应包含学号")
	}
}

func TestRenderMailBody_UnknownTemplate(t *testing.T) {
	if _, err := renderMailBody("no_such_template", nil); err == nil {
		t.Error("未知模板应返回错误")
	}
}

// ── 入队行为测试 ──

func TestNotificationService_SecurityAlertTargetsConfiguredMailbox(t *testing.T) {
	svc, outbox, _, _ := setupNotificationService()

	if err := svc.NotifySecurityAlert(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("NotifySecurityAlert 应成功: %v", err)
	}

	mails := outbox.byKind(model.MailKindSecurityAlert)
	if len(mails) != 1 {
		t.Fatalf("期望 1 封告警，实际: %d", len(mails))
	}
	if mails[0].Recipient != "security@sems.edu" {
		t.Errorf("收件人应为配置的门卫邮箱，实际: %s", mails[0].Recipient)
	}
	if mails[0].Status != model.OutboxPending {
		t.Errorf("新记录应为 pending，实际: %s", mails[0].Status)
	}
}

func TestNotificationService_SubmissionFanOutScopedByRouting(t *testing.T) {
	svc, outbox, teachers, admins := setupNotificationService()
	_ = teachers.Create(context.Background(), &model.Teacher{
		TeacherID: "T-01", Department: "College", Position: "BSIT", Email: "t1@example.edu",
	})
	_ = teachers.Create(context.Background(), &model.Teacher{
		TeacherID: "T-02", Department: "College", Position: "EDUC", Email: "t2@example.edu",
	})
	_ = admins.Create(context.Background(), &model.Admin{AdminID: "A-01", Email: "a1@example.edu"})

	if err := svc.NotifySubmission(context.Background(), sampleRequest()); err != nil {
		t.Fatalf("NotifySubmission 应成功: %v", err)
	}

	teacherMails := outbox.byKind(model.MailKindTeacherNewRequest)
	if len(teacherMails) != 1 || teacherMails[0].Recipient != "t1@example.edu" {
		t.Fatalf("期望仅 BSIT 教师收到通知，实际: %+v", teacherMails)
	}
	if got := len(outbox.byKind(model.MailKindAdminNewRequest)); got != 1 {
		t.Errorf("期望 1 封管理员通知，实际: %d", got)
	}
}

func TestNotificationService_AccountUpdateEmptyFieldsNoop(t *testing.T) {
	svc, outbox, _, _ := setupNotificationService()

	if err := svc.NotifyAccountUpdate(context.Background(), "x@example.edu", "Juan Cruz", nil); err != nil {
		t.Fatalf("空变更应为 no-op: %v", err)
	}
	if len(outbox.emails) != 0 {
		t.Errorf("空变更不应入队，实际: %d", len(outbox.emails))
	}
}
