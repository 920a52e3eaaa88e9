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

// ── 离校申请模块业务错误 ──

var (
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrRequestNotFound    = errors.New("离校申请不存在")
	ErrRequestFinalized   = errors.New("申请已进入终态，不可再审批")
	ErrInvalidAccountID   = errors.New("账户编号不能为空")
	ErrUnknownDepartment  = errors.New("教师部门取值非法")
	ErrIntegrityViolation = errors.New("查询结果包含越权数据")
)

// ExitRequestService 离校申请业务接口
type ExitRequestService interface {
	Submit(ctx context.Context, req *dto.SubmitExitRequestRequest) (*dto.EnrichedExitRequest, error)
	// ListForAdmin 管理员视图：全量申请
	ListForAdmin(ctx context.Context) ([]dto.EnrichedExitRequest, error)
	// ListForStudent 学生视图：仅本人的申请
	ListForStudent(ctx context.Context, studentID string) ([]dto.EnrichedExitRequest, error)
	// ListForTeacher 教师队列：本部门待审批申请
	ListForTeacher(ctx context.Context, teacherID string) ([]dto.EnrichedExitRequest, error)
	RecordDecision(ctx context.Context, id string, req *dto.DecisionRequest) (*dto.EnrichedExitRequest, error)
	// ClearHistory 清空全部申请，返回删除条数
	ClearHistory(ctx context.Context) (int64, error)
}

type exitRequestService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewExitRequestService 创建 ExitRequestService 实例
func NewExitRequestService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) ExitRequestService {
	return &exitRequestService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *exitRequestService) Submit(ctx context.Context, req *dto.SubmitExitRequestRequest) (*dto.EnrichedExitRequest, error) {
	student, err := s.repo.Student.GetByStudentID(ctx, strings.TrimSpace(req.StudentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("studentID", req.StudentID), zap.Error(err))
		return nil, err
	}

	// 姓名/课程等账户字段在提交时刻快照入库，之后不随账户变更同步
	request := &model.ExitRequest{
		StudentID:        student.StudentID,
		FirstName:        student.FirstName,
		LastName:         student.LastName,
		Course:           student.Course,
		YearLevel:        student.YearLevel,
		ReasonForExit:    req.ReasonForExit,
		Date:             req.Date,
		Time:             req.Time,
		EmergencyContact: req.EmergencyContact,
		GuardName:        req.GuardName,
		Status:           model.StatusPending,
		SubmittedAt:      time.Now(),
	}

	if err := s.repo.ExitRequest.Create(ctx, request); err != nil {
		s.logger.Error("创建离校申请失败", zap.String("studentID", student.StudentID), zap.Error(err))
		return nil, err
	}

	// 通知入队失败只记日志，申请本身已成功提交
	if err := s.notifier.NotifySubmission(ctx, request); err != nil {
		s.logger.Warn("新申请通知入队失败", zap.String("requestId", request.ID), zap.Error(err))
	}

	s.logger.Info("离校申请已提交",
		zap.String("requestId", request.ID),
		zap.String("studentID", student.StudentID),
		zap.String("course", request.Course))

	return &dto.EnrichedExitRequest{ExitRequest: *request, ProfilePicture: student.ProfilePicture}, nil
}

// ────────────────────── ListForAdmin ──────────────────────

func (s *exitRequestService) ListForAdmin(ctx context.Context) ([]dto.EnrichedExitRequest, error) {
	requests, err := s.repo.ExitRequest.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, err
	}
	return s.enrich(ctx, requests), nil
}

// ────────────────────── ListForStudent ──────────────────────

func (s *exitRequestService) ListForStudent(ctx context.Context, studentID string) ([]dto.EnrichedExitRequest, error) {
	trimmed := strings.TrimSpace(studentID)
	if trimmed == "" {
		return nil, ErrInvalidAccountID
	}

	student, err := s.repo.Student.GetByStudentID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("studentID", trimmed), zap.Error(err))
		return nil, err
	}

	requests, err := s.repo.ExitRequest.ListByStudentID(ctx, student.StudentID)
	if err != nil {
		s.logger.Error("查询学生申请失败", zap.String("studentID", trimmed), zap.Error(err))
		return nil, err
	}

	// 历史数据中 course 存在大小写/空白漂移，归一化后比较
	studentCourse := model.NormalizeCourse(student.Course)
	filtered := make([]model.ExitRequest, 0, len(requests))
	for i := range requests {
		if model.NormalizeCourse(requests[i].Course) == studentCourse {
			filtered = append(filtered, requests[i])
		}
	}

	// 返回前复核：任何不属于该学生的记录都意味着查询逻辑被破坏，
	// 此时宁可整体失败也不返回部分数据
	for i := range filtered {
		if filtered[i].StudentID != student.StudentID {
			s.logger.Error("学生视图包含他人申请",
				zap.String("studentID", student.StudentID),
				zap.String("requestId", filtered[i].ID))
			return nil, ErrIntegrityViolation
		}
	}

	return s.enrich(ctx, filtered), nil
}

// ────────────────────── ListForTeacher ──────────────────────

func (s *exitRequestService) ListForTeacher(ctx context.Context, teacherID string) ([]dto.EnrichedExitRequest, error) {
	trimmed := strings.TrimSpace(teacherID)
	if trimmed == "" {
		return nil, ErrInvalidAccountID
	}

	teacher, err := s.repo.Teacher.GetByTeacherID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("teacherID", trimmed), zap.Error(err))
		return nil, err
	}

	department, ok := model.ParseDepartment(teacher.Department)
	if !ok {
		s.logger.Warn("教师部门取值未知",
			zap.String("teacherID", trimmed),
			zap.String("department", teacher.Department))
		return nil, ErrUnknownDepartment
	}

	// 教师只看到本课程/strand 下仍需教师审批的申请；
	// 高中教师额外要求申请人 yearLevel 为 Highschool
	highschoolOnly := department == model.DepartmentHighschool
	statuses := []string{model.StatusPending, model.StatusAdminApproved}
	requests, err := s.repo.ExitRequest.ListTeacherQueue(ctx, teacher.Position, highschoolOnly, statuses)
	if err != nil {
		s.logger.Error("查询教师队列失败", zap.String("teacherID", trimmed), zap.Error(err))
		return nil, err
	}

	// 返回前复核归属（course 及高中教师的 yearLevel 条件），
	// 出现越权数据时整体失败
	for i := range requests {
		if requests[i].Course != teacher.Position ||
			(highschoolOnly && requests[i].YearLevel != model.YearLevelHighschool) {
			s.logger.Error("教师队列包含越权申请",
				zap.String("teacherID", trimmed),
				zap.String("position", teacher.Position),
				zap.String("requestId", requests[i].ID),
				zap.String("requestCourse", requests[i].Course),
				zap.String("requestYearLevel", requests[i].YearLevel))
			return nil, ErrIntegrityViolation
		}
	}

	return s.enrich(ctx, requests), nil
}

// ────────────────────── RecordDecision ──────────────────────

func (s *exitRequestService) RecordDecision(ctx context.Context, id string, req *dto.DecisionRequest) (*dto.EnrichedExitRequest, error) {
	request, err := s.repo.ExitRequest.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 终态申请不再接受任何决定
	if model.IsTerminalStatus(request.Status) {
		return nil, ErrRequestFinalized
	}

	var teacher *model.Teacher
	now := time.Now()

	if req.IsTeacherDecision() {
		teacher, err = s.repo.Teacher.GetByTeacherID(ctx, strings.TrimSpace(req.TeacherID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			s.logger.Error("查询教师失败", zap.String("teacherID", req.TeacherID), zap.Error(err))
			return nil, err
		}
		request.TeacherApproval = model.TeacherApproval{
			Approved:    req.Approved(),
			TeacherID:   teacher.TeacherID,
			Response:    req.TeacherResponse,
			RespondedAt: &now,
		}
	} else {
		request.AdminApproval = model.AdminApproval{
			Approved:    req.Approved(),
			Response:    req.AdminResponse,
			RespondedAt: &now,
		}
	}

	request.Status = nextStatus(request, req.Approved())

	// 只落当前决定方的审批列与 status，并发的另一方决定按子对象各自生效
	if req.IsTeacherDecision() {
		err = s.repo.ExitRequest.UpdateTeacherDecision(ctx, request)
	} else {
		err = s.repo.ExitRequest.UpdateAdminDecision(ctx, request)
	}
	if err != nil {
		s.logger.Error("更新申请失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("审批决定已记录",
		zap.String("requestId", request.ID),
		zap.String("status", request.Status),
		zap.Bool("teacherDecision", req.IsTeacherDecision()))

	// 后续副作用均不影响决定本身的成败
	if teacher != nil {
		if err := s.notifier.NotifyTeacherDecision(ctx, request, teacher, req.Approved(), req.TeacherResponse); err != nil {
			s.logger.Warn("教师确认通知入队失败", zap.String("requestId", request.ID), zap.Error(err))
		}
	}

	if request.Status == model.StatusFullyApproved {
		// 终态只会到达一次，门卫告警随之恰好发送一次
		if err := s.notifier.NotifySecurityAlert(ctx, request); err != nil {
			s.logger.Warn("门卫告警通知入队失败", zap.String("requestId", request.ID), zap.Error(err))
		}
	}

	if model.IsTerminalStatus(request.Status) {
		s.appendDashboardEntry(ctx, request, now)
	}

	return s.enrichOne(ctx, request), nil
}

// nextStatus 由双方审批子状态推导申请状态
//
//	任一方拒绝           → declined（终态）
//	双方均已同意         → fully_approved（终态）
//	仅管理员同意         → admin_approved
//	仅教师同意           → teacher_approved
//	其余                 → pending
func nextStatus(request *model.ExitRequest, approved bool) string {
	if !approved {
		return model.StatusDeclined
	}
	switch {
	case request.AdminApproval.Approved && request.TeacherApproval.Approved:
		return model.StatusFullyApproved
	case request.AdminApproval.Approved:
		return model.StatusAdminApproved
	case request.TeacherApproval.Approved:
		return model.StatusTeacherApproved
	}
	return model.StatusPending
}

// ────────────────────── ClearHistory ──────────────────────

func (s *exitRequestService) ClearHistory(ctx context.Context) (int64, error) {
	count, err := s.repo.ExitRequest.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("清空申请历史失败", zap.Error(err))
		return 0, err
	}
	s.logger.Info("申请历史已清空", zap.Int64("deletedCount", count))
	return count, nil
}

// ── 内部辅助方法 ──

// enrich 附带申请人实时头像；学生账户已删除时为 null
func (s *exitRequestService) enrich(ctx context.Context, requests []model.ExitRequest) []dto.EnrichedExitRequest {
	result := make([]dto.EnrichedExitRequest, 0, len(requests))
	for i := range requests {
		result = append(result, *s.enrichOne(ctx, &requests[i]))
	}
	return result
}

func (s *exitRequestService) enrichOne(ctx context.Context, request *model.ExitRequest) *dto.EnrichedExitRequest {
	enriched := &dto.EnrichedExitRequest{ExitRequest: *request}
	student, err := s.repo.Student.GetByStudentID(ctx, request.StudentID)
	if err == nil {
		enriched.ProfilePicture = student.ProfilePicture
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warn("查询申请人头像失败", zap.String("studentID", request.StudentID), zap.Error(err))
	}
	return enriched
}

// appendDashboardEntry 终态申请追加处理记录，失败只记日志
func (s *exitRequestService) appendDashboardEntry(ctx context.Context, request *model.ExitRequest, processedAt time.Time) {
	entry := &model.DashboardEntry{
		RequestID:        request.ID,
		StudentName:      request.StudentName(),
		StudentID:        request.StudentID,
		Reason:           request.ReasonForExit,
		Date:             request.Date,
		Time:             request.Time,
		Status:           request.Status,
		AdminResponse:    request.AdminApproval.Response,
		GuardName:        request.GuardName,
		EmergencyContact: request.EmergencyContact,
		ProcessedAt:      processedAt,
	}
	if err := s.repo.Dashboard.Create(ctx, entry); err != nil {
		s.logger.Warn("写入处理记录失败", zap.String("requestId", request.ID), zap.Error(err))
	}
}
