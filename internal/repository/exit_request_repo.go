package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/model"
)

// ExitRequestRepository 离校申请数据访问接口
type ExitRequestRepository interface {
	Create(ctx context.Context, request *model.ExitRequest) error
	GetByID(ctx context.Context, id string) (*model.ExitRequest, error)
	// ListAll 返回全部申请，submittedAt 降序；可见性过滤由 Service 层负责
	ListAll(ctx context.Context) ([]model.ExitRequest, error)
	ListByStudentID(ctx context.Context, studentID string) ([]model.ExitRequest, error)
	// ListTeacherQueue 教师待办队列：course 精确匹配且 status ∈ statuses；
	// highschoolOnly 时额外要求 year_level = 'Highschool'
	ListTeacherQueue(ctx context.Context, course string, highschoolOnly bool, statuses []string) ([]model.ExitRequest, error)
	// UpdateAdminDecision 仅写管理员审批列与 status，
	// 并发的教师决定不会被整行覆盖
	UpdateAdminDecision(ctx context.Context, request *model.ExitRequest) error
	// UpdateTeacherDecision 仅写教师审批列与 status
	UpdateTeacherDecision(ctx context.Context, request *model.ExitRequest) error
	// DeleteAll 无条件清空全部申请，返回删除条数
	DeleteAll(ctx context.Context) (int64, error)
}

// exitRequestRepo ExitRequestRepository 的 GORM 实现
type exitRequestRepo struct {
	db *gorm.DB
}

// NewExitRequestRepo 创建 ExitRequestRepository 实例
func NewExitRequestRepo(db *gorm.DB) ExitRequestRepository {
	return &exitRequestRepo{db: db}
}

func (r *exitRequestRepo) Create(ctx context.Context, request *model.ExitRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *exitRequestRepo) GetByID(ctx context.Context, id string) (*model.ExitRequest, error) {
	var request model.ExitRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *exitRequestRepo) ListAll(ctx context.Context) ([]model.ExitRequest, error) {
	var requests []model.ExitRequest
	err := r.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *exitRequestRepo) ListByStudentID(ctx context.Context, studentID string) ([]model.ExitRequest, error) {
	var requests []model.ExitRequest
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *exitRequestRepo) ListTeacherQueue(ctx context.Context, course string, highschoolOnly bool, statuses []string) ([]model.ExitRequest, error) {
	q := r.db.WithContext(ctx).
		Where("course = ?", course).
		Where("status IN ?", statuses)
	if highschoolOnly {
		q = q.Where("year_level = ?", model.YearLevelHighschool)
	}

	var requests []model.ExitRequest
	err := q.Order("submitted_at DESC").Find(&requests).Error
	return requests, err
}

func (r *exitRequestRepo) UpdateAdminDecision(ctx context.Context, request *model.ExitRequest) error {
	return r.db.WithContext(ctx).
		Model(&model.ExitRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"admin_approved":     request.AdminApproval.Approved,
			"admin_response":     request.AdminApproval.Response,
			"admin_responded_at": request.AdminApproval.RespondedAt,
			"status":             request.Status,
		}).Error
}

func (r *exitRequestRepo) UpdateTeacherDecision(ctx context.Context, request *model.ExitRequest) error {
	return r.db.WithContext(ctx).
		Model(&model.ExitRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"teacher_approved":     request.TeacherApproval.Approved,
			"teacher_id":           request.TeacherApproval.TeacherID,
			"teacher_response":     request.TeacherApproval.Response,
			"teacher_responded_at": request.TeacherApproval.RespondedAt,
			"status":               request.Status,
		}).Error
}

func (r *exitRequestRepo) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.ExitRequest{})
	return result.RowsAffected, result.Error
}
