package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/model"
)

// TeacherRepository 教师账户数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	GetByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error)
	GetByUsername(ctx context.Context, username string) (*model.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*model.Teacher, error)
	List(ctx context.Context) ([]model.Teacher, error)
	// ListByAssignment 按 (department, position) 精确匹配，用于通知扇出
	ListByAssignment(ctx context.Context, department, position string) ([]model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id string) error
}

// teacherRepo TeacherRepository 的 GORM 实现
type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByTeacherID(ctx context.Context, teacherID string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByUsername(ctx context.Context, username string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) ListByAssignment(ctx context.Context, department, position string) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Where("department = ? AND position = ?", department, position).
		Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Teacher{}).Error
}
