package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/repository"
)

// ── 账户模块业务错误 ──

var (
	ErrAdminNotFound    = errors.New("管理员不存在")
	ErrDuplicateAccount = errors.New("账户编号或用户名已存在")
	ErrUnknownPosition  = errors.New("position 与 department 不匹配")
)

// AccountService 账户目录业务接口（学生 / 教师 / 管理员）
type AccountService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*model.Student, error)
	ListStudents(ctx context.Context) ([]model.Student, error)
	GetStudentProfile(ctx context.Context, studentID string) (*model.Student, error)
	// UpdateStudent 按主键更新；course/yearLevel 不可变
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error)
	UpdateStudentProfile(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*model.Student, error)
	SetStudentPicture(ctx context.Context, studentID, picture string) (*model.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*model.Teacher, error)
	ListTeachers(ctx context.Context) ([]model.Teacher, error)
	GetTeacherProfile(ctx context.Context, teacherID string) (*model.Teacher, error)
	// UpdateTeacher 按主键更新；department/position 不可变
	UpdateTeacher(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*model.Teacher, error)
	UpdateTeacherProfile(ctx context.Context, teacherID string, req *dto.UpdateTeacherRequest) (*model.Teacher, error)
	SetTeacherPicture(ctx context.Context, teacherID, picture string) (*model.Teacher, error)
	DeleteTeacher(ctx context.Context, id string) error

	CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*model.Admin, error)
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	GetAdminProfile(ctx context.Context, adminID string) (*model.Admin, error)
	UpdateAdmin(ctx context.Context, id string, req *dto.UpdateAdminRequest) (*model.Admin, error)
	UpdateAdminProfile(ctx context.Context, adminID string, req *dto.UpdateAdminRequest) (*model.Admin, error)
	SetAdminPicture(ctx context.Context, adminID, picture string) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
}

type accountService struct {
	repo     *repository.Repository
	notifier NotificationService
	logger   *zap.Logger
}

// NewAccountService 创建 AccountService 实例
func NewAccountService(repo *repository.Repository, notifier NotificationService, logger *zap.Logger) AccountService {
	return &accountService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── 学生 ──────────────────────

func (s *accountService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*model.Student, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.Student{
		StudentID:     strings.TrimSpace(req.StudentID),
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Course:        strings.TrimSpace(req.Course),
		YearLevel:     req.YearLevel,
		SpecificYear:  req.SpecificYear,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		Username:      req.Username,
		PasswordHash:  string(hash),
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateAccount
		}
		s.logger.Error("创建学生失败", zap.String("studentID", req.StudentID), zap.Error(err))
		return nil, err
	}

	if err := s.notifier.NotifyAccountWelcome(ctx, model.MailKindStudentWelcome, student.Email, student.FullName(), "student", student.Username); err != nil {
		s.logger.Warn("欢迎邮件入队失败", zap.String("studentID", student.StudentID), zap.Error(err))
	}

	s.logger.Info("学生账户已创建", zap.String("studentID", student.StudentID))
	return student, nil
}

func (s *accountService) ListStudents(ctx context.Context) ([]model.Student, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}
	return students, nil
}

func (s *accountService) GetStudentProfile(ctx context.Context, studentID string) (*model.Student, error) {
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
	return student, nil
}

func (s *accountService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.applyStudentUpdate(ctx, student, req)
}

func (s *accountService) UpdateStudentProfile(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.applyStudentUpdate(ctx, student, req)
}

func (s *accountService) applyStudentUpdate(ctx context.Context, student *model.Student, req *dto.UpdateStudentRequest) (*model.Student, error) {
	var updated []string
	apply := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			updated = append(updated, field)
		}
	}

	apply("First Name", &student.FirstName, req.FirstName)
	apply("Middle Name", &student.MiddleName, req.MiddleName)
	apply("Last Name", &student.LastName, req.LastName)
	apply("Specific Year", &student.SpecificYear, req.SpecificYear)
	apply("Contact Number", &student.ContactNumber, req.ContactNumber)
	apply("Email", &student.Email, req.Email)
	apply("Address", &student.Address, req.Address)
	apply("Username", &student.Username, req.Username)

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		student.PasswordHash = string(hash)
		updated = append(updated, "Password")
	}

	if len(updated) == 0 {
		return student, nil
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateAccount
		}
		s.logger.Error("更新学生失败", zap.String("studentID", student.StudentID), zap.Error(err))
		return nil, err
	}

	if err := s.notifier.NotifyAccountUpdate(ctx, student.Email, student.FullName(), updated); err != nil {
		s.logger.Warn("账户变更通知入队失败", zap.String("studentID", student.StudentID), zap.Error(err))
	}

	return student, nil
}

func (s *accountService) SetStudentPicture(ctx context.Context, studentID, picture string) (*model.Student, error) {
	student, err := s.GetStudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	student.ProfilePicture = &picture
	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生头像失败", zap.String("studentID", studentID), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func (s *accountService) DeleteStudent(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("学生账户已删除", zap.String("id", id))
	return nil
}

// ────────────────────── 教师 ──────────────────────

func (s *accountService) CreateTeacher(ctx context.Context, req *dto.CreateTeacherRequest) (*model.Teacher, error) {
	// position 必须与 department 匹配：College 用课程代码，
	// Highschool 用 strand 或年级
	department, ok := model.ParseDepartment(req.Department)
	if !ok {
		return nil, ErrUnknownDepartment
	}
	position := strings.TrimSpace(req.Position)
	switch department {
	case model.DepartmentCollege:
		if !model.IsCollegeCourse(position) {
			return nil, ErrUnknownPosition
		}
	case model.DepartmentHighschool:
		if !model.IsHighschoolStrand(position) && !model.IsHighschoolGrade(position) {
			return nil, ErrUnknownPosition
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		TeacherID:     strings.TrimSpace(req.TeacherID),
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Department:    string(department),
		Position:      position,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
		Username:      req.Username,
		PasswordHash:  string(hash),
	}

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateAccount
		}
		s.logger.Error("创建教师失败", zap.String("teacherID", req.TeacherID), zap.Error(err))
		return nil, err
	}

	if err := s.notifier.NotifyAccountWelcome(ctx, model.MailKindTeacherWelcome, teacher.Email, teacher.FullName(), "teacher", teacher.Username); err != nil {
		s.logger.Warn("欢迎邮件入队失败", zap.String("teacherID", teacher.TeacherID), zap.Error(err))
	}

	s.logger.Info("教师账户已创建",
		zap.String("teacherID", teacher.TeacherID),
		zap.String("department", teacher.Department),
		zap.String("position", teacher.Position))
	return teacher, nil
}

func (s *accountService) ListTeachers(ctx context.Context) ([]model.Teacher, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	return teachers, nil
}

func (s *accountService) GetTeacherProfile(ctx context.Context, teacherID string) (*model.Teacher, error) {
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
	return teacher, nil
}

func (s *accountService) UpdateTeacher(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*model.Teacher, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return s.applyTeacherUpdate(ctx, teacher, req)
}

func (s *accountService) UpdateTeacherProfile(ctx context.Context, teacherID string, req *dto.UpdateTeacherRequest) (*model.Teacher, error) {
	teacher, err := s.GetTeacherProfile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.applyTeacherUpdate(ctx, teacher, req)
}

func (s *accountService) applyTeacherUpdate(ctx context.Context, teacher *model.Teacher, req *dto.UpdateTeacherRequest) (*model.Teacher, error) {
	var updated []string
	apply := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			updated = append(updated, field)
		}
	}

	apply("First Name", &teacher.FirstName, req.FirstName)
	apply("Middle Name", &teacher.MiddleName, req.MiddleName)
	apply("Last Name", &teacher.LastName, req.LastName)
	apply("Contact Number", &teacher.ContactNumber, req.ContactNumber)
	apply("Email", &teacher.Email, req.Email)
	apply("Address", &teacher.Address, req.Address)
	apply("Username", &teacher.Username, req.Username)

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		teacher.PasswordHash = string(hash)
		updated = append(updated, "Password")
	}

	if len(updated) == 0 {
		return teacher, nil
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateAccount
		}
		s.logger.Error("更新教师失败", zap.String("teacherID", teacher.TeacherID), zap.Error(err))
		return nil, err
	}

	if err := s.notifier.NotifyAccountUpdate(ctx, teacher.Email, teacher.FullName(), updated); err != nil {
		s.logger.Warn("账户变更通知入队失败", zap.String("teacherID", teacher.TeacherID), zap.Error(err))
	}

	return teacher, nil
}

func (s *accountService) SetTeacherPicture(ctx context.Context, teacherID, picture string) (*model.Teacher, error) {
	teacher, err := s.GetTeacherProfile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	teacher.ProfilePicture = &picture
	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师头像失败", zap.String("teacherID", teacherID), zap.Error(err))
		return nil, err
	}
	return teacher, nil
}

func (s *accountService) DeleteTeacher(ctx context.Context, id string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("教师账户已删除", zap.String("id", id))
	return nil
}

// ────────────────────── 管理员 ──────────────────────

func (s *accountService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*model.Admin, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		AdminID:        strings.TrimSpace(req.AdminID),
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Email:          req.Email,
		PreferredEmail: req.PreferredEmail,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		Username:       req.Username,
		PasswordHash:   string(hash),
		Role:           "admin",
	}

	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateAccount
		}
		s.logger.Error("创建管理员失败", zap.String("adminID", req.AdminID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("管理员账户已创建", zap.String("adminID", admin.AdminID))
	return admin, nil
}

func (s *accountService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.repo.Admin.List(ctx)
	if err != nil {
		s.logger.Error("查询管理员列表失败", zap.Error(err))
		return nil, err
	}
	return admins, nil
}

func (s *accountService) GetAdminProfile(ctx context.Context, adminID string) (*model.Admin, error) {
	trimmed := strings.TrimSpace(adminID)
	if trimmed == "" {
		return nil, ErrInvalidAccountID
	}
	admin, err := s.repo.Admin.GetByAdminID(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("查询管理员失败", zap.String("adminID", trimmed), zap.Error(err))
		return nil, err
	}
	return admin, nil
}

func (s *accountService) UpdateAdmin(ctx context.Context, id string, req *dto.UpdateAdminRequest) (*model.Admin, error) {
	admin, err := s.repo.Admin.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return s.applyAdminUpdate(ctx, admin, req)
}

func (s *accountService) UpdateAdminProfile(ctx context.Context, adminID string, req *dto.UpdateAdminRequest) (*model.Admin, error) {
	admin, err := s.GetAdminProfile(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return s.applyAdminUpdate(ctx, admin, req)
}

func (s *accountService) applyAdminUpdate(ctx context.Context, admin *model.Admin, req *dto.UpdateAdminRequest) (*model.Admin, error) {
	var updated []string
	apply := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			updated = append(updated, field)
		}
	}

	apply("First Name", &admin.FirstName, req.FirstName)
	apply("Middle Name", &admin.MiddleName, req.MiddleName)
	apply("Last Name", &admin.LastName, req.LastName)
	apply("Email", &admin.Email, req.Email)
	apply("Preferred Email", &admin.PreferredEmail, req.PreferredEmail)
	apply("Contact Number", &admin.ContactNumber, req.ContactNumber)
	apply("Address", &admin.Address, req.Address)
	apply("Username", &admin.Username, req.Username)

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = string(hash)
		updated = append(updated, "Password")
	}

	if len(updated) == 0 {
		return admin, nil
	}

	if err := s.repo.Admin.Update(ctx, admin); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateAccount
		}
		s.logger.Error("更新管理员失败", zap.String("adminID", admin.AdminID), zap.Error(err))
		return nil, err
	}

	if err := s.notifier.NotifyAccountUpdate(ctx, admin.ResetEmail(), admin.FullName(), updated); err != nil {
		s.logger.Warn("账户变更通知入队失败", zap.String("adminID", admin.AdminID), zap.Error(err))
	}

	return admin, nil
}

func (s *accountService) SetAdminPicture(ctx context.Context, adminID, picture string) (*model.Admin, error) {
	admin, err := s.GetAdminProfile(ctx, adminID)
	if err != nil {
		return nil, err
	}
	admin.ProfilePicture = &picture
	if err := s.repo.Admin.Update(ctx, admin); err != nil {
		s.logger.Error("更新管理员头像失败", zap.String("adminID", adminID), zap.Error(err))
		return nil, err
	}
	return admin, nil
}

func (s *accountService) DeleteAdmin(ctx context.Context, id string) error {
	if _, err := s.repo.Admin.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}
	if err := s.repo.Admin.Delete(ctx, id); err != nil {
		s.logger.Error("删除管理员失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("管理员账户已删除", zap.String("id", id))
	return nil
}

// isDuplicateKey 唯一约束冲突判定
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key")
}
