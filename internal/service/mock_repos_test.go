package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/pkg/mailer"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student // key: 业务编号 studentID
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == "" {
		student.ID = "stu-" + student.StudentID
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByStudentID(_ context.Context, studentID string) (*model.Student, error) {
	if s, ok := m.students[studentID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUsername(_ context.Context, username string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Username == username {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	for key, s := range m.students {
		if s.ID == id {
			delete(m.students, key)
			return nil
		}
	}
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher // key: 业务编号 teacherID
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = "tch-" + teacher.TeacherID
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByTeacherID(_ context.Context, teacherID string) (*model.Teacher, error) {
	if t, ok := m.teachers[teacherID]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByUsername(_ context.Context, username string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Username == username {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeacherRepo) ListByAssignment(_ context.Context, department, position string) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if t.Department == department && t.Position == position {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	for key, t := range m.teachers {
		if t.ID == id {
			delete(m.teachers, key)
			return nil
		}
	}
	return nil
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[string]*model.Admin // key: 业务编号 adminID
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	if admin.ID == "" {
		admin.ID = "adm-" + admin.AdminID
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByAdminID(_ context.Context, adminID string) (*model.Admin, error) {
	if a, ok := m.admins[adminID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) List(_ context.Context) ([]model.Admin, error) {
	var result []model.Admin
	for _, a := range m.admins {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAdminRepo) Update(_ context.Context, admin *model.Admin) error {
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) Delete(_ context.Context, id string) error {
	for key, a := range m.admins {
		if a.ID == id {
			delete(m.admins, key)
			return nil
		}
	}
	return nil
}

// ── Mock ExitRequestRepository ──

type mockExitRequestRepo struct {
	requests map[string]*model.ExitRequest
	seq      int
	// afterGet 在 GetByID 返回副本后调用，用于模拟读写间隙的并发写入
	afterGet func()
}

func newMockExitRequestRepo() *mockExitRequestRepo {
	return &mockExitRequestRepo{requests: make(map[string]*model.ExitRequest)}
}

func (m *mockExitRequestRepo) Create(_ context.Context, request *model.ExitRequest) error {
	if request.ID == "" {
		m.seq++
		request.ID = fmt.Sprintf("req-%03d", m.seq)
	}
	m.requests[request.ID] = request
	return nil
}

func (m *mockExitRequestRepo) GetByID(_ context.Context, id string) (*model.ExitRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	if m.afterGet != nil {
		m.afterGet()
	}
	return &copied, nil
}

func (m *mockExitRequestRepo) ListAll(_ context.Context) ([]model.ExitRequest, error) {
	return m.sorted(func(*model.ExitRequest) bool { return true }), nil
}

func (m *mockExitRequestRepo) ListByStudentID(_ context.Context, studentID string) ([]model.ExitRequest, error) {
	return m.sorted(func(r *model.ExitRequest) bool { return r.StudentID == studentID }), nil
}

func (m *mockExitRequestRepo) ListTeacherQueue(_ context.Context, course string, highschoolOnly bool, statuses []string) ([]model.ExitRequest, error) {
	statusSet := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		statusSet[s] = true
	}
	return m.sorted(func(r *model.ExitRequest) bool {
		if r.Course != course || !statusSet[r.Status] {
			return false
		}
		if highschoolOnly && r.YearLevel != model.YearLevelHighschool {
			return false
		}
		return true
	}), nil
}

func (m *mockExitRequestRepo) UpdateAdminDecision(_ context.Context, request *model.ExitRequest) error {
	if stored, ok := m.requests[request.ID]; ok {
		stored.AdminApproval = request.AdminApproval
		stored.Status = request.Status
	}
	return nil
}

func (m *mockExitRequestRepo) UpdateTeacherDecision(_ context.Context, request *model.ExitRequest) error {
	if stored, ok := m.requests[request.ID]; ok {
		stored.TeacherApproval = request.TeacherApproval
		stored.Status = request.Status
	}
	return nil
}

func (m *mockExitRequestRepo) DeleteAll(_ context.Context) (int64, error) {
	count := int64(len(m.requests))
	m.requests = make(map[string]*model.ExitRequest)
	return count, nil
}

func (m *mockExitRequestRepo) sorted(keep func(*model.ExitRequest) bool) []model.ExitRequest {
	var result []model.ExitRequest
	for _, r := range m.requests {
		if keep(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result
}

// ── Mock OutboxRepository ──

type mockOutboxRepo struct {
	emails []*model.OutboxEmail
	seq    int
	// 置为非 nil 可模拟入队失败
	enqueueErr error
}

func newMockOutboxRepo() *mockOutboxRepo {
	return &mockOutboxRepo{}
}

func (m *mockOutboxRepo) Enqueue(_ context.Context, emails []*model.OutboxEmail) error {
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	for _, e := range emails {
		m.seq++
		if e.ID == "" {
			e.ID = fmt.Sprintf("mail-%03d", m.seq)
		}
		m.emails = append(m.emails, e)
	}
	return nil
}

func (m *mockOutboxRepo) ListDue(_ context.Context, now time.Time, limit int) ([]model.OutboxEmail, error) {
	var result []model.OutboxEmail
	for _, e := range m.emails {
		if e.Status == model.OutboxPending && !e.NextAttemptAt.After(now) {
			result = append(result, *e)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

func (m *mockOutboxRepo) MarkSent(_ context.Context, id string, sentAt time.Time) error {
	for _, e := range m.emails {
		if e.ID == id {
			e.Status = model.OutboxSent
			e.SentAt = &sentAt
		}
	}
	return nil
}

func (m *mockOutboxRepo) MarkRetry(_ context.Context, id string, attempts int, lastError string, nextAttemptAt time.Time) error {
	for _, e := range m.emails {
		if e.ID == id {
			e.Attempts = attempts
			e.LastError = lastError
			e.NextAttemptAt = nextAttemptAt
		}
	}
	return nil
}

func (m *mockOutboxRepo) MarkFailed(_ context.Context, id string, attempts int, lastError string) error {
	for _, e := range m.emails {
		if e.ID == id {
			e.Status = model.OutboxFailed
			e.Attempts = attempts
			e.LastError = lastError
		}
	}
	return nil
}

// byKind 按邮件类别过滤，便于断言扇出结果
func (m *mockOutboxRepo) byKind(kind string) []*model.OutboxEmail {
	var result []*model.OutboxEmail
	for _, e := range m.emails {
		if e.Kind == kind {
			result = append(result, e)
		}
	}
	return result
}

// ── Mock DashboardRepository ──

type mockDashboardRepo struct {
	entries []*model.DashboardEntry
	seq     int
}

func newMockDashboardRepo() *mockDashboardRepo {
	return &mockDashboardRepo{}
}

func (m *mockDashboardRepo) Create(_ context.Context, entry *model.DashboardEntry) error {
	m.seq++
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("dash-%03d", m.seq)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockDashboardRepo) List(_ context.Context) ([]model.DashboardEntry, error) {
	result := make([]model.DashboardEntry, 0, len(m.entries))
	for _, e := range m.entries {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProcessedAt.After(result[j].ProcessedAt)
	})
	return result, nil
}

func (m *mockDashboardRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var kept []*model.DashboardEntry
	var deleted int64
	for _, e := range m.entries {
		if idSet[e.ID] {
			deleted++
		} else {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return deleted, nil
}

func (m *mockDashboardRepo) DeleteAll(_ context.Context) (int64, error) {
	count := int64(len(m.entries))
	m.entries = nil
	return count, nil
}

// ── Mock FeedbackRepository ──

type mockFeedbackRepo struct {
	feedbacks map[string]*model.Feedback
	seq       int
}

func newMockFeedbackRepo() *mockFeedbackRepo {
	return &mockFeedbackRepo{feedbacks: make(map[string]*model.Feedback)}
}

func (m *mockFeedbackRepo) Create(_ context.Context, feedback *model.Feedback) error {
	m.seq++
	if feedback.ID == "" {
		feedback.ID = fmt.Sprintf("fb-%03d", m.seq)
	}
	m.feedbacks[feedback.ID] = feedback
	return nil
}

func (m *mockFeedbackRepo) GetByID(_ context.Context, id string) (*model.Feedback, error) {
	if f, ok := m.feedbacks[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeedbackRepo) List(_ context.Context) ([]model.Feedback, error) {
	var result []model.Feedback
	for _, f := range m.feedbacks {
		result = append(result, *f)
	}
	return result, nil
}

func (m *mockFeedbackRepo) ListByStudentID(_ context.Context, studentID string) ([]model.Feedback, error) {
	var result []model.Feedback
	for _, f := range m.feedbacks {
		if f.StudentID == studentID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFeedbackRepo) ListByTeacherID(_ context.Context, teacherID string) ([]model.Feedback, error) {
	var result []model.Feedback
	for _, f := range m.feedbacks {
		if f.TeacherID == teacherID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFeedbackRepo) Update(_ context.Context, feedback *model.Feedback) error {
	m.feedbacks[feedback.ID] = feedback
	return nil
}

func (m *mockFeedbackRepo) Delete(_ context.Context, id string) error {
	delete(m.feedbacks, id)
	return nil
}

// ── Mock Mailer ──

type mockMailer struct {
	sent []*mailer.Message
	// 返回非 nil 时发送失败；failCount > 0 时仅前 N 次失败
	err       error
	failCount int
	calls     int
}

func (m *mockMailer) Send(_ context.Context, msg *mailer.Message) error {
	m.calls++
	if m.err != nil && (m.failCount == 0 || m.calls <= m.failCount) {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}
