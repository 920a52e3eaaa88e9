package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/model"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/jwt"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ExitRequestService ──

type mockExitRequestService struct {
	submitResult   *dto.EnrichedExitRequest
	submitErr      error
	adminResult    []dto.EnrichedExitRequest
	adminErr       error
	studentResult  []dto.EnrichedExitRequest
	studentErr     error
	teacherResult  []dto.EnrichedExitRequest
	teacherErr     error
	decisionResult *dto.EnrichedExitRequest
	decisionErr    error
	clearCount     int64
	clearErr       error
}

func (m *mockExitRequestService) Submit(_ context.Context, _ *dto.SubmitExitRequestRequest) (*dto.EnrichedExitRequest, error) {
	return m.submitResult, m.submitErr
}
func (m *mockExitRequestService) ListForAdmin(_ context.Context) ([]dto.EnrichedExitRequest, error) {
	return m.adminResult, m.adminErr
}
func (m *mockExitRequestService) ListForStudent(_ context.Context, _ string) ([]dto.EnrichedExitRequest, error) {
	return m.studentResult, m.studentErr
}
func (m *mockExitRequestService) ListForTeacher(_ context.Context, _ string) ([]dto.EnrichedExitRequest, error) {
	return m.teacherResult, m.teacherErr
}
func (m *mockExitRequestService) RecordDecision(_ context.Context, _ string, _ *dto.DecisionRequest) (*dto.EnrichedExitRequest, error) {
	return m.decisionResult, m.decisionErr
}
func (m *mockExitRequestService) ClearHistory(_ context.Context) (int64, error) {
	return m.clearCount, m.clearErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRequests(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.LoginResponse
	loginErr      error
	logoutErr     error
	forgotErr     error
	resetErr      error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ string, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) ForgotPassword(_ context.Context, _, _ string) error {
	return m.forgotErr
}
func (m *mockAuthService) ResetPassword(_ context.Context, _ string, _ *dto.ResetPasswordRequest) error {
	return m.resetErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock DashboardService ──

type mockDashboardService struct {
	listResult  []dto.EnrichedDashboardEntry
	listErr     error
	deleteCount int64
	deleteErr   error
}

func (m *mockDashboardService) List(_ context.Context) ([]dto.EnrichedDashboardEntry, error) {
	return m.listResult, m.listErr
}
func (m *mockDashboardService) DeleteByIDs(_ context.Context, _ []string) (int64, error) {
	return m.deleteCount, m.deleteErr
}
func (m *mockDashboardService) DeleteAll(_ context.Context) (int64, error) {
	return m.deleteCount, m.deleteErr
}

// ── Mock FeedbackService ──

type mockFeedbackService struct {
	submitResult  *model.Feedback
	submitErr     error
	listResult    []model.Feedback
	listErr       error
	respondResult *model.Feedback
	respondErr    error
	deleteErr     error
}

func (m *mockFeedbackService) Submit(_ context.Context, _ *dto.SubmitFeedbackRequest) (*model.Feedback, error) {
	return m.submitResult, m.submitErr
}
func (m *mockFeedbackService) List(_ context.Context) ([]model.Feedback, error) {
	return m.listResult, m.listErr
}
func (m *mockFeedbackService) ListByStudent(_ context.Context, _ string) ([]model.Feedback, error) {
	return m.listResult, m.listErr
}
func (m *mockFeedbackService) ListByTeacher(_ context.Context, _ string) ([]model.Feedback, error) {
	return m.listResult, m.listErr
}
func (m *mockFeedbackService) RespondAsAdmin(_ context.Context, _ string, _ *dto.RespondFeedbackRequest) (*model.Feedback, error) {
	return m.respondResult, m.respondErr
}
func (m *mockFeedbackService) RespondAsTeacher(_ context.Context, _ string, _ *dto.RespondFeedbackRequest) (*model.Feedback, error) {
	return m.respondResult, m.respondErr
}
func (m *mockFeedbackService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func doRequest(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func enrichedRequest(status string) *dto.EnrichedExitRequest {
	return &dto.EnrichedExitRequest{
		ExitRequest: model.ExitRequest{
			StudentID: "2024-0001",
			Status:    status,
		},
	}
}

// ═══════════════════════════════════════════════════════════
// ExitRequestHandler Tests
// ═══════════════════════════════════════════════════════════

func newExitRequestRouter(svc service.ExitRequestService, exportSvc service.ExportService) *gin.Engine {
	h := NewExitRequestHandler(svc, exportSvc)
	r := gin.New()
	r.POST("/exit-requests", h.Submit)
	r.GET("/exit-requests", h.ListAll)
	r.GET("/exit-requests/export", h.Export)
	r.GET("/exit-requests/student/:studentID", h.ListForStudent)
	r.GET("/exit-requests/teacher/:teacherID", h.ListForTeacher)
	r.PUT("/exit-requests/:id", h.Decide)
	r.DELETE("/exit-requests/clear-history", h.ClearHistory)
	return r
}

func TestExitRequestHandler_Submit_Created(t *testing.T) {
	mock := &mockExitRequestService{submitResult: enrichedRequest(model.StatusPending)}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "POST", "/exit-requests", jsonBody(dto.SubmitExitRequestRequest{
		StudentID:     "2024-0001",
		ReasonForExit: "Medical appointment",
		Date:          "2026-09-01",
		Time:          "10:30 AM",
	}))

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestExitRequestHandler_Submit_MissingFields(t *testing.T) {
	mock := &mockExitRequestService{}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "POST", "/exit-requests", jsonBody(map[string]string{
		"studentID": "2024-0001",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestExitRequestHandler_Submit_UnknownStudent(t *testing.T) {
	mock := &mockExitRequestService{submitErr: service.ErrStudentNotFound}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "POST", "/exit-requests", jsonBody(dto.SubmitExitRequestRequest{
		StudentID:     "ghost",
		ReasonForExit: "errand",
		Date:          "2026-09-01",
		Time:          "10:30 AM",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected code 13001, got %d", resp.Code)
	}
}

func TestExitRequestHandler_ListForStudent_UnknownStudent(t *testing.T) {
	mock := &mockExitRequestService{studentErr: service.ErrStudentNotFound}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "GET", "/exit-requests/student/ghost", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13001 {
		t.Errorf("expected code 13001, got %d", resp.Code)
	}
}

func TestExitRequestHandler_ListForStudent_BlankID(t *testing.T) {
	mock := &mockExitRequestService{studentErr: service.ErrInvalidAccountID}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "GET", "/exit-requests/student/%20", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13005 {
		t.Errorf("expected code 13005, got %d", resp.Code)
	}
}

func TestExitRequestHandler_ListForTeacher_UnknownDepartment(t *testing.T) {
	mock := &mockExitRequestService{teacherErr: service.ErrUnknownDepartment}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "GET", "/exit-requests/teacher/T-100", nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13006 {
		t.Errorf("expected code 13006, got %d", resp.Code)
	}
}

func TestExitRequestHandler_ListForTeacher_IntegrityViolation(t *testing.T) {
	mock := &mockExitRequestService{teacherErr: service.ErrIntegrityViolation}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "GET", "/exit-requests/teacher/T-100", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13007 {
		t.Errorf("expected code 13007, got %d", resp.Code)
	}
}

func TestExitRequestHandler_Decide_OK(t *testing.T) {
	mock := &mockExitRequestService{decisionResult: enrichedRequest(model.StatusAdminApproved)}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "PUT", "/exit-requests/req-1", jsonBody(dto.DecisionRequest{
		Status:        "approved",
		AdminResponse: "Approved",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestExitRequestHandler_Decide_InvalidStatus(t *testing.T) {
	mock := &mockExitRequestService{}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "PUT", "/exit-requests/req-1", jsonBody(map[string]string{
		"status": "maybe",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExitRequestHandler_Decide_NotFound(t *testing.T) {
	mock := &mockExitRequestService{decisionErr: service.ErrRequestNotFound}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "PUT", "/exit-requests/ghost", jsonBody(dto.DecisionRequest{
		Status: "approved",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13003 {
		t.Errorf("expected code 13003, got %d", resp.Code)
	}
}

func TestExitRequestHandler_Decide_Finalized(t *testing.T) {
	mock := &mockExitRequestService{decisionErr: service.ErrRequestFinalized}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "PUT", "/exit-requests/req-1", jsonBody(dto.DecisionRequest{
		Status: "declined",
	}))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13004 {
		t.Errorf("expected code 13004, got %d", resp.Code)
	}
}

func TestExitRequestHandler_Decide_UnknownTeacher(t *testing.T) {
	mock := &mockExitRequestService{decisionErr: service.ErrTeacherNotFound}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "PUT", "/exit-requests/req-1", jsonBody(dto.DecisionRequest{
		Status:    "approved",
		TeacherID: "ghost",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13002 {
		t.Errorf("expected code 13002, got %d", resp.Code)
	}
}

func TestExitRequestHandler_ClearHistory_ReturnsCount(t *testing.T) {
	mock := &mockExitRequestService{clearCount: 7}
	r := newExitRequestRouter(mock, &mockExportService{})

	w := doRequest(r, "DELETE", "/exit-requests/clear-history", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code int                      `json:"code"`
		Data dto.ClearHistoryResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.DeletedCount != 7 {
		t.Errorf("expected deletedCount 7, got %d", resp.Data.DeletedCount)
	}
}

func TestExitRequestHandler_Export_SetsAttachment(t *testing.T) {
	export := &mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "exit-requests-20260828.xlsx",
	}
	r := newExitRequestRouter(&mockExitRequestService{}, export)

	w := doRequest(r, "GET", "/exit-requests/export", nil)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd != `attachment; filename="exit-requests-20260828.xlsx"` {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
}

func TestExitRequestHandler_Export_Empty(t *testing.T) {
	export := &mockExportService{err: service.ErrExportNoRequests}
	r := newExitRequestRouter(&mockExitRequestService{}, export)

	w := doRequest(r, "GET", "/exit-requests/export", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 17001 {
		t.Errorf("expected code 17001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/students/login", h.Login(service.RoleStudent))
	w := doRequest(r, "POST", "/students/login", jsonBody(dto.LoginRequest{
		Username: "2024-0001",
		Password: "secret123",
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/teachers/login", h.Login(service.RoleTeacher))
	w := doRequest(r, "POST", "/teachers/login", jsonBody(dto.LoginRequest{
		Username: "T-100",
		Password: "wrong",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected code 12001, got %d", resp.Code)
	}
}

func TestAuthHandler_ResetPassword_InvalidCode(t *testing.T) {
	mock := &mockAuthService{resetErr: service.ErrInvalidResetCode}
	h := NewAuthHandler(mock)

	r := gin.New()
	r.POST("/students/reset-password", h.ResetPassword(service.RoleStudent))
	w := doRequest(r, "POST", "/students/reset-password", jsonBody(dto.ResetPasswordRequest{
		Email:       "a@b.edu",
		ResetCode:   "123456",
		NewPassword: "newsecret",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12003 {
		t.Errorf("expected code 12003, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDashboardHandler_BulkDelete_ReturnsCount(t *testing.T) {
	mock := &mockDashboardService{deleteCount: 3}
	h := NewDashboardHandler(mock)

	r := gin.New()
	r.DELETE("/admin-dashboard/bulk-delete", h.BulkDelete)
	w := doRequest(r, "DELETE", "/admin-dashboard/bulk-delete", jsonBody(dto.BulkDeleteRequest{
		IDs: []string{"0c7c1f3e-33f9-4b53-9a60-1f6f8f1f0a01"},
	}))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Data dto.BulkDeleteResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.DeletedCount != 3 {
		t.Errorf("expected deletedCount 3, got %d", resp.Data.DeletedCount)
	}
}

func TestDashboardHandler_BulkDelete_EmptyIDs(t *testing.T) {
	mock := &mockDashboardService{}
	h := NewDashboardHandler(mock)

	r := gin.New()
	r.DELETE("/admin-dashboard/bulk-delete", h.BulkDelete)
	w := doRequest(r, "DELETE", "/admin-dashboard/bulk-delete", jsonBody(map[string][]string{
		"ids": {},
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// FeedbackHandler Tests
// ═══════════════════════════════════════════════════════════

func TestFeedbackHandler_Submit_RatingRequired(t *testing.T) {
	mock := &mockFeedbackService{submitErr: service.ErrRatingRequired}
	h := NewFeedbackHandler(mock)

	r := gin.New()
	r.POST("/feedback", h.Submit)
	w := doRequest(r, "POST", "/feedback", jsonBody(dto.SubmitFeedbackRequest{
		StudentID:    "2024-0001",
		TeacherID:    "T-100",
		FeedbackType: "feedback",
		Subject:      "Advising",
		Message:      "Great advising",
	}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestFeedbackHandler_Respond_NotFound(t *testing.T) {
	mock := &mockFeedbackService{respondErr: service.ErrFeedbackNotFound}
	h := NewFeedbackHandler(mock)

	r := gin.New()
	r.PUT("/feedback/:id/admin-response", h.RespondAsAdmin)
	w := doRequest(r, "PUT", "/feedback/ghost/admin-response", jsonBody(dto.RespondFeedbackRequest{
		Response: "Handled",
	}))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
