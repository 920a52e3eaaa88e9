package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

// FeedbackHandler 反馈模块 HTTP 处理器
type FeedbackHandler struct {
	feedbackSvc service.FeedbackService
}

// NewFeedbackHandler 创建 FeedbackHandler
func NewFeedbackHandler(feedbackSvc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// Submit POST /feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req dto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	feedback, err := h.feedbackSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}
	response.Created(c, feedback)
}

// List GET /feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	feedbacks, err := h.feedbackSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, feedbacks)
}

// ListByStudent GET /feedback/student/:studentID
func (h *FeedbackHandler) ListByStudent(c *gin.Context) {
	feedbacks, err := h.feedbackSvc.ListByStudent(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}
	response.OK(c, feedbacks)
}

// ListByTeacher GET /feedback/teacher/:teacherID
func (h *FeedbackHandler) ListByTeacher(c *gin.Context) {
	feedbacks, err := h.feedbackSvc.ListByTeacher(c.Request.Context(), c.Param("teacherID"))
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}
	response.OK(c, feedbacks)
}

// RespondAsAdmin PUT /feedback/:id/admin-response
func (h *FeedbackHandler) RespondAsAdmin(c *gin.Context) {
	var req dto.RespondFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	feedback, err := h.feedbackSvc.RespondAsAdmin(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}
	response.OK(c, feedback)
}

// RespondAsTeacher PUT /feedback/:id/teacher-response
func (h *FeedbackHandler) RespondAsTeacher(c *gin.Context) {
	var req dto.RespondFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	feedback, err := h.feedbackSvc.RespondAsTeacher(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}
	response.OK(c, feedback)
}

// Delete DELETE /feedback/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.feedbackSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleFeedbackError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleFeedbackError 统一处理反馈模块业务错误
func (h *FeedbackHandler) handleFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFeedbackNotFound):
		response.NotFound(c, 16001, "反馈不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16002, "学生不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 16003, "教师不存在")
	case errors.Is(err, service.ErrRatingRequired):
		response.BadRequest(c, 16004, "feedback 类别必须带评分")
	case errors.Is(err, service.ErrInvalidAccountID):
		response.BadRequest(c, 16005, "账户编号不能为空")
	default:
		response.InternalError(c)
	}
}
