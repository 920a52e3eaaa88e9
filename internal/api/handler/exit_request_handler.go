package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

// ExitRequestHandler 离校申请模块 HTTP 处理器
type ExitRequestHandler struct {
	requestSvc service.ExitRequestService
	exportSvc  service.ExportService
}

// NewExitRequestHandler 创建 ExitRequestHandler
func NewExitRequestHandler(requestSvc service.ExitRequestService, exportSvc service.ExportService) *ExitRequestHandler {
	return &ExitRequestHandler{requestSvc: requestSvc, exportSvc: exportSvc}
}

// Submit 学生提交离校申请
// POST /exit-requests
func (h *ExitRequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitExitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		// 提交时引用不存在的学生属于参数问题，返回 400
		if errors.Is(err, service.ErrStudentNotFound) {
			response.BadRequest(c, 13001, "学生不存在")
			return
		}
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ListAll 管理员查看全部申请
// GET /exit-requests
func (h *ExitRequestHandler) ListAll(c *gin.Context) {
	result, err := h.requestSvc.ListForAdmin(c.Request.Context())
	if err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// ListForStudent 学生查看本人申请
// GET /exit-requests/student/:studentID
func (h *ExitRequestHandler) ListForStudent(c *gin.Context) {
	result, err := h.requestSvc.ListForStudent(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// ListForTeacher 教师查看本部门待审批队列
// GET /exit-requests/teacher/:teacherID
func (h *ExitRequestHandler) ListForTeacher(c *gin.Context) {
	result, err := h.requestSvc.ListForTeacher(c.Request.Context(), c.Param("teacherID"))
	if err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// Decide 记录审批决定（管理员或教师）
// PUT /exit-requests/:id
func (h *ExitRequestHandler) Decide(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.requestSvc.RecordDecision(c.Request.Context(), id, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, result)
}

// ClearHistory 清空全部申请
// DELETE /exit-requests/clear-history
func (h *ExitRequestHandler) ClearHistory(c *gin.Context) {
	count, err := h.requestSvc.ClearHistory(c.Request.Context())
	if err != nil {
		h.handleRequestError(c, err)
		return
	}
	response.OK(c, dto.ClearHistoryResponse{DeletedCount: count})
}

// Export 导出全部申请为 Excel
// GET /exit-requests/export
func (h *ExitRequestHandler) Export(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportRequests(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoRequests) {
			response.NotFound(c, 17001, "暂无可导出的离校申请")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleRequestError 统一处理离校申请模块业务错误
func (h *ExitRequestHandler) handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 13001, "学生不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 13002, "教师不存在")
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 13003, "离校申请不存在")
	case errors.Is(err, service.ErrRequestFinalized):
		response.Conflict(c, 13004, "申请已进入终态，不可再审批")
	case errors.Is(err, service.ErrInvalidAccountID):
		response.BadRequest(c, 13005, "账户编号不能为空")
	case errors.Is(err, service.ErrUnknownDepartment):
		response.BadRequest(c, 13006, "教师部门取值非法")
	case errors.Is(err, service.ErrIntegrityViolation):
		response.Error(c, http.StatusInternalServerError, 13007, "数据完整性错误")
	default:
		response.InternalError(c)
	}
}
