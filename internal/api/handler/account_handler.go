package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/internal/dto"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

// AccountHandler 账户目录 HTTP 处理器（学生 / 教师 / 管理员）
type AccountHandler struct {
	accountSvc service.AccountService
}

// NewAccountHandler 创建 AccountHandler
func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// ────────────────────── 学生 ──────────────────────

// CreateStudent POST /students
func (h *AccountHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.accountSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.Created(c, student)
}

// ListStudents GET /students
func (h *AccountHandler) ListStudents(c *gin.Context) {
	students, err := h.accountSvc.ListStudents(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, students)
}

// GetStudentProfile GET /students/profile/:studentID
func (h *AccountHandler) GetStudentProfile(c *gin.Context) {
	student, err := h.accountSvc.GetStudentProfile(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, student)
}

// UpdateStudent PUT /students/:id
func (h *AccountHandler) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.accountSvc.UpdateStudent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, student)
}

// UpdateStudentProfile PUT /students/profile/:studentID
func (h *AccountHandler) UpdateStudentProfile(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.accountSvc.UpdateStudentProfile(c.Request.Context(), c.Param("studentID"), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, student)
}

// UploadStudentPicture POST /students/profile/:studentID/upload-picture
func (h *AccountHandler) UploadStudentPicture(c *gin.Context) {
	var req dto.UploadPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.accountSvc.SetStudentPicture(c.Request.Context(), c.Param("studentID"), req.ProfilePicture)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, student)
}

// DeleteStudent DELETE /students/:id
func (h *AccountHandler) DeleteStudent(c *gin.Context) {
	if err := h.accountSvc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 教师 ──────────────────────

// CreateTeacher POST /teachers
func (h *AccountHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.accountSvc.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.Created(c, teacher)
}

// ListTeachers GET /teachers
func (h *AccountHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.accountSvc.ListTeachers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, teachers)
}

// GetTeacherProfile GET /teachers/profile/:teacherID
func (h *AccountHandler) GetTeacherProfile(c *gin.Context) {
	teacher, err := h.accountSvc.GetTeacherProfile(c.Request.Context(), c.Param("teacherID"))
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, teacher)
}

// UpdateTeacher PUT /teachers/:id
func (h *AccountHandler) UpdateTeacher(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.accountSvc.UpdateTeacher(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, teacher)
}

// UpdateTeacherProfile PUT /teachers/profile/:teacherID
func (h *AccountHandler) UpdateTeacherProfile(c *gin.Context) {
	var req dto.UpdateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.accountSvc.UpdateTeacherProfile(c.Request.Context(), c.Param("teacherID"), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, teacher)
}

// UploadTeacherPicture POST /teachers/profile/:teacherID/upload-picture
func (h *AccountHandler) UploadTeacherPicture(c *gin.Context) {
	var req dto.UploadPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	teacher, err := h.accountSvc.SetTeacherPicture(c.Request.Context(), c.Param("teacherID"), req.ProfilePicture)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, teacher)
}

// DeleteTeacher DELETE /teachers/:id
func (h *AccountHandler) DeleteTeacher(c *gin.Context) {
	if err := h.accountSvc.DeleteTeacher(c.Request.Context(), c.Param("id")); err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, nil)
}

// ────────────────────── 管理员 ──────────────────────

// CreateAdmin POST /admins
func (h *AccountHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admin, err := h.accountSvc.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.Created(c, admin)
}

// ListAdmins GET /admins
func (h *AccountHandler) ListAdmins(c *gin.Context) {
	admins, err := h.accountSvc.ListAdmins(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, admins)
}

// GetAdminProfile GET /admins/profile/:adminID
func (h *AccountHandler) GetAdminProfile(c *gin.Context) {
	admin, err := h.accountSvc.GetAdminProfile(c.Request.Context(), c.Param("adminID"))
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, admin)
}

// UpdateAdmin PUT /admins/:id
func (h *AccountHandler) UpdateAdmin(c *gin.Context) {
	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admin, err := h.accountSvc.UpdateAdmin(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, admin)
}

// UpdateAdminProfile PUT /admins/profile/:adminID
func (h *AccountHandler) UpdateAdminProfile(c *gin.Context) {
	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admin, err := h.accountSvc.UpdateAdminProfile(c.Request.Context(), c.Param("adminID"), &req)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, admin)
}

// UploadAdminPicture POST /admins/profile/:adminID/upload-picture
func (h *AccountHandler) UploadAdminPicture(c *gin.Context) {
	var req dto.UploadPictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	admin, err := h.accountSvc.SetAdminPicture(c.Request.Context(), c.Param("adminID"), req.ProfilePicture)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, admin)
}

// DeleteAdmin DELETE /admins/:id
func (h *AccountHandler) DeleteAdmin(c *gin.Context) {
	if err := h.accountSvc.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
		h.handleAccountError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleAccountError 统一处理账户模块业务错误
func (h *AccountHandler) handleAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "学生不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 14002, "教师不存在")
	case errors.Is(err, service.ErrAdminNotFound):
		response.NotFound(c, 14003, "管理员不存在")
	case errors.Is(err, service.ErrDuplicateAccount):
		response.BadRequest(c, 14004, "账户编号或用户名已存在")
	case errors.Is(err, service.ErrInvalidAccountID):
		response.BadRequest(c, 14005, "账户编号不能为空")
	case errors.Is(err, service.ErrUnknownDepartment):
		response.BadRequest(c, 14006, "department 取值非法")
	case errors.Is(err, service.ErrUnknownPosition):
		response.BadRequest(c, 14007, "position 与 department 不匹配")
	default:
		response.InternalError(c)
	}
}
