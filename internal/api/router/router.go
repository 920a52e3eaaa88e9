package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kyliee2004/sems-backend/config"
	"github.com/Kyliee2004/sems-backend/internal/api/handler"
	"github.com/Kyliee2004/sems-backend/internal/api/middleware"
	"github.com/Kyliee2004/sems-backend/internal/service"
	"github.com/Kyliee2004/sems-backend/pkg/jwt"
	"github.com/Kyliee2004/sems-backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 路由路径保持与旧版 API 兼容，不带版本前缀
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Check)

	// ── 公开路由（无需认证）──
	r.POST("/students/login", h.Auth.Login(service.RoleStudent))
	r.POST("/teachers/login", h.Auth.Login(service.RoleTeacher))
	r.POST("/admins/login", h.Auth.Login(service.RoleAdmin))

	r.POST("/students/forgot-password", h.Auth.ForgotPassword(service.RoleStudent))
	r.POST("/students/reset-password", h.Auth.ResetPassword(service.RoleStudent))
	r.POST("/teachers/forgot-password", h.Auth.ForgotPassword(service.RoleTeacher))
	r.POST("/teachers/reset-password", h.Auth.ResetPassword(service.RoleTeacher))
	r.POST("/admin/forgot-password", h.Auth.ForgotPassword(service.RoleAdmin))
	r.POST("/admin/reset-password", h.Auth.ResetPassword(service.RoleAdmin))

	// 学生自助注册
	r.POST("/students", h.Account.CreateStudent)

	// ── 需要认证的路由 ──
	authorized := r.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.PUT("/admin/change-password", h.Auth.ChangePassword)

		// 外出申请模块
		exitRequests := authorized.Group("/exit-requests")
		{
			exitRequests.POST("", h.ExitRequest.Submit)
			exitRequests.GET("", middleware.RoleAuth(service.RoleAdmin), h.ExitRequest.ListAll)
			exitRequests.GET("/export", middleware.RoleAuth(service.RoleAdmin), h.ExitRequest.Export)
			exitRequests.GET("/student/:studentID", h.ExitRequest.ListForStudent)
			exitRequests.GET("/teacher/:teacherID", h.ExitRequest.ListForTeacher)
			exitRequests.PUT("/:id", h.ExitRequest.Decide)
			exitRequests.DELETE("/clear-history", middleware.RoleAuth(service.RoleAdmin), h.ExitRequest.ClearHistory)
		}

		// 管理仪表盘模块
		dashboard := authorized.Group("/admin-dashboard")
		{
			dashboard.GET("", h.Dashboard.List)
			dashboard.DELETE("/bulk-delete", middleware.RoleAuth(service.RoleAdmin), h.Dashboard.BulkDelete)
			dashboard.DELETE("", middleware.RoleAuth(service.RoleAdmin), h.Dashboard.DeleteAll)
		}

		// 学生账户模块
		students := authorized.Group("/students")
		{
			students.GET("", h.Account.ListStudents)
			students.PUT("/:id", h.Account.UpdateStudent)
			students.DELETE("/:id", middleware.RoleAuth(service.RoleAdmin), h.Account.DeleteStudent)
			students.GET("/profile/:studentID", h.Account.GetStudentProfile)
			students.PUT("/profile/:studentID", h.Account.UpdateStudentProfile)
			students.POST("/profile/:studentID/upload-picture", h.Account.UploadStudentPicture)
		}

		// 教师账户模块
		teachers := authorized.Group("/teachers")
		{
			teachers.POST("", middleware.RoleAuth(service.RoleAdmin), h.Account.CreateTeacher)
			teachers.GET("", h.Account.ListTeachers)
			teachers.PUT("/:id", h.Account.UpdateTeacher)
			teachers.DELETE("/:id", middleware.RoleAuth(service.RoleAdmin), h.Account.DeleteTeacher)
			teachers.GET("/profile/:teacherID", h.Account.GetTeacherProfile)
			teachers.PUT("/profile/:teacherID", h.Account.UpdateTeacherProfile)
			teachers.POST("/profile/:teacherID/upload-picture", h.Account.UploadTeacherPicture)
		}

		// 管理员账户模块
		admins := authorized.Group("/admins")
		{
			admins.POST("", middleware.RoleAuth(service.RoleAdmin), h.Account.CreateAdmin)
			admins.GET("", middleware.RoleAuth(service.RoleAdmin), h.Account.ListAdmins)
			admins.PUT("/:id", middleware.RoleAuth(service.RoleAdmin), h.Account.UpdateAdmin)
			admins.DELETE("/:id", middleware.RoleAuth(service.RoleAdmin), h.Account.DeleteAdmin)
			admins.GET("/profile/:adminID", h.Account.GetAdminProfile)
			admins.PUT("/profile/:adminID", h.Account.UpdateAdminProfile)
			admins.POST("/profile/:adminID/upload-picture", h.Account.UploadAdminPicture)
		}

		// 反馈与投诉模块
		feedback := authorized.Group("/feedback")
		{
			feedback.POST("", h.Feedback.Submit)
			feedback.GET("", middleware.RoleAuth(service.RoleAdmin), h.Feedback.List)
			feedback.GET("/student/:studentID", h.Feedback.ListByStudent)
			feedback.GET("/teacher/:teacherID", h.Feedback.ListByTeacher)
			feedback.PUT("/:id/admin-response", middleware.RoleAuth(service.RoleAdmin), h.Feedback.RespondAsAdmin)
			feedback.PUT("/:id/teacher-response", h.Feedback.RespondAsTeacher)
			feedback.DELETE("/:id", middleware.RoleAuth(service.RoleAdmin), h.Feedback.Delete)
		}
	}

	return r
}
