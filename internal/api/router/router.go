package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sms-portal/backend/config"
	"sms-portal/backend/internal/api/handler"
	"sms-portal/backend/internal/api/middleware"
	"sms-portal/backend/pkg/jwt"
	"sms-portal/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 路由层按角色粗筛，行级与 owner 规则由 Service 层权限引擎兜底。
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(middleware.MaxRequestBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录注册限流）
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)
			authorized.PUT("/users/:id/role", middleware.RoleAuth("admin"), h.Auth.AssignRole)

			// 课程模块（仅管理员）
			courses := authorized.Group("/courses", middleware.RoleAuth("admin"))
			{
				courses.GET("", h.Course.List)
				courses.GET("/:id", h.Course.Get)
				courses.POST("", h.Course.Create)
				courses.PUT("/:id", h.Course.Update)
				courses.DELETE("/:id", h.Course.Delete)
				courses.GET("/:id/subjects", h.Course.ListSubjects)
				courses.POST("/:id/subjects", h.Course.AddSubject)
				courses.DELETE("/:id/subjects/:subjectId", h.Course.RemoveSubject)
				courses.GET("/:id/timetables", h.Timetable.ListByCourse)
			}

			// 科目模块（仅管理员）
			subjects := authorized.Group("/subjects", middleware.RoleAuth("admin"))
			{
				subjects.GET("", h.Subject.List)
				subjects.GET("/:id", h.Subject.Get)
				subjects.POST("", h.Subject.Create)
				subjects.PUT("/:id", h.Subject.Update)
				subjects.DELETE("/:id", h.Subject.Delete)
			}

			// 教师模块（list/view/update 教师本人规则在 Service 层）
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", middleware.RoleAuth("admin", "teacher"), h.Teacher.List)
				teachers.GET("/:id", middleware.RoleAuth("admin", "teacher"), h.Teacher.Get)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.Create)
				teachers.PUT("/:id", middleware.RoleAuth("admin", "teacher"), h.Teacher.Update)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.Delete)
				teachers.GET("/:id/subjects", middleware.RoleAuth("admin", "teacher"), h.Teacher.ListSubjects)
				teachers.POST("/:id/subjects", middleware.RoleAuth("admin"), h.Teacher.AddSubject)
				teachers.DELETE("/:id/subjects/:subjectId", middleware.RoleAuth("admin"), h.Teacher.RemoveSubject)
			}

			// 家长模块（仅管理员）
			parents := authorized.Group("/parents", middleware.RoleAuth("admin"))
			{
				parents.GET("", h.Parent.List)
				parents.GET("/:id", h.Parent.Get)
				parents.POST("", h.Parent.Create)
				parents.PUT("/:id", h.Parent.Update)
				parents.DELETE("/:id", h.Parent.Delete)
			}

			// 学生模块（list 行级过滤、view/update owner 规则在 Service 层）
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.List)
				students.GET("/:id", h.Student.Get)
				students.POST("", middleware.RoleAuth("admin"), h.Student.Create)
				students.PUT("/:id", h.Student.Update)
				students.DELETE("/:id", middleware.RoleAuth("admin"), h.Student.Delete)
				students.GET("/:id/attendance", middleware.RoleAuth("admin"), h.Attendance.ListByStudent)
				students.GET("/:id/prediction", h.Student.Prediction)
			}

			// 考勤模块（仅管理员）
			attendance := authorized.Group("/attendance", middleware.RoleAuth("admin"))
			{
				attendance.GET("/:id", h.Attendance.Get)
				attendance.POST("", h.Attendance.Create)
				attendance.PUT("/:id", h.Attendance.Update)
				attendance.DELETE("/:id", h.Attendance.Delete)
			}

			// 作业模块（仅管理员）
			assignments := authorized.Group("/assignments", middleware.RoleAuth("admin"))
			{
				assignments.GET("", h.Assignment.List)
				assignments.GET("/:id", h.Assignment.Get)
				assignments.POST("", h.Assignment.Create)
				assignments.PUT("/:id", h.Assignment.Update)
				assignments.DELETE("/:id", h.Assignment.Delete)
				assignments.POST("/:id/submissions", h.Assignment.Submit)
				assignments.GET("/:id/submissions", h.Assignment.ListSubmissions)
			}
			authorized.PUT("/submissions/:id/grade", middleware.RoleAuth("admin"), h.Assignment.GradeSubmission)

			// 考试模块（仅管理员）
			exams := authorized.Group("/exams", middleware.RoleAuth("admin"))
			{
				exams.GET("", h.Exam.List)
				exams.GET("/:id", h.Exam.Get)
				exams.POST("", h.Exam.Create)
				exams.PUT("/:id", h.Exam.Update)
				exams.DELETE("/:id", h.Exam.Delete)
			}

			// 成绩模块（仅管理员）
			results := authorized.Group("/results", middleware.RoleAuth("admin"))
			{
				results.GET("", h.Result.List)
				results.GET("/:id", h.Result.Get)
				results.POST("", h.Result.Create)
				results.PUT("/:id", h.Result.Update)
				results.DELETE("/:id", h.Result.Delete)
			}

			// 课表模块（仅管理员）
			timetables := authorized.Group("/timetables", middleware.RoleAuth("admin"))
			{
				timetables.GET("/:id", h.Timetable.Get)
				timetables.POST("", h.Timetable.Create)
				timetables.PUT("/:id", h.Timetable.Update)
				timetables.DELETE("/:id", h.Timetable.Delete)
			}

			// 仪表盘（各角色返回对应视图）
			authorized.GET("/dashboard", h.Dashboard.Dashboard)

			// 导出模块（批量名册限管理员与班主任范围）
			export := authorized.Group("/export")
			{
				export.GET("/students", middleware.RoleAuth("admin", "teacher"), h.Export.ExportRoster)
			}
		}
	}

	return r
}
