package app

import (
	"exam_admin_backend/docs"
	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/middleware"
	"exam_admin_backend/internal/model"

	"exam_admin_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 题库浏览
	rg.GET("/questions", c.question.List)
	rg.GET("/questions/random", c.question.Random)
	rg.GET("/questions/subjects", c.question.Subjects)
	rg.GET("/questions/:id", c.question.Get)

	// 试卷浏览
	rg.GET("/papers", c.paper.List)
	rg.GET("/papers/:id", c.paper.Get)

	// 考试/练习流程
	rg.POST("/exams/start", c.exam.Start)
	rg.POST("/exams/:id/answers", c.exam.SubmitAnswer)
	rg.POST("/exams/:id/finish", c.exam.Finish)
	rg.GET("/exams/:id", c.exam.Detail)
	rg.GET("/exams", c.exam.History)

	// 错题本
	rg.GET("/wrong-questions", c.wrongQuestion.List)
	rg.GET("/wrong-questions/practice", c.wrongQuestion.Practice)
	rg.POST("/wrong-questions/:questionId/master", c.wrongQuestion.MarkMastered)
	rg.DELETE("/wrong-questions/:questionId", c.wrongQuestion.Remove)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		// 题库管理
		admin.POST("/questions", c.question.Create)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)
		admin.POST("/questions/batch-delete", c.question.BatchDelete)
		admin.GET("/questions/statistics", c.question.Statistics)

		// 题库导入
		admin.POST("/questions/import", c.question.Import)
		admin.POST("/questions/import-excel", c.question.ImportExcel)
		admin.GET("/questions/template/text", c.question.TextTemplate)
		admin.GET("/questions/template/excel", c.question.ExcelTemplate)

		// 试卷管理
		admin.POST("/papers", c.paper.Create)
		admin.PUT("/papers/:id", c.paper.Update)
		admin.DELETE("/papers/:id", c.paper.Delete)
	}
}
