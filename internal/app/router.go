package app

import (
	"examprep_backend/docs"
	"examprep_backend/internal/config"
	"examprep_backend/internal/middleware"
	"examprep_backend/internal/model"
	"examprep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 学生路由（需要登录）
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 管理员路由
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		a.registerAdminRoutes(admin, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)

	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:id/topics", c.course.CourseTopics)
	rg.GET("/topics", c.course.AllTopics)
	rg.GET("/topics/:id", c.course.TopicDetail)

	rg.GET("/learn/:topicId", c.learn.Cards)
	rg.POST("/learn/:topicId/complete", c.learn.Complete)

	rg.GET("/practice/:topicId/info", c.practice.Info)
	rg.POST("/practice/:topicId/generate", c.practice.Generate)
	rg.POST("/practice/:topicId/grade", c.practice.Grade)

	rg.GET("/progress/overview", c.progress.Overview)

	rg.GET("/cheat-sheet", c.cheatSheet.List)
	rg.POST("/cheat-sheet", c.cheatSheet.Add)
	rg.DELETE("/cheat-sheet/:id", c.cheatSheet.Remove)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/courses", c.adminContent.CreateCourse)
	rg.PUT("/courses/:id", c.adminContent.UpdateCourse)
	rg.DELETE("/courses/:id", c.adminContent.DeleteCourse)

	rg.POST("/topics", c.adminContent.CreateTopic)
	rg.PUT("/topics/:id", c.adminContent.UpdateTopic)
	rg.DELETE("/topics/:id", c.adminContent.DeleteTopic)
	rg.GET("/topics/:id/templates", c.adminContent.ListTemplates)

	rg.POST("/cards", c.adminContent.CreateCard)
	rg.PUT("/cards/:id", c.adminContent.UpdateCard)
	rg.DELETE("/cards/:id", c.adminContent.DeleteCard)

	rg.POST("/templates", c.adminContent.CreateTemplate)
	rg.PUT("/templates/:id", c.adminContent.UpdateTemplate)
	rg.DELETE("/templates/:id", c.adminContent.DeleteTemplate)

	rg.POST("/upload/image", c.adminContent.UploadImage)

	rg.GET("/users", c.user.List)
	rg.PUT("/users/:id", c.user.Update)
	rg.PUT("/users/:id/disabled", c.user.SetDisabled)

	rg.GET("/invite-codes", c.user.ListInviteCodes)
	rg.POST("/invite-codes", c.user.GenerateInviteCodes)
}
