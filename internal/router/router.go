package router

import (
	"github.com/familyfit/internal/config"
	"github.com/familyfit/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, gdb *gorm.DB) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("familyfit_session", store))

	// 上传文件的静态服务
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	api := handler.NewAPI(gdb, cfg.UploadDir, cfg.UploadURLPath)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/users", api.CreateUser)
		apiGroup.POST("/auth/login", api.Login)
		apiGroup.POST("/auth/logout", api.Logout)

		// 需要登录态的业务路由
		auth := apiGroup.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/users", api.ListUsers)
			auth.GET("/users/:userId", api.GetUser)
			auth.POST("/users/:userId/avatar", api.UploadAvatar)

			auth.POST("/families", api.CreateFamily)
			auth.GET("/families/:familyId", api.GetFamily)
			auth.GET("/users/:userId/families", api.ListUserFamilies)
			auth.POST("/family-members", api.AddFamilyMember)
			auth.GET("/families/:familyId/members", api.ListFamilyMembers)
			auth.GET("/families/:familyId/progress", api.GetFamilyProgress)

			auth.POST("/activities", api.CreateActivity)
			auth.GET("/users/:userId/activities", api.ListUserActivities)
			auth.GET("/users/:userId/recent-activities", api.RecentUserActivities)

			auth.POST("/goals", api.CreateGoal)
			auth.GET("/users/:userId/goals", api.ListUserGoals)
			auth.PATCH("/goals/:id", api.PatchGoal)
			auth.GET("/users/:userId/daily-progress", api.GetUserDailyProgress)

			auth.POST("/schedule-events", api.CreateScheduleEvent)
			auth.GET("/schedule-events", api.ListScheduleEvents)
			auth.POST("/event-assignees", api.AssignEventToUser)
			auth.GET("/schedule-events/:eventId/assignees", api.ListEventAssignees)
			auth.GET("/users/:userId/schedule", api.GetUserSchedule)

			auth.POST("/health-tips", api.CreateHealthTip)
			auth.GET("/health-tips/random", api.RandomHealthTip)
			auth.GET("/health-tips", api.ListHealthTips)

			auth.POST("/activity-stats", api.CreateActivityStat)
			auth.GET("/users/:userId/activity-stats", api.ListUserActivityStats)
		}
	}

	return r
}
