package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"task-tracker/internal/config"
	"task-tracker/internal/middleware"
	"task-tracker/internal/repositories"
	"task-tracker/web"
)

// NewRouter assembles the middleware chain, the JSON API and the HTML views.
func NewRouter(cfg *config.Config, db *gorm.DB, store repositories.TaskStore) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RecoveryWithLog())
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}
	router.Use(cors.Default())

	router.SetHTMLTemplate(web.Templates())

	taskHandler := NewTaskHandler(store)
	webHandler := NewWebHandler(store)

	api := router.Group("/api/v1")
	{
		api.GET("/tasks", taskHandler.GetTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:id", taskHandler.GetTaskByID)
		api.PATCH("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}

	router.GET("/", webHandler.Home)
	router.GET("/tasks", webHandler.ListTasks)
	router.GET("/tasks/:id", webHandler.ShowTask)
	router.POST("/tasks/:id/status", webHandler.UpdateStatus)

	router.GET("/healthz", healthCheck(db))

	return router
}

// healthCheck pings the store so load balancers see a failing database.
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
