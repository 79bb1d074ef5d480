package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"tasktracker/internal/auth"
	"tasktracker/internal/config"
	"tasktracker/internal/middleware"
	"tasktracker/internal/observability"
	"tasktracker/internal/task"
	"tasktracker/internal/user"
)

// SetupHandler assembles services and routes on top of the repositories
// picked in main (file-backed by default, postgres when configured).
func SetupHandler(userRepo user.UserRepositoryInterface, taskRepo task.TaskRepositoryInterface, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// Must be attached before the routes so every request is measured.
	if observability.GlobalMetrics != nil {
		r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))
	}

	revoker := auth.NewRevoker()

	userService := user.NewUserService(userRepo, revoker, cfg.Session.Secret, cfg.Session.Window)
	taskService := task.NewTaskService(taskRepo, redisClient, observability.GlobalMetrics)

	userController := user.NewUserController(userService)
	taskController := task.NewTaskController(taskService)

	setupRoutes(r, userController, taskController, revoker, redisClient, cfg)

	return r
}

func setupRoutes(r *gin.Engine, userCtrl *user.UserController, taskCtrl *task.TaskController, revoker *auth.Revoker, redisClient *redis.Client, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes. Logout stays public so an expired session can still
	// be discarded.
	authGroup := r.Group("/auth")
	authGroup.Use(middleware.RateLimiterMiddleware(redisClient, middleware.AuthRateLimiterConfig()))
	{
		authGroup.POST("/register", userCtrl.Register)
		authGroup.POST("/login", userCtrl.Login)
		authGroup.POST("/logout", userCtrl.Logout)
	}

	// Protected routes: every task operation passes the session guard.
	api := r.Group("/api/v1")
	api.Use(middleware.SessionGuard(cfg.Session.Secret, revoker))
	{
		api.GET("/tasks", taskCtrl.ListTasks)
		api.POST("/tasks", taskCtrl.AddTask)
		api.POST("/tasks/:id/complete", taskCtrl.CompleteTask)
		api.DELETE("/tasks/:id", taskCtrl.DeleteTask)
	}
}
