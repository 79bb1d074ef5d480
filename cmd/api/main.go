package main

import (
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/db"
	"tasktracker/internal/filex"
	"tasktracker/internal/handler"
	"tasktracker/internal/observability"
	"tasktracker/internal/task"
	"tasktracker/internal/user"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	cfg := config.Load()
	if cfg.Session.Secret == "" {
		logrus.Fatal("SESSION_SECRET must be set")
	}

	var userRepo user.UserRepositoryInterface
	var taskRepo task.TaskRepositoryInterface

	switch cfg.Storage.Driver {
	case "file":
		if err := filex.EnsureDir(cfg.Storage.DataDir); err != nil {
			logrus.WithError(err).Fatal("Failed to create data directory")
		}
		userRepo = user.NewFileUserRepository(filepath.Join(cfg.Storage.DataDir, "users.json"))
		taskRepo = task.NewFileTaskRepository(filepath.Join(cfg.Storage.DataDir, "tasks.json"))
		logrus.WithField("data_dir", cfg.Storage.DataDir).Info("Using file storage")
	case "postgres":
		database := db.Init(&cfg.DB)
		defer func() {
			if err := database.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close database connection")
			}
		}()
		if err := db.EnsureSchema(database); err != nil {
			logrus.WithError(err).Fatal("Failed to ensure database schema")
		}
		userRepo = user.NewPostgresUserRepository(database)
		taskRepo = task.NewPostgresTaskRepository(database)
		logrus.Info("Using postgres storage")
	default:
		logrus.Fatalf("Unknown storage driver %q", cfg.Storage.Driver)
	}

	rdb := cache.SetupRedis(&cfg.Redis)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				logrus.WithError(err).Error("Failed to close redis connection")
			}
		}()
	}

	observability.InitMetrics()
	logrus.Info("Metrics initialized")

	r := handler.SetupHandler(userRepo, taskRepo, rdb, cfg)

	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logrus.Infof("Starting server on :%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")
}
