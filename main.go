package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/initializers"
	"github.com/Kariqs/amexan-store/routes"
	"github.com/Kariqs/amexan-store/utils"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := initializers.LoadEnv()

	logger, err := initializers.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	db, err := initializers.ConnectToDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := initializers.SyncDatabase(db, logger); err != nil {
		logger.Fatal("failed to sync database", zap.Error(err))
	}

	var images utils.ImageStore
	if cfg.AWSBucket != "" {
		store, err := utils.NewS3ImageStore(context.Background(), cfg.AWSBucket)
		if err != nil {
			logger.Fatal("failed to configure AWS", zap.Error(err))
		}
		images = store
	} else {
		logger.Warn("AWS_BUCKET is not set; product image uploads are disabled")
	}

	gin.SetMode(cfg.GinMode)
	server := gin.New()
	server.Use(gin.Logger(), gin.Recovery())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers := controllers.NewHandlers(db, images, logger, cfg.JWTSecret, cfg.PageSize)
	routes.Register(server, handlers)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			// The database closes only after in-flight requests have drained.
			"amexan-store": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				if err := httpServer.Shutdown(ctx); err != nil {
					return err
				}
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		},
	)

	exitCode := <-wait
	logger.Info("Application exited", zap.Int("code", exitCode))
	logger.Sync()
	os.Exit(exitCode)
}
