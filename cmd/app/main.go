package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"artify/cmd/fx/account_fx"
	"artify/cmd/fx/config_fx"
	"artify/cmd/fx/controllers_fx"
	"artify/cmd/fx/dashboard_fx"
	"artify/cmd/fx/db_fx"
	"artify/cmd/fx/images_fx"
	"artify/cmd/fx/mail_fx"
	"artify/cmd/fx/memcache_fx"
	"artify/cmd/fx/models_fx"
	"artify/cmd/fx/redis_fx"
	"artify/cmd/fx/replicate_fx"
	"artify/cmd/fx/storage_fx"
	"artify/cmd/fx/training_fx"
	"artify/cmd/fx/webhook_fx"
	"artify/internal/api/controllers"
	"artify/internal/config"
	"artify/internal/infra"
	"artify/pkg/middleware"
	"artify/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		redis_fx.Module,
		storage_fx.Module,
		replicate_fx.Module,
		mail_fx.Module,
		memcache_fx.Module,

		account_fx.Module,
		training_fx.Module,
		webhook_fx.Module,
		images_fx.Module,
		models_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),

		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, db *gorm.DB, logger *zap.Logger) {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       time.Minute,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting http server", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping http server")
			if err := server.Shutdown(ctx); err != nil {
				logger.Error("shutting down http server", zap.Error(err))
			}
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	uploadController *controllers.UploadController,
	trainingController *controllers.TrainingController,
	webhookController *controllers.WebhookController,
	imageController *controllers.ImageController,
	modelController *controllers.ModelController,
	dashboardController *controllers.DashboardController,
	tokenIssuer *utils.TokenIssuer,
	limiters *redis_fx.Limiters,
) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r,
		accountController, uploadController, trainingController,
		webhookController, imageController, modelController,
		dashboardController, tokenIssuer, limiters)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	uploadController *controllers.UploadController,
	trainingController *controllers.TrainingController,
	webhookController *controllers.WebhookController,
	imageController *controllers.ImageController,
	modelController *controllers.ModelController,
	dashboardController *controllers.DashboardController,
	tokenIssuer *utils.TokenIssuer,
	limiters *redis_fx.Limiters) {

	auth := r.Group("/api/auth")
	auth.POST("/register", accountController.Register)
	auth.POST("/login", accountController.Login)
	auth.POST("/logout", accountController.Logout)
	auth.POST("/forgot-password", accountController.ForgotPassword)
	auth.POST("/reset-password", accountController.ResetPassword)

	// Callbacks authenticate with the webhook signature, not a session.
	r.POST("/api/webhooks/training", webhookController.TrainingCallback)

	authed := r.Group("/api")
	authed.Use(middleware.JWTAuthMiddleware(tokenIssuer))

	authed.GET("/account", accountController.Profile)
	authed.PUT("/account", accountController.UpdateProfile)
	authed.PUT("/account/password", accountController.ChangePassword)

	authed.POST("/train/upload-url", uploadController.CreateUploadURL)
	authed.POST("/train",
		middleware.RateLimitMiddleware(limiters.Train),
		trainingController.Train)

	authed.POST("/image/generate",
		middleware.RateLimitMiddleware(limiters.Generate),
		imageController.Generate)
	authed.GET("/image/gallery", imageController.Gallery)
	authed.DELETE("/image/:id", imageController.Delete)

	authed.GET("/models", modelController.List)
	authed.DELETE("/models/:id", modelController.Delete)

	authed.GET("/dashboard", dashboardController.Stats)
}
