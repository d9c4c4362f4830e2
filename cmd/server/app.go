package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	routes "github.com/mnuddindev/routinely/internal/api"
	v1 "github.com/mnuddindev/routinely/internal/api/v1"
	"github.com/mnuddindev/routinely/internal/auth"
	"github.com/mnuddindev/routinely/internal/config"
	"github.com/mnuddindev/routinely/internal/db"
	"github.com/mnuddindev/routinely/internal/models"
	"github.com/mnuddindev/routinely/pkg/logger"
	storage "github.com/mnuddindev/routinely/pkg/redis"
	"github.com/mnuddindev/routinely/pkg/utils"
	gormLogger "gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logger.NewLogger(
		logger.WithAppName("routinely"),
		logger.WithOutputDir(cfg.LogDir),
		logger.WithLevel(logger.LogLevel(strings.ToUpper(cfg.LogLevel))),
	)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Close()

	redisClient, err := storage.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, log)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize Redis")
		panic(err)
	}
	defer redisClient.Close()

	gormDB, err := db.NewDB(
		ctx,
		db.Postgres(cfg.DSN()),
		models.RegisterModels(),
		db.WithLogger(log, gormLogger.Warn),
		db.WithPool(25, 5, 30*time.Minute),
	)
	if err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Failed to initialize PostgreSQL database")
		panic("DB init failed")
	}
	defer db.CloseDB(gormDB, log)

	handler := &v1.Handler{
		DB:      gormDB,
		Cache:   redisClient,
		Revoker: redisClient,
		Tokens:  auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL),
		Logger:  log,
		EmailCfg: utils.EmailConfig{
			SMTPHost:     cfg.SMTPHost,
			SMTPPort:     cfg.SMTPPort,
			SMTPUsername: cfg.SMTPUsername,
			SMTPPassword: cfg.SMTPPassword,
			AppURL:       cfg.AppURL,
			FromEmail:    cfg.MailFrom,
		},
	}

	app := routes.NewApp(cfg, log)
	routes.NewRoutes(app, handler)

	go func() {
		<-ctx.Done()
		log.Info(context.Background()).Logs("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error(context.Background()).WithMeta(utils.Map{"error": err.Error()}).Logs("Server shutdown failed")
		}
	}()

	log.Info(ctx).WithFields("addr", cfg.ServerAddr).Logs("Server starting")
	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Error(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs("Server stopped")
	}
}
