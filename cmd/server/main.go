package main

import (
	"fmt"
	"log"

	"bbs-manager/internal/config"
	"bbs-manager/internal/database"
	"bbs-manager/internal/handlers"
	"bbs-manager/internal/logger"
	"bbs-manager/internal/notify"
	"bbs-manager/internal/repository"
	"bbs-manager/internal/server"
	"bbs-manager/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, zl)
	if err != nil {
		zl.Fatal("cannot init database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	var notifier notify.Notifier = notify.Nop{}
	if cfg.SMTPHost != "" && cfg.AdminEmail != "" {
		notifier = notify.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.AdminEmail)
		zl.Info("admin notifications enabled", zap.String("admin_email", cfg.AdminEmail))
	} else {
		zl.Info("admin notifications disabled")
	}

	authService := service.NewAuthService(userRepo, notifier, zl)
	bbsService := service.NewBBSService(recordRepo)

	authHandler := &handlers.AuthHandler{Auth: authService, Log: zl}
	bbsHandler := &handlers.BBSHandler{Records: bbsService, Log: zl}

	r, err := server.NewRouter(cfg, zl, authHandler, bbsHandler)
	if err != nil {
		zl.Fatal("cannot build router", zap.Error(err))
	}

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	zl.Info("starting server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
