package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"hypenest/docs" // swagger docs

	"hypenest/internal/auth"
	"hypenest/internal/cache"
	"hypenest/internal/config"
	"hypenest/internal/db"
	"hypenest/internal/handler"
	"hypenest/internal/logging"
	"hypenest/internal/mailer"
	"hypenest/internal/repository"
	"hypenest/internal/router"
	"hypenest/internal/service"
)

// @title Hypenest Auth API
// @version 1.0
// @description Account registration, email OTP verification and login.
// @host localhost:4001
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Error("database init", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB, log); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
	}
	cancel()

	if cfg.SMTP.Host == "" {
		log.Warn("EMAIL_HOST not set, OTP delivery will fail")
	}
	sender := mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	otpRepo := repository.NewOTPRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	authService := service.NewAuthService(service.Deps{
		Accounts: accountRepo,
		OTPs:     otpRepo,
		Profiles: profileRepo,
		JWT:      jwtService,
		Mail:     sender,
		MailFrom: cfg.SMTP.From,
		Cache:    cacheClient,
		Log:      log,
	})

	authHandler := handler.NewAuthHandler(authService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, jwtService, authHandler)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
}
