package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/yusufkecer/ecommerce-password-reset/internal/config"
	"github.com/yusufkecer/ecommerce-password-reset/internal/credential"
	"github.com/yusufkecer/ecommerce-password-reset/internal/db"
	"github.com/yusufkecer/ecommerce-password-reset/internal/handler"
	"github.com/yusufkecer/ecommerce-password-reset/internal/logger"
	"github.com/yusufkecer/ecommerce-password-reset/internal/repository"
	"github.com/yusufkecer/ecommerce-password-reset/internal/service"
)

func main() {
	cfg := config.Load()
	lg := logger.Init(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		lg.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := lg.WithContext(context.Background())

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		lg.Fatal().Err(err).Msg("database connection failed")
	}
	defer database.Close()

	if cfg.DBRunMigrations {
		if err := db.RunMigrations(ctx, database); err != nil {
			lg.Fatal().Err(err).Msg("migrations failed")
		}
	}

	mailer := newMailer(cfg, lg)

	resetService := service.NewPasswordResetService(
		repository.NewDirectory(database),
		mailer,
		credential.NewHasher(cfg.HashIterations),
		service.ResetOptions{
			TTL:    cfg.TempPasswordTTL,
			Length: cfg.TempPasswordLength,
			Sender: cfg.SMTPFrom,
		},
	)

	router := handler.NewRouter(
		handler.RouterOptions{
			AllowedOrigins: cfg.AllowedOrigins,
			APIKey:         cfg.APIKey,
			MaxBodyBytes:   cfg.MaxBodyBytes,
			Logger:         lg,
		},
		handler.NewPasswordResetHandler(resetService),
		handler.NewHealthHandler(database),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		lg.Info().Str("addr", srv.Addr).Str("mail_driver", cfg.MailDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newMailer(cfg *config.Config, lg zerolog.Logger) service.Mailer {
	if cfg.MailDriver == config.MailDriverLog {
		lg.Warn().Msg("MAIL_DRIVER=log: reset mails are logged, not delivered")
		return service.NewLogMailer(cfg.SMTPFrom, lg)
	}
	return service.NewSMTPMailer(service.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPass,
		From:      cfg.SMTPFrom,
		TLSPolicy: cfg.SMTPTLSPolicy,
		Timeout:   cfg.SMTPTimeout,
	}, lg.With().Str("component", "smtp").Logger())
}
