package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/media"
	"portfolio/internal/observability/logging"
	"portfolio/internal/observability/metrics"
	"portfolio/internal/service"
	impl "portfolio/internal/service/impl"
	"portfolio/internal/store"
	httpapi "portfolio/internal/transport/http"
	"portfolio/pkg/db"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	logger := logging.NewLogger(logging.Config{
		ServiceName: "portfolio",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	metrics.MustRegister("portfolio")

	// 1) DB
	gdb, err := db.OpenGorm(ctx, db.Config{
		DSN:             cfg.DatabaseURL,
		LogSQL:          cfg.DBLogSQL,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	st := store.New(gdb)
	if err := st.AutoMigrate(ctx); err != nil {
		return err
	}

	// 2) Media host
	remote, err := mediaStore(ctx, cfg)
	if err != nil {
		return err
	}
	pipeline := media.NewPipeline(remote, logger)

	// 3) Services
	email, err := impl.NewEmailServiceSMTP(impl.MailConfig{
		Host:        cfg.Mail.Host,
		Port:        cfg.Mail.Port,
		Username:    cfg.Mail.Username,
		Password:    cfg.Mail.Password,
		FromName:    cfg.Mail.FromName,
		FrontendURL: cfg.FrontendURL,
	})
	if err != nil {
		return err
	}

	var google service.GoogleVerifier
	if cfg.GoogleClientID != "" {
		g, err := impl.NewGoogleVerifier(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret)
		if err != nil {
			return err
		}
		google = g
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	pw := impl.NewPasswordServiceArgon2id()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		SigningKey:    []byte(cfg.JWTSecret),
		SuperAdminTTL: cfg.SessionTTL.SuperAdmin,
		AdminTTL:      cfg.SessionTTL.Admin,
		UserTTL:       cfg.SessionTTL.User,
		DefaultTTL:    cfg.SessionTTL.Default,
	})

	// 4) HTTP
	handler := httpapi.NewRouter(httpapi.Deps{
		Auth:         impl.NewAuthServiceImpl(st, pw, ts, email, google),
		Users:        impl.NewUserServiceImpl(st, pw, pipeline),
		History:      impl.NewHistoryServiceImpl(st, pipeline),
		Projects:     impl.NewProjectServiceImpl(st, pipeline),
		Certificates: impl.NewCertificateServiceImpl(st, pipeline),
		SiteData:     impl.NewSiteDataServiceImpl(st, pipeline),
		Skills:       impl.NewSkillsServiceImpl(st),
	}, httpapi.Options{
		Production:         cfg.IsProduction(),
		CookieDays:         cfg.CookieExpiryDays,
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     30 * time.Second,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("portfolio api listening", "addr", srv.Addr, "env", cfg.Environment, "media", cfg.MediaBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

func mediaStore(ctx context.Context, cfg config.Config) (media.Store, error) {
	switch cfg.MediaBackend {
	case "s3":
		return media.NewS3Store(ctx, media.S3Options{
			Endpoint:      cfg.S3.Endpoint,
			Region:        cfg.S3.Region,
			Bucket:        cfg.S3.Bucket,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
	default:
		return media.NewCloudinaryStore(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
	}
}
