// Command seed replaces the configured superAdmin account with a fresh,
// verified one.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/observability/logging"
	impl "portfolio/internal/service/impl"
	"portfolio/internal/store"
	"portfolio/pkg/db"

	"github.com/google/uuid"
)

func main() {
	config.LoadDotEnv()
	logger := logging.NewLogger(logging.Config{
		ServiceName: "seed",
		Environment: os.Getenv("APP_ENV"),
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	if err := run(); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadSeed()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gdb, err := db.OpenGorm(ctx, db.Config{DSN: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	st := store.New(gdb)
	if err := st.AutoMigrate(ctx); err != nil {
		return err
	}

	hash, err := impl.NewPasswordServiceArgon2id().Hash(cfg.Password)
	if err != nil {
		return err
	}

	return st.WithTx(ctx, func(tx *store.Store) error {
		removed, err := tx.Users().DeleteByEmail(ctx, cfg.Email)
		if err != nil {
			return err
		}
		if removed > 0 {
			slog.Info("removed existing account", "email", cfg.Email)
		}
		u := &domain.User{
			ID:           uuid.New(),
			FullName:     cfg.FullName,
			Email:        cfg.Email,
			PasswordHash: hash,
			Role:         domain.RoleSuperAdmin,
			IsVerified:   true,
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		slog.Info("superAdmin created", "email", u.Email, "id", u.ID)
		return nil
	})
}
