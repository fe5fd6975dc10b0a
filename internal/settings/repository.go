package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"promptvault/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a settings repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "settings"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Get(ctx context.Context, key string) (*Setting, error) {
	if !ValidKey(key) {
		return nil, ErrUnknownKey
	}

	q := "SELECT key, value, updated_at FROM settings WHERE key = $1"
	s, err := repository.QueryOne(ctx, r.db, q, []any{key}, scanSetting)

	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, sql.ErrNoRows):
		// no override stored yet
	default:
		r.logger.Warn("settings read failed, using default", "key", key, "error", err)
	}

	return &Setting{Key: key, Value: Default(key), UpdatedAt: time.Time{}}, nil
}

func (r *repo) Set(ctx context.Context, key, value string) (*Setting, error) {
	if !ValidKey(key) {
		return nil, ErrUnknownKey
	}

	q := `
		INSERT INTO settings(key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
		RETURNING key, value, updated_at`

	s, err := repository.QueryOne(ctx, r.db, q, []any{key, value}, scanSetting)
	if err != nil {
		return nil, fmt.Errorf("upsert setting %s: %w", key, err)
	}

	r.logger.Info("setting updated", "key", key)
	return &s, nil
}

func scanSetting(s repository.Scanner) (Setting, error) {
	var out Setting
	err := s.Scan(&out.Key, &out.Value, &out.UpdatedAt)
	return out, err
}
