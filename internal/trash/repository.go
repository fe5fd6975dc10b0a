package trash

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"promptvault/pkg/pagination"
	"promptvault/pkg/query"
	"promptvault/pkg/repository"
)

const trashColumns = `id, origin_type, item_uid, user_id, core_theme, hair, pose,
		outfit, atmosphere, gaze, makeup, background, details, aspect_ratio,
		final_prompt, version, created_at, deleted_at`

const contentColumns = `core_theme, hair, pose, outfit, atmosphere, gaze, makeup,
		background, details, aspect_ratio, final_prompt`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a trash repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "trash"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	userID *uuid.UUID,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		WhereSearch(page.Search, "CoreTheme", "FinalPrompt")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count trash: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query trash: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) SoftDeletePrompt(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.softDelete(ctx, id, OriginPrompt, "prompts")
}

func (r *repo) SoftDeleteFavorite(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return r.softDelete(ctx, id, OriginFavorite, "favorite_prompts")
}

// softDelete copies a source row into trash, then removes the source.
// Insert-before-delete ordering means a failure can leave the source
// intact but never lose it.
func (r *repo) softDelete(ctx context.Context, id uuid.UUID, origin OriginType, table string) (*Entry, error) {
	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		insertQ := fmt.Sprintf(`
			INSERT INTO trash(origin_type, item_uid, user_id, %s, version, created_at)
			SELECT $1, id, user_id, %s, version, created_at
			FROM %s WHERE id = $2
			RETURNING %s`, contentColumns, contentColumns, table, trashColumns)

		entry, err := repository.QueryOne(ctx, tx, insertQ, []any{origin, id}, scanEntry)
		if err != nil {
			return Entry{}, err
		}

		deleteQ := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
		if err := repository.ExecExpectOne(ctx, tx, deleteQ, id); err != nil {
			return Entry{}, err
		}

		return entry, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrSourceNotFound, ErrRestoreClash)
	}

	r.logger.Info("soft deleted", "origin", origin, "item", id, "trash_id", e.ID)
	return &e, nil
}

func (r *repo) SoftDeletePrompts(ctx context.Context, ids []uuid.UUID) (int, error) {
	return r.softDeleteBatch(ctx, ids, OriginPrompt, "prompts")
}

func (r *repo) SoftDeleteFavorites(ctx context.Context, ids []uuid.UUID) (int, error) {
	return r.softDeleteBatch(ctx, ids, OriginFavorite, "favorite_prompts")
}

// softDeleteBatch moves every matching source row with one bulk insert
// and one bulk delete. Ids with no matching row are ignored.
func (r *repo) softDeleteBatch(ctx context.Context, ids []uuid.UUID, origin OriginType, table string) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one id required", ErrValidation)
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, origin)
	for _, id := range ids {
		args = append(args, id)
	}
	in := inClause(len(ids), 2)

	moved, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		insertQ := fmt.Sprintf(`
			INSERT INTO trash(origin_type, item_uid, user_id, %s, version, created_at)
			SELECT $1, id, user_id, %s, version, created_at
			FROM %s WHERE id IN (%s)`, contentColumns, contentColumns, table, in)

		result, err := tx.ExecContext(ctx, insertQ, args...)
		if err != nil {
			return 0, fmt.Errorf("insert trash entries: %w", err)
		}
		inserted, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}

		deleteQ := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, inClause(len(ids), 1))
		if _, err := tx.ExecContext(ctx, deleteQ, args[1:]...); err != nil {
			return 0, fmt.Errorf("delete source rows: %w", err)
		}

		return int(inserted), nil
	})

	if err != nil {
		return 0, repository.MapError(err, ErrSourceNotFound, ErrRestoreClash)
	}

	r.logger.Info("soft deleted batch", "origin", origin, "requested", len(ids), "moved", moved)
	return moved, nil
}

func (r *repo) Restore(ctx context.Context, id int64) error {
	_, err := r.RestoreBatch(ctx, []int64{id})
	return err
}

// RestoreBatch moves trash entries back to their source tables. All
// inserts run before any trash row is deleted, so a mid-batch failure
// rolls back without losing entries. PROMPT-origin entries reclaim
// their original id when recorded, reuniting them with their history;
// FAVORITE-origin entries always get a fresh id.
func (r *repo) RestoreBatch(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one id required", ErrValidation)
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	restored, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		q, args := query.NewBuilder(projection).WhereIn("ID", values).Build()
		entries, err := repository.QueryMany(ctx, tx, q, args, scanEntry)
		if err != nil {
			return 0, fmt.Errorf("fetch trash entries: %w", err)
		}
		if len(entries) == 0 {
			return 0, ErrNotFound
		}

		for _, e := range entries {
			if err := restoreEntry(ctx, tx, e); err != nil {
				return 0, err
			}
		}

		deleteQ := fmt.Sprintf("DELETE FROM trash WHERE id IN (%s)", inClause(len(entries), 1))
		deleteArgs := make([]any, len(entries))
		for i, e := range entries {
			deleteArgs[i] = e.ID
		}
		if _, err := tx.ExecContext(ctx, deleteQ, deleteArgs...); err != nil {
			return 0, fmt.Errorf("delete trash entries: %w", err)
		}

		return len(entries), nil
	})

	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrRestoreClash)
	}

	r.logger.Info("restored from trash", "requested", len(ids), "restored", restored)
	return restored, nil
}

func (r *repo) PermanentDelete(ctx context.Context, id int64) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM trash WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrRestoreClash)
	}

	r.logger.Info("permanently deleted", "trash_id", id)
	return nil
}

func (r *repo) PermanentDeleteBatch(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: at least one id required", ErrValidation)
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	q := fmt.Sprintf("DELETE FROM trash WHERE id IN (%s)", inClause(len(ids), 1))
	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("purge trash: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	r.logger.Info("purged trash", "requested", len(ids), "deleted", deleted)
	return int(deleted), nil
}

func restoreEntry(ctx context.Context, tx *sql.Tx, e Entry) error {
	if e.OriginType == OriginFavorite {
		q := fmt.Sprintf(`
			INSERT INTO favorite_prompts(user_id, prompt_id, %s, version, created_at)
			VALUES ($1, NULL, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			contentColumns)

		_, err := tx.ExecContext(ctx, q,
			e.UserID, e.CoreTheme, e.Hair, e.Pose, e.Outfit, e.Atmosphere,
			e.Gaze, e.Makeup, e.Background, e.Details, e.AspectRatio,
			e.FinalPrompt, e.Version, e.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("restore favorite from entry %d: %w", e.ID, err)
		}
		return nil
	}

	// PROMPT or unset origin restores as a prompt
	id := uuid.New()
	if e.ItemUID != nil {
		id = *e.ItemUID
	}

	q := fmt.Sprintf(`
		INSERT INTO prompts(id, user_id, %s, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		contentColumns)

	_, err := tx.ExecContext(ctx, q,
		id, e.UserID, e.CoreTheme, e.Hair, e.Pose, e.Outfit, e.Atmosphere,
		e.Gaze, e.Makeup, e.Background, e.Details, e.AspectRatio,
		e.FinalPrompt, e.Version, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("restore prompt from entry %d: %w", e.ID, err)
	}
	return nil
}
