package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"promptvault/pkg/pagination"
	"promptvault/pkg/query"
	"promptvault/pkg/repository"
)

const favoriteColumns = `id, user_id, prompt_id, core_theme, hair, pose, outfit,
		atmosphere, gaze, makeup, background, details, aspect_ratio, final_prompt,
		version, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a favorite repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "favorites"),
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
) (*pagination.PageResult[Favorite], error) {
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
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanFavorite)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Favorite, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanFavorite)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

// Add copies the prompt's current content into a new favorite row with
// a fresh id owned by the acting user. The copy is field-by-field; no
// link back to the prompt's lifecycle is retained beyond PromptID.
func (r *repo) Add(ctx context.Context, userID, promptID uuid.UUID) (*Favorite, error) {
	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Favorite, error) {
		sourceQ := `
			SELECT core_theme, hair, pose, outfit, atmosphere, gaze, makeup,
				background, details, aspect_ratio, final_prompt, version
			FROM public.prompts WHERE id = $1`

		var (
			src     Favorite
			version int
		)
		err := tx.QueryRowContext(ctx, sourceQ, promptID).Scan(
			&src.CoreTheme, &src.Hair, &src.Pose, &src.Outfit,
			&src.Atmosphere, &src.Gaze, &src.Makeup, &src.Background,
			&src.Details, &src.AspectRatio, &src.FinalPrompt, &version,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return Favorite{}, ErrPromptNotFound
		}
		if err != nil {
			return Favorite{}, fmt.Errorf("fetch prompt: %w", err)
		}

		insertQ := fmt.Sprintf(`
			INSERT INTO favorite_prompts(user_id, prompt_id, core_theme, hair,
				pose, outfit, atmosphere, gaze, makeup, background, details,
				aspect_ratio, final_prompt, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING %s`, favoriteColumns)

		args := []any{
			userID, promptID, src.CoreTheme, src.Hair, src.Pose, src.Outfit,
			src.Atmosphere, src.Gaze, src.Makeup, src.Background, src.Details,
			src.AspectRatio, src.FinalPrompt, version,
		}

		return repository.QueryOne(ctx, tx, insertQ, args, scanFavorite)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrPromptNotFound, ErrDuplicate)
	}

	r.logger.Info("favorite added", "id", f.ID, "prompt", promptID, "user", userID)
	return &f, nil
}
