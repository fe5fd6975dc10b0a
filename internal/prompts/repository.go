package prompts

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

const promptColumns = `id, user_id, core_theme, hair, pose, outfit, atmosphere,
		gaze, makeup, background, details, aspect_ratio, final_prompt, version, created_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CoreTheme", "FinalPrompt")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Prompt, error) {
	if err := cmd.Attributes.Validate(); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO prompts(user_id, core_theme, hair, pose, outfit, atmosphere,
			gaze, makeup, background, details, aspect_ratio, final_prompt, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1)
		RETURNING %s`, promptColumns)

	a := cmd.Attributes
	args := []any{
		userID, a.CoreTheme, a.Hair, a.Pose, a.Outfit, a.Atmosphere,
		a.Gaze, a.Makeup, a.Background, a.Details, a.AspectRatio,
		resolveFinalPrompt(a, cmd.FinalPrompt),
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("prompt created", "id", p.ID, "user", p.UserID)
	return &p, nil
}

// Update replaces a prompt's content in a single transaction: the
// pre-update state is archived to prompt_histories under its current
// version, then the row is rewritten with version+1 guarded by a
// version match. A concurrent update losing the race surfaces as
// ErrConflict, and a failed archival aborts the whole update.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	if err := cmd.Attributes.Validate(); err != nil {
		return nil, err
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		current, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanPrompt)
		if err != nil {
			return Prompt{}, err
		}

		if err := archiveSnapshot(ctx, tx, current); err != nil {
			return Prompt{}, fmt.Errorf("archive snapshot: %w", err)
		}

		updateQ := fmt.Sprintf(`
			UPDATE prompts
			SET core_theme = $1, hair = $2, pose = $3, outfit = $4,
				atmosphere = $5, gaze = $6, makeup = $7, background = $8,
				details = $9, aspect_ratio = $10, final_prompt = $11,
				version = version + 1
			WHERE id = $12 AND version = $13
			RETURNING %s`, promptColumns)

		a := cmd.Attributes
		args := []any{
			a.CoreTheme, a.Hair, a.Pose, a.Outfit, a.Atmosphere,
			a.Gaze, a.Makeup, a.Background, a.Details, a.AspectRatio,
			resolveFinalPrompt(a, cmd.FinalPrompt),
			id, current.Version,
		}

		updated, err := repository.QueryOne(ctx, tx, updateQ, args, scanPrompt)
		if errors.Is(err, sql.ErrNoRows) {
			// row existed moments ago; the version guard lost a race
			return Prompt{}, ErrConflict
		}
		return updated, err
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("prompt updated", "id", p.ID, "version", p.Version)
	return &p, nil
}

func (r *repo) Duplicate(ctx context.Context, userID, id uuid.UUID) (*Prompt, error) {
	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		findQ, findArgs := query.NewBuilder(projection).BuildSingle("ID", id)
		source, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanPrompt)
		if err != nil {
			return Prompt{}, err
		}

		q := fmt.Sprintf(`
			INSERT INTO prompts(user_id, core_theme, hair, pose, outfit, atmosphere,
				gaze, makeup, background, details, aspect_ratio, final_prompt, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1)
			RETURNING %s`, promptColumns)

		a := source.Attributes
		args := []any{
			userID, a.CoreTheme + " (Copy)", a.Hair, a.Pose, a.Outfit,
			a.Atmosphere, a.Gaze, a.Makeup, a.Background, a.Details,
			a.AspectRatio, source.FinalPrompt,
		}

		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrConflict)
	}

	r.logger.Info("prompt duplicated", "source", id, "id", p.ID)
	return &p, nil
}

// Rollback restores a history snapshot's content through the standard
// update path, so the pre-rollback state is archived and the version
// keeps climbing. The snapshot itself is never renumbered or removed.
// Rolling back to the current version is legal even though the live
// state has no history row yet: it rewrites the prompt with its own
// content, archiving it and bumping the version like any other update.
func (r *repo) Rollback(ctx context.Context, id uuid.UUID, version int) (*Prompt, error) {
	current, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	cmd := UpdateCommand{
		Attributes:  current.Attributes,
		FinalPrompt: current.FinalPrompt,
	}

	if version != current.Version {
		snapshot, err := r.FindVersion(ctx, id, version)
		if err != nil {
			return nil, err
		}
		cmd = UpdateCommand{
			Attributes:  snapshot.Attributes,
			FinalPrompt: snapshot.FinalPrompt,
		}
	}

	p, err := r.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompt rolled back", "id", id, "to_version", version, "new_version", p.Version)
	return p, nil
}

func (r *repo) History(ctx context.Context, id uuid.UUID) ([]Snapshot, error) {
	qb := query.NewBuilder(historyProjection, query.SortField{Field: "Version", Descending: true}).
		WhereEquals("PromptID", id)

	q, args := qb.Build()
	snapshots, err := repository.QueryMany(ctx, r.db, q, args, scanSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return snapshots, nil
}

func (r *repo) FindVersion(ctx context.Context, id uuid.UUID, version int) (*Snapshot, error) {
	qb := query.NewBuilder(historyProjection).
		WhereEquals("PromptID", id).
		WhereEquals("Version", version)

	q, args := qb.Build()
	snapshot, err := repository.QueryOne(ctx, r.db, q, args, scanSnapshot)
	if err != nil {
		return nil, repository.MapError(err, ErrVersionNotFound, ErrConflict)
	}
	return &snapshot, nil
}

// Merge fetches the requested prompts, preserves the request order, and
// joins their final texts into a single export. Ids that no longer
// exist are skipped; an entirely unresolvable request is ErrNotFound.
func (r *repo) Merge(ctx context.Context, ids []uuid.UUID) (string, error) {
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: at least one prompt id required", ErrValidation)
	}

	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}

	q, args := query.NewBuilder(projection).WhereIn("ID", values).Build()
	records, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return "", fmt.Errorf("query prompts: %w", err)
	}
	if len(records) == 0 {
		return "", ErrNotFound
	}

	byID := make(map[uuid.UUID]Prompt, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}

	ordered := make([]Prompt, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return MergeFinalPrompts(ordered), nil
}

func archiveSnapshot(ctx context.Context, tx *sql.Tx, p Prompt) error {
	q := `
		INSERT INTO prompt_histories(prompt_id, core_theme, hair, pose, outfit,
			atmosphere, gaze, makeup, background, details, aspect_ratio,
			final_prompt, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := tx.ExecContext(ctx, q,
		p.ID, p.CoreTheme, p.Hair, p.Pose, p.Outfit, p.Atmosphere,
		p.Gaze, p.Makeup, p.Background, p.Details, p.AspectRatio,
		p.FinalPrompt, p.Version,
	)
	return err
}
