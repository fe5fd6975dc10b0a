package prompts_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"promptvault/internal/prompts"
	"promptvault/pkg/pagination"
	"promptvault/pkg/sqltest"
)

var promptCols = []string{
	"id", "user_id", "core_theme", "hair", "pose", "outfit", "atmosphere",
	"gaze", "makeup", "background", "details", "aspect_ratio",
	"final_prompt", "version", "created_at",
}

var historyCols = []string{
	"id", "prompt_id", "core_theme", "hair", "pose", "outfit", "atmosphere",
	"gaze", "makeup", "background", "details", "aspect_ratio",
	"final_prompt", "version", "archived_at",
}

func promptRow(id, userID uuid.UUID, theme string, version int64) []driver.Value {
	return []driver.Value{
		id.String(), userID.String(), theme, "", "", "", "", "", "", "", "",
		"1:1", theme + " --ar 1:1", version, time.Now().UTC(),
	}
}

func historyRow(promptID uuid.UUID, theme string, version int64) []driver.Value {
	return []driver.Value{
		uuid.NewString(), promptID.String(), theme, "", "", "", "", "", "", "", "",
		"1:1", theme + " --ar 1:1", version, time.Now().UTC(),
	}
}

func scriptedSystem(t *testing.T, script *sqltest.Script) prompts.System {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := script.DB()
	t.Cleanup(func() { db.Close() })
	return prompts.New(db, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestUpdateArchivesThenBumpsUnderVersionGuard(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()

	fetch := &sqltest.Step{
		Match:   "FROM public.prompts p",
		Columns: promptCols,
		Rows:    [][]driver.Value{promptRow(id, userID, "harbor at dusk", 3)},
	}
	archive := &sqltest.Step{Match: "INSERT INTO prompt_histories", Affected: 1}
	update := &sqltest.Step{
		Match:   "UPDATE prompts",
		Columns: promptCols,
		Rows:    [][]driver.Value{promptRow(id, userID, "harbor at night", 4)},
	}
	script := sqltest.NewScript(fetch, archive, update)
	sys := scriptedSystem(t, script)

	cmd := prompts.UpdateCommand{
		Attributes: prompts.Attributes{CoreTheme: "harbor at night", AspectRatio: "1:1"},
	}
	p, err := sys.Update(context.Background(), id, cmd)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if p.Version != 4 {
		t.Errorf("Version = %d, want 4", p.Version)
	}

	// the archive carries the pre-update content under the current version
	if got := archive.Args[0]; got != id.String() {
		t.Errorf("archive prompt_id = %v, want %v", got, id)
	}
	if got := archive.Args[1]; got != "harbor at dusk" {
		t.Errorf("archive core_theme = %v, want pre-update content", got)
	}
	if got := archive.Args[12]; got != int64(3) {
		t.Errorf("archive version = %v, want 3", got)
	}

	// the rewrite is guarded by the fetched version
	if got := update.Args[0]; got != "harbor at night" {
		t.Errorf("update core_theme = %v, want new content", got)
	}
	if got := update.Args[11]; got != id.String() {
		t.Errorf("update id = %v, want %v", got, id)
	}
	if got := update.Args[12]; got != int64(3) {
		t.Errorf("update version guard = %v, want 3", got)
	}

	if script.Committed != 1 {
		t.Errorf("Committed = %d, want 1", script.Committed)
	}
}

func TestUpdateLosingVersionRaceIsConflict(t *testing.T) {
	id := uuid.New()

	script := sqltest.NewScript(
		&sqltest.Step{
			Match:   "FROM public.prompts p",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, uuid.New(), "harbor at dusk", 3)},
		},
		&sqltest.Step{Match: "INSERT INTO prompt_histories", Affected: 1},
		&sqltest.Step{Match: "UPDATE prompts", Columns: promptCols},
	)
	sys := scriptedSystem(t, script)

	cmd := prompts.UpdateCommand{
		Attributes: prompts.Attributes{CoreTheme: "harbor at night", AspectRatio: "1:1"},
	}
	_, err := sys.Update(context.Background(), id, cmd)
	if !errors.Is(err, prompts.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if script.Committed != 0 {
		t.Errorf("Committed = %d, want 0", script.Committed)
	}
	if script.RolledBack == 0 {
		t.Error("transaction was not rolled back")
	}
}

func TestDuplicateCopiesWithSuffixAndVersionOne(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()
	copyID := uuid.New()

	fetch := &sqltest.Step{
		Match:   "FROM public.prompts p",
		Columns: promptCols,
		Rows:    [][]driver.Value{promptRow(id, uuid.New(), "sunset ridge", 7)},
	}
	insert := &sqltest.Step{
		Match:   "INSERT INTO prompts",
		Columns: promptCols,
		Rows:    [][]driver.Value{promptRow(copyID, owner, "sunset ridge (Copy)", 1)},
	}
	script := sqltest.NewScript(fetch, insert)
	sys := scriptedSystem(t, script)

	p, err := sys.Duplicate(context.Background(), owner, id)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if got := insert.Args[0]; got != owner.String() {
		t.Errorf("insert user_id = %v, want new owner %v", got, owner)
	}
	if got := insert.Args[1]; got != "sunset ridge (Copy)" {
		t.Errorf("insert core_theme = %v, want suffixed copy", got)
	}
	if p.Version != 1 {
		t.Errorf("Version = %d, want reset to 1", p.Version)
	}
}

func TestRollbackRestoresSnapshotThroughUpdate(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()

	script := sqltest.NewScript(
		&sqltest.Step{
			Match:   "FROM public.prompts p",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, userID, "new theme", 5)},
		},
		&sqltest.Step{
			Match:   "FROM public.prompt_histories h",
			Columns: historyCols,
			Rows:    [][]driver.Value{historyRow(id, "old theme", 2)},
		},
		&sqltest.Step{
			Match:   "FROM public.prompts p",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, userID, "new theme", 5)},
		},
		&sqltest.Step{Match: "INSERT INTO prompt_histories", Affected: 1},
		&sqltest.Step{
			Match:   "UPDATE prompts",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, userID, "old theme", 6)},
		},
	)
	sys := scriptedSystem(t, script)

	p, err := sys.Rollback(context.Background(), id, 2)
	if err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if p.Version != 6 {
		t.Errorf("Version = %d, want 6", p.Version)
	}
	if p.CoreTheme != "old theme" {
		t.Errorf("CoreTheme = %q, want snapshot content", p.CoreTheme)
	}
}

func TestRollbackToCurrentVersionSkipsHistoryLookup(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()

	archive := &sqltest.Step{Match: "INSERT INTO prompt_histories", Affected: 1}
	update := &sqltest.Step{
		Match:   "UPDATE prompts",
		Columns: promptCols,
		Rows:    [][]driver.Value{promptRow(id, userID, "current theme", 6)},
	}
	script := sqltest.NewScript(
		&sqltest.Step{
			Match:   "FROM public.prompts p",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, userID, "current theme", 5)},
		},
		&sqltest.Step{
			Match:   "FROM public.prompts p",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, userID, "current theme", 5)},
		},
		archive,
		update,
	)
	sys := scriptedSystem(t, script)

	p, err := sys.Rollback(context.Background(), id, 5)
	if err != nil {
		t.Fatalf("Rollback to current version: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if p.Version != 6 {
		t.Errorf("Version = %d, want 6", p.Version)
	}
	if got := archive.Args[1]; got != "current theme" {
		t.Errorf("archive core_theme = %v, want live content", got)
	}
	if got := archive.Args[12]; got != int64(5) {
		t.Errorf("archive version = %v, want 5", got)
	}
}

func TestRollbackMissingVersionNotFound(t *testing.T) {
	id := uuid.New()

	script := sqltest.NewScript(
		&sqltest.Step{
			Match:   "FROM public.prompts p",
			Columns: promptCols,
			Rows:    [][]driver.Value{promptRow(id, uuid.New(), "theme", 5)},
		},
		&sqltest.Step{
			Match:   "FROM public.prompt_histories h",
			Columns: historyCols,
		},
	)
	sys := scriptedSystem(t, script)

	_, err := sys.Rollback(context.Background(), id, 9)
	if !errors.Is(err, prompts.ErrVersionNotFound) {
		t.Fatalf("err = %v, want ErrVersionNotFound", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}
}
