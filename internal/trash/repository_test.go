package trash_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"promptvault/internal/trash"
	"promptvault/pkg/pagination"
	"promptvault/pkg/sqltest"
)

var entryCols = []string{
	"id", "origin_type", "item_uid", "user_id", "core_theme", "hair", "pose",
	"outfit", "atmosphere", "gaze", "makeup", "background", "details",
	"aspect_ratio", "final_prompt", "version", "created_at", "deleted_at",
}

func entryRow(id int64, origin trash.OriginType, itemUID, userID uuid.UUID, theme string) []driver.Value {
	now := time.Now().UTC()
	return []driver.Value{
		id, string(origin), itemUID.String(), userID.String(), theme,
		"", "", "", "", "", "", "", "", "1:1", theme + " --ar 1:1",
		int64(3), now, now,
	}
}

func scriptedTrash(t *testing.T, script *sqltest.Script) trash.System {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := script.DB()
	t.Cleanup(func() { db.Close() })
	return trash.New(db, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestSoftDeleteMovesRowBeforeDeletingSource(t *testing.T) {
	promptID := uuid.New()
	userID := uuid.New()

	move := &sqltest.Step{
		Match:   "INSERT INTO trash",
		Columns: entryCols,
		Rows:    [][]driver.Value{entryRow(11, trash.OriginPrompt, promptID, userID, "harbor at dusk")},
	}
	del := &sqltest.Step{Match: "DELETE FROM prompts", Affected: 1}
	script := sqltest.NewScript(move, del)
	sys := scriptedTrash(t, script)

	e, err := sys.SoftDeletePrompt(context.Background(), promptID)
	if err != nil {
		t.Fatalf("SoftDeletePrompt: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if e.OriginType != trash.OriginPrompt {
		t.Errorf("OriginType = %q, want PROMPT", e.OriginType)
	}
	if e.ItemUID == nil || *e.ItemUID != promptID {
		t.Errorf("ItemUID = %v, want source id %v", e.ItemUID, promptID)
	}
	if got := move.Args[0]; got != string(trash.OriginPrompt) {
		t.Errorf("move origin arg = %v, want PROMPT", got)
	}
	if got := del.Args[0]; got != promptID.String() {
		t.Errorf("delete id arg = %v, want %v", got, promptID)
	}
	if script.Committed != 1 {
		t.Errorf("Committed = %d, want 1", script.Committed)
	}
}

func TestSoftDeleteUnknownSourceRollsBack(t *testing.T) {
	script := sqltest.NewScript(
		&sqltest.Step{Match: "INSERT INTO trash", Columns: entryCols},
	)
	sys := scriptedTrash(t, script)

	_, err := sys.SoftDeletePrompt(context.Background(), uuid.New())
	if !errors.Is(err, trash.ErrSourceNotFound) {
		t.Fatalf("err = %v, want ErrSourceNotFound", err)
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

func TestRestorePromptReclaimsRecordedID(t *testing.T) {
	itemUID := uuid.New()
	userID := uuid.New()

	fetch := &sqltest.Step{
		Match:   "FROM public.trash t",
		Columns: entryCols,
		Rows:    [][]driver.Value{entryRow(7, trash.OriginPrompt, itemUID, userID, "harbor at dusk")},
	}
	insert := &sqltest.Step{Match: "INSERT INTO prompts", Affected: 1}
	purge := &sqltest.Step{Match: "DELETE FROM trash", Affected: 1}
	script := sqltest.NewScript(fetch, insert, purge)
	sys := scriptedTrash(t, script)

	if err := sys.Restore(context.Background(), 7); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	// restored prompt keeps the id it had before deletion, so it
	// reunites with its history rows
	if got := insert.Args[0]; got != itemUID.String() {
		t.Errorf("restored prompt id = %v, want recorded %v", got, itemUID)
	}
	if got := insert.Args[1]; got != userID.String() {
		t.Errorf("restored user_id = %v, want %v", got, userID)
	}
	if got := purge.Args[0]; got != int64(7) {
		t.Errorf("purge trash id = %v, want 7", got)
	}
	if script.Committed != 1 {
		t.Errorf("Committed = %d, want 1", script.Committed)
	}
}

func TestRestoreFavoriteGetsFreshIdentity(t *testing.T) {
	itemUID := uuid.New()
	userID := uuid.New()

	insert := &sqltest.Step{Match: "INSERT INTO favorite_prompts", Affected: 1}
	script := sqltest.NewScript(
		&sqltest.Step{
			Match:   "FROM public.trash t",
			Columns: entryCols,
			Rows:    [][]driver.Value{entryRow(9, trash.OriginFavorite, itemUID, userID, "sunset ridge")},
		},
		insert,
		&sqltest.Step{Match: "DELETE FROM trash", Affected: 1},
	)
	sys := scriptedTrash(t, script)

	if err := sys.Restore(context.Background(), 9); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	// the favorite row never reuses the recorded id: prompt_id is
	// written as a literal NULL and the old id is not among the args
	if got := insert.Args[0]; got != userID.String() {
		t.Errorf("insert user_id = %v, want %v", got, userID)
	}
	for i, arg := range insert.Args {
		if arg == itemUID.String() {
			t.Errorf("arg %d reuses recorded item id %v", i, itemUID)
		}
	}
}

func TestRestoreBatchInsertsAllBeforePurging(t *testing.T) {
	promptUID := uuid.New()
	userID := uuid.New()

	purge := &sqltest.Step{Match: "DELETE FROM trash", Affected: 2}
	script := sqltest.NewScript(
		&sqltest.Step{
			Match:   "FROM public.trash t",
			Columns: entryCols,
			Rows: [][]driver.Value{
				entryRow(7, trash.OriginPrompt, promptUID, userID, "harbor at dusk"),
				entryRow(9, trash.OriginFavorite, uuid.New(), userID, "sunset ridge"),
			},
		},
		&sqltest.Step{Match: "INSERT INTO prompts", Affected: 1},
		&sqltest.Step{Match: "INSERT INTO favorite_prompts", Affected: 1},
		purge,
	)
	sys := scriptedTrash(t, script)

	restored, err := sys.RestoreBatch(context.Background(), []int64{7, 9})
	if err != nil {
		t.Fatalf("RestoreBatch: %v", err)
	}
	if err := script.Verify(); err != nil {
		t.Fatal(err)
	}

	if restored != 2 {
		t.Errorf("restored = %d, want 2", restored)
	}
	if len(purge.Args) != 2 || purge.Args[0] != int64(7) || purge.Args[1] != int64(9) {
		t.Errorf("purge args = %v, want [7 9]", purge.Args)
	}
	if script.Committed != 1 {
		t.Errorf("Committed = %d, want 1", script.Committed)
	}
}
