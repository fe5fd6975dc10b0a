package trash_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"promptvault/internal/trash"
	"promptvault/pkg/pagination"
	"promptvault/pkg/routes"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"entry not found", trash.ErrNotFound, http.StatusNotFound},
		{"source not found", trash.ErrSourceNotFound, http.StatusNotFound},
		{"validation", trash.ErrValidation, http.StatusBadRequest},
		{"restore clash", trash.ErrRestoreClash, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("batch: %w", trash.ErrValidation), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trash.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

type fakeSystem struct {
	trash.System

	softDeleted  []uuid.UUID
	restored     []int64
	purged       []int64
	softErr      error
	restoreErr   error
	batchMoved   int
	batchRestore int
}

func (f *fakeSystem) SoftDeletePrompt(ctx context.Context, id uuid.UUID) (*trash.Entry, error) {
	if f.softErr != nil {
		return nil, f.softErr
	}
	f.softDeleted = append(f.softDeleted, id)
	return &trash.Entry{ID: 1, OriginType: trash.OriginPrompt, ItemUID: &id}, nil
}

func (f *fakeSystem) SoftDeleteFavorite(ctx context.Context, id uuid.UUID) (*trash.Entry, error) {
	f.softDeleted = append(f.softDeleted, id)
	return &trash.Entry{ID: 2, OriginType: trash.OriginFavorite, ItemUID: &id}, nil
}

func (f *fakeSystem) SoftDeletePrompts(ctx context.Context, ids []uuid.UUID) (int, error) {
	f.softDeleted = append(f.softDeleted, ids...)
	return f.batchMoved, nil
}

func (f *fakeSystem) Restore(ctx context.Context, id int64) error {
	if f.restoreErr != nil {
		return f.restoreErr
	}
	f.restored = append(f.restored, id)
	return nil
}

func (f *fakeSystem) RestoreBatch(ctx context.Context, ids []int64) (int, error) {
	if f.restoreErr != nil {
		return 0, f.restoreErr
	}
	f.restored = append(f.restored, ids...)
	return f.batchRestore, nil
}

func (f *fakeSystem) PermanentDelete(ctx context.Context, id int64) error {
	f.purged = append(f.purged, id)
	return nil
}

func testMux(t *testing.T, sys trash.System) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := trash.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes(), handler.SoftDeleteRoutes())
	return mux
}

func TestSoftDeletePromptRoute(t *testing.T) {
	sys := &fakeSystem{}
	mux := testMux(t, sys)
	id := uuid.New()

	req := httptest.NewRequest("DELETE", "/prompts/"+id.String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var entry trash.Entry
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.OriginType != trash.OriginPrompt {
		t.Errorf("OriginType = %q, want PROMPT", entry.OriginType)
	}
	if entry.ItemUID == nil || *entry.ItemUID != id {
		t.Errorf("ItemUID = %v, want %v", entry.ItemUID, id)
	}
}

func TestSoftDeleteMissingSource(t *testing.T) {
	mux := testMux(t, &fakeSystem{softErr: trash.ErrSourceNotFound})

	req := httptest.NewRequest("DELETE", "/prompts/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSoftDeleteBatchRoute(t *testing.T) {
	sys := &fakeSystem{batchMoved: 2}
	mux := testMux(t, sys)

	body := `{"ids":["` + uuid.NewString() + `","` + uuid.NewString() + `"]}`
	req := httptest.NewRequest("POST", "/trash/prompts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var result trash.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Affected != 2 {
		t.Errorf("Affected = %d, want 2", result.Affected)
	}
	if len(sys.softDeleted) != 2 {
		t.Errorf("soft deleted %d ids, want 2", len(sys.softDeleted))
	}
}

func TestRestoreRoute(t *testing.T) {
	sys := &fakeSystem{}
	mux := testMux(t, sys)

	req := httptest.NewRequest("POST", "/trash/42/restore", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}
	if len(sys.restored) != 1 || sys.restored[0] != 42 {
		t.Errorf("restored = %v, want [42]", sys.restored)
	}
}

func TestRestoreInvalidID(t *testing.T) {
	mux := testMux(t, &fakeSystem{})

	req := httptest.NewRequest("POST", "/trash/abc/restore", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRestoreClashConflict(t *testing.T) {
	mux := testMux(t, &fakeSystem{restoreErr: trash.ErrRestoreClash})

	req := httptest.NewRequest("POST", "/trash/7/restore", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestPurgeRoute(t *testing.T) {
	sys := &fakeSystem{}
	mux := testMux(t, sys)

	req := httptest.NewRequest("DELETE", "/trash/9", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(sys.purged) != 1 || sys.purged[0] != 9 {
		t.Errorf("purged = %v, want [9]", sys.purged)
	}
}
