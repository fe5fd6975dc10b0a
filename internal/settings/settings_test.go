package settings_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"promptvault/internal/settings"
	"promptvault/pkg/routes"
)

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{settings.KeySystemInstruction, true},
		{settings.KeyImageAnalysisInstruction, true},
		{"random_key", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := settings.ValidKey(tt.key); got != tt.want {
			t.Errorf("ValidKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDefaultsNonEmpty(t *testing.T) {
	for _, key := range settings.Keys {
		if settings.Default(key) == "" {
			t.Errorf("Default(%q) is empty", key)
		}
	}
	if settings.Default("unknown") != "" {
		t.Error("Default(unknown) should be empty")
	}
}

type fakeSystem struct {
	settings.System

	stored map[string]string
}

func (f *fakeSystem) Get(ctx context.Context, key string) (*settings.Setting, error) {
	if !settings.ValidKey(key) {
		return nil, settings.ErrUnknownKey
	}
	if v, ok := f.stored[key]; ok {
		return &settings.Setting{Key: key, Value: v, UpdatedAt: time.Now()}, nil
	}
	return &settings.Setting{Key: key, Value: settings.Default(key)}, nil
}

func (f *fakeSystem) Set(ctx context.Context, key, value string) (*settings.Setting, error) {
	if !settings.ValidKey(key) {
		return nil, settings.ErrUnknownKey
	}
	if f.stored == nil {
		f.stored = make(map[string]string)
	}
	f.stored[key] = value
	return &settings.Setting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func testMux(t *testing.T, sys settings.System) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := settings.NewHandler(sys, logger)

	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())
	return mux
}

func TestHandlerGetFallsBackToDefault(t *testing.T) {
	mux := testMux(t, &fakeSystem{})

	req := httptest.NewRequest("GET", "/settings/"+settings.KeySystemInstruction, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var s settings.Setting
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Value != settings.Default(settings.KeySystemInstruction) {
		t.Errorf("Value = %q, want compiled-in default", s.Value)
	}
}

func TestHandlerSetThenGet(t *testing.T) {
	sys := &fakeSystem{}
	mux := testMux(t, sys)

	body := `{"value":"custom instruction"}`
	req := httptest.NewRequest("PUT", "/settings/"+settings.KeySystemInstruction, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/settings/"+settings.KeySystemInstruction, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var s settings.Setting
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Value != "custom instruction" {
		t.Errorf("Value = %q, want custom instruction", s.Value)
	}
}

func TestHandlerUnknownKey(t *testing.T) {
	mux := testMux(t, &fakeSystem{})

	req := httptest.NewRequest("GET", "/settings/nope", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
