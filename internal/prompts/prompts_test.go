package prompts_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"promptvault/internal/prompts"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"version not found", prompts.ErrVersionNotFound, http.StatusNotFound},
		{"validation", prompts.ErrValidation, http.StatusBadRequest},
		{"conflict", prompts.ErrConflict, http.StatusConflict},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", prompts.ErrNotFound), http.StatusNotFound},
		{"wrapped validation", fmt.Errorf("bad input: %w", prompts.ErrValidation), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestAttributesValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*prompts.Attributes)
		wantErr bool
	}{
		{"valid", func(a *prompts.Attributes) {}, false},
		{"blank core theme", func(a *prompts.Attributes) { a.CoreTheme = "   " }, true},
		{"empty core theme", func(a *prompts.Attributes) { a.CoreTheme = "" }, true},
		{"unknown aspect ratio", func(a *prompts.Attributes) { a.AspectRatio = "16:9" }, true},
		{"empty aspect ratio", func(a *prompts.Attributes) { a.AspectRatio = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fullAttributes()
			tt.mutate(&a)

			err := a.Validate()
			if tt.wantErr {
				if !errors.Is(err, prompts.ErrValidation) {
					t.Errorf("Validate() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestEveryAcceptedAspectRatioValidates(t *testing.T) {
	for _, ratio := range prompts.AspectRatios {
		a := fullAttributes()
		a.AspectRatio = ratio
		if err := a.Validate(); err != nil {
			t.Errorf("ratio %q rejected: %v", ratio, err)
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"core_theme":   []string{"noir"},
		"aspect_ratio": []string{"9:16"},
	}

	f := prompts.FiltersFromQuery(values)

	if f.CoreTheme == nil || *f.CoreTheme != "noir" {
		t.Errorf("CoreTheme = %v, want noir", f.CoreTheme)
	}
	if f.AspectRatio == nil || *f.AspectRatio != "9:16" {
		t.Errorf("AspectRatio = %v, want 9:16", f.AspectRatio)
	}
	if f.UserID != nil {
		t.Errorf("UserID = %v, want nil", f.UserID)
	}
}

func TestFiltersFromQueryEmpty(t *testing.T) {
	f := prompts.FiltersFromQuery(url.Values{})
	if f.CoreTheme != nil || f.AspectRatio != nil || f.UserID != nil {
		t.Errorf("empty query should yield zero filters: %+v", f)
	}
}
