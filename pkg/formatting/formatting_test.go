package formatting_test

import (
	"errors"
	"testing"

	"promptvault/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"1024", 1024, false},
		{"1KB", 1024, false},
		{"10MB", 10 * 1024 * 1024, false},
		{"1.5 GB", int64(1.5 * 1024 * 1024 * 1024), false},
		{"2gb", 2 * 1024 * 1024 * 1024, false},
		{"", 0, true},
		{"abc", 0, true},
		{"10XB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseBytes(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 0, "0 B"},
		{1024, 0, "1 KB"},
		{10 * 1024 * 1024, 0, "10 MB"},
		{1536, 1, "1.5 KB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}

type draftPayload struct {
	CoreTheme string `json:"core_theme"`
	Hair      string `json:"hair"`
}

func TestParse(t *testing.T) {
	t.Run("direct json", func(t *testing.T) {
		got, err := formatting.Parse[draftPayload](`{"core_theme":"noir portrait","hair":"short bob"}`)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got.CoreTheme != "noir portrait" || got.Hair != "short bob" {
			t.Errorf("Parse = %+v", got)
		}
	})

	t.Run("fenced json", func(t *testing.T) {
		content := "```json\n{\"core_theme\":\"beach scene\",\"hair\":\"\"}\n```"
		got, err := formatting.Parse[draftPayload](content)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got.CoreTheme != "beach scene" {
			t.Errorf("CoreTheme = %q", got.CoreTheme)
		}
	})

	t.Run("fence without language tag", func(t *testing.T) {
		content := "```\n{\"core_theme\":\"x\"}\n```"
		got, err := formatting.Parse[draftPayload](content)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if got.CoreTheme != "x" {
			t.Errorf("CoreTheme = %q", got.CoreTheme)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		_, err := formatting.Parse[draftPayload]("not json at all")
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("err = %v, want ErrParseFailed", err)
		}
	})
}
