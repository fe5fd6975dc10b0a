package query_test

import (
	"reflect"
	"testing"

	"promptvault/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "prompts", "p").
		Project("id", "id").
		Project("core_theme", "core_theme").
		Project("final_prompt", "final_prompt").
		Project("updated_at", "updated_at")
}

func TestBuild(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at FROM public.prompts p"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuildWithConditions(t *testing.T) {
	theme := "noir"
	sql, args := query.NewBuilder(testProjection()).
		WhereContains("core_theme", &theme).
		WhereEquals("id", 42).
		Build()

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at " +
		"FROM public.prompts p WHERE p.core_theme ILIKE $1 AND p.id = $2"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	wantArgs := []any{"%noir%", 42}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "updated_at", Descending: true}).
		BuildPage(3, 10)

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at " +
		"FROM public.prompts p ORDER BY p.updated_at DESC LIMIT 10 OFFSET 20"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestBuildCount(t *testing.T) {
	search := "cat"
	sql, args := query.NewBuilder(testProjection()).
		WhereSearch(&search, "core_theme", "final_prompt").
		BuildCount()

	want := "SELECT COUNT(*) FROM public.prompts p " +
		"WHERE (p.core_theme ILIKE $1 OR p.final_prompt ILIKE $2)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 2 || args[0] != "%cat%" || args[1] != "%cat%" {
		t.Errorf("args = %v", args)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("id", 7)

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at " +
		"FROM public.prompts p WHERE p.id = $1"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != 7 {
		t.Errorf("args = %v, want [7]", args)
	}
}

func TestWhereIn(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).
		WhereIn("id", []any{1, 2, 3}).
		Build()

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at " +
		"FROM public.prompts p WHERE p.id IN ($1, $2, $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Errorf("args = %v, want 3 values", args)
	}
}

func TestConditionsSkipEmptyValues(t *testing.T) {
	empty := ""
	sql, args := query.NewBuilder(testProjection()).
		WhereContains("core_theme", nil).
		WhereContains("final_prompt", &empty).
		WhereEquals("id", nil).
		WhereIn("id", nil).
		WhereSearch(nil, "core_theme").
		Build()

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at FROM public.prompts p"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single ascending", "core_theme", []query.SortField{{Field: "core_theme"}}},
		{"descending prefix", "-updated_at", []query.SortField{{Field: "updated_at", Descending: true}}},
		{
			"mixed with spaces", "core_theme, -updated_at",
			[]query.SortField{{Field: "core_theme"}, {Field: "updated_at", Descending: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOrderByOverridesDefault(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "updated_at", Descending: true}).
		OrderByFields([]query.SortField{{Field: "core_theme"}}).
		Build()

	want := "SELECT p.id, p.core_theme, p.final_prompt, p.updated_at " +
		"FROM public.prompts p ORDER BY p.core_theme ASC"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}
