package services

import (
	"fmt"
	"testing"
)

func TestInferSubjectKeywordPrecedence(t *testing.T) {
	// math is checked before science, so a blob with both infers Mathematics.
	data := map[string]any{
		"description": "math and science for grade 6",
	}
	meta := InferMetadata(data)
	if meta.SubjectHint != "Mathematics" {
		t.Fatalf("expected Mathematics got %q", meta.SubjectHint)
	}
	if meta.GradeLevel != "6" {
		t.Fatalf("expected grade 6 got %q", meta.GradeLevel)
	}
}

func TestInferSubjectCategories(t *testing.T) {
	cases := map[string]string{
		"algebra and number lines":  "Mathematics",
		"chemistry and biology lab": "Science",
		"reading and writing":       "English Language Arts",
		"history and geography":     "Social Studies",
	}
	for blob, want := range cases {
		meta := InferMetadata(map[string]any{"description": blob})
		if meta.SubjectHint != want {
			t.Fatalf("%q: expected %q got %q", blob, want, meta.SubjectHint)
		}
	}
}

func TestInferFramework(t *testing.T) {
	cases := map[string]string{
		"aligned to Virginia SOL":        "Virginia Department of Education",
		"per VA DOE guidance":            "Virginia Department of Education",
		"CCSS aligned curriculum":        "Common Core State Standards",
		"next generation science module": "Next Generation Science Standards",
	}
	for blob, want := range cases {
		meta := InferMetadata(map[string]any{"note": blob})
		if meta.FrameworkHint != want {
			t.Fatalf("%q: expected %q got %q", blob, want, meta.FrameworkHint)
		}
	}
}

func TestInferGradeLevel(t *testing.T) {
	meta := InferMetadata(map[string]any{"title": "Grade 6 Mathematics"})
	if meta.GradeLevel != "6" {
		t.Fatalf("expected 6 got %q", meta.GradeLevel)
	}

	meta = InferMetadata(map[string]any{"title": "Kindergarten readiness"})
	if meta.GradeLevel != "K" {
		t.Fatalf("expected K got %q", meta.GradeLevel)
	}
}

// An explicit metadata block wins over the keyword scan (first writer wins).
func TestMetadataBlockTakesPrecedence(t *testing.T) {
	data := map[string]any{
		"metadata": map[string]any{
			"subject":   "Latin",
			"framework": "School Framework",
			"grade":     "8",
		},
		"description": "math curriculum aligned to common core for grade 3",
	}
	meta := InferMetadata(data)
	if meta.SubjectHint != "Latin" {
		t.Fatalf("expected Latin got %q", meta.SubjectHint)
	}
	if meta.FrameworkHint != "School Framework" {
		t.Fatalf("expected School Framework got %q", meta.FrameworkHint)
	}
	if meta.GradeLevel != "8" {
		t.Fatalf("expected 8 got %q", meta.GradeLevel)
	}
}

func TestHierarchyPatterns(t *testing.T) {
	cases := []struct {
		data map[string]any
		want string
	}{
		{map[string]any{"strands": map[string]any{}}, "strand -> standard -> subStandard -> subLesson"},
		{map[string]any{"domains": map[string]any{}}, "domain -> cluster -> standard -> lesson"},
		{map[string]any{"units": map[string]any{}}, "unit -> topic -> objective -> activity"},
		{map[string]any{"whatever": "x"}, "flexible -> adaptive -> content -> item"},
	}
	for _, tc := range cases {
		if got := InferMetadata(tc.data).HierarchyPattern; got != tc.want {
			t.Fatalf("expected %q got %q", tc.want, got)
		}
	}
}

func TestContentAreasFromContainer(t *testing.T) {
	data := map[string]any{
		"strands": map[string]any{
			"6.NS": map[string]any{},
			"6.CE": map[string]any{},
		},
	}
	meta := InferMetadata(data)
	if len(meta.ContentAreas) != 2 {
		t.Fatalf("expected 2 content areas got %v", meta.ContentAreas)
	}
}

func TestContentAreasFallbackCappedAtTen(t *testing.T) {
	data := map[string]any{}
	for i := 0; i < 14; i++ {
		data[fmt.Sprintf("area-%02d", i)] = map[string]any{}
	}
	meta := InferMetadata(data)
	if len(meta.ContentAreas) != 10 {
		t.Fatalf("expected cap of 10 got %d", len(meta.ContentAreas))
	}
}
