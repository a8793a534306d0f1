package services

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

// CurriculumMetadata is what the inferencer can guess about an uploaded
// curriculum before anything is persisted. Absent hints stay empty and
// downstream code falls back to the raw codes.
type CurriculumMetadata struct {
	SubjectHint      string   `json:"subjectHint,omitempty"`
	FrameworkHint    string   `json:"frameworkHint,omitempty"`
	GradeLevel       string   `json:"gradeLevel,omitempty"`
	HierarchyPattern string   `json:"hierarchyPattern"`
	ContentAreas     []string `json:"contentAreas"`
}

var gradePattern = regexp.MustCompile(`grade\s*(\d+|k|kindergarten)`)

// subjectKeywords and frameworkKeywords are checked in declaration order;
// the first matching group wins.
var subjectKeywords = []struct {
	words []string
	name  string
}{
	{[]string{"math", "number", "algebra"}, "Mathematics"},
	{[]string{"science", "chemistry", "biology"}, "Science"},
	{[]string{"english", "reading", "writing"}, "English Language Arts"},
	{[]string{"social", "history", "geography"}, "Social Studies"},
}

var frameworkKeywords = []struct {
	words []string
	name  string
}{
	{[]string{"virginia", "va doe"}, "Virginia Department of Education"},
	{[]string{"common core", "ccss"}, "Common Core State Standards"},
	{[]string{"next generation", "ngss"}, "Next Generation Science Standards"},
}

var hierarchyPatterns = map[StructureKind]string{
	StructureStrands:  "strand -> standard -> subStandard -> subLesson",
	StructureDomains:  "domain -> cluster -> standard -> lesson",
	StructureUnits:    "unit -> topic -> objective -> activity",
	StructureFlexible: "flexible -> adaptive -> content -> item",
}

// InferMetadata mines subject, framework and grade hints out of the raw
// curriculum object. An explicit "metadata" block takes precedence over the
// keyword scan (first writer wins); the scan never overwrites a set hint.
func InferMetadata(data map[string]any) CurriculumMetadata {
	meta := CurriculumMetadata{}

	if block, ok := data["metadata"].(map[string]any); ok {
		meta.SubjectHint = firstNonEmpty(stringAt(block, "subjectHint"), stringAt(block, "subject"))
		meta.FrameworkHint = firstNonEmpty(stringAt(block, "frameworkHint"), stringAt(block, "framework"))
		meta.GradeLevel = firstNonEmpty(stringAt(block, "gradeLevel"), stringAt(block, "grade"))
	}

	blob := ""
	if raw, err := json.Marshal(data); err == nil {
		blob = strings.ToLower(string(raw))
	}

	if meta.SubjectHint == "" {
		for _, group := range subjectKeywords {
			if containsAny(blob, group.words) {
				meta.SubjectHint = group.name
				break
			}
		}
	}

	if meta.FrameworkHint == "" {
		for _, group := range frameworkKeywords {
			if containsAny(blob, group.words) {
				meta.FrameworkHint = group.name
				break
			}
		}
	}

	if meta.GradeLevel == "" {
		if m := gradePattern.FindStringSubmatch(blob); m != nil {
			meta.GradeLevel = normalizeGrade(m[1])
		} else if strings.Contains(blob, "kindergarten") {
			meta.GradeLevel = "K"
		}
	}

	kind := DetectStructure(data)
	meta.HierarchyPattern = hierarchyPatterns[kind]
	meta.ContentAreas = contentAreaKeys(data, kind)

	return meta
}

func normalizeGrade(token string) string {
	if token == "k" || token == "kindergarten" {
		return "K"
	}
	return token
}

// contentAreaKeys lists the keys of the matched container, or else the
// first 10 top-level keys when only the flexible fallback applies.
func contentAreaKeys(data map[string]any, kind StructureKind) []string {
	var containerKey string
	switch kind {
	case StructureStrands:
		containerKey = "strands"
	case StructureDomains:
		containerKey = "domains"
	case StructureUnits:
		containerKey = "units"
	}

	if containerKey != "" {
		if container, ok := data[containerKey].(map[string]any); ok {
			return sortedKeys(container)
		}
	}

	keys := []string{}
	for _, key := range sortedKeys(data) {
		if strings.HasPrefix(key, "_") || key == "metadata" {
			continue
		}
		keys = append(keys, key)
		if len(keys) == 10 {
			break
		}
	}
	return keys
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func stringAt(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
