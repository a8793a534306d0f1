package services

import (
	"fmt"
	"strings"
)

// Intermediate records produced by the shape normalizers. The loader turns
// these into rows; keeping the normalizers pure makes every shape variant
// testable without a database.

type SubLessonRecord struct {
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Explanation string   `json:"explanation"`
	Examples    []string `json:"examples"`
	Order       int      `json:"order"`
}

type StandardRecord struct {
	Code        string            `json:"code"`
	Description string            `json:"description"`
	Order       int               `json:"order"`
	SubLessons  []SubLessonRecord `json:"sub_lessons"`
}

type ContentAreaRecord struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Grade       string           `json:"grade"`
	Order       int              `json:"order"`
	Standards   []StandardRecord `json:"standards"`
}

// NormalizeCurriculum dispatches on the detected shape and produces the
// canonical content area -> standard -> sub-lesson tree, order-preserving
// with zero-based order fields.
func NormalizeCurriculum(data map[string]any, kind StructureKind, meta CurriculumMetadata) []ContentAreaRecord {
	switch kind {
	case StructureStrands:
		return normalizeNested(data, meta, "strands", []string{"standards"}, []string{"sub_lessons", "lessons"})
	case StructureDomains:
		return normalizeNested(data, meta, "domains", []string{"clusters"}, []string{"standards", "lessons"})
	case StructureUnits:
		return normalizeNested(data, meta, "units", []string{"topics", "lessons"}, []string{"activities", "lessons"})
	default:
		return normalizeFlexible(data, meta)
	}
}

type entry struct {
	key   string
	value any
}

// normalizeNested covers the three structured variants, which differ only in
// their container key, their standard-level key, and which array holds the
// lessons. The units variant additionally accepts "lessons" at the standard
// level when no "topics" entry exists.
func normalizeNested(data map[string]any, meta CurriculumMetadata, containerKey string, standardKeys, lessonKeys []string) []ContentAreaRecord {
	container, ok := data[containerKey].(map[string]any)
	if !ok {
		// No container key: every top-level object value is one content area.
		container = map[string]any{}
		for key, value := range data {
			if strings.HasPrefix(key, "_") || key == "metadata" {
				continue
			}
			if _, isObj := value.(map[string]any); isObj {
				container[key] = value
			}
		}
	}

	areas := []ContentAreaRecord{}
	for i, areaEntry := range mapEntries(container) {
		areaObj, _ := areaEntry.value.(map[string]any)
		area := ContentAreaRecord{
			Code:        areaEntry.key,
			Name:        fieldOr(areaObj, "name", areaEntry.key),
			Description: fieldOr(areaObj, "description", ""),
			Grade:       meta.GradeLevel,
			Order:       i,
			Standards:   []StandardRecord{},
		}

		for j, stdEntry := range childEntries(areaObj, standardKeys, areaEntry.key) {
			std := StandardRecord{
				Code:       stdEntry.key,
				Order:      j,
				SubLessons: []SubLessonRecord{},
			}
			stdObj, isObj := stdEntry.value.(map[string]any)
			if isObj {
				std.Description = firstField(stdObj, "description", "text")
			} else if s, isStr := stdEntry.value.(string); isStr {
				std.Description = s
			}
			if std.Description == "" {
				std.Description = stdEntry.key
			}

			if isObj {
				for _, lessonKey := range lessonKeys {
					if lessons, found := stdObj[lessonKey].([]any); found {
						std.SubLessons = lessonRecords(lessons, std.Code)
						break
					}
				}
			}
			area.Standards = append(area.Standards, std)
		}
		areas = append(areas, area)
	}
	return areas
}

// normalizeFlexible turns every top-level object value into one content area
// with a single synthetic standard, then sweeps the object recursively for
// anything lesson-like: array elements are flattened in order, and any string
// longer than 10 characters becomes a single-item lesson.
func normalizeFlexible(data map[string]any, meta CurriculumMetadata) []ContentAreaRecord {
	areas := []ContentAreaRecord{}
	order := 0
	for _, topEntry := range mapEntries(data) {
		if strings.HasPrefix(topEntry.key, "_") || topEntry.key == "metadata" {
			continue
		}
		obj, ok := topEntry.value.(map[string]any)
		if !ok {
			continue
		}

		std := StandardRecord{
			Code:        topEntry.key,
			Description: fieldOr(obj, "description", topEntry.key),
			Order:       0,
			SubLessons:  []SubLessonRecord{},
		}
		collectFlexibleLessons(obj, topEntry.key, &std.SubLessons)

		areas = append(areas, ContentAreaRecord{
			Code:      topEntry.key,
			Name:      fieldOr(obj, "name", topEntry.key),
			Grade:     meta.GradeLevel,
			Order:     order,
			Standards: []StandardRecord{std},
		})
		order++
	}
	return areas
}

func collectFlexibleLessons(obj map[string]any, stdCode string, out *[]SubLessonRecord) {
	for _, e := range mapEntries(obj) {
		switch value := e.value.(type) {
		case []any:
			for _, item := range value {
				appendFlexibleLesson(item, stdCode, out)
			}
		case string:
			if len(value) > 10 {
				appendFlexibleLesson(value, stdCode, out)
			}
		case map[string]any:
			collectFlexibleLessons(value, stdCode, out)
		}
	}
}

func appendFlexibleLesson(item any, stdCode string, out *[]SubLessonRecord) {
	n := len(*out)
	switch v := item.(type) {
	case map[string]any:
		*out = append(*out, lessonFromObject(v, stdCode, n))
	case string:
		if strings.TrimSpace(v) == "" {
			return
		}
		*out = append(*out, SubLessonRecord{
			Title:       truncate(v, 100),
			Code:        fmt.Sprintf("%s.%d", stdCode, n+1),
			Explanation: v,
			Examples:    []string{},
			Order:       n,
		})
	}
}

func lessonRecords(items []any, stdCode string) []SubLessonRecord {
	records := []SubLessonRecord{}
	for _, item := range items {
		n := len(records)
		switch v := item.(type) {
		case map[string]any:
			records = append(records, lessonFromObject(v, stdCode, n))
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			records = append(records, SubLessonRecord{
				Title:       truncate(v, 100),
				Code:        fmt.Sprintf("%s.%d", stdCode, n+1),
				Explanation: v,
				Examples:    []string{},
				Order:       n,
			})
		}
	}
	return records
}

func lessonFromObject(obj map[string]any, stdCode string, order int) SubLessonRecord {
	title := firstField(obj, "title", "name")
	if title == "" {
		title = fmt.Sprintf("%s Activity %d", stdCode, order+1)
	}
	code := fieldOr(obj, "code", fmt.Sprintf("%s.%d", stdCode, order+1))
	explanation := firstField(obj, "explanation", "description")
	if explanation == "" {
		explanation = "No explanation provided"
	}
	return SubLessonRecord{
		Title:       truncate(title, 100),
		Code:        code,
		Explanation: explanation,
		Examples:    stringSlice(obj["examples"]),
		Order:       order,
	}
}

// childEntries resolves the standard-level container, which may be a keyed
// object or a plain array (array elements get codes from their own
// code/id/name field, or a positional fallback).
func childEntries(obj map[string]any, keys []string, parentCode string) []entry {
	if obj == nil {
		return nil
	}
	for _, key := range keys {
		switch v := obj[key].(type) {
		case map[string]any:
			return mapEntries(v)
		case []any:
			entries := make([]entry, 0, len(v))
			for i, item := range v {
				code := ""
				if m, ok := item.(map[string]any); ok {
					code = firstField(m, "code", "id", "name")
				}
				if code == "" {
					code = fmt.Sprintf("%s.%d", parentCode, i+1)
				}
				entries = append(entries, entry{key: code, value: item})
			}
			return entries
		}
	}
	return nil
}

func mapEntries(obj map[string]any) []entry {
	entries := make([]entry, 0, len(obj))
	for _, key := range sortedKeys(obj) {
		entries = append(entries, entry{key: key, value: obj[key]})
	}
	return entries
}

func fieldOr(obj map[string]any, key, fallback string) string {
	if obj != nil {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func firstField(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func stringSlice(v any) []string {
	out := []string{}
	if items, ok := v.([]any); ok {
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// truncate cuts to max characters, never mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
