package services

import (
	"fmt"
	"regexp"
	"strings"
)

// Records mined out of free text. StandardCode is the code of the standard
// whose look-ahead window the line fell into; it is a loose textual tag,
// not a foreign key.

type OfficialStandardRecord struct {
	StandardCode string `json:"standardCode"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	GradeLevel   string `json:"gradeLevel"`
	Subject      string `json:"subject"`
}

type TeachingStrategyRecord struct {
	StandardCode string `json:"standardCode"`
	Strategy     string `json:"strategy"`
	Category     string `json:"category"`
}

type BenchmarkActivityRecord struct {
	StandardCode string `json:"standardCode"`
	Description  string `json:"description"`
	ActivityType string `json:"activityType"`
}

type CommonMisconceptionRecord struct {
	StandardCode  string `json:"standardCode"`
	Misconception string `json:"misconception"`
	Correction    string `json:"correction"`
}

type EducationalContent struct {
	OfficialStandards    []OfficialStandardRecord    `json:"officialStandards"`
	TeachingStrategies   []TeachingStrategyRecord    `json:"teachingStrategies"`
	BenchmarkActivities  []BenchmarkActivityRecord   `json:"benchmarkActivities"`
	CommonMisconceptions []CommonMisconceptionRecord `json:"commonMisconceptions"`
}

func (ec EducationalContent) IsEmpty() bool {
	return len(ec.OfficialStandards) == 0 &&
		len(ec.TeachingStrategies) == 0 &&
		len(ec.BenchmarkActivities) == 0 &&
		len(ec.CommonMisconceptions) == 0
}

// ParsedDocument is the result of mining a text blob extracted from a
// PDF/Word upload: a flexible-shape curriculum tree plus the
// educational-content side channel.
type ParsedDocument struct {
	Curriculum  map[string]any
	Educational EducationalContent
}

var (
	allCapsHeader  = regexp.MustCompile(`^[A-Z][A-Z0-9 ,&:\-]{3,48}$`)
	unitHeader     = regexp.MustCompile(`(?i)^(unit|chapter|section|grade)\s+\d+\b[.:]?\s*(.*)$`)
	numberedSub    = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	letteredSub    = regexp.MustCompile(`^[A-Z]\.\s(.+)$`)
	topicSub       = regexp.MustCompile(`(?i)^(topic|lesson)\s+\d+\b[.:]?\s*(.*)$`)
	dottedSub      = regexp.MustCompile(`^(\d+(?:\.\d+)+)\s+(.+)$`)
	standardCode   = regexp.MustCompile(`\b(\d+\.[A-Za-z]+\.\d+(?:\.[A-Za-z0-9]+)?)\b`)
	standardPhrase = regexp.MustCompile(`(?i)\bstandard\s+(\d+\.\d+)`)

	fractionExample   = regexp.MustCompile(`\d+\s*/\s*\d+(?:\s*=\s*\d*\.?\d+)?`)
	decimalExample    = regexp.MustCompile(`\d+\.\d+`)
	percentExample    = regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)
	arithmeticExample = regexp.MustCompile(`\d+\s*[-+×x*÷/]\s*\d+\s*=\s*-?\d+(?:\.\d+)?`)
	currencyExample   = regexp.MustCompile(`\$\d+(?:\.\d{2})?`)
	phraseExample     = regexp.MustCompile(`(?i)(?:example|e\.g\.|for instance)[:,]?\s*(.+)`)

	strategyKeywords      = regexp.MustCompile(`(?i)\b(strateg|instruct|teach|model|scaffold|demonstrat|approach)`)
	activityKeywords      = regexp.MustCompile(`(?i)\b(activit|task|exercise|project|practice|assessment|benchmark)`)
	misconceptionKeywords = regexp.MustCompile(`(?i)\b(misconception|common error|students often|students may|confus|mistake)`)
	correctionKeywords    = regexp.MustCompile(`(?i)^\s*(correct|instead|clarif|remind|emphasiz)`)
)

const (
	minContentLen = 12
	lookAhead     = 10
)

// ParseCurriculumText converts a line-oriented text blob (from PDF/Word
// extraction) into a flexible-shape curriculum object, and in parallel mines
// standards annotations from look-ahead windows around standard codes.
// Best effort by design: short or malformed input yields empty results,
// never an error.
func ParseCurriculumText(text string) ParsedDocument {
	lines := []string{}
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	doc := ParsedDocument{Curriculum: map[string]any{}}
	if len(lines) == 0 {
		return doc
	}

	builder := newSectionBuilder()
	for _, line := range lines {
		switch {
		case isSectionHeader(line):
			builder.startSection(sectionTitle(line))
		case isSubsectionHeader(line):
			builder.startSubsection(subsectionTitle(line))
		case len(line) > minContentLen:
			builder.addContent(line)
		}
	}
	doc.Curriculum = builder.result()
	doc.Educational = mineEducationalContent(lines)
	return doc
}

func isSectionHeader(line string) bool {
	return allCapsHeader.MatchString(line) || unitHeader.MatchString(line)
}

func sectionTitle(line string) string {
	if m := unitHeader.FindStringSubmatch(line); m != nil && m[2] != "" {
		return truncate(strings.TrimSpace(m[0]), 100)
	}
	return truncate(line, 100)
}

func isSubsectionHeader(line string) bool {
	return numberedSub.MatchString(line) ||
		letteredSub.MatchString(line) ||
		topicSub.MatchString(line) ||
		dottedSub.MatchString(line)
}

func subsectionTitle(line string) string {
	for _, re := range []*regexp.Regexp{numberedSub, letteredSub} {
		if m := re.FindStringSubmatch(line); m != nil {
			return truncate(strings.TrimSpace(m[1]), 100)
		}
	}
	if m := dottedSub.FindStringSubmatch(line); m != nil {
		return truncate(strings.TrimSpace(m[1]+" "+m[2]), 100)
	}
	return truncate(line, 100)
}

// sectionBuilder accumulates content under the current section/subsection
// and flushes finished sections into the result tree.
type sectionBuilder struct {
	tree           map[string]any
	section        string
	subsection     string
	sectionContent map[string]any
	lessons        []any
}

func newSectionBuilder() *sectionBuilder {
	b := &sectionBuilder{tree: map[string]any{}}
	b.section = "General"
	b.subsection = "Overview"
	b.sectionContent = map[string]any{}
	return b
}

func (b *sectionBuilder) startSection(title string) {
	b.flushSubsection()
	b.flushSection()
	b.section = uniqueKey(b.tree, title)
	b.subsection = "Overview"
	b.sectionContent = map[string]any{}
}

func (b *sectionBuilder) startSubsection(title string) {
	b.flushSubsection()
	b.subsection = uniqueKey(b.sectionContent, title)
}

func (b *sectionBuilder) addContent(line string) {
	b.lessons = append(b.lessons, map[string]any{
		"title":       truncate(line, 100),
		"explanation": line,
		"examples":    mineExamples(line),
	})
}

func (b *sectionBuilder) flushSubsection() {
	if len(b.lessons) == 0 {
		return
	}
	b.sectionContent[b.subsection] = map[string]any{"lessons": b.lessons}
	b.lessons = nil
}

func (b *sectionBuilder) flushSection() {
	if len(b.sectionContent) == 0 {
		return
	}
	b.tree[b.section] = b.sectionContent
	b.sectionContent = map[string]any{}
}

func (b *sectionBuilder) result() map[string]any {
	b.flushSubsection()
	b.flushSection()
	return b.tree
}

// uniqueKey avoids clobbering when a document repeats a header verbatim.
func uniqueKey(obj map[string]any, key string) string {
	if _, exists := obj[key]; !exists {
		return key
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", key, n)
		if _, exists := obj[candidate]; !exists {
			return candidate
		}
	}
}

// mineExamples pulls worked-example snippets out of a content line:
// arithmetic, fractions, decimals, percents, currency, and explicit
// "example:" / "e.g." / "for instance" phrases.
func mineExamples(line string) []any {
	examples := []any{}
	seen := map[string]bool{}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			examples = append(examples, s)
		}
	}

	for _, m := range arithmeticExample.FindAllString(line, -1) {
		add(m)
	}
	for _, m := range fractionExample.FindAllString(line, -1) {
		add(m)
	}
	for _, m := range decimalExample.FindAllString(line, -1) {
		add(m)
	}
	for _, m := range percentExample.FindAllString(line, -1) {
		add(m)
	}
	for _, m := range currencyExample.FindAllString(line, -1) {
		add(m)
	}
	if m := phraseExample.FindStringSubmatch(line); m != nil {
		add(truncate(m[1], 100))
	}
	return examples
}

// mineEducationalContent runs the standard-code side channel: a line
// carrying a curriculum standard code opens a context, and the following
// window of lines is scanned for strategy, activity, and misconception
// keywords tagged with that code.
func mineEducationalContent(lines []string) EducationalContent {
	ec := EducationalContent{
		OfficialStandards:    []OfficialStandardRecord{},
		TeachingStrategies:   []TeachingStrategyRecord{},
		BenchmarkActivities:  []BenchmarkActivityRecord{},
		CommonMisconceptions: []CommonMisconceptionRecord{},
	}

	for i, line := range lines {
		code := matchStandardCode(line)
		if code == "" {
			continue
		}

		record := OfficialStandardRecord{
			StandardCode: code,
			Title:        truncate(line, 100),
			Description:  line,
		}
		if m := gradePattern.FindStringSubmatch(strings.ToLower(line)); m != nil {
			record.GradeLevel = normalizeGrade(m[1])
		}
		ec.OfficialStandards = append(ec.OfficialStandards, record)

		end := i + 1 + lookAhead
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			near := lines[j]
			if matchStandardCode(near) != "" {
				break // next standard owns the rest of the window
			}
			switch {
			case strategyKeywords.MatchString(near):
				ec.TeachingStrategies = append(ec.TeachingStrategies, TeachingStrategyRecord{
					StandardCode: code,
					Strategy:     near,
					Category:     strategyCategory(near),
				})
			case activityKeywords.MatchString(near):
				ec.BenchmarkActivities = append(ec.BenchmarkActivities, BenchmarkActivityRecord{
					StandardCode: code,
					Description:  near,
					ActivityType: activityType(near),
				})
			case misconceptionKeywords.MatchString(near):
				correction := ""
				if j+1 < len(lines) && correctionKeywords.MatchString(lines[j+1]) {
					correction = lines[j+1]
				}
				ec.CommonMisconceptions = append(ec.CommonMisconceptions, CommonMisconceptionRecord{
					StandardCode:  code,
					Misconception: near,
					Correction:    correction,
				})
			}
		}
	}
	return ec
}

func matchStandardCode(line string) string {
	if m := standardCode.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if m := standardPhrase.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

func strategyCategory(line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "group") || strings.Contains(lower, "collaborat"):
		return "collaborative"
	case strings.Contains(lower, "visual") || strings.Contains(lower, "model") || strings.Contains(lower, "manipulat"):
		return "visual"
	case strings.Contains(lower, "scaffold") || strings.Contains(lower, "step"):
		return "scaffolded"
	default:
		return "general"
	}
}

func activityType(line string) string {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "assess") || strings.Contains(lower, "benchmark"):
		return "assessment"
	case strings.Contains(lower, "project"):
		return "project"
	case strings.Contains(lower, "practice") || strings.Contains(lower, "exercise"):
		return "practice"
	default:
		return "activity"
	}
}
