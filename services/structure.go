package services

// StructureKind classifies the shape of an uploaded curriculum object.
type StructureKind string

const (
	StructureStrands  StructureKind = "strands"
	StructureDomains  StructureKind = "domains"
	StructureUnits    StructureKind = "units"
	StructureFlexible StructureKind = "flexible"
)

// DetectStructure classifies a curriculum object into one of the four known
// shapes. Precedence is strict and first match wins: strands, then domains,
// then units, then flexible. An object carrying, say, both "standards" and
// "clusters" entries is classified as strands on purpose.
func DetectStructure(data map[string]any) StructureKind {
	if hasContainer(data, "strands", "standards") {
		return StructureStrands
	}
	if hasContainer(data, "domains", "clusters") {
		return StructureDomains
	}
	if hasContainer(data, "units", "lessons") {
		return StructureUnits
	}
	return StructureFlexible
}

// hasContainer reports whether the object has the container key itself, or
// any top-level object value carrying the nested marker key.
// Underscore-prefixed keys (side channels like _educationalContent) are skipped.
func hasContainer(data map[string]any, containerKey, nestedKey string) bool {
	if _, ok := data[containerKey]; ok {
		return true
	}
	for key, value := range data {
		if len(key) > 0 && key[0] == '_' {
			continue
		}
		if obj, ok := value.(map[string]any); ok {
			if _, ok := obj[nestedKey]; ok {
				return true
			}
		}
	}
	return false
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateCurriculumStructure is a pre-flight smoke check, not a schema
// check: thanks to the flexible fallback, any non-empty object passes.
func ValidateCurriculumStructure(data map[string]any) ValidationResult {
	if data == nil {
		return ValidationResult{Valid: false, Errors: []string{"Curriculum data must be a JSON object"}}
	}
	if len(data) == 0 {
		return ValidationResult{Valid: false, Errors: []string{"No recognizable curriculum structure found in the uploaded data"}}
	}
	return ValidationResult{Valid: true, Errors: []string{}}
}
