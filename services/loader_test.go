package services

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/htkhoa/k12-curriculum-backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Subject{},
		&models.Framework{},
		&models.ContentArea{},
		&models.Standard{},
		&models.SubLesson{},
		&models.OfficialStandard{},
		&models.TeachingStrategy{},
		&models.BenchmarkActivity{},
		&models.CommonMisconception{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func strandsFixture() map[string]any {
	return map[string]any{
		"strands": map[string]any{
			"6.NS": map[string]any{
				"standards": map[string]any{
					"6.NS.1": map[string]any{
						"sub_lessons": []any{
							map[string]any{
								"title":       "A",
								"code":        "6.NS.1.a",
								"explanation": "E",
								"examples":    []any{"1/2=0.5"},
							},
						},
					},
				},
			},
		},
	}
}

func TestLoadStrandsEndToEnd(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	result, err := loader.LoadGenericCurriculum(strandsFixture(), "MATH", "VA_DOE")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if result.ContentAreaCount != 1 || result.StandardCount != 1 || result.SubLessonCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	var subject models.Subject
	if err := db.Where("code = ?", "MATH").First(&subject).Error; err != nil {
		t.Fatalf("subject not created: %v", err)
	}
	var framework models.Framework
	if err := db.Where("code = ?", "VA_DOE").First(&framework).Error; err != nil {
		t.Fatalf("framework not created: %v", err)
	}

	var area models.ContentArea
	if err := db.Where("code = ?", "6.NS").First(&area).Error; err != nil {
		t.Fatalf("content area not created: %v", err)
	}
	if area.SubjectID != subject.ID || area.FrameworkID != framework.ID {
		t.Fatalf("content area not owned by subject/framework")
	}

	var std models.Standard
	if err := db.Where("code = ?", "6.NS.1").First(&std).Error; err != nil {
		t.Fatalf("standard not created: %v", err)
	}
	if std.ContentAreaID != area.ID {
		t.Fatalf("standard not attached to content area")
	}

	var lesson models.SubLesson
	if err := db.Where("standard_id = ?", std.ID).First(&lesson).Error; err != nil {
		t.Fatalf("sub-lesson not created: %v", err)
	}
	if lesson.Title != "A" || lesson.Code != "6.NS.1.a" || lesson.SortOrder != 0 {
		t.Fatalf("unexpected sub-lesson: %+v", lesson)
	}
	if !strings.Contains(string(lesson.Examples), "1/2=0.5") {
		t.Fatalf("examples not persisted: %s", lesson.Examples)
	}
}

func TestReloadReplacesPriorCurriculum(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	for i := 0; i < 2; i++ {
		if _, err := loader.LoadGenericCurriculum(strandsFixture(), "MATH", "VA_DOE"); err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
	}

	var areaCount, stdCount, lessonCount int64
	db.Model(&models.ContentArea{}).Count(&areaCount)
	db.Model(&models.Standard{}).Count(&stdCount)
	db.Model(&models.SubLesson{}).Count(&lessonCount)
	if areaCount != 1 || stdCount != 1 || lessonCount != 1 {
		t.Fatalf("reload duplicated rows: areas=%d standards=%d lessons=%d", areaCount, stdCount, lessonCount)
	}
}

func TestScopedClearLeavesOtherSubjects(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	if _, err := loader.LoadGenericCurriculum(strandsFixture(), "MATH", "VA_DOE"); err != nil {
		t.Fatalf("math load failed: %v", err)
	}
	science := map[string]any{
		"Living Systems": map[string]any{
			"items": []any{map[string]any{"title": "Cells"}},
		},
	}
	if _, err := loader.LoadGenericCurriculum(science, "SCI", "NGSS"); err != nil {
		t.Fatalf("science load failed: %v", err)
	}

	var mathLessons int64
	db.Model(&models.SubLesson{}).
		Joins("JOIN standards ON standards.id = sub_lessons.standard_id").
		Joins("JOIN content_areas ON content_areas.id = standards.content_area_id").
		Joins("JOIN subjects ON subjects.id = content_areas.subject_id").
		Where("subjects.code = ?", "MATH").
		Count(&mathLessons)
	if mathLessons != 1 {
		t.Fatalf("science load destroyed math curriculum: %d lessons left", mathLessons)
	}
}

func TestFlexibleLoadPreservesOrder(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	data := map[string]any{
		"Intro": map[string]any{
			"items": []any{
				map[string]any{"title": "X"},
				map[string]any{"title": "Y"},
			},
		},
	}
	result, err := loader.LoadGenericCurriculum(data, "GEN", "CUSTOM")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if result.ContentAreaCount != 1 || result.StandardCount != 1 || result.SubLessonCount != 2 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	var lessons []models.SubLesson
	if err := db.Order("sort_order ASC").Find(&lessons).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(lessons) != 2 || lessons[0].Title != "X" || lessons[1].Title != "Y" {
		t.Fatalf("lesson order lost: %+v", lessons)
	}
}

func TestClearAllCurriculumIdempotent(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	if _, err := loader.LoadGenericCurriculum(strandsFixture(), "MATH", "VA_DOE"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := loader.ClearAllCurriculum(); err != nil {
			t.Fatalf("clear %d failed: %v", i, err)
		}
		var stdCount, lessonCount int64
		db.Model(&models.Standard{}).Count(&stdCount)
		db.Model(&models.SubLesson{}).Count(&lessonCount)
		if stdCount != 0 || lessonCount != 0 {
			t.Fatalf("clear %d left rows: standards=%d lessons=%d", i, stdCount, lessonCount)
		}
	}
}

func TestLoadRejectsEmptyObject(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	if _, err := loader.LoadGenericCurriculum(map[string]any{}, "MATH", "VA_DOE"); err == nil {
		t.Fatalf("expected validation error for empty object")
	}
}

func TestLoadPersistsEducationalSideChannel(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	data := map[string]any{
		"Intro": map[string]any{
			"items": []any{map[string]any{"title": "X"}},
		},
		"_educationalContent": map[string]any{
			"officialStandards": []any{
				map[string]any{"standardCode": "6.NS.1", "title": "Compare fractions"},
			},
			"teachingStrategies": []any{
				map[string]any{"standardCode": "6.NS.1", "strategy": "Use fraction bars", "category": "visual"},
			},
			"benchmarkActivities": []any{
				map[string]any{"standardCode": "6.NS.1", "description": "Sorting race", "activityType": "practice"},
			},
			"commonMisconceptions": []any{
				map[string]any{"standardCode": "6.NS.1", "misconception": "Bigger denominator means bigger fraction"},
			},
		},
	}
	result, err := loader.LoadGenericCurriculum(data, "MATH", "VA_DOE")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if result.EducationalContentSaved != 4 {
		t.Fatalf("expected 4 saved records got %d (errors: %v)", result.EducationalContentSaved, result.EducationalContentErrors)
	}
	// The side channel must not leak into the curriculum hierarchy.
	if result.ContentAreaCount != 1 {
		t.Fatalf("side channel leaked into content areas: %+v", result)
	}

	var strategies int64
	db.Model(&models.TeachingStrategy{}).Where("standard_code = ?", "6.NS.1").Count(&strategies)
	if strategies != 1 {
		t.Fatalf("expected strategy row, got %d", strategies)
	}
}

func TestLoadToleratesEducationalInsertFailure(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	// Drop one enrichment table so its insert fails while the others work.
	if err := db.Migrator().DropTable(&models.TeachingStrategy{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	data := map[string]any{
		"Intro": map[string]any{
			"items": []any{map[string]any{"title": "X"}},
		},
		"_educationalContent": map[string]any{
			"officialStandards": []any{
				map[string]any{"standardCode": "6.NS.1", "title": "Compare fractions"},
			},
			"teachingStrategies": []any{
				map[string]any{"standardCode": "6.NS.1", "strategy": "Use fraction bars", "category": "visual"},
			},
			"benchmarkActivities": []any{
				map[string]any{"standardCode": "6.NS.1", "description": "Sorting race", "activityType": "practice"},
			},
		},
	}
	result, err := loader.LoadGenericCurriculum(data, "MATH", "VA_DOE")
	if err != nil {
		t.Fatalf("load failed despite best-effort contract: %v", err)
	}
	if result.EducationalContentSaved != 2 {
		t.Fatalf("expected 2 saved records got %d (errors: %v)", result.EducationalContentSaved, result.EducationalContentErrors)
	}
	if len(result.EducationalContentErrors) != 1 {
		t.Fatalf("expected 1 collected error, got %v", result.EducationalContentErrors)
	}

	// The curriculum itself must be untouched by the enrichment failure.
	if result.ContentAreaCount != 1 || result.SubLessonCount != 1 {
		t.Fatalf("curriculum rows lost: %+v", result)
	}
	var lessonCount int64
	db.Model(&models.SubLesson{}).Count(&lessonCount)
	if lessonCount != 1 {
		t.Fatalf("expected 1 persisted lesson, got %d", lessonCount)
	}
}

func TestLoadUsesInferredNames(t *testing.T) {
	db := openTestDB(t)
	loader := NewCurriculumLoader(db)

	data := map[string]any{
		"metadata": map[string]any{"subject": "Mathematics", "framework": "Virginia Department of Education"},
		"Fractions": map[string]any{
			"items": []any{map[string]any{"title": "Halves"}},
		},
	}
	if _, err := loader.LoadGenericCurriculum(data, "MATH", "VA_DOE"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var subject models.Subject
	if err := db.Where("code = ?", "MATH").First(&subject).Error; err != nil {
		t.Fatalf("subject missing: %v", err)
	}
	if subject.Name != "Mathematics" {
		t.Fatalf("expected inferred name, got %q", subject.Name)
	}
}
