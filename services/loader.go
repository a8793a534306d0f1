package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/htkhoa/k12-curriculum-backend/models"
)

// CurriculumLoader orchestrates detection, inference, normalization and
// persistence for one load call. All curriculum writes happen inside a
// single transaction, so a persistence failure rolls back the clear as well
// as the partial inserts; educational-content records are written after the
// commit, each on its own, so one bad record never aborts the load.
type CurriculumLoader struct {
	db *gorm.DB
}

func NewCurriculumLoader(db *gorm.DB) *CurriculumLoader {
	return &CurriculumLoader{db: db}
}

type LoadResult struct {
	SubjectCode              string   `json:"subjectCode"`
	FrameworkCode            string   `json:"frameworkCode"`
	ContentAreaCount         int      `json:"contentAreaCount"`
	StandardCount            int      `json:"standardCount"`
	SubLessonCount           int      `json:"subLessonCount"`
	EducationalContentSaved  int      `json:"educationalContentSaved"`
	EducationalContentErrors []string `json:"educationalContentErrors,omitempty"`
}

// LoadGenericCurriculum validates, infers, normalizes and persists one
// curriculum upload under the given subject and framework codes. Prior
// curriculum for that (subject, framework) pair is cleared first; loads for
// other subjects are untouched.
func (l *CurriculumLoader) LoadGenericCurriculum(data map[string]any, subjectCode, frameworkCode string) (*LoadResult, error) {
	validation := ValidateCurriculumStructure(data)
	if !validation.Valid {
		return nil, fmt.Errorf("invalid curriculum structure: %s", strings.Join(validation.Errors, "; "))
	}

	meta := InferMetadata(data)
	kind := DetectStructure(data)
	areas := NormalizeCurriculum(data, kind, meta)

	result := &LoadResult{SubjectCode: subjectCode, FrameworkCode: frameworkCode}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		subject, err := getOrCreateSubject(tx, subjectCode, meta)
		if err != nil {
			return err
		}
		framework, err := getOrCreateFramework(tx, frameworkCode, meta)
		if err != nil {
			return err
		}
		if err := clearCurriculumScope(tx, subject.ID, framework.ID); err != nil {
			return err
		}
		return insertCurriculum(tx, areas, subject.ID, framework.ID, result)
	})
	if err != nil {
		return nil, err
	}

	saved, errs := l.saveEducationalContent(decodeEducationalContent(data["_educationalContent"]))
	result.EducationalContentSaved = saved
	result.EducationalContentErrors = errs

	return result, nil
}

func getOrCreateSubject(tx *gorm.DB, code string, meta CurriculumMetadata) (*models.Subject, error) {
	var subject models.Subject
	err := tx.Where("code = ?", code).First(&subject).Error
	if err == nil {
		return &subject, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	name := meta.SubjectHint
	if name == "" {
		name = code
	}
	subject = models.Subject{
		ID:     uuid.New(),
		Code:   code,
		Name:   name,
		Slug:   slug.Make(name),
		Active: true,
	}
	if err := tx.Create(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func getOrCreateFramework(tx *gorm.DB, code string, meta CurriculumMetadata) (*models.Framework, error) {
	var framework models.Framework
	err := tx.Where("code = ?", code).First(&framework).Error
	if err == nil {
		return &framework, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	name := meta.FrameworkHint
	if name == "" {
		name = code
	}
	framework = models.Framework{
		ID:     uuid.New(),
		Code:   code,
		Name:   name,
		Slug:   slug.Make(name),
		Active: true,
	}
	if err := tx.Create(&framework).Error; err != nil {
		return nil, err
	}
	return &framework, nil
}

// clearCurriculumScope deletes sub-lessons, standards and content areas
// belonging to one (subject, framework) pair, children first so no orphans
// survive at any point. Idempotent: clearing an already-empty scope is a
// no-op.
func clearCurriculumScope(tx *gorm.DB, subjectID, frameworkID uuid.UUID) error {
	var areaIDs []uuid.UUID
	if err := tx.Model(&models.ContentArea{}).
		Where("subject_id = ? AND framework_id = ?", subjectID, frameworkID).
		Pluck("id", &areaIDs).Error; err != nil {
		return err
	}
	if len(areaIDs) == 0 {
		return nil
	}

	var standardIDs []uuid.UUID
	if err := tx.Model(&models.Standard{}).
		Where("content_area_id IN ?", areaIDs).
		Pluck("id", &standardIDs).Error; err != nil {
		return err
	}
	if len(standardIDs) > 0 {
		if err := tx.Where("standard_id IN ?", standardIDs).Delete(&models.SubLesson{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("content_area_id IN ?", areaIDs).Delete(&models.Standard{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", areaIDs).Delete(&models.ContentArea{}).Error
}

// insertCurriculum writes the normalized tree level by level: all content
// areas in one batch, then all standards, then all sub-lessons.
func insertCurriculum(tx *gorm.DB, areas []ContentAreaRecord, subjectID, frameworkID uuid.UUID, result *LoadResult) error {
	contentAreas := make([]models.ContentArea, 0, len(areas))
	standards := []models.Standard{}
	subLessons := []models.SubLesson{}

	for _, area := range areas {
		areaID := uuid.New()
		contentAreas = append(contentAreas, models.ContentArea{
			ID:          areaID,
			Code:        area.Code,
			Name:        area.Name,
			Description: area.Description,
			Grade:       area.Grade,
			SubjectID:   subjectID,
			FrameworkID: frameworkID,
			SortOrder:   area.Order,
		})
		for _, std := range area.Standards {
			stdID := uuid.New()
			standards = append(standards, models.Standard{
				ID:            stdID,
				Code:          std.Code,
				Description:   std.Description,
				ContentAreaID: areaID,
				SortOrder:     std.Order,
			})
			for _, lesson := range std.SubLessons {
				examples, err := json.Marshal(lesson.Examples)
				if err != nil {
					examples = []byte("[]")
				}
				subLessons = append(subLessons, models.SubLesson{
					ID:          uuid.New(),
					Title:       lesson.Title,
					Code:        lesson.Code,
					Explanation: lesson.Explanation,
					Examples:    datatypes.JSON(examples),
					StandardID:  stdID,
					SortOrder:   lesson.Order,
				})
			}
		}
	}

	if len(contentAreas) > 0 {
		if err := tx.CreateInBatches(contentAreas, 100).Error; err != nil {
			return err
		}
	}
	if len(standards) > 0 {
		if err := tx.CreateInBatches(standards, 100).Error; err != nil {
			return err
		}
	}
	if len(subLessons) > 0 {
		if err := tx.CreateInBatches(subLessons, 100).Error; err != nil {
			return err
		}
	}

	result.ContentAreaCount = len(contentAreas)
	result.StandardCount = len(standards)
	result.SubLessonCount = len(subLessons)
	return nil
}

// decodeEducationalContent accepts the side channel either as the typed
// struct (in-process callers) or as raw JSON maps (HTTP callers) by going
// through a marshal/unmarshal round.
func decodeEducationalContent(raw any) EducationalContent {
	switch v := raw.(type) {
	case nil:
		return EducationalContent{}
	case EducationalContent:
		return v
	default:
		var ec EducationalContent
		bytes, err := json.Marshal(raw)
		if err != nil {
			return EducationalContent{}
		}
		if err := json.Unmarshal(bytes, &ec); err != nil {
			return EducationalContent{}
		}
		return ec
	}
}

// saveEducationalContent is a fold over the four record arrays: every
// record is inserted on its own, failures are collected for logging and
// never short-circuit the rest of the batch.
func (l *CurriculumLoader) saveEducationalContent(ec EducationalContent) (int, []string) {
	saved := 0
	errs := []string{}
	insert := func(label, code string, record any) {
		if err := l.db.Create(record).Error; err != nil {
			msg := fmt.Sprintf("%s %s: %v", label, code, err)
			log.Println("educational content insert skipped:", msg)
			errs = append(errs, msg)
			return
		}
		saved++
	}

	for _, r := range ec.OfficialStandards {
		insert("official standard", r.StandardCode, &models.OfficialStandard{
			ID:           uuid.New(),
			StandardCode: r.StandardCode,
			Title:        r.Title,
			Description:  r.Description,
			GradeLevel:   r.GradeLevel,
			Subject:      r.Subject,
		})
	}
	for _, r := range ec.TeachingStrategies {
		insert("teaching strategy", r.StandardCode, &models.TeachingStrategy{
			ID:           uuid.New(),
			StandardCode: r.StandardCode,
			Strategy:     r.Strategy,
			Category:     r.Category,
		})
	}
	for _, r := range ec.BenchmarkActivities {
		insert("benchmark activity", r.StandardCode, &models.BenchmarkActivity{
			ID:           uuid.New(),
			StandardCode: r.StandardCode,
			Description:  r.Description,
			ActivityType: r.ActivityType,
		})
	}
	for _, r := range ec.CommonMisconceptions {
		insert("common misconception", r.StandardCode, &models.CommonMisconception{
			ID:            uuid.New(),
			StandardCode:  r.StandardCode,
			Misconception: r.Misconception,
			Correction:    r.Correction,
		})
	}
	return saved, errs
}

// ClearAllCurriculum wipes every curriculum-derived table, children first.
// This is the explicit admin reset, not part of a normal load.
func (l *CurriculumLoader) ClearAllCurriculum() error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.SubLesson{},
			&models.Standard{},
			&models.ContentArea{},
			&models.OfficialStandard{},
			&models.TeachingStrategy{},
			&models.BenchmarkActivity{},
			&models.CommonMisconception{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
