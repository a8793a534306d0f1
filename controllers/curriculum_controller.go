package controllers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/htkhoa/k12-curriculum-backend/models"
	"github.com/htkhoa/k12-curriculum-backend/services"
	"github.com/htkhoa/k12-curriculum-backend/utils"
	"github.com/htkhoa/k12-curriculum-backend/ws"
)

type ValidateCurriculumInput struct {
	CurriculumData map[string]any `json:"curriculumData"`
}

// POST /api/curriculum/validate
// Read-only pre-flight: runs the same detection and inference the loader
// would, plus code suggestions for the upload dialog.
func ValidateCurriculum(c *gin.Context) {
	var input ValidateCurriculumInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON with a curriculumData object"})
		return
	}

	validation := services.ValidateCurriculumStructure(input.CurriculumData)
	var meta services.CurriculumMetadata
	if validation.Valid {
		meta = services.InferMetadata(input.CurriculumData)
	}

	c.JSON(http.StatusOK, gin.H{
		"validation": validation,
		"metadata":   meta,
		"suggestions": gin.H{
			"subjectCode":   suggestCode(meta.SubjectHint, "UNKNOWN"),
			"frameworkCode": suggestCode(meta.FrameworkHint, "CUSTOM"),
		},
	})
}

func suggestCode(hint, fallback string) string {
	if hint == "" {
		return fallback
	}
	return strings.ToUpper(strings.ReplaceAll(hint, " ", "_"))
}

type LoadGenericInput struct {
	CurriculumData map[string]any `json:"curriculumData"`
	SubjectCode    string         `json:"subjectCode"`
	FrameworkCode  string         `json:"frameworkCode"`
}

// POST /api/curriculum/load-generic
func LoadGenericCurriculum(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input LoadGenericInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON"})
		return
	}
	if input.CurriculumData == nil || input.SubjectCode == "" || input.FrameworkCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: curriculumData, subjectCode and frameworkCode are required"})
		return
	}

	validation := services.ValidateCurriculumStructure(input.CurriculumData)
	if !validation.Valid {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Curriculum validation failed: " + strings.Join(validation.Errors, "; "),
			"errors": validation.Errors,
		})
		return
	}

	ws.SendLoadStatus(input.SubjectCode, "loading", 0, "")
	loader := services.NewCurriculumLoader(db)
	result, err := loader.LoadGenericCurriculum(input.CurriculumData, input.SubjectCode, input.FrameworkCode)
	if err != nil {
		ws.SendLoadStatus(input.SubjectCode, "error", 0, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load curriculum", "details": err.Error()})
		return
	}
	ws.SendLoadStatus(input.SubjectCode, "done", 100, "")
	ws.BroadcastCurriculumChanged()

	c.JSON(http.StatusOK, gin.H{
		"message":        "Curriculum loaded successfully",
		"subjectCode":    result.SubjectCode,
		"frameworkCode":  result.FrameworkCode,
		"strandsCount":   result.ContentAreaCount,
		"standardsCount": result.StandardCount,
		"lessonsCount":   result.SubLessonCount,
		"educationalContent": gin.H{
			"saved":  result.EducationalContentSaved,
			"errors": result.EducationalContentErrors,
		},
	})
}

// POST /api/curriculum/parse-pdf
func ParsePDFCurriculum(c *gin.Context) {
	parseUploadedDocument(c, services.InputPDF)
}

// POST /api/curriculum/parse-word
func ParseWordCurriculum(c *gin.Context) {
	parseUploadedDocument(c, services.InputDOCX)
}

// POST /api/curriculum/parse-text
// Accepts either a .txt upload or a raw "text" form field.
func ParseTextCurriculum(c *gin.Context) {
	if text := c.PostForm("text"); text != "" {
		doc := services.ParseCurriculumText(text)
		respondParsed(c, doc, nil)
		return
	}
	parseUploadedDocument(c, services.InputTXT)
}

func parseUploadedDocument(c *gin.Context, inputType services.InputType) {
	db := c.MustGet("db").(*gorm.DB)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file attached"})
		return
	}
	if file.Size > 20*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 20MB limit"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if detected, err := utils.GetInputTypeFromExt(ext); err != nil || detected != inputType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unexpected file type " + ext})
		return
	}

	docID := uuid.New()
	publicURL, err := utils.UploadFileToSupabase(file, docID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store the uploaded file", "details": err.Error()})
		return
	}

	doc := models.CurriculumDocument{
		ID:           docID,
		OriginalName: file.Filename,
		FilePath:     publicURL,
		FileType:     strings.TrimPrefix(ext, "."),
		FileSize:     file.Size,
		Status:       "uploaded",
	}
	if err := db.Create(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record the uploaded document", "details": err.Error()})
		return
	}
	ws.BroadcastCurriculumChanged()

	db.Model(&doc).Update("status", "extracting")
	text, err := services.NormalizeInput(services.InputSource{Type: inputType, FileHeader: file})
	if err != nil {
		db.Model(&doc).Update("status", "error")
		ws.BroadcastCurriculumChanged()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract text from the document", "details": err.Error()})
		return
	}

	parsed := services.ParseCurriculumText(text)
	now := time.Now()
	db.Model(&doc).Updates(map[string]interface{}{
		"status":       "extracted",
		"text_length":  len(text),
		"processed_at": &now,
	})
	ws.BroadcastCurriculumChanged()

	respondParsed(c, parsed, &doc)
}

func respondParsed(c *gin.Context, parsed services.ParsedDocument, doc *models.CurriculumDocument) {
	curriculum := parsed.Curriculum
	if !parsed.Educational.IsEmpty() {
		curriculum["_educationalContent"] = parsed.Educational
	}

	response := gin.H{
		"curriculumData": curriculum,
		"metadata":       services.InferMetadata(curriculum),
	}
	if doc != nil {
		response["document"] = doc
	}
	c.JSON(http.StatusOK, response)
}

// GET /api/curriculum/content-areas?subject=MATH&framework=VA_DOE
func ListContentAreas(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	query := db.Model(&models.ContentArea{})
	if subject := c.Query("subject"); subject != "" {
		query = query.Joins("JOIN subjects ON subjects.id = content_areas.subject_id").
			Where("subjects.code = ?", subject)
	}
	if framework := c.Query("framework"); framework != "" {
		query = query.Joins("JOIN frameworks ON frameworks.id = content_areas.framework_id").
			Where("frameworks.code = ?", framework)
	}

	var areas []models.ContentArea
	if err := query.Order("content_areas.sort_order ASC").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list content areas"})
		return
	}
	c.JSON(http.StatusOK, areas)
}

// GET /api/curriculum/content-areas/:id/standards
func ListStandardsByContentArea(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	areaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid content area id"})
		return
	}

	var standards []models.Standard
	if err := db.Where("content_area_id = ?", areaID).Order("sort_order ASC").Find(&standards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list standards"})
		return
	}
	c.JSON(http.StatusOK, standards)
}

// GET /api/curriculum/standards/:id/sub-lessons
func ListSubLessonsByStandard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	standardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid standard id"})
		return
	}

	var lessons []models.SubLesson
	if err := db.Where("standard_id = ?", standardID).Order("sort_order ASC").Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sub-lessons"})
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GET /api/curriculum/standards/:id/enrichment
// Enrichment records are matched by textual standard code, not by id, so
// orphaned annotations are simply absent here rather than an error.
func GetStandardEnrichment(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	standardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid standard id"})
		return
	}

	var standard models.Standard
	if err := db.First(&standard, "id = ?", standardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Standard not found"})
		return
	}

	var officials []models.OfficialStandard
	var strategies []models.TeachingStrategy
	var activities []models.BenchmarkActivity
	var misconceptions []models.CommonMisconception
	db.Where("standard_code = ?", standard.Code).Find(&officials)
	db.Where("standard_code = ?", standard.Code).Find(&strategies)
	db.Where("standard_code = ?", standard.Code).Find(&activities)
	db.Where("standard_code = ?", standard.Code).Find(&misconceptions)

	c.JSON(http.StatusOK, gin.H{
		"standard":             standard,
		"officialStandards":    officials,
		"teachingStrategies":   strategies,
		"benchmarkActivities":  activities,
		"commonMisconceptions": misconceptions,
	})
}

// DELETE /api/admin/curriculum
func ClearCurriculum(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	loader := services.NewCurriculumLoader(db)
	if err := loader.ClearAllCurriculum(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear curriculum", "details": err.Error()})
		return
	}
	ws.BroadcastCurriculumChanged()
	c.JSON(http.StatusOK, gin.H{"message": "All curriculum data cleared"})
}
