package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/htkhoa/k12-curriculum-backend/models"
)

type CreateSubjectInput struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/admin/subjects
func CreateSubject(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateSubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject code and name are required"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	var count int64
	db.Model(&models.Subject{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject code already exists"})
		return
	}

	subject := models.Subject{
		ID:          uuid.New(),
		Code:        code,
		Name:        input.Name,
		Description: input.Description,
		Slug:        slug.Make(input.Name),
		Active:      true,
	}
	if err := db.Create(&subject).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subject"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subject created",
		"subject": subject,
	})
}

// GET /api/subjects
func GetSubjects(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var subjects []models.Subject
	if err := db.Where("active = ?", true).Order("name ASC").Find(&subjects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list subjects"})
		return
	}
	c.JSON(http.StatusOK, subjects)
}

// GET /api/subjects/:id
func GetSubjectDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
		return
	}

	var subject models.Subject
	if err := db.
		Preload("ContentAreas", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject":       subject,
		"content_areas": subject.ContentAreas,
	})
}

// PATCH /api/admin/subjects/:id/toggle-status
func ToggleSubjectStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
		return
	}

	var subject models.Subject
	if err := db.First(&subject, "id = ?", subjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}

	subject.Active = !subject.Active
	if err := db.Save(&subject).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subject status updated",
		"subject": subject,
	})
}
