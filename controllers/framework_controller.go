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

type CreateFrameworkInput struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	State       string `json:"state"`
}

// POST /api/admin/frameworks
func CreateFramework(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateFrameworkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Framework code and name are required"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	var count int64
	db.Model(&models.Framework{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Framework code already exists"})
		return
	}

	framework := models.Framework{
		ID:          uuid.New(),
		Code:        code,
		Name:        input.Name,
		Description: input.Description,
		State:       input.State,
		Slug:        slug.Make(input.Name),
		Active:      true,
	}
	if err := db.Create(&framework).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create framework"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Framework created",
		"framework": framework,
	})
}

// GET /api/frameworks
func GetFrameworks(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var frameworks []models.Framework
	if err := db.Where("active = ?", true).Order("name ASC").Find(&frameworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list frameworks"})
		return
	}
	c.JSON(http.StatusOK, frameworks)
}

// PATCH /api/admin/frameworks/:id/toggle-status
func ToggleFrameworkStatus(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	frameworkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid framework id"})
		return
	}

	var framework models.Framework
	if err := db.First(&framework, "id = ?", frameworkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Framework not found"})
		return
	}

	framework.Active = !framework.Active
	if err := db.Save(&framework).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Framework status updated",
		"framework": framework,
	})
}
