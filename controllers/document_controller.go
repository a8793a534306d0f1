package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/htkhoa/k12-curriculum-backend/models"
	"github.com/htkhoa/k12-curriculum-backend/utils"
	"github.com/htkhoa/k12-curriculum-backend/ws"
)

// GET /api/documents
func GetDocuments(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var docs []models.CurriculumDocument
	if err := db.Order("created_at DESC").Find(&docs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GET /api/documents/:id
func GetDocumentDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	var doc models.CurriculumDocument
	if err := db.First(&doc, "id = ?", docID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DELETE /api/admin/documents/:id
func DeleteDocument(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	var doc models.CurriculumDocument
	if err := db.First(&doc, "id = ?", docID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if err := utils.DeleteFileFromSupabase(doc.FilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stored file", "details": err.Error()})
		return
	}

	if err := db.Delete(&doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document"})
		return
	}
	ws.BroadcastCurriculumChanged()

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
