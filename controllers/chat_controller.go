package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/htkhoa/k12-curriculum-backend/models"
	"github.com/htkhoa/k12-curriculum-backend/services"
)

type TutorChatInput struct {
	Question    string `json:"question" binding:"required"`
	SubLessonID string `json:"sub_lesson_id"`
}

// POST /api/chat/tutor
// The tutor grounds its answer in the sub-lesson the learner is viewing,
// when one is given.
func TutorChat(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input TutorChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A question is required"})
		return
	}

	var lessonID *uuid.UUID
	lessonContext := ""
	if input.SubLessonID != "" {
		parsed, err := uuid.Parse(input.SubLessonID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sub_lesson_id"})
			return
		}
		var lesson models.SubLesson
		if err := db.Preload("Standard").First(&lesson, "id = ?", parsed).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sub-lesson not found"})
			return
		}
		lessonID = &parsed
		lessonContext = formatLessonContext(lesson)
	}

	explanation, err := services.TutorExplain(input.Question, lessonContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Tutor is unavailable", "details": err.Error()})
		return
	}

	message := models.ChatMessage{
		ID:          uuid.New(),
		Question:    input.Question,
		Answer:      explanation.Explanation,
		SubLessonID: lessonID,
	}
	if err := db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save chat message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message_id":  message.ID,
		"explanation": explanation,
	})
}

func formatLessonContext(lesson models.SubLesson) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Lesson: %s (%s)\n", lesson.Title, lesson.Code)
	if lesson.Standard.Code != "" {
		fmt.Fprintf(&sb, "Standard: %s - %s\n", lesson.Standard.Code, lesson.Standard.Description)
	}
	if lesson.Explanation != "" {
		fmt.Fprintf(&sb, "Explanation: %s\n", lesson.Explanation)
	}
	if len(lesson.Examples) > 0 {
		fmt.Fprintf(&sb, "Examples: %s\n", string(lesson.Examples))
	}
	return sb.String()
}

// GET /api/chat/history
func GetChatHistory(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var messages []models.ChatMessage
	if err := db.Order("created_at DESC").Limit(50).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
