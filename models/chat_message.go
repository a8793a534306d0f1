package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Question    string     `gorm:"type:text;not null" json:"question"`
	Answer      string     `gorm:"type:text" json:"answer"`
	SubLessonID *uuid.UUID `gorm:"type:uuid" json:"sub_lesson_id"` // lesson the question was asked from, if any
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
