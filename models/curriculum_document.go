package models

import (
	"time"

	"github.com/google/uuid"
)

type CurriculumDocument struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OriginalName string     `gorm:"size:255;not null" json:"original_name"`
	FilePath     string     `gorm:"type:text;not null" json:"file_path"`
	FileType     string     `gorm:"size:50" json:"file_type"`
	FileSize     int64      `json:"file_size"` // bytes
	TextLength   int        `json:"text_length"`
	Status       string     `gorm:"size:30;default:'uploaded'" json:"status"` // uploaded|extracting|extracted|error
	ProcessedAt  *time.Time `json:"processed_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
