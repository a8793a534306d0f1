package models

import (
	"time"

	"github.com/google/uuid"
)

// The four annotation records below enrich a Standard by textual code match.
// StandardCode is not a foreign key: orphaned references are tolerated so a
// document can be mined before (or without) its curriculum being loaded.

type OfficialStandard struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StandardCode string    `gorm:"size:100;not null;index" json:"standard_code"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	GradeLevel   string    `gorm:"size:20" json:"grade_level"`
	Subject      string    `gorm:"size:100" json:"subject"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type TeachingStrategy struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StandardCode string    `gorm:"size:100;not null;index" json:"standard_code"`
	Strategy     string    `gorm:"type:text;not null" json:"strategy"`
	Category     string    `gorm:"size:100" json:"category"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type BenchmarkActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StandardCode string    `gorm:"size:100;not null;index" json:"standard_code"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	ActivityType string    `gorm:"size:100" json:"activity_type"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CommonMisconception struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StandardCode  string    `gorm:"size:100;not null;index" json:"standard_code"`
	Misconception string    `gorm:"type:text;not null" json:"misconception"`
	Correction    string    `gorm:"type:text" json:"correction"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
