package models

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string        `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	Slug         string        `gorm:"size:255;index" json:"slug"`
	Active       bool          `gorm:"default:true;not null" json:"active"` // false: logically deleted
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	ContentAreas []ContentArea `gorm:"foreignKey:SubjectID" json:"content_areas,omitempty"`
}
