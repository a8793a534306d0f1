package models

import (
	"time"

	"github.com/google/uuid"
)

type Framework struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string        `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	State        string        `gorm:"size:100" json:"state"` // jurisdiction tag, e.g. "Virginia"
	Slug         string        `gorm:"size:255;index" json:"slug"`
	Active       bool          `gorm:"default:true;not null" json:"active"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	ContentAreas []ContentArea `gorm:"foreignKey:FrameworkID" json:"content_areas,omitempty"`
}
