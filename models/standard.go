package models

import (
	"time"

	"github.com/google/uuid"
)

type Standard struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string      `gorm:"size:100;not null;index" json:"code"`
	Description   string      `gorm:"type:text" json:"description"`
	ContentAreaID uuid.UUID   `gorm:"type:uuid;not null;index" json:"content_area_id"`
	ContentArea   ContentArea `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	SortOrder     int         `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	SubLessons    []SubLesson `gorm:"foreignKey:StandardID" json:"sub_lessons,omitempty"`
}
