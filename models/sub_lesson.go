package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubLesson struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Code        string         `gorm:"size:100" json:"code"`
	Explanation string         `gorm:"type:text" json:"explanation"`
	Examples    datatypes.JSON `gorm:"type:json" json:"examples"` // ordered array of strings
	StandardID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"standard_id"`
	Standard    Standard       `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	SortOrder   int            `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}
