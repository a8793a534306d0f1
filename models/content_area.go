package models

import (
	"time"

	"github.com/google/uuid"
)

type ContentArea struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code        string     `gorm:"size:100;not null" json:"code"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Grade       string     `gorm:"size:20" json:"grade"`
	SubjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject     Subject    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	FrameworkID uuid.UUID  `gorm:"type:uuid;not null;index" json:"framework_id"`
	Framework   Framework  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	SortOrder   int        `gorm:"column:sort_order;default:0" json:"order"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Standards   []Standard `gorm:"foreignKey:ContentAreaID" json:"standards,omitempty"`
}
