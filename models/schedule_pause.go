package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchedulePause halts a customer's recurring visits. At most one pause per
// customer may have IsActive set at any time.
type SchedulePause struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	PauseStartDate time.Time  `gorm:"not null" json:"pauseStartDate"`
	PauseEndDate   *time.Time `json:"pauseEndDate"`
	Reason         string     `json:"reason"`

	CreatedByUserID *uuid.UUID `gorm:"type:uuid" json:"createdByUserId"`
	IsActive        bool       `gorm:"default:true;index" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *SchedulePause) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
