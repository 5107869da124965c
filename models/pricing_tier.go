package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PricingTier is the persisted mirror of the in-code tier table; rows are
// seeded at boot and served by GET /api/pricing.
type PricingTier struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:100;not null" json:"name"`

	PropertyType   string   `gorm:"type:varchar(20);not null;index" json:"propertyType"`
	WindowCountMin int      `gorm:"not null" json:"windowCountMin"`
	WindowCountMax *int     `json:"windowCountMax"` // nil = open-ended
	BasePrice      float64  `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	PerWindowPrice *float64 `gorm:"type:decimal(10,2)" json:"perWindowPrice"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (t *PricingTier) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
