package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CustomerStatusProspect  = "prospect"
	CustomerStatusActive    = "active"
	CustomerStatusPaused    = "paused"
	CustomerStatusCancelled = "cancelled"
)

const (
	PropertyTypeHouse      = "house"
	PropertyTypeFlat       = "flat"
	PropertyTypeCommercial = "commercial"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Address   string `gorm:"not null" json:"address"`
	Postcode  string `gorm:"size:10" json:"postcode"`

	PropertyType        string `gorm:"type:varchar(20);not null" json:"propertyType"` // house, flat, commercial
	WindowsCount        int    `gorm:"not null" json:"windowsCount"`
	SpecialInstructions string `json:"specialInstructions"`

	CanvasserID       *uuid.UUID `gorm:"type:uuid;index" json:"canvasserId"`
	AssignedCleanerID *uuid.UUID `gorm:"type:uuid;index" json:"assignedCleanerId"`

	Status string `gorm:"type:varchar(20);default:'prospect'" json:"status"` // prospect, active, paused, cancelled

	Canvasser       *User `gorm:"foreignKey:CanvasserID" json:"canvasser,omitempty"`
	AssignedCleaner *User `gorm:"foreignKey:AssignedCleanerID" json:"assignedCleaner,omitempty"`

	Jobs []Job `gorm:"foreignKey:CustomerID" json:"jobs,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
