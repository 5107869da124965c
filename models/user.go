package models

import (
	"time"

	"clearview-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin     = "admin"
	RoleCanvasser = "canvasser"
	RoleCleaner   = "cleaner"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255" json:"email"`
	Password     string    `gorm:"-" json:"-"` // plaintext input, hashed in BeforeCreate
	PasswordHash string    `gorm:"not null" json:"-"`

	Role      string `gorm:"type:varchar(20);not null" json:"role"` // admin, canvasser, cleaner
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Phone     string `gorm:"size:20" json:"phone"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Password != "" {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hashed
	}
	return
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCanvasser, RoleCleaner:
		return true
	}
	return false
}
