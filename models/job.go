package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JobTypeInitial = "initial"
	JobTypeRegular = "regular"
	JobTypeOneOff  = "one_off"
)

const (
	JobStatusScheduled = "scheduled"
	JobStatusCompleted = "completed"
	JobStatusCancelled = "cancelled"
	JobStatusSkipped   = "skipped"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCard         = "card"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusOverdue = "overdue"
)

type Job struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	CleanerID   *uuid.UUID `gorm:"type:uuid;index" json:"cleanerId"`
	CanvasserID *uuid.UUID `gorm:"type:uuid;index" json:"canvasserId"`

	JobType string `gorm:"type:varchar(20);not null" json:"jobType"`           // initial, regular, one_off
	Status  string `gorm:"type:varchar(20);default:'scheduled'" json:"status"` // scheduled, completed, cancelled, skipped

	ScheduledDate time.Time  `gorm:"not null" json:"scheduledDate"`
	ScheduledTime string     `gorm:"size:5" json:"scheduledTime"` // "HH:MM"
	CompletedAt   *time.Time `json:"completedAt"`

	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	PaymentMethod string `gorm:"type:varchar(20)" json:"paymentMethod"`
	PaymentStatus string `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`

	BeforePhotoURL string `gorm:"column:before_photo_url" json:"beforePhotoUrl"`
	AfterPhotoURL  string `gorm:"column:after_photo_url" json:"afterPhotoUrl"`

	Notes      string `json:"notes"`
	SkipReason string `json:"skipReason"`

	IsRecurring bool `gorm:"default:true" json:"isRecurring"`
	// Populated nowhere by the scheduling path; recurrence creates a new row instead.
	NextScheduledDate *time.Time `json:"nextScheduledDate"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Cleaner  *User     `gorm:"foreignKey:CleanerID" json:"cleaner,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return
}

// Terminal reports whether the job has reached a state it can never leave.
func (j *Job) Terminal() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusCancelled, JobStatusSkipped:
		return true
	}
	return false
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard:
		return true
	}
	return false
}
