package services

import (
	"log"
	"time"

	"clearview-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PauseExpiry resumes customers whose planned pause end has passed. Each
// expired pause goes through the normal Resume path, so the customer gets a
// re-priced visit 42 days out exactly as a manual resume would.
type PauseExpiry struct {
	db        *gorm.DB
	lifecycle *Lifecycle
}

func NewPauseExpiry(db *gorm.DB, lifecycle *Lifecycle) *PauseExpiry {
	return &PauseExpiry{db: db, lifecycle: lifecycle}
}

// StartScheduler runs the sweep daily at 6 AM.
func (p *PauseExpiry) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 6 * * *", p.ResumeExpired)

	c.Start()
	log.Println("Pause expiry scheduler started")
}

// ResumeExpired finds active pauses with a planned end in the past and resumes
// each customer. Failures are logged per customer and do not stop the sweep.
func (p *PauseExpiry) ResumeExpired() {
	var pauses []models.SchedulePause
	if err := p.db.
		Where("is_active = ? AND pause_end_date IS NOT NULL AND pause_end_date <= ?", true, time.Now()).
		Find(&pauses).Error; err != nil {
		log.Printf("Failed to fetch expired pauses: %v", err)
		return
	}

	for _, pause := range pauses {
		if _, err := p.lifecycle.Resume(pause.CustomerID); err != nil {
			log.Printf("WARN: auto-resume of customer %s failed: %v", pause.CustomerID, err)
			continue
		}
		log.Printf("Auto-resumed customer %s after pause expiry", pause.CustomerID)
	}
}
