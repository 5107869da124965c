package services

import (
	"errors"
	"fmt"
	"log"

	"clearview-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitIntervalDays is the gap between a completed visit and the next one.
const VisitIntervalDays = 42

// DefaultVisitTime is the schedule slot for jobs created without a prior
// visit to copy from.
const DefaultVisitTime = "10:00"

// Scheduler creates the follow-up visit after a job completes.
type Scheduler struct {
	db *gorm.DB
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{db: db}
}

// ScheduleNext creates the recurring job 42 calendar days after the completed
// job's completion time, copying its price and time slot verbatim. The price
// is deliberately not recomputed so a later tier change never moves an already
// quoted amount; Lifecycle.Resume is the one path that re-prices.
func (s *Scheduler) ScheduleNext(customerID, completedJobID uuid.UUID) (*models.Job, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
		}
		return nil, err
	}

	var completed models.Job
	if err := s.db.First(&completed, "id = ?", completedJobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", completedJobID, ErrNotFound)
		}
		return nil, err
	}

	if customer.Status != models.CustomerStatusActive {
		return nil, fmt.Errorf("customer %s has status %q: %w", customer.ID, customer.Status, ErrNotActive)
	}
	if customer.AssignedCleanerID == nil {
		return nil, fmt.Errorf("customer %s: %w", customer.ID, ErrNoAssignedCleaner)
	}
	if completed.CompletedAt == nil {
		return nil, fmt.Errorf("job %s: %w", completed.ID, ErrNotCompleted)
	}

	nextDate := completed.CompletedAt.AddDate(0, 0, VisitIntervalDays)

	job := models.Job{
		CustomerID:    customer.ID,
		CleanerID:     customer.AssignedCleanerID,
		CanvasserID:   customer.CanvasserID,
		JobType:       models.JobTypeRegular,
		Status:        models.JobStatusScheduled,
		ScheduledDate: nextDate,
		ScheduledTime: completed.ScheduledTime,
		Price:         completed.Price,
		IsRecurring:   true,
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}

	log.Printf("Scheduled next visit for customer %s %s on %s",
		customer.FirstName, customer.LastName, nextDate.Format("2006-01-02"))

	return &job, nil
}
