package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"clearview-backend/models"
	"clearview-backend/pricing"
	"clearview-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lifecycle owns customer status transitions. Every multi-write sequence runs
// in one transaction, and each status flip is a conditional update checked via
// RowsAffected so concurrent requests on the same customer cannot leave a
// paused customer without an active pause record or vice versa.
type Lifecycle struct {
	db *gorm.DB
}

func NewLifecycle(db *gorm.DB) *Lifecycle {
	return &Lifecycle{db: db}
}

// IntakeInput is the canvassing form.
type IntakeInput struct {
	FirstName           string
	LastName            string
	Email               string
	Phone               string
	Address             string
	Postcode            string
	PropertyType        string
	WindowsCount        int
	SpecialInstructions string
	AssignedCleanerID   *uuid.UUID
}

// Intake registers a new customer as active and books their initial visit for
// today at 10:00, priced from the current tier table.
func (l *Lifecycle) Intake(input IntakeInput, canvasserID uuid.UUID) (*models.Customer, *models.Job, error) {
	price, err := pricing.Price(input.PropertyType, input.WindowsCount)
	if err != nil {
		return nil, nil, err
	}

	customer := models.Customer{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		Address:             input.Address,
		Postcode:            input.Postcode,
		PropertyType:        input.PropertyType,
		WindowsCount:        input.WindowsCount,
		SpecialInstructions: input.SpecialInstructions,
		CanvasserID:         &canvasserID,
		AssignedCleanerID:   input.AssignedCleanerID,
		Status:              models.CustomerStatusActive,
	}

	job := models.Job{
		CleanerID:     input.AssignedCleanerID,
		CanvasserID:   &canvasserID,
		JobType:       models.JobTypeInitial,
		Status:        models.JobStatusScheduled,
		ScheduledDate: utils.AtHour(time.Now(), 10, 0),
		ScheduledTime: DefaultVisitTime,
		Price:         price,
		IsRecurring:   true,
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		job.CustomerID = customer.ID
		return tx.Create(&job).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &customer, &job, nil
}

// Pause halts recurring scheduling for an active customer. Rejected when an
// active pause already exists.
func (l *Lifecycle) Pause(customerID, actorID uuid.UUID, reason string, endDate *time.Time) (*models.SchedulePause, error) {
	var pause models.SchedulePause

	err := l.db.Transaction(func(tx *gorm.DB) error {
		customer, err := loadCustomer(tx, customerID)
		if err != nil {
			return err
		}

		var activePauses int64
		if err := tx.Model(&models.SchedulePause{}).
			Where("customer_id = ? AND is_active = ?", customerID, true).
			Count(&activePauses).Error; err != nil {
			return err
		}
		if activePauses > 0 {
			return ErrAlreadyPaused
		}
		if customer.Status != models.CustomerStatusActive {
			return fmt.Errorf("customer %s has status %q: %w", customerID, customer.Status, ErrNotActive)
		}

		result := tx.Model(&models.Customer{}).
			Where("id = ? AND status = ?", customerID, models.CustomerStatusActive).
			Update("status", models.CustomerStatusPaused)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotActive
		}

		pause = models.SchedulePause{
			CustomerID:      customerID,
			PauseStartDate:  time.Now(),
			PauseEndDate:    endDate,
			Reason:          reason,
			CreatedByUserID: &actorID,
			IsActive:        true,
		}
		return tx.Create(&pause).Error
	})
	if err != nil {
		return nil, err
	}

	return &pause, nil
}

// Resume reactivates a paused customer, deactivates their pause record and
// books the next visit 42 days out. Unlike post-completion scheduling the
// price is recomputed from the customer's current property type and window
// count.
func (l *Lifecycle) Resume(customerID uuid.UUID) (*models.Job, error) {
	var nextJob *models.Job

	err := l.db.Transaction(func(tx *gorm.DB) error {
		customer, err := loadCustomer(tx, customerID)
		if err != nil {
			return err
		}
		if customer.Status != models.CustomerStatusPaused {
			return fmt.Errorf("customer %s has status %q: %w", customerID, customer.Status, ErrNotPaused)
		}

		if err := tx.Model(&models.SchedulePause{}).
			Where("customer_id = ? AND is_active = ?", customerID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Customer{}).
			Where("id = ? AND status = ?", customerID, models.CustomerStatusPaused).
			Update("status", models.CustomerStatusActive)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotPaused
		}

		if customer.AssignedCleanerID == nil {
			log.Printf("WARN: customer %s resumed without an assigned cleaner; no visit scheduled", customerID)
			return nil
		}

		price, err := pricing.Price(customer.PropertyType, customer.WindowsCount)
		if err != nil {
			return err
		}

		job := models.Job{
			CustomerID:    customer.ID,
			CleanerID:     customer.AssignedCleanerID,
			CanvasserID:   customer.CanvasserID,
			JobType:       models.JobTypeRegular,
			Status:        models.JobStatusScheduled,
			ScheduledDate: time.Now().AddDate(0, 0, VisitIntervalDays),
			ScheduledTime: DefaultVisitTime,
			Price:         price,
			IsRecurring:   true,
		}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		nextJob = &job
		return nil
	})
	if err != nil {
		return nil, err
	}

	return nextJob, nil
}

// Cancel moves an active or paused customer to the terminal cancelled state,
// deactivating any active pause. There is no transition back.
func (l *Lifecycle) Cancel(customerID uuid.UUID) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		customer, err := loadCustomer(tx, customerID)
		if err != nil {
			return err
		}
		if customer.Status == models.CustomerStatusCancelled {
			return fmt.Errorf("customer %s: %w", customerID, ErrCancelled)
		}

		result := tx.Model(&models.Customer{}).
			Where("id = ? AND status IN ?", customerID,
				[]string{models.CustomerStatusActive, models.CustomerStatusPaused}).
			Update("status", models.CustomerStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("customer %s has status %q: %w", customerID, customer.Status, ErrNotActive)
		}

		return tx.Model(&models.SchedulePause{}).
			Where("customer_id = ? AND is_active = ?", customerID, true).
			Update("is_active", false).Error
	})
}

func loadCustomer(tx *gorm.DB, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := tx.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
		}
		return nil, err
	}
	return &customer, nil
}
