package services

import (
	"fmt"
	"testing"
	"time"

	"clearview-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Job{},
		&models.SchedulePause{},
		&models.PricingTier{},
	))
	return db
}

func makeUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		Username: fmt.Sprintf("%s-%s", role, uuid.New().String()[:8]),
		Password: "secret123",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func makeCustomer(t *testing.T, db *gorm.DB, status string, cleanerID *uuid.UUID) *models.Customer {
	t.Helper()
	customer := models.Customer{
		FirstName:         "Ada",
		LastName:          "Lovelace",
		Address:           "12 Crescent Road",
		PropertyType:      models.PropertyTypeHouse,
		WindowsCount:      8,
		AssignedCleanerID: cleanerID,
		Status:            status,
	}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

func makeCompletedJob(t *testing.T, db *gorm.DB, customer *models.Customer, completedAt time.Time, price float64) *models.Job {
	t.Helper()
	job := models.Job{
		CustomerID:    customer.ID,
		CleanerID:     customer.AssignedCleanerID,
		JobType:       models.JobTypeRegular,
		Status:        models.JobStatusCompleted,
		ScheduledDate: completedAt,
		ScheduledTime: "09:30",
		CompletedAt:   &completedAt,
		Price:         price,
		PaymentStatus: models.PaymentStatusPaid,
		IsRecurring:   true,
	}
	require.NoError(t, db.Create(&job).Error)
	return &job
}

func countJobs(t *testing.T, db *gorm.DB, customerID uuid.UUID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Job{}).
		Where("customer_id = ?", customerID).Count(&count).Error)
	return count
}
