package services

import (
	"testing"
	"time"

	"clearview-backend/models"
	"clearview-backend/pricing"
	"clearview-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeCreatesActiveCustomerWithInitialJob(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	canvasser := makeUser(t, db, models.RoleCanvasser)
	cleaner := makeUser(t, db, models.RoleCleaner)

	customer, job, err := lifecycle.Intake(IntakeInput{
		FirstName:         "Grace",
		LastName:          "Hopper",
		Address:           "7 Harbour View",
		PropertyType:      models.PropertyTypeHouse,
		WindowsCount:      8,
		AssignedCleanerID: &cleaner.ID,
	}, canvasser.ID)
	require.NoError(t, err)

	assert.Equal(t, models.CustomerStatusActive, customer.Status)
	require.NotNil(t, customer.CanvasserID)
	assert.Equal(t, canvasser.ID, *customer.CanvasserID)

	assert.Equal(t, models.JobTypeInitial, job.JobType)
	assert.Equal(t, models.JobStatusScheduled, job.Status)
	assert.Equal(t, 15.00, job.Price)
	assert.Equal(t, DefaultVisitTime, job.ScheduledTime)
	assert.Equal(t, utils.AtHour(time.Now(), 10, 0), job.ScheduledDate)
	assert.Equal(t, customer.ID, job.CustomerID)
}

func TestIntakeRejectsUnknownPropertyType(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)
	canvasser := makeUser(t, db, models.RoleCanvasser)

	_, _, err := lifecycle.Intake(IntakeInput{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Address:      "7 Harbour View",
		PropertyType: "castle",
		WindowsCount: 200,
	}, canvasser.ID)
	assert.ErrorIs(t, err, pricing.ErrUnknownPropertyType)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count, "no customer row on rejected intake")
}

func TestPauseCreatesSinglePauseAndFlipsStatus(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	admin := makeUser(t, db, models.RoleAdmin)
	cleaner := makeUser(t, db, models.RoleCleaner)
	customer := makeCustomer(t, db, models.CustomerStatusActive, &cleaner.ID)

	pause, err := lifecycle.Pause(customer.ID, admin.ID, "holiday", nil)
	require.NoError(t, err)
	assert.True(t, pause.IsActive)
	assert.Equal(t, "holiday", pause.Reason)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, models.CustomerStatusPaused, reloaded.Status)

	// A second pause while one is active is rejected.
	_, err = lifecycle.Pause(customer.ID, admin.ID, "still away", nil)
	assert.ErrorIs(t, err, ErrAlreadyPaused)

	var activePauses int64
	db.Model(&models.SchedulePause{}).
		Where("customer_id = ? AND is_active = ?", customer.ID, true).
		Count(&activePauses)
	assert.Equal(t, int64(1), activePauses)
}

func TestPauseRequiresActiveCustomer(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	admin := makeUser(t, db, models.RoleAdmin)
	customer := makeCustomer(t, db, models.CustomerStatusCancelled, nil)

	_, err := lifecycle.Pause(customer.ID, admin.ID, "too late", nil)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestResumeReactivatesAndReprices(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	admin := makeUser(t, db, models.RoleAdmin)
	cleaner := makeUser(t, db, models.RoleCleaner)
	customer := makeCustomer(t, db, models.CustomerStatusActive, &cleaner.ID)

	_, err := lifecycle.Pause(customer.ID, admin.ID, "holiday", nil)
	require.NoError(t, err)

	// Property grew while paused: resume must quote from current details.
	require.NoError(t, db.Model(customer).Update("windows_count", 25).Error)

	before := time.Now()
	job, err := lifecycle.Resume(customer.ID)
	require.NoError(t, err)
	require.NotNil(t, job)

	assert.Equal(t, models.JobTypeRegular, job.JobType)
	assert.Equal(t, 42.50, job.Price, "35 base + 1.50 x 5 extra windows")
	assert.Equal(t, DefaultVisitTime, job.ScheduledTime)
	assert.WithinDuration(t, before.AddDate(0, 0, 42), job.ScheduledDate, 5*time.Second)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, models.CustomerStatusActive, reloaded.Status)

	var activePauses int64
	db.Model(&models.SchedulePause{}).
		Where("customer_id = ? AND is_active = ?", customer.ID, true).
		Count(&activePauses)
	assert.Zero(t, activePauses)

	assert.Equal(t, int64(1), countJobs(t, db, customer.ID))
}

func TestResumeWithoutCleanerSchedulesNothing(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	admin := makeUser(t, db, models.RoleAdmin)
	customer := makeCustomer(t, db, models.CustomerStatusActive, nil)

	_, err := lifecycle.Pause(customer.ID, admin.ID, "holiday", nil)
	require.NoError(t, err)

	job, err := lifecycle.Resume(customer.ID)
	require.NoError(t, err)
	assert.Nil(t, job)
	assert.Zero(t, countJobs(t, db, customer.ID))

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, models.CustomerStatusActive, reloaded.Status)
}

func TestResumeRequiresPausedCustomer(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	cleaner := makeUser(t, db, models.RoleCleaner)
	customer := makeCustomer(t, db, models.CustomerStatusActive, &cleaner.ID)

	_, err := lifecycle.Resume(customer.ID)
	assert.ErrorIs(t, err, ErrNotPaused)
}

func TestCancelIsTerminal(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)

	admin := makeUser(t, db, models.RoleAdmin)
	cleaner := makeUser(t, db, models.RoleCleaner)
	customer := makeCustomer(t, db, models.CustomerStatusActive, &cleaner.ID)

	_, err := lifecycle.Pause(customer.ID, admin.ID, "moving house", nil)
	require.NoError(t, err)

	require.NoError(t, lifecycle.Cancel(customer.ID))

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, "id = ?", customer.ID).Error)
	assert.Equal(t, models.CustomerStatusCancelled, reloaded.Status)

	// The active pause is closed out on cancellation.
	var activePauses int64
	db.Model(&models.SchedulePause{}).
		Where("customer_id = ? AND is_active = ?", customer.ID, true).
		Count(&activePauses)
	assert.Zero(t, activePauses)

	// No way back.
	assert.ErrorIs(t, lifecycle.Cancel(customer.ID), ErrCancelled)
	_, err = lifecycle.Resume(customer.ID)
	assert.ErrorIs(t, err, ErrNotPaused)
	_, err = lifecycle.Pause(customer.ID, admin.ID, "again", nil)
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestResumeExpiredSweep(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycle(db)
	sweep := NewPauseExpiry(db, lifecycle)

	admin := makeUser(t, db, models.RoleAdmin)
	cleaner := makeUser(t, db, models.RoleCleaner)

	expired := makeCustomer(t, db, models.CustomerStatusActive, &cleaner.ID)
	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := lifecycle.Pause(expired.ID, admin.ID, "short trip", &yesterday)
	require.NoError(t, err)

	openEnded := makeCustomer(t, db, models.CustomerStatusActive, &cleaner.ID)
	_, err = lifecycle.Pause(openEnded.ID, admin.ID, "indefinite", nil)
	require.NoError(t, err)

	sweep.ResumeExpired()

	var first, second models.Customer
	require.NoError(t, db.First(&first, "id = ?", expired.ID).Error)
	require.NoError(t, db.First(&second, "id = ?", openEnded.ID).Error)

	assert.Equal(t, models.CustomerStatusActive, first.Status)
	assert.Equal(t, int64(1), countJobs(t, db, expired.ID), "expired pause gets a resume visit")

	assert.Equal(t, models.CustomerStatusPaused, second.Status)
	assert.Zero(t, countJobs(t, db, openEnded.ID))
}
