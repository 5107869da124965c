package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clearview-backend/config"
	"clearview-backend/models"
	"clearview-backend/services"
	"clearview-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobController struct {
	DB        *gorm.DB
	Scheduler *services.Scheduler
	Cfg       *config.Config
}

type SkipJobInput struct {
	Reason string `json:"reason" binding:"required"`
}

// GetJobs lists jobs, optionally filtered by date (YYYY-MM-DD), cleaner and
// status.
func (jc *JobController) GetJobs(c *gin.Context) {
	query := jc.DB.Model(&models.Job{}).
		Preload("Customer").
		Preload("Cleaner")

	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_date BETWEEN ? AND ?",
			utils.BeginningOfDay(day), utils.EndOfDay(day))
	}
	if cleanerID := c.Query("cleanerId"); cleanerID != "" {
		query = query.Where("cleaner_id = ?", cleanerID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.Job
	if err := query.Order("scheduled_date").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetTodaysJobs lists jobs scheduled for today, optionally for one cleaner.
func (jc *JobController) GetTodaysJobs(c *gin.Context) {
	now := time.Now()
	query := jc.DB.Model(&models.Job{}).
		Preload("Customer").
		Preload("Cleaner").
		Where("scheduled_date BETWEEN ? AND ?", utils.BeginningOfDay(now), utils.EndOfDay(now))

	if cleanerID := c.Query("cleanerId"); cleanerID != "" {
		query = query.Where("cleaner_id = ?", cleanerID)
	}

	var jobs []models.Job
	if err := query.Order("scheduled_time").Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve today's jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// CompleteJob marks a scheduled job completed and paid, stores before/after
// photos, then schedules the next visit best-effort. A scheduling failure is
// logged as a warning but never rolls back the completion.
func (jc *JobController) CompleteJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	paymentMethod := c.PostForm("paymentMethod")
	if !models.ValidPaymentMethod(paymentMethod) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method")
		return
	}
	notes := c.PostForm("notes")

	var job models.Job
	if err := jc.DB.First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	beforePhoto, err := jc.savePhoto(c, "beforePhoto")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	afterPhoto, err := jc.savePhoto(c, "afterPhoto")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.JobStatusCompleted,
		"completed_at":   now,
		"payment_method": paymentMethod,
		"payment_status": models.PaymentStatusPaid,
		"notes":          notes,
	}
	if beforePhoto != "" {
		updates["before_photo_url"] = beforePhoto
	}
	if afterPhoto != "" {
		updates["after_photo_url"] = afterPhoto
	}

	// The conditional update is the terminal-state guard; when it does not
	// apply, the photos stored above belong to no job and must not linger.
	result := jc.DB.Model(&models.Job{}).
		Where("id = ? AND status = ?", job.ID, models.JobStatusScheduled).
		Updates(updates)
	if result.Error != nil {
		jc.removePhotos(beforePhoto, afterPhoto)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to complete job")
		return
	}
	if result.RowsAffected == 0 {
		jc.removePhotos(beforePhoto, afterPhoto)
		utils.RespondWithError(c, http.StatusConflict, "Job is already in a terminal state")
		return
	}

	if _, err := jc.Scheduler.ScheduleNext(job.CustomerID, job.ID); err != nil {
		// Completion stands; the dropped recurrence must be visible to operators.
		log.Printf("WARN: next visit not scheduled for customer %s after job %s: %v",
			job.CustomerID, job.ID, err)
	}

	jc.DB.First(&job, "id = ?", job.ID)
	c.JSON(http.StatusOK, job)
}

// SkipJob marks a scheduled job skipped with a reason.
func (jc *JobController) SkipJob(c *gin.Context) {
	jobUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var input SkipJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var job models.Job
	if err := jc.DB.First(&job, "id = ?", jobUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if job.Terminal() {
		utils.RespondWithError(c, http.StatusConflict, "Job is already "+job.Status)
		return
	}

	result := jc.DB.Model(&models.Job{}).
		Where("id = ? AND status = ?", job.ID, models.JobStatusScheduled).
		Updates(map[string]interface{}{
			"status":      models.JobStatusSkipped,
			"skip_reason": input.Reason,
		})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to skip job")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusConflict, "Job is already in a terminal state")
		return
	}

	jc.DB.First(&job, "id = ?", job.ID)
	c.JSON(http.StatusOK, job)
}

// savePhoto stores an optional multipart image under the upload dir and
// returns the stored filename, or "" when the field is absent.
func (jc *JobController) savePhoto(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil // field not supplied
	}

	if file.Size > jc.Cfg.MaxPhotoSize {
		return "", errors.New(field + " exceeds the 5MB limit")
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", errors.New("only image files are allowed")
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(jc.Cfg.UploadDir, filename)); err != nil {
		return "", errors.New("failed to store " + field)
	}

	return filename, nil
}

// removePhotos deletes stored uploads that never got attached to a job.
func (jc *JobController) removePhotos(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := os.Remove(filepath.Join(jc.Cfg.UploadDir, name)); err != nil {
			log.Printf("WARN: failed to remove orphaned upload %s: %v", name, err)
		}
	}
}
