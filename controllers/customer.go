package controllers

import (
	"errors"
	"net/http"
	"time"

	"clearview-backend/middleware"
	"clearview-backend/models"
	"clearview-backend/pricing"
	"clearview-backend/services"
	"clearview-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerController struct {
	DB        *gorm.DB
	Lifecycle *services.Lifecycle
}

// CreateCustomerInput defines the expected JSON structure for intake
type CreateCustomerInput struct {
	FirstName           string     `json:"firstName" binding:"required"`
	LastName            string     `json:"lastName" binding:"required"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	Address             string     `json:"address" binding:"required"`
	Postcode            string     `json:"postcode"`
	PropertyType        string     `json:"propertyType" binding:"required"`
	WindowsCount        int        `json:"windowsCount" binding:"required,min=1"`
	SpecialInstructions string     `json:"specialInstructions"`
	AssignedCleanerID   *uuid.UUID `json:"assignedCleanerId"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	FirstName           *string    `json:"firstName"`
	LastName            *string    `json:"lastName"`
	Email               *string    `json:"email"`
	Phone               *string    `json:"phone"`
	Address             *string    `json:"address"`
	Postcode            *string    `json:"postcode"`
	PropertyType        *string    `json:"propertyType"`
	WindowsCount        *int       `json:"windowsCount"`
	SpecialInstructions *string    `json:"specialInstructions"`
	AssignedCleanerID   *uuid.UUID `json:"assignedCleanerId"`
}

type PauseCustomerInput struct {
	Reason       string     `json:"reason"`
	PauseEndDate *time.Time `json:"pauseEndDate"`
}

// GetCustomers retrieves customers, optionally filtered by status, cleaner or
// a name/email search.
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	query := cc.DB.Model(&models.Customer{}).
		Preload("Canvasser").
		Preload("AssignedCleaner")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if cleanerID := c.Query("cleanerId"); cleanerID != "" {
		query = query.Where("assigned_cleaner_id = ?", cleanerID)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}

	var customers []models.Customer
	if err := query.Order("first_name").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := cc.DB.Preload("Canvasser").Preload("AssignedCleaner").
		First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// CreateCustomer runs intake: the customer is created as active with the
// acting user as canvasser, and the initial visit is booked for today at
// 10:00 at the computed tier price.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer, _, err := cc.Lifecycle.Intake(services.IntakeInput{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		Address:             input.Address,
		Postcode:            input.Postcode,
		PropertyType:        input.PropertyType,
		WindowsCount:        input.WindowsCount,
		SpecialInstructions: input.SpecialInstructions,
		AssignedCleanerID:   input.AssignedCleanerID,
	}, actor.ID)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownPropertyType) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown property type")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		}
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer updates contact and property details. Status changes go
// through the pause/resume/cancel endpoints.
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := cc.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Postcode != nil {
		customer.Postcode = *input.Postcode
	}
	if input.PropertyType != nil {
		if !pricing.Valid(*input.PropertyType) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown property type")
			return
		}
		customer.PropertyType = *input.PropertyType
	}
	if input.WindowsCount != nil {
		if *input.WindowsCount < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "Window count must be at least 1")
			return
		}
		customer.WindowsCount = *input.WindowsCount
	}
	if input.SpecialInstructions != nil {
		customer.SpecialInstructions = *input.SpecialInstructions
	}
	if input.AssignedCleanerID != nil {
		customer.AssignedCleanerID = input.AssignedCleanerID
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// PauseCustomer halts recurring scheduling for the customer.
func (cc *CustomerController) PauseCustomer(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input PauseCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	pause, err := cc.Lifecycle.Pause(customerUUID, actor.ID, input.Reason, input.PauseEndDate)
	if err != nil {
		respondLifecycleError(c, err, "Failed to pause customer")
		return
	}

	c.JSON(http.StatusOK, pause)
}

// ResumeCustomer reactivates a paused customer and books a re-priced visit 42
// days out.
func (cc *CustomerController) ResumeCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	nextJob, err := cc.Lifecycle.Resume(customerUUID)
	if err != nil {
		respondLifecycleError(c, err, "Failed to resume customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer resumed successfully",
		"nextJob": nextJob,
	})
}

// CancelCustomer moves the customer to the terminal cancelled state.
func (cc *CustomerController) CancelCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if err := cc.Lifecycle.Cancel(customerUUID); err != nil {
		respondLifecycleError(c, err, "Failed to cancel customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer cancelled successfully"})
}

func respondLifecycleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, services.ErrAlreadyPaused):
		utils.RespondWithError(c, http.StatusConflict, "Customer already has an active pause")
	case errors.Is(err, services.ErrNotPaused):
		utils.RespondWithError(c, http.StatusConflict, "Customer is not paused")
	case errors.Is(err, services.ErrNotActive):
		utils.RespondWithError(c, http.StatusConflict, "Customer is not active")
	case errors.Is(err, services.ErrCancelled):
		utils.RespondWithError(c, http.StatusConflict, "Customer is cancelled")
	case errors.Is(err, pricing.ErrUnknownPropertyType):
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown property type")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
