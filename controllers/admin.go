package controllers

import (
	"errors"
	"net/http"
	"time"

	"clearview-backend/models"
	"clearview-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

// CreateUserInput defines the expected JSON structure for creating a user.
// The role is fixed at creation; there is no promotion flow.
type CreateUserInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"required,oneof=admin canvasser cleaner"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// UpdateUserInput defines the expected JSON structure for updating a user.
// Role is deliberately absent.
type UpdateUserInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"isActive"`
}

// GetUsers retrieves all users
func (a *AdminController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := a.DB.Order("first_name").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser creates a new user account
func (a *AdminController) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := a.DB.Where("username = ?", input.Username).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username already taken")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password, // hashed in BeforeCreate hook
		Role:      input.Role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		IsActive:  true,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser updates contact details or the active flag
func (a *AdminController) UpdateUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := a.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := a.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetStats returns the admin dashboard counts.
func (a *AdminController) GetStats(c *gin.Context) {
	var activeCustomers int64
	a.DB.Model(&models.Customer{}).
		Where("status = ?", models.CustomerStatusActive).
		Count(&activeCustomers)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var completedThisMonth int64
	a.DB.Model(&models.Job{}).
		Where("status = ? AND completed_at >= ?", models.JobStatusCompleted, firstOfMonth).
		Count(&completedThisMonth)

	var monthlyRevenue float64
	a.DB.Model(&models.Job{}).
		Where("status = ? AND completed_at >= ?", models.JobStatusCompleted, firstOfMonth).
		Select("COALESCE(SUM(price), 0)").Scan(&monthlyRevenue)

	var jobsToday int64
	a.DB.Model(&models.Job{}).
		Where("scheduled_date BETWEEN ? AND ?", utils.BeginningOfDay(now), utils.EndOfDay(now)).
		Count(&jobsToday)

	c.JSON(http.StatusOK, gin.H{
		"activeCustomers":        activeCustomers,
		"jobsCompletedThisMonth": completedThisMonth,
		"monthlyRevenue":         monthlyRevenue,
		"jobsToday":              jobsToday,
	})
}

// GetCleaners lists active cleaner-role users for assignment dropdowns.
func (a *AdminController) GetCleaners(c *gin.Context) {
	var cleaners []models.User
	if err := a.DB.Where("role = ? AND is_active = ?", models.RoleCleaner, true).
		Order("first_name").
		Find(&cleaners).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve cleaners")
		return
	}

	c.JSON(http.StatusOK, cleaners)
}
