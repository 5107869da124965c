package controllers

import (
	"errors"
	"net/http"

	"clearview-backend/models"
	"clearview-backend/pricing"
	"clearview-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PricingController struct {
	DB *gorm.DB
}

type CalculatePriceInput struct {
	PropertyType string `json:"propertyType" binding:"required"`
	WindowCount  int    `json:"windowCount" binding:"required,min=1"`
}

// GetPricingTiers lists the seeded tier rows.
func (p *PricingController) GetPricingTiers(c *gin.Context) {
	var tiers []models.PricingTier
	if err := p.DB.Where("is_active = ?", true).
		Order("property_type, window_count_min").
		Find(&tiers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve pricing tiers")
		return
	}

	c.JSON(http.StatusOK, tiers)
}

// CalculatePrice quotes a visit for a property type and window count.
func (p *PricingController) CalculatePrice(c *gin.Context) {
	var input CalculatePriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	price, err := pricing.Price(input.PropertyType, input.WindowCount)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownPropertyType) {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown property type")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to calculate price")
		}
		return
	}

	tiers, _ := pricing.Describe(input.PropertyType)

	c.JSON(http.StatusOK, gin.H{
		"price": price,
		"tiers": tiers,
	})
}
