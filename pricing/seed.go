package pricing

import (
	"errors"

	"clearview-backend/models"

	"gorm.io/gorm"
)

// SeedTiers mirrors the in-code tier table into the pricing_tiers rows served
// by the API. Idempotent: existing rows are updated in place, keyed by
// (property type, window count min).
func SeedTiers(db *gorm.DB) error {
	for _, t := range tiers {
		var maxWindows *int
		if t.MaxWindows > 0 {
			v := t.MaxWindows
			maxWindows = &v
		}
		var perWindow *float64
		if t.PerExtraWindow > 0 {
			v := t.PerExtraWindow
			perWindow = &v
		}

		var row models.PricingTier
		err := db.Where("property_type = ? AND window_count_min = ?", t.PropertyType, t.MinWindows).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.PricingTier{
				Name:           t.Name,
				PropertyType:   t.PropertyType,
				WindowCountMin: t.MinWindows,
				WindowCountMax: maxWindows,
				BasePrice:      t.BasePrice,
				PerWindowPrice: perWindow,
				IsActive:       true,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		} else if err != nil {
			return err
		}

		row.Name = t.Name
		row.WindowCountMax = maxWindows
		row.BasePrice = t.BasePrice
		row.PerWindowPrice = perWindow
		row.IsActive = true
		if err := db.Save(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
