// Package pricing computes visit prices from a single declarative tier table.
// The table also seeds the pricing_tiers rows served over the API, so the
// computed price and the advertised tiers cannot drift apart.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"clearview-backend/models"
)

var ErrUnknownPropertyType = errors.New("unknown property type")

// Tier is one (property type, window-count range) price bracket. MaxWindows 0
// means open-ended; PerExtraWindow applies to each window past MinWindows-1.
type Tier struct {
	Name           string
	PropertyType   string
	MinWindows     int
	MaxWindows     int
	BasePrice      float64
	PerExtraWindow float64
}

var tiers = []Tier{
	{Name: "House small", PropertyType: models.PropertyTypeHouse, MinWindows: 1, MaxWindows: 10, BasePrice: 15},
	{Name: "House medium", PropertyType: models.PropertyTypeHouse, MinWindows: 11, MaxWindows: 20, BasePrice: 25},
	{Name: "House large", PropertyType: models.PropertyTypeHouse, MinWindows: 21, BasePrice: 35, PerExtraWindow: 1.50},
	{Name: "Flat small", PropertyType: models.PropertyTypeFlat, MinWindows: 1, MaxWindows: 6, BasePrice: 12},
	{Name: "Flat large", PropertyType: models.PropertyTypeFlat, MinWindows: 7, BasePrice: 18, PerExtraWindow: 1.00},
	{Name: "Commercial standard", PropertyType: models.PropertyTypeCommercial, MinWindows: 1, MaxWindows: 20, BasePrice: 50},
	{Name: "Commercial large", PropertyType: models.PropertyTypeCommercial, MinWindows: 21, BasePrice: 80, PerExtraWindow: 2.00},
}

// Tiers returns the price brackets for a property type, empty when the type
// has none. An empty propertyType is unknown like any other.
func Tiers(propertyType string) []Tier {
	var matched []Tier
	for _, t := range tiers {
		if t.PropertyType == propertyType {
			matched = append(matched, t)
		}
	}
	return matched
}

// Price maps (property type, window count) to a visit price. The window count
// is expected to be at least 1 but is not enforced here; counts below the
// first bracket price at its base rate.
func Price(propertyType string, windowCount int) (float64, error) {
	matched := Tiers(propertyType)
	if len(matched) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPropertyType, propertyType)
	}

	for _, t := range matched {
		if t.MaxWindows == 0 || windowCount <= t.MaxWindows {
			price := t.BasePrice
			if t.PerExtraWindow > 0 && windowCount >= t.MinWindows {
				price += t.PerExtraWindow * float64(windowCount-(t.MinWindows-1))
			}
			return price, nil
		}
	}

	// Unreachable while the table's last bracket per type is open-ended.
	return 0, fmt.Errorf("no tier covers %d windows for %q", windowCount, propertyType)
}

// Describe renders the human-readable tier summary for a property type,
// e.g. "House: ≤10 windows = £15, 11-20 = £25, 21+ = £35 + £1.50/extra".
func Describe(propertyType string) (string, error) {
	matched := Tiers(propertyType)
	if len(matched) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownPropertyType, propertyType)
	}

	var parts []string
	for i, t := range matched {
		switch {
		case i == 0 && t.MaxWindows > 0:
			parts = append(parts, fmt.Sprintf("≤%d windows = £%s", t.MaxWindows, formatAmount(t.BasePrice)))
		case t.MaxWindows > 0:
			parts = append(parts, fmt.Sprintf("%d-%d = £%s", t.MinWindows, t.MaxWindows, formatAmount(t.BasePrice)))
		default:
			parts = append(parts, fmt.Sprintf("%d+ = £%s + £%.2f/extra", t.MinWindows, formatAmount(t.BasePrice), t.PerExtraWindow))
		}
	}

	return title(propertyType) + ": " + strings.Join(parts, ", "), nil
}

// Valid reports whether the property type has any pricing bracket.
func Valid(propertyType string) bool {
	return len(Tiers(propertyType)) > 0
}

func formatAmount(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("%.0f", amount)
	}
	return fmt.Sprintf("%.2f", amount)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
