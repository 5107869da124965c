package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name         string
		propertyType string
		windowCount  int
		want         float64
	}{
		{"house small bracket floor", "house", 1, 15.00},
		{"house small bracket ceiling", "house", 10, 15.00},
		{"house medium bracket floor", "house", 11, 25.00},
		{"house medium bracket ceiling", "house", 20, 25.00},
		{"house first window over 20", "house", 21, 36.50},
		{"house large", "house", 30, 50.00},
		{"flat small ceiling", "flat", 6, 12.00},
		{"flat first extra window", "flat", 7, 19.00},
		{"flat large", "flat", 16, 28.00},
		{"commercial standard ceiling", "commercial", 20, 50.00},
		{"commercial first window over 20", "commercial", 21, 82.00},
		{"commercial large", "commercial", 40, 120.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.propertyType, tt.windowCount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceUnknownPropertyType(t *testing.T) {
	_, err := Price("castle", 10)
	assert.ErrorIs(t, err, ErrUnknownPropertyType)

	_, err = Price("", 10)
	assert.ErrorIs(t, err, ErrUnknownPropertyType)
}

// Prices never decrease as the window count grows, including across bracket
// boundaries.
func TestPriceMonotonic(t *testing.T) {
	for _, propertyType := range []string{"house", "flat", "commercial"} {
		prev := 0.0
		for count := 1; count <= 60; count++ {
			price, err := Price(propertyType, count)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, price, prev,
				"%s price dropped at %d windows", propertyType, count)
			prev = price
		}
	}
}

// Above each open-ended bracket's floor the price is strictly increasing.
func TestPriceStrictlyIncreasingPerExtraWindow(t *testing.T) {
	tests := []struct {
		propertyType string
		from         int
	}{
		{"house", 21},
		{"flat", 7},
		{"commercial", 21},
	}

	for _, tt := range tests {
		prev, err := Price(tt.propertyType, tt.from)
		require.NoError(t, err)
		for count := tt.from + 1; count <= tt.from+10; count++ {
			price, err := Price(tt.propertyType, count)
			require.NoError(t, err)
			assert.Greater(t, price, prev, "%s at %d windows", tt.propertyType, count)
			prev = price
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		propertyType string
		want         string
	}{
		{"house", "House: ≤10 windows = £15, 11-20 = £25, 21+ = £35 + £1.50/extra"},
		{"flat", "Flat: ≤6 windows = £12, 7+ = £18 + £1.00/extra"},
		{"commercial", "Commercial: ≤20 windows = £50, 21+ = £80 + £2.00/extra"},
	}

	for _, tt := range tests {
		t.Run(tt.propertyType, func(t *testing.T) {
			got, err := Describe(tt.propertyType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Describe("castle")
	assert.ErrorIs(t, err, ErrUnknownPropertyType)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("house"))
	assert.True(t, Valid("flat"))
	assert.True(t, Valid("commercial"))
	assert.False(t, Valid("castle"))
	assert.False(t, Valid(""))
}
