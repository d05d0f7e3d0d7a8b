package services

import (
	"testing"

	"assessment-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRegion(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected models.Region
	}{
		{"delhi is north", 28.7, 77.1, models.RegionNorth},
		{"chennai is south", 13.08, 80.27, models.RegionSouth},
		{"mumbai is west", 19.07, 72.88, models.RegionWest},
		{"kolkata is east", 22.57, 88.36, models.RegionEast},
		{"nagpur is central", 21.15, 79.09, models.RegionCentral},
		{"latitude exactly 28 is not north", 28.0, 77.5, models.RegionCentral},
		{"latitude exactly 15 is not south", 15.0, 80.0, models.RegionCentral},
		{"longitude exactly 77 is not west", 20.0, 77.0, models.RegionCentral},
		{"longitude exactly 85 is not east", 20.0, 85.0, models.RegionCentral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyRegion(tt.lat, tt.lon))
		})
	}
}

func TestRegionalRainfall(t *testing.T) {
	assert.Equal(t, 650.0, RegionalRainfall(28.7, 77.1))
	assert.Equal(t, 920.0, RegionalRainfall(13.0, 80.0))
	assert.Equal(t, 1200.0, RegionalRainfall(22.5, 88.3))
	assert.Equal(t, 550.0, RegionalRainfall(19.0, 72.8))
	assert.Equal(t, 850.0, RegionalRainfall(21.0, 79.0))
}

func TestRegionalWaterCost(t *testing.T) {
	assert.Equal(t, 0.025, RegionalWaterCost(28.7, 77.1))
	assert.Equal(t, 0.030, RegionalWaterCost(13.0, 80.0))
	assert.Equal(t, 0.020, RegionalWaterCost(22.5, 88.3))
	assert.Equal(t, 0.035, RegionalWaterCost(19.0, 72.8))
	assert.Equal(t, 0.028, RegionalWaterCost(21.0, 79.0))
}
