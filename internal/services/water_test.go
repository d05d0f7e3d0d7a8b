package services

import (
	"testing"

	"assessment-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateWaterPotential_TabulatedExample(t *testing.T) {
	// 100 sqm, 800mm, concrete: 100 * 800 * 0.90 = 72000
	potential := CalculateWaterPotential(100, 800, models.RoofConcrete)

	assert.Equal(t, 72000.0, potential.AnnualLiters)
	assert.InDelta(t, 72000.0/365, potential.DailyAverageLiters, 0.001)
	assert.InDelta(t, 6000.0, potential.MonthlyAverageLiters, 0.001)
	assert.Equal(t, 0.90, potential.RunoffCoefficient)
	assert.Equal(t, 0.95, potential.CollectionEfficiency)
}

func TestCalculateWaterPotential_RunoffCoefficients(t *testing.T) {
	tests := []struct {
		material models.RoofMaterial
		expected float64
	}{
		{models.RoofConcrete, 0.90},
		{models.RoofTile, 0.85},
		{models.RoofMetal, 0.95},
		{models.RoofAsbestos, 0.82},
		{models.RoofGreen, 0.60},
		{models.RoofMaterial("thatch"), 0.85},
		{models.RoofMaterial(""), 0.85},
	}

	for _, tt := range tests {
		t.Run(string(tt.material), func(t *testing.T) {
			potential := CalculateWaterPotential(100, 1000, tt.material)
			assert.Equal(t, tt.expected, potential.RunoffCoefficient)
			assert.Equal(t, 100*1000*tt.expected, potential.AnnualLiters)
		})
	}
}

func TestCalculateWaterPotential_MonotonicInAreaAndRainfall(t *testing.T) {
	base := CalculateWaterPotential(100, 800, models.RoofTile)

	largerRoof := CalculateWaterPotential(150, 800, models.RoofTile)
	assert.GreaterOrEqual(t, largerRoof.AnnualLiters, base.AnnualLiters)

	moreRain := CalculateWaterPotential(100, 1200, models.RoofTile)
	assert.GreaterOrEqual(t, moreRain.AnnualLiters, base.AnnualLiters)
}

func TestCalculateWaterDemand_TableDefaults(t *testing.T) {
	tests := []struct {
		buildingType      models.BuildingType
		expectedOccupancy int
		expectedPerCapita float64
	}{
		{models.BuildingResidential, 4, 150},
		{models.BuildingCommercial, 25, 50},
		{models.BuildingIndustrial, 100, 200},
		{models.BuildingInstitutional, 50, 80},
	}

	for _, tt := range tests {
		t.Run(string(tt.buildingType), func(t *testing.T) {
			demand := CalculateWaterDemand(tt.buildingType, nil)

			assert.Equal(t, tt.expectedOccupancy, demand.Occupancy)
			assert.Equal(t, tt.expectedPerCapita, demand.PerCapitaDaily)

			daily := float64(tt.expectedOccupancy) * tt.expectedPerCapita
			assert.Equal(t, daily, demand.DailyLiters)
			assert.Equal(t, daily*30, demand.MonthlyLiters)
			assert.Equal(t, daily*365, demand.AnnualLiters)
		})
	}
}

func TestCalculateWaterDemand_HouseholdSizeOverridesDefault(t *testing.T) {
	size := 6
	demand := CalculateWaterDemand(models.BuildingResidential, &size)

	assert.Equal(t, 6, demand.Occupancy)
	assert.Equal(t, 900.0, demand.DailyLiters)
}

func TestCalculateEnvironmentalImpact(t *testing.T) {
	potential := CalculateWaterPotential(100, 800, models.RoofConcrete) // 72000 L

	impact := CalculateEnvironmentalImpact(potential)

	assert.Equal(t, 72000.0, impact.AnnualWaterSavedL)
	assert.Equal(t, 36.0, impact.CO2ReductionKg)
	assert.Equal(t, 144.0, impact.EnergySavedKwh)
	assert.Equal(t, 100.0, impact.EnvironmentalScore, "score saturates at 100")
}

func TestCalculateEnvironmentalImpact_ScoreBelowCap(t *testing.T) {
	impact := CalculateEnvironmentalImpact(models.WaterPotential{AnnualLiters: 5000})

	assert.Equal(t, 50.0, impact.EnvironmentalScore)
	assert.Equal(t, 2.5, impact.CO2ReductionKg)
	assert.Equal(t, 10.0, impact.EnergySavedKwh)
}
