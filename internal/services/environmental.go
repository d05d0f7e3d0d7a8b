package services

import "assessment-service/internal/models"

const (
	co2KgPerKiloliter     = 0.5
	energyKwhPerKiloliter = 2
)

// CalculateEnvironmentalImpact converts harvested water into CO2 and energy
// savings. The environmental score saturates at 100 for 10,000 liters and up.
func CalculateEnvironmentalImpact(potential models.WaterPotential) models.EnvironmentalImpact {
	annual := potential.AnnualLiters
	kiloliters := annual / 1000

	score := (annual / 10000) * 100
	if score > 100 {
		score = 100
	}

	return models.EnvironmentalImpact{
		AnnualWaterSavedL:  annual,
		CO2ReductionKg:     kiloliters * co2KgPerKiloliter,
		EnergySavedKwh:     kiloliters * energyKwhPerKiloliter,
		EnvironmentalScore: score,
	}
}
