package services

import "assessment-service/internal/models"

// runoffCoefficients is the fraction of rainfall that becomes collectible
// runoff, by roof material.
var runoffCoefficients = map[models.RoofMaterial]float64{
	models.RoofConcrete: 0.90,
	models.RoofTile:     0.85,
	models.RoofMetal:    0.95,
	models.RoofAsbestos: 0.82,
	models.RoofGreen:    0.60,
}

const (
	defaultRunoffCoefficient = 0.85
	collectionEfficiency     = 0.95
)

// buildingCoefficients holds the default occupancy and per-capita daily
// water usage (liters) per building type.
var buildingCoefficients = map[models.BuildingType]struct {
	DefaultOccupancy int
	PerCapitaDaily   float64
}{
	models.BuildingResidential:   {DefaultOccupancy: 4, PerCapitaDaily: 150},
	models.BuildingCommercial:    {DefaultOccupancy: 25, PerCapitaDaily: 50},
	models.BuildingIndustrial:    {DefaultOccupancy: 100, PerCapitaDaily: 200},
	models.BuildingInstitutional: {DefaultOccupancy: 50, PerCapitaDaily: 80},
}

// RunoffCoefficient returns the tabulated coefficient for a roof material,
// or the 0.85 default for an unknown material.
func RunoffCoefficient(material models.RoofMaterial) float64 {
	if c, ok := runoffCoefficients[material]; ok {
		return c
	}
	return defaultRunoffCoefficient
}

// CalculateWaterPotential computes the annual harvestable volume from roof
// area, rainfall and roof material. The collection efficiency constant is
// carried for display only and is not applied to the liters figure, keeping
// "potential" and "collectible" numbers separable.
func CalculateWaterPotential(roofAreaSqm, annualRainfallMM float64, material models.RoofMaterial) models.WaterPotential {
	coefficient := RunoffCoefficient(material)
	annual := roofAreaSqm * annualRainfallMM * coefficient

	return models.WaterPotential{
		AnnualLiters:         annual,
		DailyAverageLiters:   annual / 365,
		MonthlyAverageLiters: annual / 12,
		RunoffCoefficient:    coefficient,
		CollectionEfficiency: collectionEfficiency,
	}
}

// CalculateWaterDemand computes daily/monthly/annual demand from the
// building-type coefficient table. Occupancy is the caller-supplied
// household size when present, else the table default.
func CalculateWaterDemand(buildingType models.BuildingType, householdSize *int) models.WaterDemand {
	coeff, ok := buildingCoefficients[buildingType]
	if !ok {
		coeff = buildingCoefficients[models.BuildingResidential]
	}

	occupancy := coeff.DefaultOccupancy
	if householdSize != nil && *householdSize > 0 {
		occupancy = *householdSize
	}

	daily := float64(occupancy) * coeff.PerCapitaDaily

	return models.WaterDemand{
		DailyLiters:    daily,
		MonthlyLiters:  daily * 30,
		AnnualLiters:   daily * 365,
		PerCapitaDaily: coeff.PerCapitaDaily,
		Occupancy:      occupancy,
	}
}
