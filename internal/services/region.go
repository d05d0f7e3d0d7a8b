package services

import "assessment-service/internal/models"

// Regional defaults used when live data is unavailable. The tables are
// fixed at process start and never mutated.

// regionalRainfallMM is the default annual rainfall (mm) per region.
var regionalRainfallMM = map[models.Region]float64{
	models.RegionNorth:   650,
	models.RegionSouth:   920,
	models.RegionEast:    1200,
	models.RegionWest:    550,
	models.RegionCentral: 850,
}

// regionalWaterCost is the municipal water cost per liter (INR) per region.
var regionalWaterCost = map[models.Region]float64{
	models.RegionNorth:   0.025,
	models.RegionSouth:   0.030,
	models.RegionEast:    0.020,
	models.RegionWest:    0.035,
	models.RegionCentral: 0.028,
}

const defaultWaterCostPerLiter = 0.028

// ClassifyRegion maps a coordinate to a coarse region bucket.
func ClassifyRegion(lat, lon float64) models.Region {
	switch {
	case lat > 28:
		return models.RegionNorth
	case lat < 15:
		return models.RegionSouth
	case lon < 77:
		return models.RegionWest
	case lon > 85:
		return models.RegionEast
	default:
		return models.RegionCentral
	}
}

// RegionalRainfall returns the default annual rainfall for a coordinate.
func RegionalRainfall(lat, lon float64) float64 {
	return regionalRainfallMM[ClassifyRegion(lat, lon)]
}

// RegionalWaterCost returns the water cost per liter for a coordinate.
func RegionalWaterCost(lat, lon float64) float64 {
	if cost, ok := regionalWaterCost[ClassifyRegion(lat, lon)]; ok {
		return cost
	}
	return defaultWaterCostPerLiter
}
