package services

import (
	"fmt"

	"assessment-service/internal/models"

	"github.com/google/uuid"
)

// storageRatios is the fraction of annual potential worth storing, per
// building type.
var storageRatios = map[models.BuildingType]float64{
	models.BuildingResidential:   0.15,
	models.BuildingCommercial:    0.12,
	models.BuildingIndustrial:    0.10,
	models.BuildingInstitutional: 0.18,
}

const (
	maxTankCapacityLiters   = 5000
	tankCostPerLiter        = 15
	tankBaseCost            = 5000
	diverterCapacityLiters  = 50
	diverterCost            = 2500
	filtrationCostStandard  = 4000
	filtrationCostHighTier  = 8000
	rechargePitCost         = 5000
	storageThresholdLiters  = 500
	rechargeSurplusMultiple = 1.5
)

// RecommendStructures builds the priority-ordered list of harvesting
// structures from the two calculator outputs plus budget tier and building
// type. Deterministic and side-effect free; output is ascending priority
// and no two entries share a priority.
func RecommendStructures(
	potential models.WaterPotential,
	demand models.WaterDemand,
	buildingType models.BuildingType,
	budgetTier models.BudgetTier,
) []models.StructureRecommendation {
	structures := make([]models.StructureRecommendation, 0, 4)

	ratio, ok := storageRatios[buildingType]
	if !ok {
		ratio = storageRatios[models.BuildingResidential]
	}

	recommendedStorage := potential.AnnualLiters * ratio
	if recommendedStorage > storageThresholdLiters {
		capacity := recommendedStorage
		if capacity > maxTankCapacityLiters {
			capacity = maxTankCapacityLiters
		}
		structures = append(structures, models.StructureRecommendation{
			ID:            uuid.New(),
			Name:          "Primary Storage Tank",
			Category:      models.CategoryStorage,
			Capacity:      fmt.Sprintf("%.0f liters", capacity),
			EstimatedCost: capacity*tankCostPerLiter + tankBaseCost,
			Priority:      1,
			Specification: map[string]any{
				"capacity_liters":     capacity,
				"recommended_storage": recommendedStorage,
				"storage_ratio":       ratio,
			},
		})
	}

	structures = append(structures, models.StructureRecommendation{
		ID:            uuid.New(),
		Name:          "First Flush Diverter",
		Category:      models.CategoryFilter,
		Capacity:      fmt.Sprintf("%d liters", diverterCapacityLiters),
		EstimatedCost: diverterCost,
		Priority:      2,
		Specification: map[string]any{
			"capacity_liters": diverterCapacityLiters,
		},
	})

	filtrationCost := float64(filtrationCostStandard)
	if budgetTier == models.BudgetHigh {
		filtrationCost = filtrationCostHighTier
	}
	structures = append(structures, models.StructureRecommendation{
		ID:            uuid.New(),
		Name:          "Filtration Unit",
		Category:      models.CategoryTreatment,
		Capacity:      fmt.Sprintf("%.0f liters/day", demand.DailyLiters),
		EstimatedCost: filtrationCost,
		Priority:      3,
		Specification: map[string]any{
			"throughput_liters_per_day": demand.DailyLiters,
			"budget_tier":               string(budgetTier),
		},
	})

	if potential.AnnualLiters > demand.AnnualLiters*rechargeSurplusMultiple {
		surplus := potential.AnnualLiters - demand.AnnualLiters
		structures = append(structures, models.StructureRecommendation{
			ID:            uuid.New(),
			Name:          "Groundwater Recharge Pit",
			Category:      models.CategoryRecharge,
			Capacity:      fmt.Sprintf("%.0f liters/year surplus", surplus),
			EstimatedCost: rechargePitCost,
			Priority:      4,
			Specification: map[string]any{
				"annual_surplus_liters": surplus,
			},
		})
	}

	return structures
}
