package services

import "assessment-service/internal/models"

const (
	annualMaintenanceRate = 0.05
	neutralAffordability  = 70
	selfFundedCostCeiling = 20000
	bankLoanCostFloor     = 50000
	installmentPlanMonths = 24
)

// CalculateEconomics derives installation cost, savings, payback, ROI,
// affordability and financing eligibility from the recommended structures
// and the regional water cost at the assessed coordinate.
func CalculateEconomics(
	structures []models.StructureRecommendation,
	potential models.WaterPotential,
	lat, lon float64,
	monthlyIncome *float64,
) models.EconomicsResult {
	var totalCost float64
	for _, s := range structures {
		totalCost += s.EstimatedCost
	}

	costPerLiter := RegionalWaterCost(lat, lon)
	annualSavings := potential.AnnualLiters * costPerLiter
	maintenance := totalCost * annualMaintenanceRate
	netSavings := annualSavings - maintenance

	result := models.EconomicsResult{
		TotalCost:       totalCost,
		AnnualSavings:   annualSavings,
		MaintenanceCost: maintenance,
		NetSavings:      netSavings,
	}

	// Payback is unbounded when the system never recoups its cost.
	if netSavings > 0 && totalCost > 0 {
		payback := totalCost / netSavings
		result.PaybackYears = &payback
		result.ROIPercent = netSavings / totalCost * 100
	} else {
		result.PaybackUnbounded = true
		result.ROIPercent = 0
	}

	result.AffordabilityScore = affordabilityScore(totalCost, monthlyIncome)
	result.FinancingOptions = financingOptions(totalCost, monthlyIncome)

	return result
}

func affordabilityScore(totalCost float64, monthlyIncome *float64) float64 {
	if monthlyIncome == nil || totalCost <= 0 {
		return neutralAffordability
	}
	score := (*monthlyIncome * 12 / totalCost) * 50
	if score > 100 {
		score = 100
	}
	return score
}

func financingOptions(totalCost float64, monthlyIncome *float64) []string {
	options := make([]string, 0, 4)

	if totalCost < selfFundedCostCeiling {
		options = append(options, "Self-funded")
	}
	if monthlyIncome != nil && *monthlyIncome >= totalCost/installmentPlanMonths {
		options = append(options, "Installment plan (24 months)")
	}
	options = append(options, "Government subsidy (30-50% coverage)")
	if totalCost > bankLoanCostFloor {
		options = append(options, "Bank loan")
	}

	return options
}
