package services

import (
	"fmt"

	"assessment-service/internal/models"
)

const (
	minRoofAreaSqm   = 10
	maxRoofAreaSqm   = 10000
	minHouseholdSize = 1
	maxHouseholdSize = 50
)

// ValidateRequest checks all request fields and applies defaults for the
// optional enums. Violations carry the "validation:" tag and reject the
// request before any computation runs.
func ValidateRequest(req *models.AssessmentRequest) error {
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("validation: latitude %f out of range [-90, 90]", req.Latitude)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("validation: longitude %f out of range [-180, 180]", req.Longitude)
	}
	if !models.IsValidBuildingType(req.BuildingType) {
		return fmt.Errorf("validation: invalid building_type %q", req.BuildingType)
	}
	if req.RoofMaterial != "" && !models.IsValidRoofMaterial(req.RoofMaterial) {
		return fmt.Errorf("validation: invalid roof_material %q", req.RoofMaterial)
	}
	if req.RoofArea != nil && (*req.RoofArea < minRoofAreaSqm || *req.RoofArea > maxRoofAreaSqm) {
		return fmt.Errorf("validation: roof_area %f out of range [%d, %d]", *req.RoofArea, minRoofAreaSqm, maxRoofAreaSqm)
	}
	if req.HouseholdSize != nil && (*req.HouseholdSize < minHouseholdSize || *req.HouseholdSize > maxHouseholdSize) {
		return fmt.Errorf("validation: household_size %d out of range [%d, %d]", *req.HouseholdSize, minHouseholdSize, maxHouseholdSize)
	}
	if req.MonthlyIncome != nil && *req.MonthlyIncome < 0 {
		return fmt.Errorf("validation: monthly_income must not be negative")
	}

	if req.BudgetTier == "" {
		req.BudgetTier = models.BudgetMedium
	} else if !models.IsValidBudgetTier(req.BudgetTier) {
		return fmt.Errorf("validation: invalid budget_tier %q", req.BudgetTier)
	}

	return nil
}
