package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// ASSESSMENT REQUEST (never persisted, one per incoming call)
// ============================================================================

type AssessmentRequest struct {
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Address       *string      `json:"address,omitempty"`
	BuildingType  BuildingType `json:"building_type"`
	RoofArea      *float64     `json:"roof_area,omitempty"`
	RoofMaterial  RoofMaterial `json:"roof_material"`
	HouseholdSize *int         `json:"household_size,omitempty"`
	MonthlyIncome *float64     `json:"monthly_income,omitempty"`
	BudgetTier    BudgetTier   `json:"budget_tier"`
	ImageRef      *string      `json:"image_ref,omitempty"`
}

// ============================================================================
// PIPELINE STAGE OUTPUTS
// ============================================================================

type RainfallEstimate struct {
	AnnualMM         float64    `json:"annual_mm"`
	Provenance       Provenance `json:"provenance"`
	DeviationPercent *float64   `json:"deviation_percent,omitempty"`
}

type RoofEstimate struct {
	AreaSqm    float64    `json:"area_sqm"`
	Provenance Provenance `json:"provenance"`
	Confidence float64    `json:"confidence"`
}

type WaterPotential struct {
	AnnualLiters         float64 `json:"annual_liters"`
	DailyAverageLiters   float64 `json:"daily_average_liters"`
	MonthlyAverageLiters float64 `json:"monthly_average_liters"`
	RunoffCoefficient    float64 `json:"runoff_coefficient"`
	CollectionEfficiency float64 `json:"collection_efficiency"`
}

type WaterDemand struct {
	DailyLiters    float64 `json:"daily_liters"`
	MonthlyLiters  float64 `json:"monthly_liters"`
	AnnualLiters   float64 `json:"annual_liters"`
	PerCapitaDaily float64 `json:"per_capita_daily"`
	Occupancy      int     `json:"occupancy"`
}

type FeasibilityResult struct {
	Score          float64    `json:"score"`
	TechnicalScore float64    `json:"technical_score"`
	Provenance     Provenance `json:"provenance"`
}

type StructureRecommendation struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Category      StructureCategory `json:"category"`
	Capacity      string            `json:"capacity"`
	EstimatedCost float64           `json:"estimated_cost"`
	Priority      int               `json:"priority"`
	Specification map[string]any    `json:"specification,omitempty"`
}

type EconomicsResult struct {
	TotalCost       float64  `json:"total_cost"`
	AnnualSavings   float64  `json:"annual_savings"`
	MaintenanceCost float64  `json:"maintenance_cost"`
	NetSavings      float64  `json:"net_savings"`
	// PaybackYears is nil when net savings are zero or negative; the payback
	// period is unbounded in that case.
	PaybackYears       *float64 `json:"payback_years,omitempty"`
	PaybackUnbounded   bool     `json:"payback_unbounded"`
	ROIPercent         float64  `json:"roi_percent"`
	AffordabilityScore float64  `json:"affordability_score"`
	FinancingOptions   []string `json:"financing_options"`
}

type EnvironmentalImpact struct {
	AnnualWaterSavedL  float64 `json:"annual_water_saved_liters"`
	CO2ReductionKg     float64 `json:"co2_reduction_kg"`
	EnergySavedKwh     float64 `json:"energy_saved_kwh"`
	EnvironmentalScore float64 `json:"environmental_score"`
}

type ScoreBreakdown struct {
	Feasibility   float64 `json:"feasibility"`
	Economic      float64 `json:"economic"`
	Environmental float64 `json:"environmental"`
	Technical     float64 `json:"technical"`
	Social        float64 `json:"social"`
}

type OverallScore struct {
	Score          float64        `json:"score"`
	Grade          string         `json:"grade"`
	Recommendation string         `json:"recommendation"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
}

// ============================================================================
// ASSESSMENT RESULT (persisted once, immutable after completion)
// ============================================================================

type AssessmentResult struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       string       `json:"user_id" db:"user_id"`
	Latitude     float64      `json:"latitude" db:"latitude"`
	Longitude    float64      `json:"longitude" db:"longitude"`
	Address      *string      `json:"address,omitempty" db:"address"`
	BuildingType BuildingType `json:"building_type" db:"building_type"`
	RoofMaterial RoofMaterial `json:"roof_material" db:"roof_material"`

	Rainfall      RainfallEstimate          `json:"rainfall"`
	Roof          RoofEstimate              `json:"roof"`
	Potential     WaterPotential            `json:"water_potential"`
	Demand        WaterDemand               `json:"water_demand"`
	Feasibility   FeasibilityResult         `json:"feasibility"`
	Structures    []StructureRecommendation `json:"structures"`
	Economics     EconomicsResult           `json:"economics"`
	Environmental EnvironmentalImpact       `json:"environmental"`
	Overall       OverallScore              `json:"overall"`

	Status           AssessmentStatus `json:"status" db:"status"`
	FromCache        bool             `json:"from_cache"`
	StorageWarning   *string          `json:"storage_warning,omitempty"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
}

// AssessmentPage is one page of a user's assessment history.
type AssessmentPage struct {
	Items  []AssessmentResult `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}
