package models

type BuildingType string

const (
	BuildingResidential   BuildingType = "residential"
	BuildingCommercial    BuildingType = "commercial"
	BuildingIndustrial    BuildingType = "industrial"
	BuildingInstitutional BuildingType = "institutional"
)

func IsValidBuildingType(t BuildingType) bool {
	switch t {
	case BuildingResidential, BuildingCommercial, BuildingIndustrial, BuildingInstitutional:
		return true
	default:
		return false
	}
}

type RoofMaterial string

const (
	RoofConcrete RoofMaterial = "concrete"
	RoofTile     RoofMaterial = "tile"
	RoofMetal    RoofMaterial = "metal"
	RoofAsbestos RoofMaterial = "asbestos"
	RoofGreen    RoofMaterial = "green"
)

func IsValidRoofMaterial(m RoofMaterial) bool {
	switch m {
	case RoofConcrete, RoofTile, RoofMetal, RoofAsbestos, RoofGreen:
		return true
	default:
		return false
	}
}

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

func IsValidBudgetTier(t BudgetTier) bool {
	switch t {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	default:
		return false
	}
}

// Provenance marks whether a figure came from a live model or a static fallback.
type Provenance string

const (
	ProvenancePredicted Provenance = "predicted"
	ProvenanceDetected  Provenance = "detected"
	ProvenanceEstimated Provenance = "estimated"
	// ProvenanceProvided marks a value the caller supplied directly.
	ProvenanceProvided Provenance = "provided"
)

type AssessmentStatus string

const (
	AssessmentProcessing AssessmentStatus = "processing"
	AssessmentCompleted  AssessmentStatus = "completed"
	AssessmentFailed     AssessmentStatus = "failed"
)

type Region string

const (
	RegionNorth   Region = "north"
	RegionSouth   Region = "south"
	RegionEast    Region = "east"
	RegionWest    Region = "west"
	RegionCentral Region = "central"
)

type StructureCategory string

const (
	CategoryStorage   StructureCategory = "storage"
	CategoryFilter    StructureCategory = "filter"
	CategoryTreatment StructureCategory = "treatment"
	CategoryRecharge  StructureCategory = "recharge"
)
