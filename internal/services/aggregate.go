package services

import "assessment-service/internal/models"

// Aggregation weights. They must sum to 1.0; the grading behavior is
// contractually tested against these exact constants.
const (
	weightFeasibility   = 0.30
	weightEconomic      = 0.25
	weightEnvironmental = 0.20
	weightTechnical     = 0.15
	weightSocial        = 0.10
)

const (
	socialScoreHigh          = 85
	socialScoreLow           = 65
	socialPotentialThreshold = 10000
)

// AggregateScore combines the sub-scores into the overall score, grade and
// recommendation label.
func AggregateScore(
	feasibility models.FeasibilityResult,
	economics models.EconomicsResult,
	environmental models.EnvironmentalImpact,
	potential models.WaterPotential,
) models.OverallScore {
	economicScore := economics.ROIPercent * 5
	if economicScore > 100 {
		economicScore = 100
	}

	socialScore := float64(socialScoreLow)
	if potential.AnnualLiters > socialPotentialThreshold {
		socialScore = socialScoreHigh
	}

	breakdown := models.ScoreBreakdown{
		Feasibility:   feasibility.Score,
		Economic:      economicScore,
		Environmental: environmental.EnvironmentalScore,
		Technical:     feasibility.TechnicalScore,
		Social:        socialScore,
	}

	score := breakdown.Feasibility*weightFeasibility +
		breakdown.Economic*weightEconomic +
		breakdown.Environmental*weightEnvironmental +
		breakdown.Technical*weightTechnical +
		breakdown.Social*weightSocial

	return models.OverallScore{
		Score:          score,
		Grade:          gradeFor(score),
		Recommendation: recommendationFor(score),
		Breakdown:      breakdown,
	}
}

// gradeFor maps a score to a letter grade. Boundaries are inclusive.
func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B+"
	case score >= 60:
		return "B"
	case score >= 50:
		return "C+"
	default:
		return "C"
	}
}

func recommendationFor(score float64) string {
	switch {
	case score >= 80:
		return "Highly Recommended"
	case score >= 60:
		return "Recommended"
	case score >= 40:
		return "Consider with Modifications"
	default:
		return "Not Recommended"
	}
}
