package services

import (
	"context"
	"testing"

	"assessment-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRainfallEstimator_FallbackUsesRegionalDefault(t *testing.T) {
	estimator := NewRainfallEstimator(&fakeMLClient{})

	tests := []struct {
		name     string
		lat, lon float64
		expected float64
	}{
		{"north", 28.7, 77.1, 650},
		{"south", 13.0, 80.2, 920},
		{"east", 22.5, 88.3, 1200},
		{"west", 19.0, 72.8, 550},
		{"central", 21.0, 79.0, 850},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate := estimator.Estimate(context.Background(), tt.lat, tt.lon)

			assert.Equal(t, models.ProvenanceEstimated, estimate.Provenance)
			assert.Equal(t, tt.expected, estimate.AnnualMM)
			assert.Nil(t, estimate.DeviationPercent)
		})
	}
}

func TestRoofEstimator_FallbackDefaultsPerBuildingType(t *testing.T) {
	estimator := NewRoofEstimator(&fakeMLClient{})

	tests := []struct {
		buildingType models.BuildingType
		expected     float64
	}{
		{models.BuildingResidential, 100},
		{models.BuildingCommercial, 250},
		{models.BuildingIndustrial, 500},
		{models.BuildingInstitutional, 200},
	}

	for _, tt := range tests {
		t.Run(string(tt.buildingType), func(t *testing.T) {
			req := models.AssessmentRequest{
				Latitude:     20,
				Longitude:    78,
				BuildingType: tt.buildingType,
				ImageRef:     strPtr("roof-images/u/1.jpg"),
			}
			estimate := estimator.Estimate(context.Background(), req)

			assert.Equal(t, models.ProvenanceEstimated, estimate.Provenance)
			assert.Equal(t, tt.expected, estimate.AreaSqm)
			assert.Equal(t, 0.6, estimate.Confidence)
		})
	}
}

func TestFeasibilityScorer_FallbackConstants(t *testing.T) {
	scorer := NewFeasibilityScorer(&fakeMLClient{})

	result := scorer.Score(context.Background(), 120, 650, 4, models.RoofConcrete, models.BuildingResidential)

	assert.Equal(t, models.ProvenanceEstimated, result.Provenance)
	assert.Equal(t, 75.0, result.Score)
	assert.Equal(t, 80.0, result.TechnicalScore)
}
