package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"assessment-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// AssessmentRepository persists completed assessment results. Records are
// append-mostly: one insert per completed pipeline run, never updated by
// this service.
type AssessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

type assessmentRow struct {
	ID               uuid.UUID  `db:"id"`
	UserID           string     `db:"user_id"`
	Address          *string    `db:"address"`
	BuildingType     string     `db:"building_type"`
	RoofMaterial     string     `db:"roof_material"`
	LocationWKB      []byte     `db:"location_wkb"`
	OverallScore     float64    `db:"overall_score"`
	Grade            string     `db:"grade"`
	Recommendation   string     `db:"recommendation"`
	Status           string     `db:"status"`
	Result           []byte     `db:"result"`
	ProcessingTimeMs int64      `db:"processing_time_ms"`
	CreatedAt        time.Time  `db:"created_at"`
	CompletedAt      *time.Time `db:"completed_at"`
}

// resultPayload is the JSONB blob holding the nested pipeline outputs.
type resultPayload struct {
	Rainfall      models.RainfallEstimate          `json:"rainfall"`
	Roof          models.RoofEstimate              `json:"roof"`
	Potential     models.WaterPotential            `json:"water_potential"`
	Demand        models.WaterDemand               `json:"water_demand"`
	Feasibility   models.FeasibilityResult         `json:"feasibility"`
	Structures    []models.StructureRecommendation `json:"structures"`
	Economics     models.EconomicsResult           `json:"economics"`
	Environmental models.EnvironmentalImpact       `json:"environmental"`
	Overall       models.OverallScore              `json:"overall"`
}

func (r *AssessmentRepository) Save(ctx context.Context, result *models.AssessmentResult) error {
	payload, err := json.Marshal(resultPayload{
		Rainfall:      result.Rainfall,
		Roof:          result.Roof,
		Potential:     result.Potential,
		Demand:        result.Demand,
		Feasibility:   result.Feasibility,
		Structures:    result.Structures,
		Economics:     result.Economics,
		Environmental: result.Environmental,
		Overall:       result.Overall,
	})
	if err != nil {
		return fmt.Errorf("internal_error: failed to marshal assessment payload: %w", err)
	}

	query := `
		INSERT INTO assessments (
			id, user_id, address, building_type, roof_material,
			location,
			overall_score, grade, recommendation,
			status, result, processing_time_ms, created_at, completed_at
		) VALUES (
			$1, $2, $3, $4, $5,
			ST_GeogFromText($6),
			$7, $8, $9,
			$10, $11, $12, $13, $14
		)`

	point := fmt.Sprintf("POINT(%f %f)", result.Longitude, result.Latitude)

	_, err = r.db.ExecContext(ctx, query,
		result.ID, result.UserID, result.Address, result.BuildingType, result.RoofMaterial,
		point,
		result.Overall.Score, result.Overall.Grade, result.Overall.Recommendation,
		result.Status, payload, result.ProcessingTimeMs, result.CreatedAt, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("internal_error: failed to save assessment: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AssessmentResult, error) {
	query := `
		SELECT
			id, user_id, address, building_type, roof_material,
			ST_AsBinary(location::geometry) AS location_wkb,
			overall_score, grade, recommendation,
			status, result, processing_time_ms, created_at, completed_at
		FROM assessments
		WHERE id = $1`

	var row assessmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not_found: assessment not found: %s", id)
		}
		return nil, fmt.Errorf("internal_error: query failed: %w", err)
	}

	return rowToResult(row)
}

func (r *AssessmentRepository) ListByUser(ctx context.Context, userID string, limit, offset int) (*models.AssessmentPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM assessments WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("internal_error: count failed: %w", err)
	}

	query := `
		SELECT
			id, user_id, address, building_type, roof_material,
			ST_AsBinary(location::geometry) AS location_wkb,
			overall_score, grade, recommendation,
			status, result, processing_time_ms, created_at, completed_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var rows []assessmentRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("internal_error: query failed: %w", err)
	}

	items := make([]models.AssessmentResult, 0, len(rows))
	for _, row := range rows {
		result, err := rowToResult(row)
		if err != nil {
			slog.Warn("Skipping unreadable assessment row", "assessment_id", row.ID, "error", err)
			continue
		}
		items = append(items, *result)
	}

	return &models.AssessmentPage{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func rowToResult(row assessmentRow) (*models.AssessmentResult, error) {
	var payload resultPayload
	if len(row.Result) > 0 {
		if err := json.Unmarshal(row.Result, &payload); err != nil {
			return nil, fmt.Errorf("internal_error: failed to decode assessment payload: %w", err)
		}
	}

	result := models.AssessmentResult{
		ID:               row.ID,
		UserID:           row.UserID,
		Address:          row.Address,
		BuildingType:     models.BuildingType(row.BuildingType),
		RoofMaterial:     models.RoofMaterial(row.RoofMaterial),
		Rainfall:         payload.Rainfall,
		Roof:             payload.Roof,
		Potential:        payload.Potential,
		Demand:           payload.Demand,
		Feasibility:      payload.Feasibility,
		Structures:       payload.Structures,
		Economics:        payload.Economics,
		Environmental:    payload.Environmental,
		Overall:          payload.Overall,
		Status:           models.AssessmentStatus(row.Status),
		ProcessingTimeMs: row.ProcessingTimeMs,
		CreatedAt:        row.CreatedAt,
		CompletedAt:      row.CompletedAt,
	}

	if len(row.LocationWKB) > 0 {
		g, err := wkb.Unmarshal(row.LocationWKB)
		if err != nil {
			return nil, fmt.Errorf("internal_error: failed to decode location: %w", err)
		}
		if point, ok := g.(*geom.Point); ok {
			result.Longitude = point.X()
			result.Latitude = point.Y()
		}
	}

	return &result, nil
}
