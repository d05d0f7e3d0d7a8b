package cache

import (
	"context"
	"fmt"
	"time"

	"assessment-service/internal/models"
)

// Cache stores completed assessment results keyed by a request fingerprint.
// A cache is a pure optimization: implementations must degrade every backend
// failure to a miss so the pipeline always falls through to full computation.
type Cache interface {
	Get(ctx context.Context, fingerprint string) (*models.AssessmentResult, bool)
	Set(ctx context.Context, fingerprint string, result *models.AssessmentResult, ttl time.Duration)
}

// Fingerprint builds the deterministic cache key for a request. Only
// latitude, longitude, building type and the caller-supplied roof area take
// part; requests that differ only in household size, income or budget tier
// collide on purpose (known staleness trade-off inherited from the original
// platform). A request without an explicit roof area uses the "auto"
// segment so it never collides with an explicitly sized request.
func Fingerprint(req models.AssessmentRequest) string {
	area := "auto"
	if req.RoofArea != nil {
		area = fmt.Sprintf("%.1f", *req.RoofArea)
	}
	return fmt.Sprintf("assessment:%.4f:%.4f:%s:%s", req.Latitude, req.Longitude, req.BuildingType, area)
}
