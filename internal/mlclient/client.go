package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"assessment-service/internal/config"
	"assessment-service/internal/models"
)

// Client is the contract with the external assessment ML service. Each call
// is a single attempt bounded by the configured timeout; callers fall back
// to static defaults when a call fails.
type Client interface {
	PredictRainfall(ctx context.Context, lat, lon float64, monthsAhead int) (*RainfallPrediction, error)
	DetectRoof(ctx context.Context, imageRef string, lat, lon float64, buildingType models.BuildingType) (*RoofDetection, error)
	AnalyzeFeasibility(ctx context.Context, in FeasibilityInput) (*FeasibilityAnalysis, error)
}

type RainfallPrediction struct {
	PredictedAnnualRainfall float64  `json:"predicted_annual_rainfall"`
	DeviationPercent        *float64 `json:"deviation_percent,omitempty"`
	ConfidenceScore         float64  `json:"confidence_score"`
	DataSource              string   `json:"data_source"`
}

type RoofDetection struct {
	RoofArea        float64 `json:"roof_area"`
	RoofType        string  `json:"roof_type"`
	ConfidenceScore float64 `json:"confidence_score"`
}

type FeasibilityInput struct {
	RoofArea       float64             `json:"roof_area"`
	AnnualRainfall float64             `json:"annual_rainfall"`
	HouseholdSize  int                 `json:"household_size"`
	RoofType       models.RoofMaterial `json:"roof_type"`
	BuildingType   models.BuildingType `json:"building_type"`
}

type FeasibilityAnalysis struct {
	FeasibilityScore float64 `json:"feasibility_score"`
	TechnicalScore   float64 `json:"technical_score"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(cfg config.MLServiceConfig) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) PredictRainfall(ctx context.Context, lat, lon float64, monthsAhead int) (*RainfallPrediction, error) {
	body := map[string]any{
		"latitude":     lat,
		"longitude":    lon,
		"months_ahead": monthsAhead,
	}
	var out RainfallPrediction
	if err := c.post(ctx, "/predict-rainfall", body, &out); err != nil {
		return nil, err
	}
	if out.PredictedAnnualRainfall <= 0 {
		return nil, fmt.Errorf("rainfall prediction returned non-positive annual total: %f", out.PredictedAnnualRainfall)
	}
	return &out, nil
}

func (c *HTTPClient) DetectRoof(ctx context.Context, imageRef string, lat, lon float64, buildingType models.BuildingType) (*RoofDetection, error) {
	body := map[string]any{
		"image_ref":     imageRef,
		"latitude":      lat,
		"longitude":     lon,
		"building_type": buildingType,
	}
	var out RoofDetection
	if err := c.post(ctx, "/detect-roof", body, &out); err != nil {
		return nil, err
	}
	if out.RoofArea <= 0 {
		return nil, fmt.Errorf("roof detection returned non-positive area: %f", out.RoofArea)
	}
	return &out, nil
}

func (c *HTTPClient) AnalyzeFeasibility(ctx context.Context, in FeasibilityInput) (*FeasibilityAnalysis, error) {
	var out FeasibilityAnalysis
	if err := c.post(ctx, "/calculate-feasibility", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call ML service %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read ML service response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ML service %s returned status %d: %s", path, resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode ML service response: %w", err)
	}
	return nil
}
