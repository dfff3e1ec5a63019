// Package geocode resolves coordinates to street addresses through the
// public Nominatim API. Lookups are best effort: callers treat a nil
// address as "unknown", never as a failure.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"public-vision-be/internal/config"
)

type Service interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*string, error)
}

type service struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewService(cfg *config.Config) Service {
	return &service{
		client:    &http.Client{Timeout: 5 * time.Second},
		baseURL:   "https://nominatim.openstreetmap.org",
		userAgent: cfg.GeocodeUserAgent,
	}
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

func (s *service) ReverseGeocode(ctx context.Context, lat, lng float64) (*string, error) {
	url := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f", s.baseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.DisplayName == "" {
		return nil, nil
	}
	return &result.DisplayName, nil
}
