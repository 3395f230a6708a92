package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"nutrisnap/utils"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
)

// FoodCandidate is one unresolved search result. Candidates are transient:
// they live only inside a capture session and are never persisted.
type FoodCandidate struct {
	Description string                      `json:"description"`
	Category    string                      `json:"category,omitempty"`
	Brand       string                      `json:"brand,omitempty"`
	Nutrients   []utils.NutrientObservation `json:"nutrients"`
	Normalized  utils.NormalizedNutrients   `json:"normalized"`
}

// NutrientSearcher is the nutrient search collaborator of the capture
// pipeline. The production implementation is USDAService.
type NutrientSearcher interface {
	SearchFoods(ctx context.Context, query string) ([]FoodCandidate, error)
}

type USDAService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *otter.Cache[string, []FoodCandidate]
}

// NewUSDAService initializes the FoodData Central client. An empty
// USDA_API_KEY is tolerated: the request is still issued and the upstream
// rejection surfaces as an ordinary lookup failure.
func NewUSDAService() *USDAService {
	cache := otter.Must(&otter.Options[string, []FoodCandidate]{
		MaximumSize:      2_000,
		ExpiryCalculator: otter.ExpiryWriting[string, []FoodCandidate](15 * time.Minute),
	})
	return &USDAService{
		apiKey:  os.Getenv("USDA_API_KEY"),
		baseURL: "https://api.nal.usda.gov",
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// foodSearchResponse mirrors the FDC /foods/search endpoint.
type foodSearchResponse struct {
	Foods []struct {
		Description   string `json:"description"`
		FoodCategory  string `json:"foodCategory"`
		BrandOwner    string `json:"brandOwner"`
		FoodNutrients []struct {
			NutrientName string  `json:"nutrientName"`
			Value        float64 `json:"value"`
			UnitName     string  `json:"unitName"`
		} `json:"foodNutrients"`
	} `json:"foods"`
}

// SearchFoods queries FDC for free-text matches of query. Results are cached
// per query for a short TTL so repeated capture sessions against the same
// detected names stay cheap.
func (s *USDAService) SearchFoods(ctx context.Context, query string) ([]FoodCandidate, error) {
	if hit, ok := s.cache.GetIfPresent(query); ok {
		return hit, nil
	}

	u := fmt.Sprintf("%s/fdc/v1/foods/search?query=%s&api_key=%s",
		s.baseURL, url.QueryEscape(query), url.QueryEscape(s.apiKey))

	body, err := s.getWithRetry(ctx, u)
	if err != nil {
		return nil, err
	}

	var sr foodSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse FDC search JSON: %w", err)
	}

	results := make([]FoodCandidate, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		obs := make([]utils.NutrientObservation, 0, len(f.FoodNutrients))
		for _, n := range f.FoodNutrients {
			obs = append(obs, utils.NutrientObservation{
				Name:  n.NutrientName,
				Value: n.Value,
				Unit:  n.UnitName,
			})
		}
		results = append(results, FoodCandidate{
			Description: f.Description,
			Category:    f.FoodCategory,
			Brand:       f.BrandOwner,
			Nutrients:   obs,
			Normalized:  utils.Normalize(obs),
		})
	}

	s.cache.Set(query, results)
	return results, nil
}

// getWithRetry issues a GET with jittered exponential backoff on transport
// errors, rate limiting and server errors.
func (s *USDAService) getWithRetry(ctx context.Context, u string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
			if err != nil {
				return err
			}
			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read FDC response: %w", err)
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("FDC API error %d: %s", resp.StatusCode, string(b))
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("FDC API error %d: %s", resp.StatusCode, string(b)))
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to call FDC search: %w", err)
	}
	return body, nil
}
