package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"techforge_app_go/models"
)

// APIClient talks to the site's JSON API. It implements both ListingFetcher
// and LeadSubmitter.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a client for the site at baseURL
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type listingResponse struct {
	Success  bool                    `json:"success"`
	Projects []models.ProjectListing `json:"projects"`
}

// FetchListings calls GET /api/projects/{category}
func (a *APIClient) FetchListings(ctx context.Context, categoryID string) (ListingResult, error) {
	endpoint := a.baseURL + "/api/projects/" + url.PathEscape(categoryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ListingResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return ListingResult{}, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ListingResult{}, fmt.Errorf("project listing returned status %d", resp.StatusCode)
	}

	var body listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ListingResult{}, fmt.Errorf("failed to decode projects: %w", err)
	}
	return ListingResult{Success: body.Success, Listings: body.Projects}, nil
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

// SubmitLead calls POST /api/contact with the form as JSON
func (a *APIClient) SubmitLead(ctx context.Context, form LeadForm) (SubmitResult, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/contact", bytes.NewReader(payload))
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("failed to submit lead: %w", err)
	}
	defer resp.Body.Close()

	var body submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return SubmitResult{}, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 || !body.Success {
		if body.Error != "" {
			return SubmitResult{}, fmt.Errorf("lead rejected: %s", body.Error)
		}
		return SubmitResult{}, fmt.Errorf("lead rejected with status %d", resp.StatusCode)
	}
	return SubmitResult{OK: true, ID: body.ID}, nil
}

// CategorySummary is a category with the number of listings it carries
type CategorySummary struct {
	models.Category
	Available int64 `json:"available"`
}

type categoriesResponse struct {
	Success    bool              `json:"success"`
	Categories []CategorySummary `json:"categories"`
}

// FetchCategories calls GET /api/categories
func (a *APIClient) FetchCategories(ctx context.Context) ([]CategorySummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("category listing returned status %d", resp.StatusCode)
	}

	var body categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return body.Categories, nil
}
