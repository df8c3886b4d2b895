package cli

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bounce-labs/daily-claim/internal/models"
)

// APIClient handles communication with the claim service API
type APIClient struct {
	baseURL string
	client  *resty.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	client := resty.New()
	client.SetTimeout(2 * time.Minute) // claims wait on wallet prompts
	client.SetHeader("Content-Type", "application/json")

	return &APIClient{
		baseURL: baseURL,
		client:  client,
	}
}

// Claim starts a claim attempt
func (c *APIClient) Claim() (*models.ClaimResponse, error) {
	var response models.ClaimResponse
	var errResponse models.ErrorResponse

	resp, err := c.client.R().
		SetResult(&response).
		SetError(&errResponse).
		Post(fmt.Sprintf("%s/api/v1/claim", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to start claim: %w", err)
	}
	if resp.IsError() {
		if errResponse.Error != "" {
			return nil, fmt.Errorf("API error: %s", errResponse.Error)
		}
		return nil, fmt.Errorf("API error: HTTP %d", resp.StatusCode())
	}

	return &response, nil
}

// GetDisplayState fetches the current claim flow state
func (c *APIClient) GetDisplayState() (*models.DisplayState, error) {
	var response models.DisplayState

	resp, err := c.client.R().
		SetResult(&response).
		Get(fmt.Sprintf("%s/api/v1/claim", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to get claim state: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("API error: HTTP %d", resp.StatusCode())
	}

	return &response, nil
}

// ResetClaim abandons the current claim attempt
func (c *APIClient) ResetClaim() (*models.DisplayState, error) {
	var response models.DisplayState

	resp, err := c.client.R().
		SetResult(&response).
		Post(fmt.Sprintf("%s/api/v1/claim/reset", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to reset claim: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("API error: HTTP %d", resp.StatusCode())
	}

	return &response, nil
}

// GetStatus fetches the claim status of an address
func (c *APIClient) GetStatus(address string) (*models.StatusResponse, error) {
	var response models.StatusResponse
	var errResponse models.ErrorResponse

	resp, err := c.client.R().
		SetResult(&response).
		SetError(&errResponse).
		Get(fmt.Sprintf("%s/api/v1/status/%s", c.baseURL, address))
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	if resp.IsError() {
		if errResponse.Error != "" {
			return nil, fmt.Errorf("API error: %s", errResponse.Error)
		}
		return nil, fmt.Errorf("API error: HTTP %d", resp.StatusCode())
	}

	return &response, nil
}

// GetInfo fetches claim service information
func (c *APIClient) GetInfo() (*models.InfoResponse, error) {
	var response models.InfoResponse

	resp, err := c.client.R().
		SetResult(&response).
		Get(fmt.Sprintf("%s/api/v1/info", c.baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to get info: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("API error: HTTP %d", resp.StatusCode())
	}

	return &response, nil
}
