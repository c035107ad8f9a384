package pathways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	commonhttp "pathway-workers/internal/common/http"
)

// Client talks to the external pathways provider API that publishes
// scholarship and grant programs.
type Client struct {
	baseURL    string
	httpClient *commonhttp.Client
}

// Program is a scholarship or grant program as published by the provider.
type Program struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Provider     string          `json:"provider"`
	Amount       float64         `json:"amount"`
	Currency     string          `json:"currency,omitempty"`
	Deadline     string          `json:"deadline,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Criteria     json.RawMessage `json:"criteria,omitempty"`
	LastModified string          `json:"last_modified,omitempty"`
}

type listProgramsResponse struct {
	Data []Program `json:"data"`
	Info struct {
		Page        int  `json:"page"`
		PerPage     int  `json:"per_page"`
		MoreRecords bool `json:"more_records"`
	} `json:"info"`
}

func NewClient(baseURL, apiKey, oauthToken string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.pathways-edu.com/v2"
	}

	httpClient := commonhttp.NewClient(timeout)
	if oauthToken != "" {
		httpClient.SetHeader("Authorization", "Bearer "+oauthToken)
	}
	httpClient.SetHeader("X-Api-Key", apiKey)

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListPrograms fetches one page of programs modified since the given
// timestamp (RFC3339, empty for all).
func (c *Client) ListPrograms(ctx context.Context, modifiedSince string, page int) ([]Program, bool, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	if modifiedSince != "" {
		q.Set("modified_since", modifiedSince)
	}

	var listResp listProgramsResponse
	if err := c.httpClient.GetJSON(ctx, fmt.Sprintf("%s/programs?%s", c.baseURL, q.Encode()), &listResp); err != nil {
		return nil, false, fmt.Errorf("failed to list programs: %w", err)
	}

	return listResp.Data, listResp.Info.MoreRecords, nil
}

// GetProgram fetches a single program by provider id.
func (c *Client) GetProgram(ctx context.Context, programID string) (*Program, error) {
	var result struct {
		Data []Program `json:"data"`
	}

	err := c.httpClient.GetJSON(ctx, fmt.Sprintf("%s/programs/%s", c.baseURL, programID), &result)
	if err != nil {
		var statusErr *commonhttp.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == 404 {
			return nil, fmt.Errorf("program not found: %s", programID)
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("program not found: %s", programID)
	}

	return &result.Data[0], nil
}
