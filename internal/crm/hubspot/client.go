// Package hubspot updates HubSpot contact records with screening outcomes
// through the CRM v3 contacts API.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/findmymarket/screening-agent/internal/models"
)

const defaultBaseURL = "https://api.hubapi.com"

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("HubSpot API key is required")
	}

	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// SyncResult updates the contact's screening properties. With a contact ID
// it patches the record directly; with only an email it searches for an
// exact match and patches the first result. No match is not an error.
func (c *Client) SyncResult(ctx context.Context, contactID string, email string, result models.ScreeningResult) error {
	props := contactProperties(result)

	if contactID != "" {
		return c.updateContact(ctx, contactID, props)
	}

	if email != "" {
		id, err := c.searchContactByEmail(ctx, email)
		if err != nil {
			return err
		}
		if id == "" {
			return nil
		}
		return c.updateContact(ctx, id, props)
	}

	return nil
}

func contactProperties(result models.ScreeningResult) map[string]string {
	detected := ""
	if result.ProductOrProcedure != nil {
		detected = *result.ProductOrProcedure
	}

	props := map[string]string{
		"screening_status":    string(result.Recommendation),
		"screening_score":     strconv.FormatFloat(result.RelevanceScore, 'f', -1, 64),
		"screening_product":   result.Subject,
		"screening_detected":  detected,
		"screening_reasoning": result.Reasoning,
		"screening_date":      result.ValidatedAt.Format(time.RFC3339),
		"screening_red_flags": strings.Join(result.RedFlags, "; "),
	}
	if result.Category != "" {
		props["screening_category"] = result.Category
	}

	return props
}

func (c *Client) updateContact(ctx context.Context, contactID string, props map[string]string) error {
	body, err := json.Marshal(map[string]any{"properties": props})
	if err != nil {
		return fmt.Errorf("unable to serialize contact update: %w", err)
	}

	url := fmt.Sprintf("%s/crm/v3/objects/contacts/%s", c.BaseURL, contactID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("hubspot PATCH failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("hubspot PATCH failed: status %d", resp.StatusCode)
	}

	return nil
}

type searchRequest struct {
	FilterGroups []filterGroup `json:"filterGroups"`
}

type filterGroup struct {
	Filters []filter `json:"filters"`
}

type filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value"`
}

type searchResponse struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
}

// searchContactByEmail returns the first matching contact ID, or "" when no
// contact has that email. First match wins when the email is shared.
func (c *Client) searchContactByEmail(ctx context.Context, email string) (string, error) {
	body, err := json.Marshal(searchRequest{
		FilterGroups: []filterGroup{
			{Filters: []filter{{PropertyName: "email", Operator: "EQ", Value: email}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("unable to serialize contact search: %w", err)
	}

	url := c.BaseURL + "/crm/v3/objects/contacts/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hubspot search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("hubspot search failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var search searchResponse
	if err := json.Unmarshal(data, &search); err != nil {
		return "", fmt.Errorf("failed to unmarshal hubspot search response: %w", err)
	}

	if len(search.Results) == 0 {
		return "", nil
	}
	return search.Results[0].ID, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
}
