package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

// Suggestion is one autocomplete prediction, trimmed to what the search UI
// renders.
type Suggestion struct {
	ID          string `json:"id"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary,omitempty"`
	Description string `json:"description"`
}

// Client calls the Google Places autocomplete API. Every request is rate
// limited client-side to protect the billing quota.
type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 6 * time.Second
	rc.Logger = nil

	return &Client{
		key:     apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/place",
		http:    rc,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// Autocomplete fetches place predictions restricted to Cameroon, in French.
// A sessionToken groups keystrokes of one search session for billing; empty
// is allowed.
func (c *Client) Autocomplete(ctx context.Context, query, sessionToken string) ([]Suggestion, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("input", query)
	q.Set("key", c.key)
	q.Set("language", "fr")
	q.Set("components", "country:cm")
	if sessionToken != "" {
		q.Set("sessiontoken", sessionToken)
	}

	u := fmt.Sprintf("%s/autocomplete/json?%s", c.baseURL, q.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		var body map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("places error %d: %v", resp.StatusCode, body)
	}

	var payload struct {
		Status       string `json:"status"`
		ErrorMessage string `json:"error_message"`
		Predictions  []struct {
			PlaceID              string `json:"place_id"`
			Description          string `json:"description"`
			StructuredFormatting struct {
				MainText      string `json:"main_text"`
				SecondaryText string `json:"secondary_text"`
			} `json:"structured_formatting"`
		} `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if payload.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("places status %s: %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("places status %s", payload.Status)
	}

	out := make([]Suggestion, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		primary := p.StructuredFormatting.MainText
		if primary == "" {
			primary = p.Description
		}
		if primary == "" {
			primary = query
		}
		description := p.Description
		if description == "" {
			description = primary
			if p.StructuredFormatting.SecondaryText != "" {
				description += ", " + p.StructuredFormatting.SecondaryText
			}
		}
		out = append(out, Suggestion{
			ID:          p.PlaceID,
			Primary:     primary,
			Secondary:   p.StructuredFormatting.SecondaryText,
			Description: description,
		})
	}
	return out, nil
}
