package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.api-ninjas.com/v1/nutrition"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL string, apiKey string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type itemResponse struct {
	Name     string   `json:"name"`
	Calories nutrient `json:"calories"`
	Protein  nutrient `json:"protein_g"`
	Carbs    nutrient `json:"carbohydrates_total_g"`
	Fat      nutrient `json:"fat_total_g"`
	Fiber    nutrient `json:"fiber_g"`
}

// nutrient tolerates providers that send placeholder strings instead of
// numbers for fields outside the caller's plan; those count as zero.
type nutrient float64

func (value *nutrient) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*value = 0
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			*value = 0
			return nil
		}
		*value = nutrient(parsed)
		return nil
	}

	var number float64
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*value = nutrient(number)
	return nil
}

func (client *Client) Lookup(ctx context.Context, query string) (Facts, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Facts{}, ErrNoMatch
	}

	reqURL, err := url.Parse(client.baseURL)
	if err != nil {
		return Facts{}, fmt.Errorf("parse nutrition base url: %w", err)
	}
	params := reqURL.Query()
	params.Set("query", query)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Facts{}, fmt.Errorf("create nutrition request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if client.apiKey != "" {
		req.Header.Set("X-Api-Key", client.apiKey)
	}

	resp, err := client.client.Do(req)
	if err != nil {
		return Facts{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Facts{}, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Facts{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	items, err := decodeItems(body)
	if err != nil {
		return Facts{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(items) == 0 {
		return Facts{}, ErrNoMatch
	}

	total := Facts{}
	for _, item := range items {
		total = total.add(Facts{
			Calories: float64(item.Calories),
			Protein:  float64(item.Protein),
			Carbs:    float64(item.Carbs),
			Fat:      float64(item.Fat),
			Fiber:    float64(item.Fiber),
		})
	}
	return total, nil
}

// decodeItems accepts both a bare array and an {"items": [...]} envelope.
func decodeItems(body []byte) ([]itemResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Items []itemResponse `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		return envelope.Items, nil
	}

	items := make([]itemResponse, 0)
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	return items, nil
}
