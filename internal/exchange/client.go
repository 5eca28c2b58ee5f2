package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var errRateMissing = errors.New("conversion rate missing in response")

// Client fetches exchange rates from a frankfurter.app-style API.
type Client struct {
	baseURL    string
	base       string
	target     string
	httpClient *http.Client
}

type latestResponse struct {
	Base  string                 `json:"base"`
	Date  string                 `json:"date"`
	Rates map[string]json.Number `json:"rates"`
}

// NewClient creates a rate API client converting from base to target
// currency (e.g. USD to HNL).
func NewClient(baseURL, base, target string, timeout time.Duration) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://api.frankfurter.app"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		base:    strings.ToUpper(strings.TrimSpace(base)),
		target:  strings.ToUpper(strings.TrimSpace(target)),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchRate requests the latest base-to-target rate.
func (c *Client) FetchRate(ctx context.Context) (Rate, error) {
	if c.base == "" || c.target == "" {
		return Rate{}, errors.New("base and target currencies are required")
	}

	endpoint := fmt.Sprintf("%s/latest?from=%s&to=%s",
		c.baseURL,
		url.QueryEscape(c.base),
		url.QueryEscape(c.target),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to create rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to request rate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var payload latestResponse
	if err := decoder.Decode(&payload); err != nil {
		return Rate{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rateStr, ok := payload.Rates[c.target]
	if !ok {
		return Rate{}, errRateMissing
	}

	value, err := decimal.NewFromString(rateStr.String())
	if err != nil {
		return Rate{}, fmt.Errorf("failed to parse rate: %w", err)
	}
	if !value.IsPositive() {
		return Rate{}, errors.New("rate must be positive")
	}

	rateDate, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to parse rate date: %w", err)
	}

	return Rate{Value: value, Date: rateDate}, nil
}
