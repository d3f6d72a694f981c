package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
)

// ExchangeRateAPI fetches rates from an exchangerate-api.com style endpoint:
// GET {baseURL}/{base} returning {"base":"GBP","rates":{"USD":1.27,...}}.
type ExchangeRateAPI struct {
	baseURL string
	client  *http.Client
}

var _ portsrepo.RateSource = (*ExchangeRateAPI)(nil)

type latestRatesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// NewExchangeRateAPI creates a client. A nil client uses http.DefaultClient;
// timeouts come from the request context.
func NewExchangeRateAPI(baseURL string, client *http.Client) *ExchangeRateAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &ExchangeRateAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (a *ExchangeRateAPI) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/"+base, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: rate request failed: %v", apperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: rate source returned status %d", apperrors.ErrUnavailable, resp.StatusCode)
	}

	var body latestRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rate response: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("%w: rate response contained no rates", apperrors.ErrUnavailable)
	}
	return body.Rates, nil
}
