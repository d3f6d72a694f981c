package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_split_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_split_app/internal/events"
	"github.com/SscSPs/revenue_split_app/internal/utils"
	"golang.org/x/sync/singleflight"
)

// RateSnapshotKey is the local store key holding the last successful fetch.
const RateSnapshotKey = "exchangeRates"

const (
	defaultFreshnessWindow  = 10 * time.Minute
	defaultStalenessCeiling = 24 * time.Hour
	defaultRateFetchTimeout = 10 * time.Second
	refreshFlightKey        = "refresh"
)

// CurrencyConverterOption is a functional option for configuring the converter
type CurrencyConverterOption func(*currencyConverter)

// WithFreshnessWindow sets how long a successful fetch suppresses further fetches.
func WithFreshnessWindow(d time.Duration) CurrencyConverterOption {
	return func(c *currencyConverter) {
		if d > 0 {
			c.freshness = d
		}
	}
}

// WithStalenessCeiling sets how old a snapshot may be and still be used after a failed fetch.
func WithStalenessCeiling(d time.Duration) CurrencyConverterOption {
	return func(c *currencyConverter) {
		if d > 0 {
			c.staleness = d
		}
	}
}

// WithFetchTimeout bounds a single call to the rate source.
func WithFetchTimeout(d time.Duration) CurrencyConverterOption {
	return func(c *currencyConverter) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithEventBroker broadcasts ratesRefreshed events on the given broker.
func WithEventBroker(b *events.Broker) CurrencyConverterOption {
	return func(c *currencyConverter) {
		c.broker = b
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CurrencyConverterOption {
	return func(c *currencyConverter) {
		if now != nil {
			c.now = now
		}
	}
}

type currencyConverter struct {
	BaseService
	source portsrepo.RateSource
	store  portsrepo.LocalStore
	broker *events.Broker

	freshness time.Duration
	staleness time.Duration
	timeout   time.Duration
	now       func() time.Time

	flight singleflight.Group

	mu          sync.RWMutex
	rates       domain.RateTable
	status      domain.RateStatus
	lastSuccess time.Time
	lastGood    domain.RateTable
	lastGoodAt  time.Time
	attempted   bool
}

var _ portssvc.CurrencyConverterSvcFacade = (*currencyConverter)(nil)

// NewCurrencyConverter creates the converter. Until the first refresh the
// table holds the built-in defaults.
func NewCurrencyConverter(source portsrepo.RateSource, store portsrepo.LocalStore, opts ...CurrencyConverterOption) portssvc.CurrencyConverterSvcFacade {
	c := &currencyConverter{
		source:    source,
		store:     store,
		freshness: defaultFreshnessWindow,
		staleness: defaultStalenessCeiling,
		timeout:   defaultRateFetchTimeout,
		now:       time.Now,
		rates:     domain.DefaultRateTable(),
		status: domain.RateStatus{
			Source:  domain.RateSourceDefaults,
			IsStale: true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetExchangeRate returns the multiplier converting from into to. Every pair
// is routed through the base currency; a code missing from the table counts as 1.
func (c *currencyConverter) GetExchangeRate(from, to string) float64 {
	if from == to {
		return 1
	}
	c.mu.RLock()
	rates := c.rates
	c.mu.RUnlock()

	if from == domain.BaseCurrency {
		return rateOrOne(rates, to)
	}
	if to == domain.BaseCurrency {
		return 1 / rateOrOne(rates, from)
	}
	return (1 / rateOrOne(rates, from)) * rateOrOne(rates, to)
}

func rateOrOne(rates domain.RateTable, code string) float64 {
	if r, ok := rates[code]; ok && r != 0 {
		return r
	}
	return 1
}

func (c *currencyConverter) ConvertCurrency(amount float64, from, to string) float64 {
	return amount * c.GetExchangeRate(from, to)
}

// Rates returns a copy of the current table.
func (c *currencyConverter) Rates() domain.RateTable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rates.Clone()
}

// Status reports where the current table came from. Live data older than
// the staleness ceiling is reported stale.
func (c *currencyConverter) Status() domain.RateStatus {
	c.mu.RLock()
	status := c.status
	c.mu.RUnlock()

	if status.Source == domain.RateSourceLive && c.now().Sub(status.FetchedAt) > c.staleness {
		status.IsStale = true
	}
	return status
}

func (c *currencyConverter) withinFreshnessWindow() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.lastSuccess.IsZero() && c.now().Sub(c.lastSuccess) < c.freshness
}

// RefreshRates fetches a new table unless the last successful fetch is inside
// the freshness window. Concurrent callers share one outbound request. On
// failure the table falls back to a recent snapshot or the defaults, and the
// error is returned alongside the resulting status.
func (c *currencyConverter) RefreshRates(ctx context.Context) (domain.RateStatus, error) {
	if c.withinFreshnessWindow() {
		c.LogDebug(ctx, "Exchange rates are fresh, skipping refresh")
		return c.Status(), nil
	}

	v, err, shared := c.flight.Do(refreshFlightKey, func() (any, error) {
		return c.refresh(ctx)
	})
	if shared {
		c.LogDebug(ctx, "Joined in-flight exchange rate refresh")
	}
	status, _ := v.(domain.RateStatus)
	return status, err
}

// ForceRefresh ignores the freshness window for one refresh.
func (c *currencyConverter) ForceRefresh(ctx context.Context) (domain.RateStatus, error) {
	c.ResetRefreshGate()
	return c.RefreshRates(ctx)
}

// ResetRefreshGate makes the next RefreshRates call reach the rate source.
func (c *currencyConverter) ResetRefreshGate() {
	c.mu.Lock()
	c.lastSuccess = time.Time{}
	c.mu.Unlock()
}

// EnsureRates runs the first refresh if none has been attempted yet.
func (c *currencyConverter) EnsureRates(ctx context.Context) {
	c.mu.RLock()
	attempted := c.attempted
	c.mu.RUnlock()
	if attempted {
		return
	}
	// Failure already leaves a usable table behind.
	_, _ = c.RefreshRates(ctx)
}

func (c *currencyConverter) refresh(ctx context.Context) (domain.RateStatus, error) {
	// A flight that finished just before this one started may have refreshed already.
	if c.withinFreshnessWindow() {
		return c.Status(), nil
	}

	logger := c.GetLogger(ctx)
	attemptAt := c.now()

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	fetched, err := c.source.FetchRates(fetchCtx, domain.BaseCurrency)
	if err == nil {
		var table domain.RateTable
		table, err = c.supportedRates(ctx, fetched)
		if err == nil {
			return c.applyLive(ctx, table, attemptAt), nil
		}
	}

	c.LogError(ctx, err, "Failed to refresh exchange rates, falling back")
	status := c.applyFallback(ctx, attemptAt, err)
	logger.Warn("Using fallback exchange rates",
		slog.String("source", string(status.Source)),
		slog.Time("fetched_at", status.FetchedAt))
	return status, fmt.Errorf("failed to refresh exchange rates: %w", err)
}

// supportedRates keeps only supported codes and pins the base at 1.
func (c *currencyConverter) supportedRates(ctx context.Context, fetched map[string]float64) (domain.RateTable, error) {
	table := domain.RateTable{domain.BaseCurrency: 1}
	for _, cur := range domain.SupportedCurrencies {
		if cur.Code == domain.BaseCurrency {
			continue
		}
		r, ok := fetched[cur.Code]
		if !ok || !validRate(r) {
			c.LogWarn(ctx, "Rate source response missing supported currency", slog.String("currency", cur.Code))
			continue
		}
		table[cur.Code] = r
	}
	if len(table) == 1 {
		return nil, fmt.Errorf("%w: rate source returned no supported currencies", apperrors.ErrUnavailable)
	}
	return table, nil
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0)
}

func (c *currencyConverter) applyLive(ctx context.Context, table domain.RateTable, at time.Time) domain.RateStatus {
	status := domain.RateStatus{
		Source:        domain.RateSourceLive,
		FetchedAt:     at,
		LastAttemptAt: at,
	}

	c.mu.Lock()
	c.rates = table
	c.lastGood = table
	c.lastGoodAt = at
	c.status = status
	c.lastSuccess = at
	c.attempted = true
	c.mu.Unlock()

	c.persistSnapshot(ctx, domain.RateSnapshot{Rates: table, Timestamp: at.UnixMilli()})
	c.LogInfo(ctx, "Exchange rates refreshed", slog.Int("currencies", len(table)))
	c.publish(status)
	return status
}

func (c *currencyConverter) applyFallback(ctx context.Context, at time.Time, cause error) domain.RateStatus {
	status := domain.RateStatus{
		IsStale:       true,
		LastError:     cause.Error(),
		LastAttemptAt: at,
	}

	var table domain.RateTable
	if snap, ok := c.loadSnapshot(ctx); ok && at.Sub(snap.FetchedAt()) < c.staleness {
		table = snap.Rates
		status.Source = domain.RateSourceSnapshot
		status.FetchedAt = snap.FetchedAt()
	}

	c.mu.Lock()
	if table == nil && c.lastGood != nil && at.Sub(c.lastGoodAt) < c.staleness {
		table = c.lastGood
		status.Source = domain.RateSourceLive
		status.FetchedAt = c.lastGoodAt
	}
	if table == nil {
		table = domain.DefaultRateTable()
		status.Source = domain.RateSourceDefaults
	}
	c.rates = table
	c.status = status
	c.attempted = true
	c.mu.Unlock()

	c.publish(status)
	return status
}

// loadSnapshot reads the persisted table. Missing or corrupt data is ignored.
func (c *currencyConverter) loadSnapshot(ctx context.Context) (domain.RateSnapshot, bool) {
	if c.store == nil {
		return domain.RateSnapshot{}, false
	}
	raw, err := c.store.Get(ctx, RateSnapshotKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			c.LogWarn(ctx, "Failed to read exchange rate snapshot", slog.String("error", err.Error()))
		}
		return domain.RateSnapshot{}, false
	}

	var snap domain.RateSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.LogWarn(ctx, "Ignoring corrupt exchange rate snapshot", slog.String("error", err.Error()))
		return domain.RateSnapshot{}, false
	}

	table := domain.RateTable{domain.BaseCurrency: 1}
	for code, r := range snap.Rates {
		if domain.IsSupportedCurrency(code) && code != domain.BaseCurrency && validRate(r) {
			table[code] = r
		}
	}
	if len(table) == 1 || snap.Timestamp <= 0 {
		return domain.RateSnapshot{}, false
	}
	snap.Rates = table
	return snap, true
}

func (c *currencyConverter) persistSnapshot(ctx context.Context, snap domain.RateSnapshot) {
	if c.store == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		c.LogError(ctx, err, "Failed to encode exchange rate snapshot")
		return
	}
	if err := c.store.Put(ctx, RateSnapshotKey, raw); err != nil {
		c.LogError(ctx, err, "Failed to persist exchange rate snapshot")
	}
}

func (c *currencyConverter) publish(status domain.RateStatus) {
	if c.broker == nil {
		return
	}
	c.broker.Publish(events.Event{
		Type:   events.RatesRefreshed,
		Source: string(status.Source),
		At:     status.LastAttemptAt,
	})
}

// FormatCurrency converts a base-currency amount into currencyCode and renders it.
// Unknown codes render as the base currency.
func (c *currencyConverter) FormatCurrency(amount float64, currencyCode string, opts utils.FormatOptions) string {
	currency, _ := domain.LookupCurrency(currencyCode)
	converted := c.ConvertCurrency(amount, domain.BaseCurrency, currency.Code)
	return utils.FormatAmount(converted, currency, opts)
}

// FormatNullable treats a missing amount as zero.
func (c *currencyConverter) FormatNullable(amount *float64, currencyCode string, opts utils.FormatOptions) string {
	if amount == nil {
		return c.FormatCurrency(0, currencyCode, opts)
	}
	return c.FormatCurrency(*amount, currencyCode, opts)
}
