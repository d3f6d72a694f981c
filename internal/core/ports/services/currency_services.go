package services

import (
	"context"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/SscSPs/revenue_split_app/internal/utils"
)

// ExchangeRateReaderSvc exposes the current rate table. None of these block on the network.
type ExchangeRateReaderSvc interface {
	GetExchangeRate(from, to string) float64
	ConvertCurrency(amount float64, from, to string) float64
	Rates() domain.RateTable
	Status() domain.RateStatus
}

// ExchangeRateRefresherSvc refreshes the table from the rate source.
type ExchangeRateRefresherSvc interface {
	RefreshRates(ctx context.Context) (domain.RateStatus, error)
	ForceRefresh(ctx context.Context) (domain.RateStatus, error)
	ResetRefreshGate()
	EnsureRates(ctx context.Context)
}

// CurrencyFormatterSvc renders base-currency amounts in a display currency.
type CurrencyFormatterSvc interface {
	FormatCurrency(amount float64, currencyCode string, opts utils.FormatOptions) string
	FormatNullable(amount *float64, currencyCode string, opts utils.FormatOptions) string
}

// CurrencyConverterSvcFacade combines all currency-related service interfaces
type CurrencyConverterSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateRefresherSvc
	CurrencyFormatterSvc
}

// PreferenceSvc stores the display currency a subject last selected.
type PreferenceSvc interface {
	SelectedCurrency(ctx context.Context, subject string) string
	SetSelectedCurrency(ctx context.Context, subject, currencyCode string) error
}
