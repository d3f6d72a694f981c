package dto

import (
	"time"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/SscSPs/revenue_split_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CurrencyResponse defines the data returned for a supported currency.
type CurrencyResponse struct {
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	RateFromBase float64 `json:"rateFromBase"`
}

// ToListCurrencyResponse pairs each supported currency with its current rate.
func ToListCurrencyResponse(currencies []domain.Currency, rates domain.RateTable) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, c := range currencies {
		rate, ok := rates[c.Code]
		if !ok {
			rate = 1
		}
		res[i] = CurrencyResponse{Code: c.Code, Symbol: c.Symbol, Name: c.Name, RateFromBase: rate}
	}
	return res
}

// ExchangeRateTableResponse is the whole table plus where it came from.
type ExchangeRateTableResponse struct {
	Base   string            `json:"base"`
	Rates  domain.RateTable  `json:"rates"`
	Status domain.RateStatus `json:"status"`
}

// ExchangeRateResponse is a single cross rate.
type ExchangeRateResponse struct {
	FromCurrencyCode string            `json:"fromCurrencyCode"`
	ToCurrencyCode   string            `json:"toCurrencyCode"`
	Rate             float64           `json:"rate"`
	RateDisplay      string            `json:"rateDisplay"`
	Status           domain.RateStatus `json:"status"`
}

// ToExchangeRateResponse builds the response, showing the rate to four places.
func ToExchangeRateResponse(from, to string, rate float64, status domain.RateStatus) ExchangeRateResponse {
	return ExchangeRateResponse{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		RateDisplay:      utils.FormatWithPrecision(decimal.NewFromFloat(rate), 4),
		Status:           status,
	}
}

// ConvertCurrencyRequest is bound from the query string.
type ConvertCurrencyRequest struct {
	Amount *float64 `form:"amount" binding:"required"`
	From   string   `form:"from" binding:"required,currencycode"`
	To     string   `form:"to" binding:"required,currencycode"`
}

// ConvertCurrencyResponse returns the converted amount.
type ConvertCurrencyResponse struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"convertedAmount"`
}

// FormatCurrencyRequest is bound from the query string. Amount is in GBP;
// a missing amount formats as zero.
type FormatCurrencyRequest struct {
	Amount   *float64 `form:"amount"`
	Currency string   `form:"currency" binding:"omitempty,currencycode"`
	utils.FormatOptions
}

// FormatCurrencyResponse returns the display string.
type FormatCurrencyResponse struct {
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// CurrencyPreferenceRequest selects a display currency.
type CurrencyPreferenceRequest struct {
	Currency string `json:"currency" binding:"required,currencycode"`
}

// CurrencyPreferenceResponse reports the selected display currency.
type CurrencyPreferenceResponse struct {
	Currency  string          `json:"currency"`
	Details   domain.Currency `json:"details"`
	UpdatedAt time.Time       `json:"updatedAt,omitzero"`
}
