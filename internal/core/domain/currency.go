package domain

import "time"

// BaseCurrency is the currency every stored amount is denominated in.
const BaseCurrency = "GBP"

// Currency represents a supported display currency.
type Currency struct {
	Code   string `json:"code"`   // e.g., "USD"
	Symbol string `json:"symbol"` // e.g., "$"
	Name   string `json:"name"`   // e.g., "US Dollar"
}

// SupportedCurrencies is ordered; the first entry is used for unknown codes.
var SupportedCurrencies = []Currency{
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "NGN", Symbol: "₦", Name: "Nigerian Naira"},
	{Code: "GHS", Symbol: "₵", Name: "Ghanaian Cedi"},
	{Code: "KES", Symbol: "KSh", Name: "Kenyan Shilling"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "ZMW", Symbol: "ZK", Name: "Zambian Kwacha"},
}

// LookupCurrency returns the currency for code and whether it is supported.
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c, true
		}
	}
	return SupportedCurrencies[0], false
}

// IsSupportedCurrency reports whether code is in SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	_, ok := LookupCurrency(code)
	return ok
}

// RateTable maps a currency code to its multiplier against BaseCurrency.
type RateTable map[string]float64

// DefaultRateTable is used when neither the rate source nor a snapshot is available.
func DefaultRateTable() RateTable {
	return RateTable{
		"GBP": 1,
		"USD": 1.25,
		"EUR": 1.15,
		"CAD": 1.70,
		"NGN": 525.00,
		"GHS": 10.50,
		"KES": 162.00,
		"ZAR": 22.50,
		"ZMW": 32.50,
	}
}

// Clone returns an independent copy.
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// RateSnapshot is the persisted form of the last successful fetch.
// Timestamp is Unix milliseconds.
type RateSnapshot struct {
	Rates     RateTable `json:"rates"`
	Timestamp int64     `json:"timestamp"`
}

// FetchedAt converts the snapshot timestamp to a time.Time.
func (s RateSnapshot) FetchedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// RateSource describes where the current rate table came from.
type RateSource string

const (
	RateSourceDefaults RateSource = "defaults"
	RateSourceLive     RateSource = "live"
	RateSourceSnapshot RateSource = "snapshot"
)

// RateStatus makes degraded rate data distinguishable from fresh data.
type RateStatus struct {
	Source        RateSource `json:"source"`
	IsStale       bool       `json:"isStale"`
	LastError     string     `json:"lastError,omitempty"`
	FetchedAt     time.Time  `json:"fetchedAt"`
	LastAttemptAt time.Time  `json:"lastAttemptAt"`
}
