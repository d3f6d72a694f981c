package utils

import (
	"math"
	"math/big"

	"github.com/SscSPs/revenue_split_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatOptions controls how an amount is rendered.
type FormatOptions struct {
	ShowSymbol bool `form:"showSymbol" json:"showSymbol"`
	ShowCode   bool `form:"showCode" json:"showCode"`
	Decimals   int  `form:"decimals" json:"decimals" binding:"min=0,max=8"`
	Compact    bool `form:"compact" json:"compact"`
}

// DefaultFormatOptions shows the symbol, no code, whole units.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{ShowSymbol: true}
}

var compactUnits = []string{"", "K", "M", "B", "T"}

// compactScales holds exact powers of 1000, so amounts sitting on a boundary
// (1000, 1e6, ...) select the larger unit.
var compactScales = []float64{1, 1e3, 1e6, 1e9, 1e12}

var enPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders an amount that is already in currency's units.
// Example: 1234.5 GBP, decimals 2 returns "£1,234.50"
// Example: 1500 USD, compact returns "$1.5K"
// Example: 25000 USD, compact, show code returns "$25K USD"
func FormatAmount(amount float64, currency domain.Currency, opts FormatOptions) string {
	symbol := ""
	if opts.ShowSymbol {
		symbol = currency.Symbol
	}
	code := ""
	if opts.ShowCode {
		code = " " + currency.Code
	}

	if math.IsNaN(amount) {
		return symbol + "NaN" + code
	}
	if math.IsInf(amount, 0) {
		sign := ""
		if amount < 0 {
			sign = "-"
		}
		return symbol + sign + "∞" + code
	}

	if opts.Compact && math.Abs(amount) >= 1000 {
		unitIndex := compactUnitIndex(math.Abs(amount))
		short := amount / compactScales[unitIndex]
		digits := int32(0)
		if short < 10 {
			digits = 1
		}
		return symbol + roundExact(short, digits).StringFixed(digits) + compactUnits[unitIndex] + code
	}

	return symbol + groupThousands(amount, opts.Decimals) + code
}

// compactUnitIndex is floor(log10(abs)/3), capped at the largest unit.
func compactUnitIndex(abs float64) int {
	idx := 0
	for i := 1; i < len(compactScales); i++ {
		if abs >= compactScales[i] {
			idx = i
		}
	}
	return idx
}

// roundExact rounds the exact binary value of f half away from zero, so 1.15
// (stored as 1.1499...) rounds to 1.1. f must be finite.
func roundExact(f float64, places int32) decimal.Decimal {
	return decimal.NewFromBigRat(new(big.Rat).SetFloat64(f), places)
}

// groupThousands rounds to exactly decimals digits and inserts en-US separators.
func groupThousands(amount float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	rounded := roundExact(amount, int32(decimals)).InexactFloat64()
	return enPrinter.Sprint(number.Decimal(rounded,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// FormatWithPrecision formats an amount with the given precision and no grouping.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
