package amount

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const maxDecimals = 6

// LocaleConfig controls how amounts are displayed.
type LocaleConfig struct {
	Language       string `mapstructure:"language"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Decimals       int    `mapstructure:"decimals"`
}

// DefaultLocale formats rupee amounts with Indian digit grouping.
func DefaultLocale() LocaleConfig {
	return LocaleConfig{Language: "en-IN", CurrencySymbol: "₹", Decimals: 2}
}

// Format renders v with the locale's grouping, symbol and precision.
func Format(v float64, cfg LocaleConfig) string {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		tag = language.English
	}

	decimals := cfg.Decimals
	if decimals < 0 {
		decimals = 0
	}
	if decimals > maxDecimals {
		decimals = maxDecimals
	}

	rounded, _ := decimal.NewFromFloat(finite(v)).Round(int32(decimals)).Float64()
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	p := message.NewPrinter(tag)
	return sign + cfg.CurrencySymbol + p.Sprintf(fmt.Sprintf("%%.%df", decimals), rounded)
}

// Percent renders a percentage with two decimals.
func Percent(p float64) string {
	return decimal.NewFromFloat(finite(p)).StringFixed(2) + "%"
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
