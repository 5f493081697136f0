package model

import (
	"os"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// TaxConfig is external configuration input: whether tax applies, the rate
// and the display label (e.g. "IVA 13%").
type TaxConfig struct {
	Enabled     bool            `json:"enabled"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Label       string          `json:"label"`
}

// TaxConfigFromEnv reads TAX_ENABLED, TAX_RATE and TAX_LABEL
func TaxConfigFromEnv() TaxConfig {
	cfg := TaxConfig{
		Enabled: os.Getenv("TAX_ENABLED") == "true",
		Label:   os.Getenv("TAX_LABEL"),
	}
	if rate, err := decimal.NewFromString(os.Getenv("TAX_RATE")); err == nil {
		cfg.RatePercent = rate
	}
	if cfg.Label == "" {
		cfg.Label = "Impuesto"
	}
	return cfg
}

// Totals for a sale. All values non-negative; Total floors at zero.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// CalculateTotals derives tax from the subtotal when enabled, clamps the
// flat discount to >= 0 and floors the grand total at zero.
func CalculateTotals(subtotal, discount decimal.Decimal, cfg TaxConfig) Totals {
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	tax := decimal.Zero
	if cfg.Enabled {
		tax = subtotal.Mul(cfg.RatePercent).Div(oneHundred)
	}

	total := subtotal.Add(tax).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    total,
	}
}

// SplitMixedPayment returns the digital leg complementing a user-entered
// cash amount. No check that cash <= total is performed here.
func SplitMixedPayment(total, cash decimal.Decimal) decimal.Decimal {
	digital := total.Sub(cash)
	if digital.IsNegative() {
		return decimal.Zero
	}
	return digital
}

// ChangeDue for a cash payment
func ChangeDue(total, amountPaid decimal.Decimal) decimal.Decimal {
	change := amountPaid.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}
