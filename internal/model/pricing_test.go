package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateTotals(t *testing.T) {
	taxOff := TaxConfig{Enabled: false}
	tax13 := TaxConfig{Enabled: true, RatePercent: dec("13"), Label: "IVA 13%"}

	tests := []struct {
		name     string
		subtotal string
		discount string
		cfg      TaxConfig
		want     Totals
	}{
		{
			name: "no tax no discount", subtotal: "35.00", discount: "0", cfg: taxOff,
			want: Totals{Subtotal: dec("35.00"), Tax: dec("0"), Discount: dec("0"), Total: dec("35.00")},
		},
		{
			name: "tax enabled", subtotal: "35.00", discount: "0", cfg: tax13,
			want: Totals{Subtotal: dec("35.00"), Tax: dec("4.55"), Discount: dec("0"), Total: dec("39.55")},
		},
		{
			name: "flat discount", subtotal: "35.00", discount: "5.00", cfg: taxOff,
			want: Totals{Subtotal: dec("35.00"), Tax: dec("0"), Discount: dec("5.00"), Total: dec("30.00")},
		},
		{
			name: "tax and discount", subtotal: "35.00", discount: "9.55", cfg: tax13,
			want: Totals{Subtotal: dec("35.00"), Tax: dec("4.55"), Discount: dec("9.55"), Total: dec("30.00")},
		},
		{
			name: "negative discount clamps to zero", subtotal: "20.00", discount: "-3.00", cfg: taxOff,
			want: Totals{Subtotal: dec("20.00"), Tax: dec("0"), Discount: dec("0"), Total: dec("20.00")},
		},
		{
			name: "discount beyond total floors at zero", subtotal: "10.00", discount: "50.00", cfg: taxOff,
			want: Totals{Subtotal: dec("10.00"), Tax: dec("0"), Discount: dec("50.00"), Total: dec("0")},
		},
		{
			name: "zero subtotal", subtotal: "0", discount: "0", cfg: tax13,
			want: Totals{Subtotal: dec("0"), Tax: dec("0"), Discount: dec("0"), Total: dec("0")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(dec(tt.subtotal), dec(tt.discount), tt.cfg)

			if !got.Subtotal.Equal(tt.want.Subtotal) {
				t.Errorf("subtotal = %s, want %s", got.Subtotal, tt.want.Subtotal)
			}
			if !got.Tax.Equal(tt.want.Tax) {
				t.Errorf("tax = %s, want %s", got.Tax, tt.want.Tax)
			}
			if !got.Discount.Equal(tt.want.Discount) {
				t.Errorf("discount = %s, want %s", got.Discount, tt.want.Discount)
			}
			if !got.Total.Equal(tt.want.Total) {
				t.Errorf("total = %s, want %s", got.Total, tt.want.Total)
			}
		})
	}
}

func TestSplitMixedPayment(t *testing.T) {
	tests := []struct {
		name  string
		total string
		cash  string
		want  string
	}{
		{name: "partial cash", total: "100.00", cash: "40.00", want: "60.00"},
		{name: "all cash", total: "100.00", cash: "100.00", want: "0"},
		{name: "cash above total clamps digital to zero", total: "100.00", cash: "150.00", want: "0"},
		{name: "no cash", total: "75.50", cash: "0", want: "75.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMixedPayment(dec(tt.total), dec(tt.cash))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("digital = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChangeDue(t *testing.T) {
	if got := ChangeDue(dec("35.00"), dec("50.00")); !got.Equal(dec("15.00")) {
		t.Errorf("change = %s, want 15.00", got)
	}
	if got := ChangeDue(dec("35.00"), dec("35.00")); !got.Equal(dec("0")) {
		t.Errorf("change = %s, want 0", got)
	}
	// Underpayment never reports negative change
	if got := ChangeDue(dec("35.00"), dec("20.00")); !got.Equal(dec("0")) {
		t.Errorf("change = %s, want 0", got)
	}
}

func TestTaxConfigFromEnv(t *testing.T) {
	t.Setenv("TAX_ENABLED", "true")
	t.Setenv("TAX_RATE", "13")
	t.Setenv("TAX_LABEL", "")

	cfg := TaxConfigFromEnv()
	if !cfg.Enabled {
		t.Error("expected tax enabled")
	}
	if !cfg.RatePercent.Equal(dec("13")) {
		t.Errorf("rate = %s, want 13", cfg.RatePercent)
	}
	if cfg.Label != "Impuesto" {
		t.Errorf("label = %q, want default %q", cfg.Label, "Impuesto")
	}
}
