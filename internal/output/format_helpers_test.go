package output

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewFromFloat(1234.567)
	got := FormatCurrency(v)
	want := "$1,234.57"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := decimal.NewFromFloat(12.3456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}

func TestSafeDecimal(t *testing.T) {
	if !SafeDecimal(math.NaN()).IsZero() {
		t.Error("NaN should present as zero")
	}
	if got := currency(math.Inf(-1)); got != "-$1,000,000,000,000,000.00" {
		t.Errorf("currency(-Inf) = %q", got)
	}
	if got := percent(0.0725); got != "7.25%" {
		t.Errorf("percent(0.0725) = %q", got)
	}
}
