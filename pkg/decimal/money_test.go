package decimal

import (
	"math"
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	if m.Cents() != 1235 {
		t.Fatalf("NewMoney cents mismatch: got %d", m.Cents())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}
}

func TestFromFloatClampsNonFinite(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "0"},
		{math.Inf(1), "1000000000000000"},
		{math.Inf(-1), "-1000000000000000"},
		{1e300, "1000000000000000"},
		{42.5, "42.5"},
	}
	for _, c := range cases {
		if got := FromFloat(c.in).String(); got != c.want {
			t.Errorf("FromFloat(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{999.999, "$1,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-4500, "-$4,500.00"},
		{-0.001, "$0.00"},
		{math.NaN(), "$0.00"},
		{math.Inf(1), "$1,000,000,000,000,000.00"},
	}
	for _, c := range cases {
		if got := NewMoney(c.in).Format(); got != c.want {
			t.Errorf("NewMoney(%v).Format() = %q, want %q", c.in, got, c.want)
		}
	}
}
