package money_test

import (
	"testing"

	"github.com/Adrian-Mendez-Alcudia/ControlCacahuate/internal/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2(t *testing.T) {
	cases := []struct{ in, want string }{
		{"33.333", "33.33"},
		{"33.335", "33.34"}, // half away from zero
		{"-33.335", "-33.34"},
		{"10", "10"},
		{"0.005", "0.01"},
	}
	for _, tc := range cases {
		assert.True(t, money.Round2(d(tc.in)).Equal(d(tc.want)),
			"Round2(%s) = %s, want %s", tc.in, money.Round2(d(tc.in)), tc.want)
	}
}

func TestMul2(t *testing.T) {
	assert.True(t, money.Mul2(d("10.00"), 3).Equal(d("30.00")))
	assert.True(t, money.Mul2(d("33.33"), 3).Equal(d("99.99")))
	assert.True(t, money.Mul2(d("0.335"), 10).Equal(d("3.35")))
}

func TestDiv2(t *testing.T) {
	assert.True(t, money.Div2(d("100"), d("3")).Equal(d("33.33")))
	assert.True(t, money.Div2(d("250"), d("25")).Equal(d("10")))
	assert.True(t, money.Div2(d("1"), d("3")).Equal(d("0.33")))
}

// Repeated debit/credit cycles through Round2 must not drift below the cent.
func TestRound2_SinDerivaAcumulada(t *testing.T) {
	saldo := decimal.Zero
	for i := 0; i < 1000; i++ {
		saldo = money.Round2(saldo.Add(d("0.10")))
	}
	assert.True(t, saldo.Equal(d("100.00")), "saldo = %s", saldo)
}
