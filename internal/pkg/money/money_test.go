package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSumHasNoFloatDrift(t *testing.T) {
	amounts := make([]decimal.Decimal, 0, 1000)
	for i := 0; i < 1000; i++ {
		amounts = append(amounts, d("0.10"))
	}
	assert.True(t, d("100").Equal(Sum(amounts...)))
	assert.True(t, decimal.Zero.Equal(Sum()))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0 F"},
		{"999", "999 F"},
		{"15000", "15 000 F"},
		{"15000.75", "15 000 F"},
		{"1234567", "1 234 567 F"},
		{"-2500", "-2 500 F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(d(tt.in)), "amount %s", tt.in)
	}
}

func TestFormatGroupsWithPlainSpace(t *testing.T) {
	got := Format(d("30000"))
	assert.Equal(t, "30\x20000 F", got)
	assert.NotContains(t, got, "\u202f")
	assert.NotContains(t, got, "\u00a0")
}
