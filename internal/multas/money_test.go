package multas

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"R$ 1.234,56", "1234.56"},
		{"R$ 195,23", "195.23"},
		{"88,38", "88.38"},
		{"1.000.000,00", "1000000"},
		{"130", "130"},
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseAmount(tt.in)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestValidAmount(t *testing.T) {
	assert.True(t, ValidAmount(""))
	assert.True(t, ValidAmount("R$ 293,47"))
	assert.False(t, ValidAmount("R$ dez"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatAmount(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 1.234,56", FormatAmount(ParseAmount("R$ 1.234,56")))

	tests := []struct {
		in   string
		want string
	}{
		{"90071992547409.93", "R$ 90.071.992.547.409,93"},
		{"1000000", "R$ 1.000.000,00"},
		{"0.005", "R$ 0,01"},
		{"0", "R$ 0,00"},
		{"156.1", "R$ 156,10"},
		{"-1234.5", "R$ -1.234,50"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestSumAmounts(t *testing.T) {
	records := []Multa{
		{Valor: ParseAmount("R$ 130,16")},
		{Valor: ParseAmount("R$ 195,23")},
		{Valor: ParseAmount("")},
	}
	total := SumAmounts(records, func(m Multa) decimal.Decimal { return m.Valor })
	assert.True(t, decimal.RequireFromString("325.39").Equal(total))
}
