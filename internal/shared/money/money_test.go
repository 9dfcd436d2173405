package money_test

import (
	"testing"

	"go-commission/internal/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		base, pct, want string
	}{
		{"2000", "10", "200.00"},
		{"1234.56", "7.5", "92.59"},
		{"0.10", "33.33", "0.03"},
		{"999.99", "0", "0.00"},
	}

	for _, tt := range tests {
		got := money.Percent(d(tt.base), d(tt.pct))
		assert.Equal(t, tt.want, money.Format(got), "%s%% of %s", tt.pct, tt.base)
	}
}

func TestPercent_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 style drift would show up as 30.000000000000004
	got := money.Percent(d("300.00"), d("10"))
	assert.True(t, got.Equal(d("30")))
}

func TestFloorPercent(t *testing.T) {
	assert.Equal(t, int64(0), money.FloorPercent(d("10"), d("0")))
	assert.Equal(t, int64(0), money.FloorPercent(d("10"), d("-5")))
	assert.Equal(t, int64(33), money.FloorPercent(d("1"), d("3")))
	assert.Equal(t, int64(99), money.FloorPercent(d("999.99"), d("1000")))
	assert.Equal(t, int64(150), money.FloorPercent(d("1500"), d("1000")))
}

func TestSum(t *testing.T) {
	assert.True(t, money.Sum().Equal(decimal.Zero))
	assert.True(t, money.Sum(d("0.1"), d("0.2")).Equal(d("0.3")))
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "20", want: "20.00"},
		{raw: "20.1", want: "20.10"},
		{raw: "20.01", want: "20.01"},
		{raw: "20.0100", want: "20.01"},
		{raw: "20.014", wantErr: money.ErrPrecision},
		{raw: "1e3", wantErr: money.ErrMalformed},
		{raw: "-1", wantErr: money.ErrMalformed},
		{raw: ".5", wantErr: money.ErrMalformed},
		{raw: "", wantErr: money.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := money.Parse(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, money.Format(got))
		})
	}
}
