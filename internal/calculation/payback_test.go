package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLocatePayback(t *testing.T) {
	tests := []struct {
		name       string
		cumulative []decimal.Decimal
		flows      []decimal.Decimal
		want       string
		reached    bool
	}{
		{
			name:       "crossing lands exactly on a year boundary",
			cumulative: ramp("-750000", "-500000", "-250000", "0", "250000"),
			flows:      ramp("250000", "250000", "250000", "250000", "250000"),
			want:       "4",
			reached:    true,
		},
		{
			name:       "fractional crossing",
			cumulative: ramp("-600", "-200", "300"),
			flows:      ramp("400", "400", "500"),
			want:       "2.4",
			reached:    true,
		},
		{
			name:       "already non-negative before the first flow",
			cumulative: ramp("0"),
			flows:      ramp("0"),
			want:       "0",
			reached:    true,
		},
		{
			name:       "never recovered",
			cumulative: ramp("-900", "-800", "-700"),
			flows:      ramp("100", "100", "100"),
			want:       "3",
		},
		{
			name:       "flows shorter than cumulative",
			cumulative: ramp("-100", "50"),
			flows:      ramp("100"),
			want:       "2",
		},
		{
			name: "empty",
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocatePayback(tt.cumulative, tt.flows)
			assert.Equal(t, tt.reached, got.Reached)
			assert.True(t, got.Years.Equal(dec(tt.want)), "payback %s, want %s", got.Years, tt.want)
		})
	}
}

func TestLocatePayback_WithinHorizon(t *testing.T) {
	res, err := ProjectCashflows(referenceAssumptions())
	if err != nil {
		t.Fatal(err)
	}
	horizon := decimal.NewFromInt(int64(len(res.Series.Years)))
	for _, p := range []struct {
		name string
		got  decimal.Decimal
	}{
		{"simple", res.SimplePayback.Years},
		{"discounted", res.DiscountedPayback.Years},
	} {
		assert.False(t, p.got.IsNegative(), "%s payback %s", p.name, p.got)
		assert.True(t, p.got.LessThanOrEqual(horizon), "%s payback %s", p.name, p.got)
	}
}
