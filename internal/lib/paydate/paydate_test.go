package paydate

import (
	"testing"
	"time"
)

func TestNext_TableTests(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		paymentDay   int
		billingCycle string
		want         time.Time
	}{
		{
			name:         "day passed this month rolls to next month",
			now:          time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			paymentDay:   15,
			billingCycle: CycleMonthly,
			want:         time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "day not yet passed stays in current month",
			now:          time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			paymentDay:   25,
			billingCycle: CycleMonthly,
			want:         time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "yearly adds one year after day check",
			now:          time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			paymentDay:   25,
			billingCycle: CycleYearly,
			want:         time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "yearly with passed day rolls month then adds year",
			now:          time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			paymentDay:   15,
			billingCycle: CycleYearly,
			want:         time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "payment day equals today stays today",
			now:          time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			paymentDay:   20,
			billingCycle: CycleMonthly,
			want:         time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "december rollover lands in january",
			now:          time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
			paymentDay:   5,
			billingCycle: CycleMonthly,
			want:         time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "day 31 clamped in 30-day month",
			now:          time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
			paymentDay:   31,
			billingCycle: CycleMonthly,
			want:         time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "day 31 rolled into april clamps to 30",
			now:          time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
			paymentDay:   31,
			billingCycle: CycleMonthly,
			want:         time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "feb 29 does not leak into non-leap year",
			now:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			paymentDay:   29,
			billingCycle: CycleYearly,
			want:         time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.now, tt.paymentDay, tt.billingCycle)
			if !got.Equal(tt.want) {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}
