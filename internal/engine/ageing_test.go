package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-insights/internal/domain"
	"recon-insights/internal/engine"
)

func TestParseBucket(t *testing.T) {
	tests := []struct {
		key  string
		want domain.Bucket
		ok   bool
	}{
		{key: "≤1d", want: domain.BucketUpTo1Day, ok: true},
		{key: "0-1", want: domain.BucketUpTo1Day, ok: true},
		{key: "2-3d", want: domain.Bucket2To3Days, ok: true},
		{key: "4-7 days", want: domain.Bucket4To7Days, ok: true},
		{key: "8_14", want: domain.Bucket8To14Days, ok: true},
		{key: "15 to 30", want: domain.Bucket15To30Days, ok: true},
		{key: ">30d", want: domain.BucketOver30Days, ok: true},
		{key: "30+", want: domain.BucketOver30Days, ok: true},
		{key: "Up to 1 day", want: domain.BucketUpTo1Day, ok: true},
		{key: "same day", want: domain.BucketUpTo1Day, ok: true},
		{key: "less than 1 day", want: domain.BucketUpTo1Day, ok: true},
		{key: "under 1d", want: domain.BucketUpTo1Day, ok: true},
		{key: "More than 30  days", want: domain.BucketOver30Days, ok: true},
		{key: "over 30 days", want: domain.BucketOver30Days, ok: true},
		{key: "above 30", want: domain.BucketOver30Days, ok: true},
		{key: "sometime", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := engine.ParseBucket(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAggregateAgeing_SingleProvider(t *testing.T) {
	records := []domain.AgeingRecord{
		{
			Provider:            "PayU",
			AverageDaysToSettle: 6.4,
			Distribution: map[domain.Bucket]int{
				domain.BucketUpTo1Day:   5,
				domain.Bucket2To3Days:   18,
				domain.Bucket4To7Days:   42,
				domain.Bucket8To14Days:  25,
				domain.Bucket15To30Days: 8,
				domain.BucketOver30Days: 2,
			},
		},
	}

	summary := engine.AggregateAgeing(records)

	require.Len(t, summary.Providers, 1)
	assert.True(t, summary.SingleProvider())
	assert.Equal(t, 100, summary.Providers[0].Total)

	want := []float64{5, 18, 42, 25, 8, 2}
	for i, share := range summary.Providers[0].Buckets {
		assert.Equal(t, domain.Buckets[i], share.Bucket)
		assert.InDelta(t, want[i], share.Percent, 0.0001)
	}
	assert.InDelta(t, 6.4, summary.OverallAverageTAT, 0.0001)
	assert.InDelta(t, 6.4, summary.WeightedAverageTAT, 0.0001)
}

func TestAggregateAgeing_PercentagesSumTo100(t *testing.T) {
	records := []domain.AgeingRecord{
		{Provider: "A", AverageDaysToSettle: 2, Distribution: map[domain.Bucket]int{domain.BucketUpTo1Day: 1, domain.Bucket2To3Days: 1, domain.Bucket4To7Days: 1}},
		{Provider: "B", AverageDaysToSettle: 10, Distribution: map[domain.Bucket]int{domain.Bucket8To14Days: 7, domain.BucketOver30Days: 2}},
	}

	summary := engine.AggregateAgeing(records)

	for _, p := range summary.Providers {
		sum := 0.0
		for _, b := range p.Buckets {
			sum += b.Percent
		}
		assert.InDelta(t, 100.0, sum, 0.01, p.Provider)
	}

	overall := 0.0
	for _, b := range summary.Overall {
		overall += b.Percent
	}
	assert.InDelta(t, 100.0, overall, 0.01)

	assert.False(t, summary.SingleProvider())
	assert.InDelta(t, 6.0, summary.OverallAverageTAT, 0.0001)
	// (2*3 + 10*9) / 12
	assert.InDelta(t, 8.0, summary.WeightedAverageTAT, 0.0001)
}

func TestAggregateAgeing_Empty(t *testing.T) {
	summary := engine.AggregateAgeing(nil)

	assert.Empty(t, summary.Providers)
	assert.Len(t, summary.Overall, len(domain.Buckets))
	assert.Equal(t, 0.0, summary.OverallAverageTAT)

	shares, total := engine.BucketShares(map[domain.Bucket]int{})
	assert.Equal(t, 0, total)
	for _, s := range shares {
		assert.Equal(t, 0.0, s.Percent)
	}
}
