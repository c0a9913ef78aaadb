package engine

import (
	"strings"

	"recon-insights/internal/domain"
)

var bucketAliases = map[string]domain.Bucket{
	"0-1":    domain.BucketUpTo1Day,
	"<=1":    domain.BucketUpTo1Day,
	"≤1":     domain.BucketUpTo1Day,
	"<1":     domain.BucketUpTo1Day,
	"1":      domain.BucketUpTo1Day,
	"le1":    domain.BucketUpTo1Day,
	"2-3":    domain.Bucket2To3Days,
	"4-7":    domain.Bucket4To7Days,
	"8-14":   domain.Bucket8To14Days,
	"15-30":  domain.Bucket15To30Days,
	"30+":    domain.BucketOver30Days,
	"31+":    domain.BucketOver30Days,
	">30":    domain.BucketOver30Days,
	"gt30":   domain.BucketOver30Days,
	"over30": domain.BucketOver30Days,
}

var bucketKeyReplacer = strings.NewReplacer(
	" ", "",
	"days", "",
	"day", "",
	"d", "",
	"_", "-",
	"to", "-",
)

// bucketPhrases rewrites worded bounds into the symbolic form before
// bucketKeyReplacer strips units and spaces.
var bucketPhrases = strings.NewReplacer(
	"same day", "0-1",
	"same-day", "0-1",
	"up to ", "<=",
	"within ", "<=",
	"less than ", "<",
	"under ", "<",
	"more than ", ">",
	"greater than ", ">",
	"above ", ">",
	"over ", ">",
)

// ParseBucket maps the many spellings upstream uses for a bucket to a
// Bucket. Accepted forms, ignoring case, spaces and a trailing d/day/days:
//
//	0-1, 1, <1, <=1, ≤1, up to 1, within 1, less than 1, under 1, same day
//	2-3, 2_3, 2 to 3 (likewise 4-7, 8-14, 15-30)
//	>30, 30+, 31+, over 30, more than 30, greater than 30, above 30
func ParseBucket(key string) (domain.Bucket, bool) {
	key = strings.Join(strings.Fields(strings.ToLower(key)), " ")
	b, ok := bucketAliases[bucketKeyReplacer.Replace(bucketPhrases.Replace(key))]
	return b, ok
}

// BucketShares converts a distribution into per-bucket percentages in the
// fixed bucket order. With a zero total every percentage is 0.
func BucketShares(distribution map[domain.Bucket]int) ([]domain.BucketShare, int) {
	total := 0
	for _, b := range domain.Buckets {
		if n := distribution[b]; n > 0 {
			total += n
		}
	}

	shares := make([]domain.BucketShare, 0, len(domain.Buckets))
	for _, b := range domain.Buckets {
		n := distribution[b]
		if n < 0 {
			n = 0
		}
		share := domain.BucketShare{Bucket: b, Label: b.Label(), Count: n}
		if total > 0 {
			share.Percent = float64(n) / float64(total) * 100
		}
		shares = append(shares, share)
	}
	return shares, total
}

// AggregateAgeing computes per-provider bucket percentages, the distribution
// across all providers, the unweighted mean turnaround time and its
// count-weighted counterpart. The shape is the same for any provider count.
func AggregateAgeing(records []domain.AgeingRecord) domain.AgeingSummary {
	summary := domain.AgeingSummary{
		Providers: make([]domain.ProviderAgeing, 0, len(records)),
	}
	overall := make(map[domain.Bucket]int, len(domain.Buckets))

	var (
		sumAverage    float64
		weightedSum   float64
		weightedTotal int
	)
	for _, rec := range records {
		shares, total := BucketShares(rec.Distribution)
		avg := nonNegative(rec.AverageDaysToSettle)

		summary.Providers = append(summary.Providers, domain.ProviderAgeing{
			Provider:            rec.Provider,
			AverageDaysToSettle: avg,
			Total:               total,
			Buckets:             shares,
		})
		for _, s := range shares {
			overall[s.Bucket] += s.Count
		}

		sumAverage += avg
		weightedSum += avg * float64(total)
		weightedTotal += total
	}

	summary.Overall, _ = BucketShares(overall)
	if len(records) > 0 {
		summary.OverallAverageTAT = sumAverage / float64(len(records))
	}
	if weightedTotal > 0 {
		summary.WeightedAverageTAT = weightedSum / float64(weightedTotal)
	}
	return summary
}
