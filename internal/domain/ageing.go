package domain

// Bucket is a settlement turnaround range.
type Bucket string

const (
	BucketUpTo1Day   Bucket = "0-1"
	Bucket2To3Days   Bucket = "2-3"
	Bucket4To7Days   Bucket = "4-7"
	Bucket8To14Days  Bucket = "8-14"
	Bucket15To30Days Bucket = "15-30"
	BucketOver30Days Bucket = "30+"
)

// Buckets is the fixed display order of all buckets.
var Buckets = []Bucket{
	BucketUpTo1Day,
	Bucket2To3Days,
	Bucket4To7Days,
	Bucket8To14Days,
	Bucket15To30Days,
	BucketOver30Days,
}

// Label returns the dashboard label of a bucket.
func (b Bucket) Label() string {
	switch b {
	case BucketUpTo1Day:
		return "≤1d"
	case Bucket2To3Days:
		return "2-3d"
	case Bucket4To7Days:
		return "4-7d"
	case Bucket8To14Days:
		return "8-14d"
	case Bucket15To30Days:
		return "15-30d"
	case BucketOver30Days:
		return ">30d"
	default:
		return string(b)
	}
}

// AgeingRecord is one provider's settlement-time profile.
type AgeingRecord struct {
	Provider            string         `json:"provider"`
	AverageDaysToSettle float64        `json:"average_days_to_settle"`
	Distribution        map[Bucket]int `json:"distribution"`
}

// BucketShare is the count and percentage of one bucket.
type BucketShare struct {
	Bucket  Bucket  `json:"bucket"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ProviderAgeing is the computed distribution of one provider.
type ProviderAgeing struct {
	Provider            string        `json:"provider"`
	AverageDaysToSettle float64       `json:"average_days_to_settle"`
	Total               int           `json:"total"`
	Buckets             []BucketShare `json:"buckets"`
}

// AgeingSummary is the output of the ageing aggregator.
type AgeingSummary struct {
	Providers          []ProviderAgeing `json:"providers"`
	Overall            []BucketShare    `json:"overall"`
	OverallAverageTAT  float64          `json:"overall_average_tat"`
	WeightedAverageTAT float64          `json:"weighted_average_tat"`
}

// SingleProvider reports whether a detail view fits better than a
// comparison chart.
func (s AgeingSummary) SingleProvider() bool {
	return len(s.Providers) == 1
}
