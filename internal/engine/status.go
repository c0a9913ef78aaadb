package engine

import (
	"math"

	"recon-insights/internal/domain"
)

// Thresholds are evaluated top-down; the first band whose lower bound is
// reached wins.
var bandThresholds = []struct {
	min  float64
	band domain.Band
}{
	{min: 98, band: domain.BandExcellent},
	{min: 90, band: domain.BandGood},
	{min: 80, band: domain.BandFair},
	{min: 70, band: domain.BandModerate},
	{min: 60, band: domain.BandWeak},
	{min: 50, band: domain.BandPoor},
}

// Classify maps a reconciliation percentage to its severity band.
func Classify(p float64) domain.Band {
	if math.IsNaN(p) {
		return domain.BandCritical
	}
	for _, t := range bandThresholds {
		if p >= t.min {
			return t.band
		}
	}
	return domain.BandCritical
}
