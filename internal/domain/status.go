package domain

// Band is the severity band of a reconciliation percentage.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandModerate  Band = "moderate"
	BandWeak      Band = "weak"
	BandPoor      Band = "poor"
	BandCritical  Band = "critical"
)

var bandColors = map[Band]string{
	BandExcellent: "#15803D",
	BandGood:      "#22C55E",
	BandFair:      "#84CC16",
	BandModerate:  "#EAB308",
	BandWeak:      "#F97316",
	BandPoor:      "#EF4444",
	BandCritical:  "#991B1B",
}

// Color returns the hex colour used to render the band.
func (b Band) Color() string {
	if c, ok := bandColors[b]; ok {
		return c
	}
	return bandColors[BandCritical]
}
