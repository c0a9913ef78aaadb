package engine

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"recon-insights/internal/domain"
)

const defaultColorCacheSize = 128

// Palette vendors are coloured from, by first-seen position.
var Palette = []string{
	"#2563EB",
	"#16A34A",
	"#F59E0B",
	"#DC2626",
	"#7C3AED",
	"#0891B2",
	"#DB2777",
	"#65A30D",
	"#EA580C",
	"#4B5563",
}

// ColorAssigner memoizes palette assignments per ordered vendor set. It is
// safe for concurrent use; the cache key depends only on the vendor list.
type ColorAssigner struct {
	cache *lru.Cache[string, []string]
}

// NewColorAssigner creates an assigner remembering up to size vendor sets.
func NewColorAssigner(size int) *ColorAssigner {
	if size <= 0 {
		size = defaultColorCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &ColorAssigner{cache: cache}
}

var defaultColors = NewColorAssigner(defaultColorCacheSize)

// Colors returns one palette colour per vendor, indexed by position.
func (c *ColorAssigner) Colors(vendors []string) []string {
	key := strings.Join(vendors, "\x1f")
	if colors, ok := c.cache.Get(key); ok {
		return append([]string(nil), colors...)
	}

	colors := make([]string, len(vendors))
	for i := range vendors {
		colors[i] = Palette[i%len(Palette)]
	}
	c.cache.Add(key, colors)
	return append([]string(nil), colors...)
}

// VendorKey turns a vendor name into a field-safe key: whitespace runs
// become underscores.
func VendorKey(name string) string {
	key := strings.Join(strings.Fields(name), "_")
	if key == "" {
		return "vendor"
	}
	return key
}

// CombineVendorSeries reshapes per-vendor monthly settlements into one
// month-aligned series using the package-wide colour memo.
func CombineVendorSeries(series []domain.VendorSeries) domain.CombinedGrowth {
	return defaultColors.Combine(series)
}

// Combine builds one row per month (months in first-seen order) with one
// value per vendor column. Months a vendor has no entry for are 0.
func (c *ColorAssigner) Combine(series []domain.VendorSeries) domain.CombinedGrowth {
	var (
		vendors   []string
		vendorPos = make(map[string]int)
		points    [][]domain.VendorPoint
	)
	for _, s := range series {
		pos, ok := vendorPos[s.Vendor]
		if !ok {
			pos = len(vendors)
			vendorPos[s.Vendor] = pos
			vendors = append(vendors, s.Vendor)
			points = append(points, nil)
		}
		points[pos] = append(points[pos], s.Points...)
	}

	colors := c.Colors(vendors)
	columns := make([]domain.VendorColumn, len(vendors))
	usedKeys := make(map[string]bool, len(vendors))
	for i, v := range vendors {
		base := VendorKey(v)
		key := base
		for n := 2; usedKeys[key]; n++ {
			key = base + "_" + strconv.Itoa(n)
		}
		usedKeys[key] = true
		columns[i] = domain.VendorColumn{Name: v, Key: key, Color: colors[i]}
	}

	var (
		rows     []domain.CombinedRow
		monthPos = make(map[string]int)
	)
	for i, pts := range points {
		for _, p := range pts {
			pos, ok := monthPos[p.Month]
			if !ok {
				pos = len(rows)
				monthPos[p.Month] = pos
				values := make(map[string]float64, len(columns))
				for _, col := range columns {
					values[col.Key] = 0
				}
				rows = append(rows, domain.CombinedRow{Month: p.Month, Values: values})
			}
			rows[pos].Values[columns[i].Key] += nonNegative(p.Settlement)
		}
	}

	return domain.CombinedGrowth{Columns: columns, Rows: rows}
}

// GrowthSeries adds month-over-month growth percentages to a marketplace
// series. The first month, and any month following a zero, has 0 growth.
func GrowthSeries(points []domain.GrowthPoint) []domain.GrowthRow {
	rows := make([]domain.GrowthRow, 0, len(points))
	for i, p := range points {
		row := domain.GrowthRow{GrowthPoint: p}
		if i > 0 {
			prev := points[i-1]
			row.SalesGrowthPct = growthPercent(prev.Sales, p.Sales)
			row.SettlementGrowthPct = growthPercent(prev.Settlement, p.Settlement)
		}
		rows = append(rows, row)
	}
	return rows
}

func growthPercent(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}
