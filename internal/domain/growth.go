package domain

// GrowthPoint is one month of a marketplace sales/settlement series.
type GrowthPoint struct {
	Month      string  `json:"month"`
	Sales      float64 `json:"sales"`
	Settlement float64 `json:"settlement"`
}

// GrowthRow is a GrowthPoint with month-over-month growth.
type GrowthRow struct {
	GrowthPoint
	SalesGrowthPct      float64 `json:"sales_growth_pct"`
	SettlementGrowthPct float64 `json:"settlement_growth_pct"`
}

// VendorPoint is one month of a single vendor's settlements.
type VendorPoint struct {
	Month      string  `json:"month"`
	Settlement float64 `json:"settlement"`
}

// VendorSeries is a vendor's monthly settlements in input order.
type VendorSeries struct {
	Vendor string        `json:"vendor"`
	Points []VendorPoint `json:"points"`
}

// VendorColumn describes one column of the combined vendor series.
type VendorColumn struct {
	Name  string `json:"name"`
	Key   string `json:"key"`
	Color string `json:"color"`
}

// CombinedRow is one month across all vendors, keyed by VendorColumn.Key.
type CombinedRow struct {
	Month  string             `json:"month"`
	Values map[string]float64 `json:"values"`
}

// CombinedGrowth is the month-aligned multi-vendor settlement series.
type CombinedGrowth struct {
	Columns []VendorColumn `json:"columns"`
	Rows    []CombinedRow  `json:"rows"`
}

// GrowthInput is the decoded monthly growth payload.
type GrowthInput struct {
	SalesAndSettlement []GrowthPoint  `json:"sales_and_settlement"`
	VendorSettlements  []VendorSeries `json:"vendor_settlements"`
}

// GrowthView is what the growth tab renders.
type GrowthView struct {
	Series  []GrowthRow    `json:"series"`
	Vendors CombinedGrowth `json:"vendors"`
}
