package domain

// SummaryView is the headline block of the dashboard.
type SummaryView struct {
	Counters              SummaryCounters `json:"counters"`
	Mismatch              MismatchGroup   `json:"mismatch"`
	MatchedCount          int             `json:"matched_count"`
	UnmatchedCount        int             `json:"unmatched_count"`
	ReconciliationPercent float64         `json:"reconciliation_percent"`
	Band                  Band            `json:"band"`
	SettledPercent        float64         `json:"settled_percent"`
	ReturnRate            float64         `json:"return_rate"`
	CommissionRate        float64         `json:"commission_rate"`
}

// ProviderMatchRow compares reconciled and unreconciled orders of one
// provider. The COD aggregate row carries its logistics partners in Members.
type ProviderMatchRow struct {
	Code              string             `json:"code"`
	Provider          string             `json:"provider"`
	Category          Category           `json:"category"`
	MatchedCount      int                `json:"matched_count"`
	UnmatchedCount    int                `json:"unmatched_count"`
	MatchedAmount     float64            `json:"matched_amount"`
	UnmatchedAmount   float64            `json:"unmatched_amount"`
	MatchedPercent    float64            `json:"matched_percent"`
	MismatchedPercent float64            `json:"mismatched_percent"`
	Band              Band               `json:"band"`
	Members           []ProviderMatchRow `json:"members,omitempty"`
}

// ProviderSettlementRow compares settled and pending payments of a provider.
type ProviderSettlementRow struct {
	Code           string                  `json:"code"`
	Provider       string                  `json:"provider"`
	Category       Category                `json:"category"`
	SettledCount   int                     `json:"settled_count"`
	PendingCount   int                     `json:"pending_count"`
	SettledAmount  float64                 `json:"settled_amount"`
	PendingAmount  float64                 `json:"pending_amount"`
	SettledPercent float64                 `json:"settled_percent"`
	Members        []ProviderSettlementRow `json:"members,omitempty"`
}

// CommissionRow is the commission charged by one gateway.
type CommissionRow struct {
	Code            string  `json:"code"`
	Provider        string  `json:"provider"`
	Commission      float64 `json:"commission"`
	GSTOnCommission float64 `json:"gst_on_commission"`
	TotalCharges    float64 `json:"total_charges"`
}

// ProviderSplit is a provider list partitioned into gateways and COD
// partners, plus the synthesized COD aggregate line.
type ProviderSplit struct {
	Gateways []ProviderRecord `json:"gateways"`
	COD      []ProviderRecord `json:"cod"`
	CODTotal ProviderRecord   `json:"cod_total"`
}

// Collapsed returns the lines a collapsible provider table shows at the top
// level: every gateway, then the COD aggregate when any COD partner exists.
func (s ProviderSplit) Collapsed() []ProviderRecord {
	lines := make([]ProviderRecord, 0, len(s.Gateways)+1)
	lines = append(lines, s.Gateways...)
	if len(s.COD) > 0 {
		lines = append(lines, s.CODTotal)
	}
	return lines
}

// DashboardView is every computed view of one (possibly merged) snapshot.
type DashboardView struct {
	Summary                 SummaryView             `json:"summary"`
	UnreconciledReasons     []ReasonCount           `json:"unreconciled_reasons"`
	MatchedByProviders      []ProviderMatchRow      `json:"matched_by_providers"`
	UnreconciledByProviders ProviderSplit           `json:"unreconciled_by_providers"`
	SettledByProviders      []ProviderSettlementRow `json:"settled_by_providers"`
	PendingByProviders      ProviderSplit           `json:"pending_by_providers"`
	Commission              []CommissionRow         `json:"commission"`
	Ageing                  AgeingSummary           `json:"ageing"`
	Growth                  GrowthView              `json:"growth"`
}

// CsvRow is one exported line. The first field is always the section label.
type CsvRow []string
