package engine

import "recon-insights/internal/domain"

// Builder assembles dashboard views. The zero value is not usable; use
// NewBuilder.
type Builder struct {
	colors *ColorAssigner
}

// NewBuilder creates a Builder colouring vendor series with colors. A nil
// assigner falls back to the package-wide memo.
func NewBuilder(colors *ColorAssigner) *Builder {
	if colors == nil {
		colors = defaultColors
	}
	return &Builder{colors: colors}
}

// BuildDashboard assembles every view using the package-wide colour memo.
func BuildDashboard(snap domain.Snapshot, ageing []domain.AgeingRecord, growth domain.GrowthInput) domain.DashboardView {
	return NewBuilder(nil).Build(snap, ageing, growth)
}

// Build assembles every view of one (possibly merged) snapshot.
func (b *Builder) Build(snap domain.Snapshot, ageing []domain.AgeingRecord, growth domain.GrowthInput) domain.DashboardView {
	reasons := make([]domain.ReasonCount, len(snap.UnreconciledReasons))
	copy(reasons, snap.UnreconciledReasons)

	return domain.DashboardView{
		Summary:                 summaryView(snap),
		UnreconciledReasons:     reasons,
		MatchedByProviders:      MatchProviders(snap.Reconciled, snap.Unreconciled),
		UnreconciledByProviders: Split(snap.Unreconciled),
		SettledByProviders:      SettleProviders(snap.Settled, snap.Pending),
		PendingByProviders:      Split(snap.Pending),
		Commission:              CommissionRows(snap.Reconciled, snap.Unreconciled),
		Ageing:                  AggregateAgeing(ageing),
		Growth: domain.GrowthView{
			Series:  GrowthSeries(growth.SalesAndSettlement),
			Vendors: b.colors.Combine(growth.VendorSettlements),
		},
	}
}

// summaryView derives the headline rates. Order counts come from the
// provider lists; when a snapshot carries no provider breakdown the summary
// counters are used instead.
func summaryView(snap domain.Snapshot) domain.SummaryView {
	matched, unmatched := orderCount(snap.Reconciled), orderCount(snap.Unreconciled)
	if len(snap.Reconciled) == 0 && len(snap.Unreconciled) == 0 {
		unmatched = snap.Mismatch.Total.Count
		matched = snap.Summary.OrdersDelivered.Count - unmatched
		if matched < 0 {
			matched = 0
		}
	}

	settled, pending := orderCount(snap.Settled), orderCount(snap.Pending)
	if len(snap.Settled) == 0 && len(snap.Pending) == 0 {
		settled, pending = snap.Summary.Settled.Count, snap.Summary.Pending.Count
	}

	pct := MatchRate(matched, unmatched)
	return domain.SummaryView{
		Counters:              snap.Summary,
		Mismatch:              snap.Mismatch,
		MatchedCount:          matched,
		UnmatchedCount:        unmatched,
		ReconciliationPercent: pct,
		Band:                  Classify(pct),
		SettledPercent:        MatchRate(settled, pending),
		ReturnRate:            snap.ReturnRate,
		CommissionRate:        snap.CommissionRate,
	}
}

func orderCount(records []domain.ProviderRecord) int {
	n := 0
	for _, r := range records {
		if r.OrderCount > 0 {
			n += r.OrderCount
		}
	}
	return n
}
