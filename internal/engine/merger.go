package engine

import (
	"strings"

	"recon-insights/internal/domain"
)

// Merge combines two snapshots by summing every {amount, count} pair,
// including the provider collections and unreconciled reasons.
//
// ReturnRate and CommissionRate are taken from a verbatim. Summing
// percentages of differently sized snapshots is meaningless and no
// count-weighted recomputation is attempted here.
func Merge(a, b domain.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		Summary:             mergeSummary(a.Summary, b.Summary),
		Mismatch:            mergeMismatch(a.Mismatch, b.Mismatch),
		Reconciled:          mergeProviders(a.Reconciled, b.Reconciled),
		Unreconciled:        mergeProviders(a.Unreconciled, b.Unreconciled),
		Settled:             mergeProviders(a.Settled, b.Settled),
		Pending:             mergeProviders(a.Pending, b.Pending),
		UnreconciledReasons: mergeReasons(a.UnreconciledReasons, b.UnreconciledReasons),
		ReturnRate:          a.ReturnRate,
		CommissionRate:      a.CommissionRate,
	}
}

// MergeAll left-folds snapshots with the first one as the primary operand.
func MergeAll(snapshots []domain.Snapshot) domain.Snapshot {
	if len(snapshots) == 0 {
		return domain.Snapshot{}
	}
	merged := Merge(snapshots[0], domain.Snapshot{})
	for _, s := range snapshots[1:] {
		merged = Merge(merged, s)
	}
	return merged
}

func mergeSummary(a, b domain.SummaryCounters) domain.SummaryCounters {
	return domain.SummaryCounters{
		GrossSales:              a.GrossSales.Add(b.GrossSales),
		Returns:                 a.Returns.Add(b.Returns),
		Cancellations:           a.Cancellations.Add(b.Cancellations),
		NetSales:                a.NetSales.Add(b.NetSales),
		PreviousPeriodCarryover: a.PreviousPeriodCarryover.Add(b.PreviousPeriodCarryover),
		OrdersDelivered:         a.OrdersDelivered.Add(b.OrdersDelivered),
		Settled:                 a.Settled.Add(b.Settled),
		Pending:                 a.Pending.Add(b.Pending),
	}
}

func mergeMismatch(a, b domain.MismatchGroup) domain.MismatchGroup {
	return domain.MismatchGroup{
		Total:                 a.Total.Add(b.Total),
		LessPaymentReceived:   a.LessPaymentReceived.Add(b.LessPaymentReceived),
		ExcessPaymentReceived: a.ExcessPaymentReceived.Add(b.ExcessPaymentReceived),
	}
}

func mergeProviders(a, b []domain.ProviderRecord) []domain.ProviderRecord {
	pairs := pairRecords(a, b)
	merged := make([]domain.ProviderRecord, 0, len(pairs))
	for _, p := range pairs {
		rec := p.base()
		if p.left != nil && p.right != nil {
			rec.OrderCount += p.right.OrderCount
			rec.SaleAmount += p.right.SaleAmount
			rec.Commission += p.right.Commission
			rec.GSTOnCommission += p.right.GSTOnCommission
		}
		merged = append(merged, rec)
	}
	return merged
}

func mergeReasons(a, b []domain.ReasonCount) []domain.ReasonCount {
	merged := make([]domain.ReasonCount, 0, len(a)+len(b))
	index := make(map[string]int, len(a)+len(b))
	for _, list := range [][]domain.ReasonCount{a, b} {
		for _, r := range list {
			key := strings.ToLower(strings.TrimSpace(r.Reason))
			if pos, ok := index[key]; ok {
				merged[pos].Amount += r.Amount
				merged[pos].Count += r.Count
				continue
			}
			index[key] = len(merged)
			merged = append(merged, r)
		}
	}
	return merged
}
