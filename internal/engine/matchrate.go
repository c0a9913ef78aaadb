package engine

import (
	"math"

	"recon-insights/internal/domain"
)

// MatchRate returns matched/(matched+unmatched)*100. With no data at all the
// rate is 0, not 100: an empty window is neither perfectly nor badly
// reconciled. Negative counts are treated as 0.
func MatchRate(matched, unmatched int) float64 {
	if matched < 0 {
		matched = 0
	}
	if unmatched < 0 {
		unmatched = 0
	}
	total := matched + unmatched
	if total == 0 {
		return 0
	}
	return clampPercent(float64(matched) / float64(total) * 100)
}

// MismatchRate is MatchRate with the roles swapped.
func MismatchRate(matched, unmatched int) float64 {
	return MatchRate(unmatched, matched)
}

// AmountRate is the amount-weighted counterpart of MatchRate.
func AmountRate(part, rest float64) float64 {
	part, rest = nonNegative(part), nonNegative(rest)
	total := part + rest
	if total == 0 {
		return 0
	}
	return clampPercent(part / total * 100)
}

// MatchProviders compares reconciled and unreconciled records per provider.
// Gateways come first in first-seen order, followed by one COD aggregate row
// with the logistics partners nested as members.
func MatchProviders(reconciled, unreconciled []domain.ProviderRecord) []domain.ProviderMatchRow {
	var (
		rows    []domain.ProviderMatchRow
		members []domain.ProviderMatchRow
	)
	for _, p := range pairRecords(reconciled, unreconciled) {
		base := p.base()
		row := matchRow(base.Code, base.DisplayName, base.Category, p.leftOrZero(), p.rightOrZero())
		if base.IsCOD() {
			members = append(members, row)
			continue
		}
		rows = append(rows, row)
	}
	if len(members) == 0 {
		return rows
	}

	var matched, unmatched domain.ProviderRecord
	for _, m := range members {
		matched.OrderCount += m.MatchedCount
		matched.SaleAmount += m.MatchedAmount
		unmatched.OrderCount += m.UnmatchedCount
		unmatched.SaleAmount += m.UnmatchedAmount
	}
	cod := matchRow(domain.CODProviderCode, domain.CODDisplayName, domain.CategoryCOD, matched, unmatched)
	cod.Members = members
	return append(rows, cod)
}

func matchRow(code, name string, category domain.Category, matched, unmatched domain.ProviderRecord) domain.ProviderMatchRow {
	pct := MatchRate(matched.OrderCount, unmatched.OrderCount)
	return domain.ProviderMatchRow{
		Code:              code,
		Provider:          name,
		Category:          category,
		MatchedCount:      matched.OrderCount,
		UnmatchedCount:    unmatched.OrderCount,
		MatchedAmount:     matched.SaleAmount,
		UnmatchedAmount:   unmatched.SaleAmount,
		MatchedPercent:    pct,
		MismatchedPercent: MismatchRate(matched.OrderCount, unmatched.OrderCount),
		Band:              Classify(pct),
	}
}

// SettleProviders compares settled and pending payments per provider, with
// the same ordering and COD grouping as MatchProviders.
func SettleProviders(settled, pending []domain.ProviderRecord) []domain.ProviderSettlementRow {
	var (
		rows    []domain.ProviderSettlementRow
		members []domain.ProviderSettlementRow
	)
	for _, p := range pairRecords(settled, pending) {
		base := p.base()
		row := settlementRow(base.Code, base.DisplayName, base.Category, p.leftOrZero(), p.rightOrZero())
		if base.IsCOD() {
			members = append(members, row)
			continue
		}
		rows = append(rows, row)
	}
	if len(members) == 0 {
		return rows
	}

	var s, p domain.ProviderRecord
	for _, m := range members {
		s.OrderCount += m.SettledCount
		s.SaleAmount += m.SettledAmount
		p.OrderCount += m.PendingCount
		p.SaleAmount += m.PendingAmount
	}
	cod := settlementRow(domain.CODProviderCode, domain.CODDisplayName, domain.CategoryCOD, s, p)
	cod.Members = members
	return append(rows, cod)
}

func settlementRow(code, name string, category domain.Category, settled, pending domain.ProviderRecord) domain.ProviderSettlementRow {
	return domain.ProviderSettlementRow{
		Code:           code,
		Provider:       name,
		Category:       category,
		SettledCount:   settled.OrderCount,
		PendingCount:   pending.OrderCount,
		SettledAmount:  settled.SaleAmount,
		PendingAmount:  pending.SaleAmount,
		SettledPercent: MatchRate(settled.OrderCount, pending.OrderCount),
	}
}

// CommissionRows sums commission and GST on commission per gateway across
// the given collections. Records pair up across collections the same way
// the rate rows do, so a code repeated within one collection keeps one row
// per occurrence. COD partners carry no commission and are skipped.
func CommissionRows(collections ...[]domain.ProviderRecord) []domain.CommissionRow {
	var (
		rows  []domain.CommissionRow
		index = make(map[string]int)
	)
	for _, records := range collections {
		seen := make(map[string]int)
		for _, rec := range records {
			if rec.IsCOD() {
				continue
			}
			key := occurrenceKey(rec, seen)
			pos, ok := index[key]
			if !ok {
				pos = len(rows)
				index[key] = pos
				rows = append(rows, domain.CommissionRow{Code: rec.Code, Provider: rec.DisplayName})
			}
			rows[pos].Commission += rec.Commission
			rows[pos].GSTOnCommission += rec.GSTOnCommission
			rows[pos].TotalCharges = rows[pos].Commission + rows[pos].GSTOnCommission
		}
	}
	return rows
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 || math.IsInf(v, 0) {
		return 0
	}
	return v
}
