package engine

import (
	"strconv"

	"recon-insights/internal/domain"
)

// Split partitions records into gateways and COD partners and synthesizes
// the "Cash on Delivery" aggregate line. Every record lands in exactly one
// of the two lists; the aggregate is not counted in either.
func Split(records []domain.ProviderRecord) domain.ProviderSplit {
	split := domain.ProviderSplit{
		Gateways: make([]domain.ProviderRecord, 0, len(records)),
		COD:      make([]domain.ProviderRecord, 0),
		CODTotal: codAggregate(),
	}
	for _, rec := range records {
		if rec.IsCOD() {
			split.COD = append(split.COD, rec)
			split.CODTotal.OrderCount += rec.OrderCount
			split.CODTotal.SaleAmount += rec.SaleAmount
			continue
		}
		split.Gateways = append(split.Gateways, rec)
	}
	return split
}

func codAggregate() domain.ProviderRecord {
	return domain.ProviderRecord{
		Code:        domain.CODProviderCode,
		DisplayName: domain.CODDisplayName,
		Category:    domain.CategoryCOD,
		Source:      domain.SourceCOD,
	}
}

// recordPair joins the n-th occurrence of a provider key in two lists.
// Either side may be missing.
type recordPair struct {
	left  *domain.ProviderRecord
	right *domain.ProviderRecord
}

func (p recordPair) base() domain.ProviderRecord {
	if p.left != nil {
		return *p.left
	}
	return *p.right
}

func (p recordPair) leftOrZero() domain.ProviderRecord {
	if p.left != nil {
		return *p.left
	}
	return domain.ProviderRecord{}
}

func (p recordPair) rightOrZero() domain.ProviderRecord {
	if p.right != nil {
		return *p.right
	}
	return domain.ProviderRecord{}
}

// pairRecords joins two provider lists by category, code and occurrence, in
// first-seen order (left list first). Duplicate codes stay separate.
func pairRecords(left, right []domain.ProviderRecord) []recordPair {
	pairs := make([]recordPair, 0, len(left)+len(right))
	index := make(map[string]int, len(left)+len(right))

	seen := make(map[string]int)
	for i := range left {
		key := occurrenceKey(left[i], seen)
		index[key] = len(pairs)
		pairs = append(pairs, recordPair{left: &left[i]})
	}

	seen = make(map[string]int)
	for i := range right {
		key := occurrenceKey(right[i], seen)
		if pos, ok := index[key]; ok {
			pairs[pos].right = &right[i]
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, recordPair{right: &right[i]})
	}
	return pairs
}

func occurrenceKey(rec domain.ProviderRecord, seen map[string]int) string {
	key := rec.Key()
	n := seen[key]
	seen[key] = n + 1
	return key + "#" + strconv.Itoa(n)
}
