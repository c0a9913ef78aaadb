package domain

// AmountCount is the {amount, count} pair every summary counter is made of.
type AmountCount struct {
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// Add returns the element-wise sum of two pairs.
func (a AmountCount) Add(b AmountCount) AmountCount {
	return AmountCount{Amount: a.Amount + b.Amount, Count: a.Count + b.Count}
}

// SummaryCounters holds the scalar counters of a snapshot.
type SummaryCounters struct {
	GrossSales              AmountCount `json:"gross_sales"`
	Returns                 AmountCount `json:"returns"`
	Cancellations           AmountCount `json:"cancellations"`
	NetSales                AmountCount `json:"net_sales"`
	PreviousPeriodCarryover AmountCount `json:"previous_period_carryover"`
	OrdersDelivered         AmountCount `json:"orders_delivered"`
	Settled                 AmountCount `json:"settled"`
	Pending                 AmountCount `json:"pending"`
}

// MismatchGroup splits unreconciled payments by direction.
type MismatchGroup struct {
	Total                 AmountCount `json:"total"`
	LessPaymentReceived   AmountCount `json:"less_payment_received"`
	ExcessPaymentReceived AmountCount `json:"excess_payment_received"`
}

// ReasonCount is one unreconciled reason bucket.
type ReasonCount struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// Snapshot is one complete reconciliation result for a date range, platform
// and date-field selection.
//
// ReturnRate and CommissionRate are percentages and are never summed when
// snapshots are merged.
type Snapshot struct {
	Summary             SummaryCounters  `json:"summary"`
	Mismatch            MismatchGroup    `json:"mismatch"`
	Reconciled          []ProviderRecord `json:"reconciled"`
	Unreconciled        []ProviderRecord `json:"unreconciled"`
	Settled             []ProviderRecord `json:"settled"`
	Pending             []ProviderRecord `json:"pending"`
	UnreconciledReasons []ReasonCount    `json:"unreconciled_reasons"`
	ReturnRate          float64          `json:"return_rate"`
	CommissionRate      float64          `json:"commission_rate"`
}
