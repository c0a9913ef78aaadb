package engine

import (
	"fmt"

	"github.com/tidwall/gjson"

	"recon-insights/internal/amount"
	"recon-insights/internal/domain"
)

// Warnings lists the parts of a payload that were dropped or defaulted while
// decoding. Decoding never fails; callers decide whether to log these.
type Warnings []string

func (w *Warnings) add(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// DecodeSnapshot reads a raw snapshot payload. Both snake_case and
// camelCase field names are accepted.
func DecodeSnapshot(raw []byte) (domain.Snapshot, Warnings) {
	var warnings Warnings
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		warnings.add("snapshot payload is not valid JSON")
		return domain.Snapshot{}, warnings
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		warnings.add("snapshot payload is not an object")
		return domain.Snapshot{}, warnings
	}

	summary := lookup(root, "summary")
	if !summary.Exists() {
		summary = root
	}
	mismatch := lookup(root, "mismatch", "unreconciled_split", "unreconciledSplit")

	snap := domain.Snapshot{
		Summary: domain.SummaryCounters{
			GrossSales:              counter(summary, "gross_sales", "grossSales"),
			Returns:                 counter(summary, "returns"),
			Cancellations:           counter(summary, "cancellations", "cancelled"),
			NetSales:                counter(summary, "net_sales", "netSales"),
			PreviousPeriodCarryover: counter(summary, "previous_period_carryover", "previousPeriodCarryover", "carryover"),
			OrdersDelivered:         counter(summary, "orders_delivered", "ordersDelivered"),
			Settled:                 counter(summary, "settled"),
			Pending:                 counter(summary, "pending", "pending_payment", "pendingPayment"),
		},
		Mismatch: domain.MismatchGroup{
			Total:                 counter(mismatch, "total"),
			LessPaymentReceived:   counter(mismatch, "less_payment_received", "lessPaymentReceived"),
			ExcessPaymentReceived: counter(mismatch, "excess_payment_received", "excessPaymentReceived", "more_payment_received", "morePaymentReceived"),
		},
		Reconciled:          providers(root, &warnings, "reconciled"),
		Unreconciled:        providers(root, &warnings, "unreconciled"),
		Settled:             providers(root, &warnings, "settled", "settled_providers", "settledProviders"),
		Pending:             providers(root, &warnings, "pending", "pending_providers", "pendingProviders"),
		UnreconciledReasons: reasons(lookup(root, "unreconciled_reasons", "unreconciledReasons"), &warnings),
		ReturnRate:          rate(summary, root, "return_rate", "returnRate"),
		CommissionRate:      rate(summary, root, "commission_rate", "commissionRate"),
	}
	return snap, warnings
}

// DecodeAgeing reads an ageing payload: an array of provider profiles, or an
// object wrapping one under "ageing" or "data".
func DecodeAgeing(raw []byte) ([]domain.AgeingRecord, Warnings) {
	var warnings Warnings
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		warnings.add("ageing payload is not valid JSON")
		return nil, warnings
	}
	list := gjson.ParseBytes(raw)
	if list.IsObject() {
		list = lookup(list, "ageing", "data", "providers")
	}
	if !list.IsArray() {
		warnings.add("ageing payload holds no provider list")
		return nil, warnings
	}

	var records []domain.AgeingRecord
	list.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			warnings.add("skipped non-object ageing entry")
			return true
		}
		rec := domain.AgeingRecord{
			Provider:            DisplayName(lookup(item, "settlement_provider", "settlementProvider", "provider").String()),
			AverageDaysToSettle: amount.Parse(lookup(item, "averageDaysToSettle", "average_days_to_settle").Value()),
			Distribution:        make(map[domain.Bucket]int, len(domain.Buckets)),
		}
		lookup(item, "distribution").ForEach(func(key, value gjson.Result) bool {
			b, ok := ParseBucket(key.String())
			if !ok {
				warnings.add("provider %s: unknown ageing bucket %q", rec.Provider, key.String())
				return true
			}
			rec.Distribution[b] += amount.ParseCount(value.Value())
			return true
		})
		records = append(records, rec)
		return true
	})
	return records, warnings
}

// DecodeGrowth reads a growth payload: either a bare marketplace series
// [{month, sales, settlement}] or {salesAndSettlement, vendorSettlements}.
// Vendor order follows the document.
func DecodeGrowth(raw []byte) (domain.GrowthInput, Warnings) {
	var (
		warnings Warnings
		input    domain.GrowthInput
	)
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		warnings.add("growth payload is not valid JSON")
		return input, warnings
	}

	root := gjson.ParseBytes(raw)
	switch {
	case root.IsArray():
		input.SalesAndSettlement = growthPoints(root)
	case root.IsObject():
		input.SalesAndSettlement = growthPoints(lookup(root, "salesAndSettlement", "sales_and_settlement"))
		input.VendorSettlements = vendorSeries(lookup(root, "vendorSettlements", "vendor_settlements"), &warnings)
	default:
		warnings.add("growth payload is neither an array nor an object")
	}
	return input, warnings
}

func growthPoints(list gjson.Result) []domain.GrowthPoint {
	var points []domain.GrowthPoint
	list.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			points = append(points, domain.GrowthPoint{
				Month:      lookup(item, "month").String(),
				Sales:      amount.Parse(lookup(item, "sales").Value()),
				Settlement: amount.Parse(lookup(item, "settlement").Value()),
			})
		}
		return true
	})
	return points
}

// vendorSeries accepts {<vendor>: [{month, settlement}]} or
// [{vendor, points: [...]}].
func vendorSeries(value gjson.Result, warnings *Warnings) []domain.VendorSeries {
	var series []domain.VendorSeries
	switch {
	case value.IsObject():
		value.ForEach(func(key, list gjson.Result) bool {
			series = append(series, domain.VendorSeries{Vendor: key.String(), Points: vendorPoints(list)})
			return true
		})
	case value.IsArray():
		value.ForEach(func(_, item gjson.Result) bool {
			vendor := lookup(item, "vendor", "name").String()
			if vendor == "" {
				warnings.add("skipped vendor series without a name")
				return true
			}
			series = append(series, domain.VendorSeries{Vendor: vendor, Points: vendorPoints(lookup(item, "points", "data"))})
			return true
		})
	}
	return series
}

func vendorPoints(list gjson.Result) []domain.VendorPoint {
	var points []domain.VendorPoint
	list.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			points = append(points, domain.VendorPoint{
				Month:      lookup(item, "month").String(),
				Settlement: amount.Parse(lookup(item, "settlement", "amount").Value()),
			})
		}
		return true
	})
	return points
}

func providers(root gjson.Result, warnings *Warnings, names ...string) []domain.ProviderRecord {
	block := lookup(root, names...)
	if !block.Exists() {
		return nil
	}
	if !block.IsObject() {
		warnings.add("%s: provider block is not an object", names[0])
		return nil
	}
	return normalizeBlock(block)
}

func reasons(value gjson.Result, warnings *Warnings) []domain.ReasonCount {
	var out []domain.ReasonCount
	switch {
	case value.IsArray():
		value.ForEach(func(_, item gjson.Result) bool {
			label := lookup(item, "reason", "label", "name").String()
			if label == "" {
				warnings.add("skipped unreconciled reason without a label")
				return true
			}
			c := pair(item)
			out = append(out, domain.ReasonCount{Reason: label, Amount: c.Amount, Count: c.Count})
			return true
		})
	case value.IsObject():
		value.ForEach(func(key, item gjson.Result) bool {
			c := pair(item)
			out = append(out, domain.ReasonCount{Reason: key.String(), Amount: c.Amount, Count: c.Count})
			return true
		})
	}
	return out
}

// counter reads the {amount, count} pair held under one of names.
func counter(obj gjson.Result, names ...string) domain.AmountCount {
	return pair(lookup(obj, names...))
}

// pair reads an {amount, count|number} object. A bare number is an amount
// without a count.
func pair(value gjson.Result) domain.AmountCount {
	if value.IsObject() {
		return domain.AmountCount{
			Amount: amount.Parse(lookup(value, "amount", "value").Value()),
			Count:  amount.ParseCount(lookup(value, "count", "number").Value()),
		}
	}
	return domain.AmountCount{Amount: amount.Parse(value.Value())}
}

func rate(summary, root gjson.Result, names ...string) float64 {
	if v := lookup(summary, names...); v.Exists() {
		return amount.Parse(v.Value())
	}
	return amount.Parse(lookup(root, names...).Value())
}

// lookup returns the first present member among names. Keys are matched
// literally, never as gjson paths.
func lookup(obj gjson.Result, names ...string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	for _, name := range names {
		if r := obj.Get(gjson.Escape(name)); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
