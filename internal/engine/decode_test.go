package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-insights/internal/domain"
	"recon-insights/internal/engine"
)

const snapshotJSON = `{
	"summary": {
		"gross_sales": {"amount": "₹1,50,000", "count": 120},
		"returns": {"amount": -4000, "count": 6},
		"net_sales": 146000,
		"ordersDelivered": {"amount": 120, "number": 10},
		"settled": {"amount": 90000, "count": 80},
		"pending": {"amount": 20000, "count": 20},
		"return_rate": 5,
		"commission_rate": "1.8"
	},
	"mismatch": {
		"total": {"amount": 3000, "count": 7},
		"less_payment_received": {"amount": 2000, "count": 5},
		"excess_payment_received": {"amount": 1000, "count": 2}
	},
	"reconciled": {
		"payu": {"total_count": 45, "total_sale_amount": 45000, "total_comission": 900, "total_gst_on_comission": 162},
		"cod": [{"logistics_partner": "Delhivery", "total_count": 30, "total_sale_amount": 15000}]
	},
	"unreconciled": {
		"payu": {"total_count": 5, "total_sale_amount": 5000}
	},
	"settled": {"payu": {"total_count": 40, "total_sale_amount": 40000}},
	"pending": {"payu": {"total_count": 10, "total_sale_amount": 10000}},
	"unreconciled_reasons": [
		{"reason": "Short payment", "amount": 2000, "count": 5},
		{"amount": 1}
	]
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, warnings := engine.DecodeSnapshot([]byte(snapshotJSON))

	assert.Equal(t, domain.AmountCount{Amount: 150000, Count: 120}, snap.Summary.GrossSales)
	assert.Equal(t, domain.AmountCount{Amount: 4000, Count: 6}, snap.Summary.Returns)
	assert.Equal(t, domain.AmountCount{Amount: 146000}, snap.Summary.NetSales)
	assert.Equal(t, domain.AmountCount{Amount: 120, Count: 10}, snap.Summary.OrdersDelivered)
	assert.Equal(t, domain.AmountCount{Amount: 2000, Count: 5}, snap.Mismatch.LessPaymentReceived)
	assert.Equal(t, 5.0, snap.ReturnRate)
	assert.Equal(t, 1.8, snap.CommissionRate)

	require.Len(t, snap.Reconciled, 2)
	assert.Equal(t, "payu", snap.Reconciled[0].Code)
	assert.Equal(t, domain.CategoryCOD, snap.Reconciled[1].Category)
	assert.Len(t, snap.Unreconciled, 1)
	assert.Len(t, snap.Settled, 1)
	assert.Len(t, snap.Pending, 1)

	require.Len(t, snap.UnreconciledReasons, 1)
	assert.Equal(t, "Short payment", snap.UnreconciledReasons[0].Reason)
	assert.Len(t, warnings, 1)
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	for _, raw := range []string{"", "{", "[1,2]"} {
		snap, warnings := engine.DecodeSnapshot([]byte(raw))
		assert.Equal(t, domain.Snapshot{}, snap, raw)
		assert.Len(t, warnings, 1, raw)
	}
}

func TestDecodeSnapshot_ReasonsAsObject(t *testing.T) {
	snap, warnings := engine.DecodeSnapshot([]byte(`{"unreconciledReasons":{"Short payment":{"amount":10,"count":1},"Missing":4}}`))

	assert.Empty(t, warnings)
	assert.Equal(t, []domain.ReasonCount{
		{Reason: "Short payment", Amount: 10, Count: 1},
		{Reason: "Missing", Amount: 4},
	}, snap.UnreconciledReasons)
}

func TestDecodeAgeing(t *testing.T) {
	raw := `[
		{"settlement_provider": "payu", "averageDaysToSettle": 6.4, "distribution": {"≤1d": 5, "2-3d": 18, "4-7d": 42, "8-14d": 25, "15-30d": 8, ">30d": 2}},
		{"provider": "Custom", "average_days_to_settle": "3", "distribution": {"someday": 1, "0-1": 4}}
	]`

	records, warnings := engine.DecodeAgeing([]byte(raw))

	require.Len(t, records, 2)
	assert.Equal(t, "PayU", records[0].Provider)
	assert.Equal(t, 6.4, records[0].AverageDaysToSettle)
	assert.Equal(t, 42, records[0].Distribution[domain.Bucket4To7Days])
	assert.Equal(t, 2, records[0].Distribution[domain.BucketOver30Days])
	assert.Equal(t, "Custom", records[1].Provider)
	assert.Equal(t, 3.0, records[1].AverageDaysToSettle)
	assert.Equal(t, 4, records[1].Distribution[domain.BucketUpTo1Day])
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "someday")
}

func TestDecodeGrowth(t *testing.T) {
	t.Run("bare marketplace series", func(t *testing.T) {
		input, warnings := engine.DecodeGrowth([]byte(`[{"month":"2025-01","sales":100,"settlement":90}]`))

		assert.Empty(t, warnings)
		assert.Equal(t, []domain.GrowthPoint{{Month: "2025-01", Sales: 100, Settlement: 90}}, input.SalesAndSettlement)
		assert.Empty(t, input.VendorSettlements)
	})

	t.Run("vendor settlements keep document order", func(t *testing.T) {
		raw := `{
			"salesAndSettlement": [{"month":"2025-01","sales":"1,000","settlement":900}],
			"vendorSettlements": {
				"Zeta Pay": [{"month":"2025-01","settlement":10}],
				"Alpha": [{"month":"2025-01","settlement":20}]
			}
		}`

		input, warnings := engine.DecodeGrowth([]byte(raw))

		assert.Empty(t, warnings)
		assert.Equal(t, 1000.0, input.SalesAndSettlement[0].Sales)
		require.Len(t, input.VendorSettlements, 2)
		assert.Equal(t, "Zeta Pay", input.VendorSettlements[0].Vendor)
		assert.Equal(t, "Alpha", input.VendorSettlements[1].Vendor)
	})

	t.Run("vendor settlements as a list", func(t *testing.T) {
		raw := `{"vendor_settlements":[{"vendor":"Alpha","points":[{"month":"m","settlement":5}]},{"points":[]}]}`

		input, warnings := engine.DecodeGrowth([]byte(raw))

		require.Len(t, input.VendorSettlements, 1)
		assert.Equal(t, []domain.VendorPoint{{Month: "m", Settlement: 5}}, input.VendorSettlements[0].Points)
		assert.Len(t, warnings, 1)
	})

	t.Run("invalid", func(t *testing.T) {
		_, warnings := engine.DecodeGrowth([]byte(`nope`))
		assert.Len(t, warnings, 1)
	})
}
