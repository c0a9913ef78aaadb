package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-insights/internal/domain"
	"recon-insights/internal/engine"
)

func TestNormalizeProviders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.ProviderRecord
	}{
		{
			name: "known gateway with misspelled commission fields",
			raw:  `{"payu":{"total_count":12,"total_sale_amount":"₹1,200.50","total_comission":24,"total_gst_on_comission":4.32}}`,
			want: []domain.ProviderRecord{
				{
					Code:            "payu",
					DisplayName:     "PayU",
					Category:        domain.CategoryGateway,
					Source:          domain.SourceKnown,
					OrderCount:      12,
					SaleAmount:      1200.50,
					Commission:      24,
					GSTOnCommission: 4.32,
				},
			},
		},
		{
			name: "unknown key goes through the dynamic fallback",
			raw:  `{"New Gateway":{"total_count":"3","total_sale_amount":90,"total_commission":1.5}}`,
			want: []domain.ProviderRecord{
				{
					Code:        "new_gateway",
					DisplayName: "new_gateway",
					Category:    domain.CategoryGateway,
					Source:      domain.SourceDynamic,
					OrderCount:  3,
					SaleAmount:  90,
					Commission:  1.5,
				},
			},
		},
		{
			name: "cod array expands into partners in order",
			raw:  `{"cod":[{"logistics_partner":"Delhivery","total_count":4,"total_sale_amount":400},{"total_count":1,"total_sale_amount":50}]}`,
			want: []domain.ProviderRecord{
				{
					Code:        "delhivery",
					DisplayName: "Delhivery",
					Category:    domain.CategoryCOD,
					Source:      domain.SourceCOD,
					OrderCount:  4,
					SaleAmount:  400,
				},
				{
					Code:        "cod_2",
					DisplayName: "cod_2",
					Category:    domain.CategoryCOD,
					Source:      domain.SourceCOD,
					OrderCount:  1,
					SaleAmount:  50,
				},
			},
		},
		{
			name: "scalars are skipped and document order is kept",
			raw:  `{"razorpay":{"total_count":2,"total_sale_amount":20},"note":"ignored","payu":{"total_count":1,"total_sale_amount":10}}`,
			want: []domain.ProviderRecord{
				{Code: "razorpay", DisplayName: "Razorpay", Category: domain.CategoryGateway, Source: domain.SourceKnown, OrderCount: 2, SaleAmount: 20},
				{Code: "payu", DisplayName: "PayU", Category: domain.CategoryGateway, Source: domain.SourceKnown, OrderCount: 1, SaleAmount: 10},
			},
		},
		{
			name: "invalid json",
			raw:  `{"payu":`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.NormalizeProviders([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeProviders_DuplicateCodesStaySeparate(t *testing.T) {
	raw := `{"cod":[{"code":"ekart","total_count":1,"total_sale_amount":10},{"code":"ekart","total_count":2,"total_sale_amount":20}]}`

	got := engine.NormalizeProviders([]byte(raw))

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].OrderCount)
	assert.Equal(t, 2, got[1].OrderCount)
}

func TestNormalizeProviders_OversizedCountDegradesToZero(t *testing.T) {
	got := engine.NormalizeProviders([]byte(`{"payu":{"total_count":"1e30","total_sale_amount":100}}`))

	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].OrderCount)

	rows := engine.MatchProviders(got, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].MatchedCount)
}

func TestProviderCode(t *testing.T) {
	assert.Equal(t, "blue_dart", engine.ProviderCode("  Blue-Dart "))
	assert.Equal(t, "ecom_express", engine.ProviderCode("Ecom Express"))
	assert.Equal(t, "Blue Dart", engine.DisplayName("blue dart"))
	assert.Equal(t, "someone", engine.DisplayName("someone"))
}

func TestSplit_Partition(t *testing.T) {
	records := engine.NormalizeProviders([]byte(`{
		"payu":{"total_count":10,"total_sale_amount":1000},
		"cod":[
			{"code":"delhivery","total_count":3,"total_sale_amount":300},
			{"code":"shadowfax","total_count":2,"total_sale_amount":150}
		],
		"custom_pg":{"total_count":1,"total_sale_amount":5}
	}`))

	split := engine.Split(records)

	assert.Equal(t, len(records), len(split.Gateways)+len(split.COD))
	assert.Len(t, split.Gateways, 2)
	assert.Len(t, split.COD, 2)
	assert.Equal(t, domain.CODDisplayName, split.CODTotal.DisplayName)
	assert.Equal(t, 5, split.CODTotal.OrderCount)
	assert.InDelta(t, 450.0, split.CODTotal.SaleAmount, 0.0001)

	lines := split.Collapsed()
	require.Len(t, lines, 3)
	assert.Equal(t, "payu", lines[0].Code)
	assert.Equal(t, "custom_pg", lines[1].Code)
	assert.Equal(t, domain.CODProviderCode, lines[2].Code)
}

func TestSplit_NoCOD(t *testing.T) {
	split := engine.Split([]domain.ProviderRecord{{Code: "payu", Category: domain.CategoryGateway}})

	assert.Empty(t, split.COD)
	assert.Len(t, split.Collapsed(), 1)
}

func BenchmarkNormalizeProviders(b *testing.B) {
	raw := []byte(`{
		"payu":{"total_count":10,"total_sale_amount":"1,000.00","total_comission":20,"total_gst_on_comission":3.6},
		"razorpay":{"total_count":7,"total_sale_amount":700,"total_comission":14,"total_gst_on_comission":2.52},
		"new_pg":{"total_count":2,"total_sale_amount":90},
		"cod":[
			{"logistics_partner":"Delhivery","total_count":3,"total_sale_amount":300},
			{"logistics_partner":"Blue Dart","total_count":2,"total_sale_amount":150}
		]
	}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.NormalizeProviders(raw)
	}
}
