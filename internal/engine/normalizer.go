// Package engine holds the pure reconciliation computations: provider
// normalization, match rates, snapshot merging, ageing and growth series.
// Nothing in this package performs I/O or returns errors for bad data;
// malformed input degrades to zero values.
package engine

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"recon-insights/internal/amount"
	"recon-insights/internal/domain"
)

// codKey is the reserved provider-block key holding logistics partners.
const codKey = "cod"

var displayNames = map[string]string{
	"payu":         "PayU",
	"razorpay":     "Razorpay",
	"cashfree":     "Cashfree",
	"phonepe":      "PhonePe",
	"paytm":        "Paytm",
	"ccavenue":     "CCAvenue",
	"stripe":       "Stripe",
	"juspay":       "Juspay",
	"snapmint":     "Snapmint",
	"simpl":        "Simpl",
	"gokwik":       "GoKwik",
	"easebuzz":     "Easebuzz",
	"paypal":       "PayPal",
	"amazonpay":    "Amazon Pay",
	"delhivery":    "Delhivery",
	"bluedart":     "Blue Dart",
	"blue_dart":    "Blue Dart",
	"ecom_express": "Ecom Express",
	"xpressbees":   "Xpressbees",
	"shadowfax":    "Shadowfax",
	"shiprocket":   "Shiprocket",
	"dtdc":         "DTDC",
	"ekart":        "Ekart",
	"cod":          "Cash on Delivery",
}

// Gateways the ingestion side maps explicitly. Everything else that looks
// like a provider goes through the dynamic fallback.
var knownGateways = map[string]bool{
	"payu":      true,
	"razorpay":  true,
	"cashfree":  true,
	"phonepe":   true,
	"paytm":     true,
	"ccavenue":  true,
	"stripe":    true,
	"juspay":    true,
	"snapmint":  true,
	"simpl":     true,
	"gokwik":    true,
	"easebuzz":  true,
	"paypal":    true,
	"amazonpay": true,
}

var (
	countFields      = []string{"total_count", "count", "order_count"}
	saleFields       = []string{"total_sale_amount", "sale_amount", "amount"}
	commissionFields = []string{"total_comission", "total_commission", "commission"}
	gstFields        = []string{"total_gst_on_comission", "total_gst_on_commission", "gst_on_commission"}
	nameFields       = []string{"code", "logistics_partner", "settlement_provider", "name"}
)

// DisplayName resolves a provider code to its human label, falling back to
// the code itself.
func DisplayName(code string) string {
	if name, ok := displayNames[ProviderCode(code)]; ok {
		return name
	}
	return code
}

// ProviderCode lowercases a raw provider key into a stable identifier.
func ProviderCode(raw string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(raw)), func(r rune) bool {
		return r == ' ' || r == '-' || r == '\t'
	})
	return strings.Join(fields, "_")
}

// NormalizeProviders maps a raw provider block into provider records, in
// document order.
func NormalizeProviders(raw []byte) []domain.ProviderRecord {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil
	}
	return normalizeBlock(gjson.ParseBytes(raw))
}

func normalizeBlock(block gjson.Result) []domain.ProviderRecord {
	if !block.IsObject() {
		return nil
	}

	var records []domain.ProviderRecord
	block.ForEach(func(key, value gjson.Result) bool {
		code := ProviderCode(key.String())
		switch {
		case code == codKey:
			records = append(records, codRecords(value)...)
		case knownGateways[code]:
			records = append(records, gatewayRecords(code, domain.SourceKnown, value)...)
		default:
			records = append(records, gatewayRecords(code, domain.SourceDynamic, value)...)
		}
		return true
	})
	return records
}

// gatewayRecords maps an object, or an array of objects, held under a
// gateway key. Scalars are not providers and are skipped.
func gatewayRecords(code string, source domain.ProviderSource, value gjson.Result) []domain.ProviderRecord {
	switch {
	case value.IsObject():
		return []domain.ProviderRecord{providerRecord(code, domain.CategoryGateway, source, value)}
	case value.IsArray():
		var records []domain.ProviderRecord
		value.ForEach(func(_, elem gjson.Result) bool {
			if elem.IsObject() {
				records = append(records, providerRecord(elementCode(elem, code), domain.CategoryGateway, source, elem))
			}
			return true
		})
		return records
	default:
		return nil
	}
}

// codRecords expands the reserved cod key. An array is expanded element by
// element; an object of partner objects is expanded member by member; a bare
// provider object becomes a single record.
func codRecords(value gjson.Result) []domain.ProviderRecord {
	var records []domain.ProviderRecord
	switch {
	case value.IsArray():
		position := 0
		value.ForEach(func(_, elem gjson.Result) bool {
			position++
			if elem.IsObject() {
				fallback := codKey + "_" + strconv.Itoa(position)
				records = append(records, providerRecord(elementCode(elem, fallback), domain.CategoryCOD, domain.SourceCOD, elem))
			}
			return true
		})
	case value.IsObject() && looksLikeProvider(value):
		records = append(records, providerRecord(codKey, domain.CategoryCOD, domain.SourceCOD, value))
	case value.IsObject():
		value.ForEach(func(key, elem gjson.Result) bool {
			if elem.IsObject() {
				records = append(records, providerRecord(ProviderCode(key.String()), domain.CategoryCOD, domain.SourceCOD, elem))
			}
			return true
		})
	}
	return records
}

func providerRecord(code string, category domain.Category, source domain.ProviderSource, obj gjson.Result) domain.ProviderRecord {
	rec := domain.ProviderRecord{
		Code:        code,
		DisplayName: DisplayName(code),
		Category:    category,
		Source:      source,
		OrderCount:  amount.ParseCount(firstValue(obj, countFields)),
		SaleAmount:  amount.Parse(firstValue(obj, saleFields)),
	}
	if category == domain.CategoryGateway {
		rec.Commission = amount.Parse(firstValue(obj, commissionFields))
		rec.GSTOnCommission = amount.Parse(firstValue(obj, gstFields))
	}
	return rec
}

func elementCode(elem gjson.Result, fallback string) string {
	if name, ok := firstValue(elem, nameFields).(string); ok {
		if code := ProviderCode(name); code != "" {
			return code
		}
	}
	return fallback
}

func looksLikeProvider(obj gjson.Result) bool {
	return firstValue(obj, countFields) != nil || firstValue(obj, saleFields) != nil
}

// firstValue returns the value of the first present field, or nil.
func firstValue(obj gjson.Result, fields []string) any {
	for _, f := range fields {
		if r := obj.Get(f); r.Exists() {
			return r.Value()
		}
	}
	return nil
}
