package domain

// Category separates electronic payment gateways from cash-on-delivery
// logistics partners.
type Category string

const (
	CategoryGateway Category = "gateway"
	CategoryCOD     Category = "cod"
)

// ProviderSource records which branch of the normalizer produced a record.
type ProviderSource string

const (
	SourceKnown   ProviderSource = "known"
	SourceDynamic ProviderSource = "dynamic"
	SourceCOD     ProviderSource = "cod"
)

// CODProviderCode and CODDisplayName identify the synthesized aggregate line
// that groups all logistics partners.
const (
	CODProviderCode = "cod"
	CODDisplayName  = "Cash on Delivery"
)

// ProviderRecord is one settlement/payment channel within a snapshot.
type ProviderRecord struct {
	Code            string         `json:"code"`
	DisplayName     string         `json:"display_name"`
	Category        Category       `json:"category"`
	Source          ProviderSource `json:"source"`
	OrderCount      int            `json:"order_count"`
	SaleAmount      float64        `json:"sale_amount"`
	Commission      float64        `json:"commission,omitempty"`
	GSTOnCommission float64        `json:"gst_on_commission,omitempty"`
}

// Key identifies a record within one category of a snapshot.
func (p ProviderRecord) Key() string {
	return string(p.Category) + ":" + p.Code
}

// IsCOD reports whether the record belongs to a logistics partner.
func (p ProviderRecord) IsCOD() bool {
	return p.Category == CategoryCOD
}
