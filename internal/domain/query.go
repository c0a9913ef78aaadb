package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateField selects which date a snapshot is bucketed by.
type DateField string

const (
	DateFieldSettlement DateField = "settlement"
	DateFieldInvoice    DateField = "invoice"
)

// ParseDateField validates a date-field mode.
func ParseDateField(s string) (DateField, error) {
	switch f := DateField(strings.ToLower(strings.TrimSpace(s))); f {
	case DateFieldSettlement, DateFieldInvoice:
		return f, nil
	default:
		return "", fmt.Errorf("invalid date field '%s': must be settlement or invoice", s)
	}
}

// Platform is a sales channel.
type Platform string

const (
	PlatformFlipkart Platform = "flipkart"
	PlatformAmazon   Platform = "amazon"
	PlatformD2C      Platform = "d2c"
)

// ParsePlatform validates a platform name.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(strings.ToLower(strings.TrimSpace(s))); p {
	case PlatformFlipkart, PlatformAmazon, PlatformD2C:
		return p, nil
	default:
		return "", fmt.Errorf("invalid platform '%s': must be flipkart, amazon or d2c", s)
	}
}

// Query selects one raw snapshot upstream.
type Query struct {
	Platform  Platform  `json:"platform"`
	DateField DateField `json:"date_field"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// DashboardRequest asks for the views of one or more platforms over a window.
// The first platform is the primary one when snapshots are merged.
type DashboardRequest struct {
	Platforms   []Platform
	DateField   DateField
	Start       time.Time
	End         time.Time
	ActiveTab   string
	GeneratedAt time.Time
}

// Queries expands the request into one Query per platform.
func (r DashboardRequest) Queries() []Query {
	queries := make([]Query, 0, len(r.Platforms))
	for _, p := range r.Platforms {
		queries = append(queries, Query{Platform: p, DateField: r.DateField, Start: r.Start, End: r.End})
	}
	return queries
}

// ExportContext is the header of an exported report.
type ExportContext struct {
	Start       time.Time
	End         time.Time
	DateField   DateField
	Platform    string
	ActiveTab   string
	GeneratedAt time.Time
}

// ExportContext derives the export header from the request.
func (r DashboardRequest) ExportContext() ExportContext {
	names := make([]string, 0, len(r.Platforms))
	for _, p := range r.Platforms {
		names = append(names, string(p))
	}
	return ExportContext{
		Start:       r.Start,
		End:         r.End,
		DateField:   r.DateField,
		Platform:    strings.Join(names, "+"),
		ActiveTab:   r.ActiveTab,
		GeneratedAt: r.GeneratedAt,
	}
}
