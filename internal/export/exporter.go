// Package export flattens a dashboard view into CSV rows.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"recon-insights/internal/amount"
	"recon-insights/internal/domain"
)

// Section labels, in export order.
const (
	SectionContext             = "Context"
	SectionSummary             = "Summary"
	SectionUnreconciledReasons = "Unreconciled Reasons"
	SectionMatched             = "Matched by Providers"
	SectionUnreconciled        = "Unreconciled by Providers"
	SectionSettled             = "Settled by Providers"
	SectionPending             = "Pending Payment by Providers"
	SectionCommission          = "Commission & Charges"
)

// Sections lists the section labels in the order Rows emits them.
var Sections = []string{
	SectionContext,
	SectionSummary,
	SectionUnreconciledReasons,
	SectionMatched,
	SectionUnreconciled,
	SectionSettled,
	SectionPending,
	SectionCommission,
}

var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("recon-insights/reports"))

// ExportError is returned when the CSV text cannot be written.
type ExportError struct {
	Op  string
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Op, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// FileName is the suggested name of an exported report.
func FileName(ctx domain.ExportContext) string {
	return fmt.Sprintf("reconciliation_%s_%s_%s.csv", ctx.DateField, ctx.Start.Format(time.DateOnly), ctx.End.Format(time.DateOnly))
}

// ReportID derives a stable identifier from the export context, so the same
// request always yields the same id.
func ReportID(ctx domain.ExportContext) string {
	name := strings.Join([]string{
		ctx.Start.UTC().Format(time.RFC3339),
		ctx.End.UTC().Format(time.RFC3339),
		string(ctx.DateField),
		ctx.Platform,
		ctx.ActiveTab,
		ctx.GeneratedAt.UTC().Format(time.RFC3339),
	}, "|")
	return uuid.NewSHA1(reportNamespace, []byte(name)).String()
}

// Rows flattens view into CSV rows. Every non-blank row starts with its
// section label and sections are separated by one blank row.
func Rows(view domain.DashboardView, ctx domain.ExportContext) []domain.CsvRow {
	var rows []domain.CsvRow
	sections := [][]domain.CsvRow{
		contextRows(ctx),
		summaryRows(view.Summary),
		reasonRows(view.UnreconciledReasons),
		matchedRows(view.MatchedByProviders),
		splitRows(SectionUnreconciled, view.UnreconciledByProviders),
		settledRows(view.SettledByProviders),
		splitRows(SectionPending, view.PendingByProviders),
		commissionRows(view.Commission),
	}
	for i, section := range sections {
		if i > 0 {
			rows = append(rows, domain.CsvRow{})
		}
		rows = append(rows, section...)
	}
	return rows
}

// Write renders rows as CSV text. Quoting of commas, quotes and line breaks
// is left to encoding/csv.
func Write(w io.Writer, rows []domain.CsvRow) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return &ExportError{Op: "write", Err: err}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &ExportError{Op: "flush", Err: err}
	}
	return nil
}

func contextRows(ctx domain.ExportContext) []domain.CsvRow {
	generated := ""
	if !ctx.GeneratedAt.IsZero() {
		generated = ctx.GeneratedAt.UTC().Format(time.RFC3339)
	}
	return []domain.CsvRow{
		{SectionContext, "Report ID", ReportID(ctx)},
		{SectionContext, "Start Date", ctx.Start.Format(time.DateOnly)},
		{SectionContext, "End Date", ctx.End.Format(time.DateOnly)},
		{SectionContext, "Date Field", string(ctx.DateField)},
		{SectionContext, "Platform", ctx.Platform},
		{SectionContext, "Active Tab", ctx.ActiveTab},
		{SectionContext, "Generated At", generated},
	}
}

func summaryRows(s domain.SummaryView) []domain.CsvRow {
	counters := []struct {
		label string
		value domain.AmountCount
	}{
		{"Gross Sales", s.Counters.GrossSales},
		{"Returns", s.Counters.Returns},
		{"Cancellations", s.Counters.Cancellations},
		{"Net Sales", s.Counters.NetSales},
		{"Previous Period Carryover", s.Counters.PreviousPeriodCarryover},
		{"Orders Delivered", s.Counters.OrdersDelivered},
		{"Settled", s.Counters.Settled},
		{"Pending Payment", s.Counters.Pending},
		{"Unreconciled", s.Mismatch.Total},
		{"Less Payment Received", s.Mismatch.LessPaymentReceived},
		{"Excess Payment Received", s.Mismatch.ExcessPaymentReceived},
	}

	rows := []domain.CsvRow{{SectionSummary, "Metric", "Amount", "Count"}}
	for _, c := range counters {
		rows = append(rows, domain.CsvRow{SectionSummary, c.label, money(c.label, c.value.Amount), count(c.value.Count)})
	}
	return append(rows,
		domain.CsvRow{SectionSummary, "Reconciliation %", percent(s.ReconciliationPercent), ""},
		domain.CsvRow{SectionSummary, "Status", string(s.Band), ""},
		domain.CsvRow{SectionSummary, "Settled %", percent(s.SettledPercent), ""},
		domain.CsvRow{SectionSummary, "Return Rate %", percent(s.ReturnRate), ""},
		domain.CsvRow{SectionSummary, "Commission Rate %", percent(s.CommissionRate), ""},
	)
}

func reasonRows(reasons []domain.ReasonCount) []domain.CsvRow {
	rows := []domain.CsvRow{{SectionUnreconciledReasons, "Reason", "Amount", "Count"}}
	for _, r := range reasons {
		rows = append(rows, domain.CsvRow{SectionUnreconciledReasons, r.Reason, money(r.Reason, r.Amount), count(r.Count)})
	}
	return rows
}

func matchedRows(list []domain.ProviderMatchRow) []domain.CsvRow {
	rows := []domain.CsvRow{{
		SectionMatched, "Provider", "Category", "Matched Count", "Unmatched Count",
		"Matched Amount", "Unmatched Amount", "Matched %", "Status",
	}}
	var add func(r domain.ProviderMatchRow, name string)
	add = func(r domain.ProviderMatchRow, name string) {
		rows = append(rows, domain.CsvRow{
			SectionMatched, name, string(r.Category), count(r.MatchedCount), count(r.UnmatchedCount),
			money("matched", r.MatchedAmount), money("unmatched", r.UnmatchedAmount),
			percent(r.MatchedPercent), string(r.Band),
		})
		for _, m := range r.Members {
			add(m, memberName(r.Provider, m.Provider))
		}
	}
	for _, r := range list {
		add(r, r.Provider)
	}
	return rows
}

func splitRows(section string, split domain.ProviderSplit) []domain.CsvRow {
	rows := []domain.CsvRow{{section, "Provider", "Category", "Count", "Amount"}}
	line := func(name string, r domain.ProviderRecord) domain.CsvRow {
		return domain.CsvRow{section, name, string(r.Category), count(r.OrderCount), money(section, r.SaleAmount)}
	}
	for _, r := range split.Collapsed() {
		rows = append(rows, line(r.DisplayName, r))
		if r.IsCOD() {
			for _, m := range split.COD {
				rows = append(rows, line(memberName(r.DisplayName, m.DisplayName), m))
			}
		}
	}
	return rows
}

func settledRows(list []domain.ProviderSettlementRow) []domain.CsvRow {
	rows := []domain.CsvRow{{
		SectionSettled, "Provider", "Category", "Settled Count", "Pending Count",
		"Settled Amount", "Pending Amount", "Settled %",
	}}
	var add func(r domain.ProviderSettlementRow, name string)
	add = func(r domain.ProviderSettlementRow, name string) {
		rows = append(rows, domain.CsvRow{
			SectionSettled, name, string(r.Category), count(r.SettledCount), count(r.PendingCount),
			money("settled", r.SettledAmount), money("pending", r.PendingAmount), percent(r.SettledPercent),
		})
		for _, m := range r.Members {
			add(m, memberName(r.Provider, m.Provider))
		}
	}
	for _, r := range list {
		add(r, r.Provider)
	}
	return rows
}

func commissionRows(list []domain.CommissionRow) []domain.CsvRow {
	rows := []domain.CsvRow{{SectionCommission, "Provider", "Commission", "GST on Commission", "Total Charges"}}
	for _, r := range list {
		rows = append(rows, domain.CsvRow{
			SectionCommission, r.Provider,
			money("commission", r.Commission), money("gst on commission", r.GSTOnCommission), money("total charges", r.TotalCharges),
		})
	}
	return rows
}

func memberName(parent, member string) string {
	return parent + " / " + member
}

// money runs v through the amount parser, applies the sign implied by label
// and renders it with two decimals.
func money(label string, v float64) string {
	return decimal.NewFromFloat(amount.Signed(label, amount.Parse(v))).StringFixed(2)
}

func percent(p float64) string {
	return decimal.NewFromFloat(amount.Abs(p)).StringFixed(2)
}

func count(n int) string {
	return strconv.Itoa(n)
}
