// Package presenter renders dashboard views for the terminal.
package presenter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recon-insights/internal/amount"
	"recon-insights/internal/domain"
)

var (
	colorText   = lipgloss.Color("#cdd6f4")
	colorMuted  = lipgloss.Color("#7f849c")
	colorAccent = lipgloss.Color("#89b4fa")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(26)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

func bandStyle(b domain.Band) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(b.Color()))
}

func line(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// RenderSummary renders the headline numbers, the per-provider match rates
// and the ageing turnaround of view.
func RenderSummary(view domain.DashboardView, locale amount.LocaleConfig) string {
	s := view.Summary
	money := func(ac domain.AmountCount) string {
		return fmt.Sprintf("%s (%d)", amount.Format(ac.Amount, locale), ac.Count)
	}

	headline := []string{
		titleStyle.Render("Reconciliation summary"),
		line("Gross sales", money(s.Counters.GrossSales)),
		line("Net sales", money(s.Counters.NetSales)),
		line("Orders delivered", money(s.Counters.OrdersDelivered)),
		line("Unreconciled", money(s.Mismatch.Total)),
		labelStyle.Render("Reconciled") + bandStyle(s.Band).Render(fmt.Sprintf("%s %s", amount.Percent(s.ReconciliationPercent), s.Band)),
		line("Settled", amount.Percent(s.SettledPercent)),
	}

	sections := []string{boxStyle.Render(strings.Join(headline, "\n"))}

	if len(view.MatchedByProviders) > 0 {
		rows := []string{titleStyle.Render("Matched by providers")}
		for _, r := range view.MatchedByProviders {
			rows = append(rows, labelStyle.Render(r.Provider)+bandStyle(r.Band).Render(amount.Percent(r.MatchedPercent)))
			for _, m := range r.Members {
				rows = append(rows, labelStyle.Render("  "+m.Provider)+bandStyle(m.Band).Render(amount.Percent(m.MatchedPercent)))
			}
		}
		sections = append(sections, boxStyle.Render(strings.Join(rows, "\n")))
	}

	if len(view.Ageing.Providers) > 0 {
		rows := []string{titleStyle.Render("Settlement ageing")}
		if view.Ageing.SingleProvider() {
			p := view.Ageing.Providers[0]
			rows = append(rows, line(p.Provider, fmt.Sprintf("%.1f days", p.AverageDaysToSettle)))
			for _, b := range p.Buckets {
				rows = append(rows, line("  "+b.Label, fmt.Sprintf("%d (%s)", b.Count, amount.Percent(b.Percent))))
			}
		} else {
			for _, p := range view.Ageing.Providers {
				rows = append(rows, line(p.Provider, fmt.Sprintf("%.1f days", p.AverageDaysToSettle)))
			}
			rows = append(rows, line("Average TAT", fmt.Sprintf("%.1f days", view.Ageing.OverallAverageTAT)))
		}
		sections = append(sections, boxStyle.Render(strings.Join(rows, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
