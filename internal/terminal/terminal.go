// Package terminal renders the dashboard as styled text for the summary command.
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"retrospectiva/internal/core"
	"retrospectiva/internal/report"
	"retrospectiva/internal/stats"
)

const (
	cardWidth   = 30
	cardsPerRow = 3
	barWidth    = 24
)

// Theme holds the styles used by the summary.
type Theme struct {
	Title    lipgloss.Style
	Caption  lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Sub      lipgloss.Style
	Bar      lipgloss.Style
	Card     lipgloss.Style
	Statuses map[report.Status]lipgloss.Color
}

// NewTheme builds the paper-and-sage theme of the web dashboard.
func NewTheme() *Theme {
	ink := lipgloss.Color(report.ColorInk)
	muted := lipgloss.Color(report.ColorMuted)

	return &Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ink),
		Caption: lipgloss.NewStyle().Italic(true).Foreground(muted),
		Section: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ink).MarginTop(1),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C757D")),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(ink),
		Sub:     lipgloss.NewStyle().Italic(true).Foreground(muted),
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color(report.ColorSage)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#CAD2C5")).
			PaddingLeft(1).
			Width(cardWidth),
		Statuses: map[report.Status]lipgloss.Color{
			report.StatusSuccess: lipgloss.Color(report.ColorSuccess),
			report.StatusWarning: lipgloss.Color(report.ColorWarning),
			report.StatusAlert:   lipgloss.Color(report.ColorAlert),
			report.StatusNeutral: lipgloss.Color("#CAD2C5"),
		},
	}
}

// Summary renders the report header, the KPI cards, the monthly histogram
// and a count table for each of fields.
func Summary(theme *Theme, rep report.Report, agg *stats.Aggregator, fields ...core.Field) (string, error) {
	if theme == nil {
		theme = NewTheme()
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(rep.Title))
	b.WriteString("\n")
	b.WriteString(theme.Caption.Render(rep.Caption))
	b.WriteString("\n\n")
	b.WriteString(KPIs(theme, rep.KPIs))
	b.WriteString("\n")

	b.WriteString(theme.Section.Render(fmt.Sprintf("Dates per month (%s total)", humanize.Comma(int64(agg.Total())))))
	b.WriteString("\n")
	b.WriteString(Months(theme, agg.CountByMonth()))

	for _, f := range fields {
		counts, err := agg.CountByCategory(f)
		if err != nil {
			return "", err
		}
		b.WriteString(theme.Section.Render("By " + strings.ReplaceAll(string(f), "_", " ")))
		b.WriteString("\n")
		b.WriteString(Categories(theme, counts))
	}

	return b.String(), nil
}

// KPIs lays the cards out in rows of three.
func KPIs(theme *Theme, kpis []report.KPI) string {
	cards := lo.Map(kpis, func(k report.KPI, _ int) string {
		style := theme.Card.BorderForeground(theme.Statuses[k.Status])
		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.Label.Render(strings.ToUpper(k.Label)),
			theme.Value.Render(k.Value),
			theme.Sub.Render(k.Sub),
		))
	})

	rows := lo.Map(lo.Chunk(cards, cardsPerRow), func(row []string, _ int) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, lo.Flatten(lo.Map(row, func(c string, _ int) []string {
			return []string{c, " "}
		}))...)
	})
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// Months draws one bar per calendar month.
func Months(theme *Theme, months []stats.MonthCount) string {
	peak := lo.MaxBy(months, func(a, b stats.MonthCount) bool { return a.Count > b.Count }).Count

	var b strings.Builder
	for _, m := range months {
		fmt.Fprintf(&b, "%-4s %s %d\n", m.Month.Short(), theme.Bar.Render(bar(m.Count, peak)), m.Count)
	}
	return b.String()
}

// Categories lists the counts of one field with their share of the total.
func Categories(theme *Theme, counts []stats.CategoryCount) string {
	total := stats.Sum(counts)
	peak := 0
	if len(counts) > 0 {
		peak = lo.MaxBy(counts, func(a, b stats.CategoryCount) bool { return a.Count > b.Count }).Count
	}
	width := 0
	if len(counts) > 0 {
		width = lo.Max(lo.Map(counts, func(c stats.CategoryCount, _ int) int { return lipgloss.Width(c.Value) }))
	}

	var b strings.Builder
	for _, c := range counts {
		share := 0.0
		if total > 0 {
			share = float64(c.Count) * 100 / float64(total)
		}
		pad := strings.Repeat(" ", width-lipgloss.Width(c.Value))
		fmt.Fprintf(&b, "%s%s  %s %d (%.0f%%)\n", c.Value, pad, theme.Bar.Render(bar(c.Count, peak)), c.Count, share)
	}
	return b.String()
}

func bar(n, peak int) string {
	if peak <= 0 || n <= 0 {
		return "·"
	}
	filled := n * barWidth / peak
	if filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled)
}
