package report

import (
	"fmt"

	"retrospectiva/internal/core"
	"retrospectiva/internal/stats"
)

// "Architect" palette.
const (
	ColorSuccess = "#2E8B57"
	ColorWarning = "#D4AC0D"
	ColorAlert   = "#C0392B"
	ColorSage    = "#52796F"
	ColorInk     = "#2F3E46"
	ColorMuted   = "#79888A"
	ColorGrid    = "#EBEBE8"
	ColorPaper   = "#F9F7F2"
)

// FunnelPalette shades the onboarding venues from dark to light.
var FunnelPalette = []string{"#354F52", "#52796F", "#84A98C", "#B2BDA0"}

// Default assembles the 2025 retrospective. Only the failed-situationship
// counter is derived from the data; the KPI cards are hand written.
func Default(agg *stats.Aggregator) (Report, error) {
	ghosted, err := agg.Count(core.FieldOutcome, string(core.Ghosting))
	if err != nil {
		return Report{}, fmt.Errorf("count ghosting: %w", err)
	}

	r := Report{
		Title:   "Retrospectiva '25",
		Caption: "Affective Performance Report",
		KPIs: []KPI{
			{Label: "Disappointments Received", Value: "0", Sub: "▼ -100% vs 2024", Status: StatusSuccess},
			{Label: "Self-Humiliations", Value: "0", Sub: "✔ Full Recovery", Status: StatusSuccess},
			{Label: "CAPEX (Per Date)", Value: "R$ 75.00", Sub: "Min: R$0 | Max: R$300", Status: StatusWarning},
			{Label: "Disappointments Delivered", Value: "1", Sub: "⚠️ Isolated Incident", Status: StatusWarning},
			{Label: "Relapses", Value: "Error 500", Sub: "⛔ Stack Overflow", Status: StatusAlert},
			{Label: "ROI (Return)", Value: "Doubtful", Sub: "High-Risk Asset", Status: StatusAlert},
		},
		KPINote: "Note: financial data based on proprietary estimates (source: the voices in my head).",
		Sections: []Section{
			{
				Title: "Demographics",
				Charts: []ChartSpec{
					{ID: "nationality", Title: "Nationality", Kind: KindDonut, Field: core.FieldCountry,
						Palette: []string{ColorSage, "#84A98C", "#CAD2C5"}},
					{ID: "age", Title: "Age Distribution", Kind: KindBox, Field: core.FieldAge,
						Palette: []string{ColorSage}},
					{ID: "hair", Title: "Hair Profile", Kind: KindDonut, Field: core.FieldHairColor,
						Palette: []string{ColorSage, ColorGrid}},
					{ID: "area", Title: "Field of Study", Kind: KindDonut, Field: core.FieldArea,
						Palette: []string{"#354F52", ColorSage, "#84A98C"}},
				},
			},
			{
				Title: "Seasonality",
				Charts: []ChartSpec{
					{ID: "seasonality", Title: "Dates per Month", Kind: KindBar, Field: core.FieldMonth,
						Palette: []string{ColorSage}},
				},
				Note: &Note{
					Kind:  NoteInfo,
					Title: "Operational Bottlenecks:",
					Body: "The time series shows a direct correlation between availability for dates and " +
						"academic recess periods. A severe bottleneck is observed during term months.",
				},
			},
			{
				Title: "Conversion Funnel",
				Charts: []ChartSpec{
					{ID: "sourcing", Title: "1. Origin (Sourcing)", Kind: KindDonut, Field: core.FieldSource,
						Palette: []string{"#354F52", "#CAD2C5"}},
					{ID: "onboarding", Title: "2. Venue (Onboarding)", Kind: KindDonut, Field: core.FieldVenue,
						Where:      &stats.Filter{Field: core.FieldSource, Value: string(core.New)},
						Palette:    FunnelPalette,
						Annotation: []string{"Only", "1st Date", "(2025)"}},
					{ID: "kiss", Title: "3. Lip Conversion Rate", Kind: KindDonut, Field: core.FieldKissed,
						Palette: []string{ColorSuccess, "#E0E0E0"}},
					{ID: "outcome", Title: "4. Final Output", Kind: KindDonut, Field: core.FieldOutcome,
						ColorMap: map[string]string{
							string(core.Ghosting):      ColorAlert,
							string(core.Friends):       ColorSage,
							string(core.Acquaintances): "#CAD2C5",
						},
						Annotation: []string{"⚠️", "Failed Situationships", fmt.Sprintf("%02d", ghosted)}},
				},
			},
		},
		Conclusion: Note{
			Kind:  NoteSuccess,
			Title: "Technical Conclusion:",
			Body: "The system runs with high variance but no catastrophic failures. A hardware upgrade " +
				"for 2026 would be nice, but the software urgently needs refactoring (therapy).",
		},
		Credits: "Design by Mikael Lovrin • Accepting donations via PIX or therapy",
	}

	for _, c := range r.Charts() {
		if err := c.Validate(); err != nil {
			return Report{}, err
		}
	}
	return r, nil
}
