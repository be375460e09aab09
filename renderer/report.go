package renderer

import (
	"github.com/etnz/bondbook"
)

// ReportOptions selects the sections of a rendered report.
type ReportOptions struct {
	SkipTable           bool // Do not render the instruments table.
	SkipChart           bool // Do not render the monthly income chart.
	SkipRecommendations bool // Do not render the recommendations.
}

// RenderReport renders the whole report: the instruments with their annual
// income and the total, the monthly chart and the recommendations.
func RenderReport(r *bondbook.Report, opts ReportOptions) string {
	partials := map[string]string{
		"report_title":           "report_title.md",
		"report_table":           "report_table.md",
		"report_chart":           "report_chart.md",
		"report_recommendations": "report_recommendations.md",
	}
	if opts.SkipTable {
		partials["report_table"] = ""
	}
	if opts.SkipChart {
		partials["report_chart"] = ""
	}
	if opts.SkipRecommendations {
		partials["report_recommendations"] = ""
	}
	return renderTemplate("report", "report.md", partials, newView(r))
}

// RenderChart renders only the monthly income chart.
func RenderChart(r *bondbook.Report) string {
	partials := map[string]string{"report_chart": "report_chart.md"}
	return renderTemplate("chart", "chart.md", partials, newView(r))
}

// RenderRecommendations renders only the recommendations.
func RenderRecommendations(r *bondbook.Report) string {
	partials := map[string]string{"report_recommendations": "report_recommendations.md"}
	return renderTemplate("recommendations", "recommendations.md", partials, newView(r))
}

// RenderInstrument renders a single instrument, as shown after an edit.
func RenderInstrument(i bondbook.Instrument, currency string) string {
	return renderTemplate("instrument", "instrument.md", nil, newInstrumentView(i, currency))
}
