package sensordash

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const DashboardTitle = "Pump and Environmental Sensor Dashboard"

// Background of the echarts dark theme, reused for the page itself so the
// charts do not sit in white gutters.
const darkBackground = "#100c2a"

type PageOptions struct {
	Title string

	// Where echarts.min.js and friends are loaded from. Empty uses the
	// go-echarts default CDN.
	AssetsHost string

	// CSS height of each chart.
	ChartHeight string
}

func DefaultPageOptions() PageOptions {
	return PageOptions{
		Title:       DashboardTitle,
		ChartHeight: "450px",
	}
}

// NewLineChart converts a chart spec into an echarts line chart. The x axis is
// numeric, so every point is plotted as an (x, y) pair.
func NewLineChart(spec ChartSpec, chartID string, options PageOptions) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:  options.Title,
			ChartID:    chartID,
			AssetsHost: options.AssetsHost,
			Theme:      spec.Theme,
			Width:      "100%",
			Height:     options.ChartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: spec.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: true,
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: spec.XLabel,
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: spec.YLabel,
			Type: "value",
		}),
	)

	for _, trace := range spec.Traces {
		points := make([]opts.LineData, len(trace.Y))
		for i := range trace.Y {
			points[i] = opts.LineData{Value: []interface{}{trace.X[i], trace.Y[i]}}
		}

		line.AddSeries(trace.Label, points)
	}

	return line
}

// RenderPage writes the full dashboard: a heading followed by one chart per
// panel, in the order given.
func RenderPage(w io.Writer, ds *Dataset, panels []Panel, options PageOptions) error {
	page := components.NewPage()
	page.PageTitle = options.Title
	if options.AssetsHost != "" {
		page.AssetsHost = options.AssetsHost
	}

	for _, panel := range panels {
		spec, err := BuildChart(ds, panel)
		if err != nil {
			return err
		}

		page.AddCharts(NewLineChart(spec, panel.ChartID(), options))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	// go-echarts has no notion of a page heading or page-wide styling, so
	// both are spliced into the rendered document.
	heading := fmt.Sprintf(`<h1 class="dashboard-title">%s</h1>`, html.EscapeString(options.Title))
	style := fmt.Sprintf(`<style>body { background-color: %s; } .dashboard-title { color: #f8f9fa; text-align: center; font-family: sans-serif; }</style>`, darkBackground)

	document := buf.String()
	document = strings.Replace(document, "</head>", style+"\n</head>", 1)
	document = strings.Replace(document, "<body>", "<body>\n"+heading, 1)

	_, err := io.WriteString(w, document)
	return err
}
