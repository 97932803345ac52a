package sensordash

import (
	"fmt"
	"strings"
)

// Every chart is drawn with this echarts theme.
const DarkTheme = "dark"

const TimeLabel = "Time"

// PanelSeries binds a dataset series to the label it is shown under.
type PanelSeries struct {
	Series SeriesName
	Label  string
}

// Panel is the static description of one chart on the dashboard.
type Panel struct {
	ID     string
	Title  string
	YLabel string
	Series []PanelSeries
}

// ChartID is the page element id of the panel's chart. It doubles as a
// javascript identifier in the rendered page, so dashes are not allowed.
func (p Panel) ChartID() string {
	return strings.ReplaceAll(p.ID, "-", "_") + "_graph"
}

// Trace is one plotted line: a series with its display label and data.
type Trace struct {
	Series SeriesName `json:"series"`
	Label  string     `json:"label"`
	X      []float64  `json:"x"`
	Y      []float64  `json:"y"`
}

// ChartSpec is everything needed to draw one panel.
type ChartSpec struct {
	PanelID string  `json:"panel"`
	Title   string  `json:"title"`
	XLabel  string  `json:"xLabel"`
	YLabel  string  `json:"yLabel"`
	Theme   string  `json:"theme"`
	Traces  []Trace `json:"traces"`
}

// The dashboard panels in page order.
var DefaultPanels = []Panel{
	{
		ID:     "volume",
		Title:  "Volume Dispensed vs Setpoint",
		YLabel: "Volume (ml)",
		Series: []PanelSeries{
			{Series: VolumeDispensed, Label: "Volume Dispensed"},
			{Series: VolumeSetpoint, Label: "Volume Setpoint"},
		},
	},
	{
		ID:     "temperature",
		Title:  "Temperature Sensors",
		YLabel: "Temperature (°C)",
		Series: []PanelSeries{
			{Series: TemperatureSensor1, Label: "Temperature Sensor 1"},
			{Series: TemperatureSensor2, Label: "Temperature Sensor 2"},
			{Series: TemperatureSensor3, Label: "Temperature Sensor 3"},
		},
	},
	{
		ID:     "co2",
		Title:  "CO2 Levels",
		YLabel: "CO2 (ppm)",
		Series: []PanelSeries{
			{Series: CO2, Label: "CO2"},
		},
	},
	{
		ID:     "o2",
		Title:  "Oxygen Levels",
		YLabel: "Oxygen (%)",
		Series: []PanelSeries{
			{Series: O2, Label: "O2"},
		},
	},
	{
		ID:     "humidity",
		Title:  "Humidity Levels",
		YLabel: "Humidity (%)",
		Series: []PanelSeries{
			{Series: Humidity, Label: "Humidity"},
		},
	},
	{
		ID:     "env-sensors",
		Title:  "Environmental Sensors",
		YLabel: "Values",
		Series: []PanelSeries{
			{Series: TemperatureSensor1, Label: "Temperature Sensor 1"},
			{Series: CO2, Label: "CO2"},
			{Series: O2, Label: "Oxygen"},
			{Series: Humidity, Label: "Humidity"},
		},
	},
	{
		// Only one pump exists; this stays a single series.
		ID:     "all-pumps",
		Title:  "All Pumps",
		YLabel: "Volume (ml)",
		Series: []PanelSeries{
			{Series: VolumeDispensed, Label: "Pump 1 Volume Dispensed"},
		},
	},
}

func LookupPanel(panels []Panel, id string) (Panel, error) {
	for _, p := range panels {
		if p.ID == id {
			return p, nil
		}
	}

	return Panel{}, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
}

// BuildChart maps a panel onto the dataset. It has no side effects, so
// calling it twice with the same inputs gives equal results.
func BuildChart(ds *Dataset, panel Panel) (ChartSpec, error) {
	spec := ChartSpec{
		PanelID: panel.ID,
		Title:   panel.Title,
		XLabel:  TimeLabel,
		YLabel:  panel.YLabel,
		Theme:   DarkTheme,
		Traces:  make([]Trace, 0, len(panel.Series)),
	}

	for _, ps := range panel.Series {
		values, ok := ds.Series(ps.Series)
		if !ok {
			return ChartSpec{}, fmt.Errorf("panel %q: %w %q", panel.ID, ErrUnknownSeries, ps.Series)
		}

		spec.Traces = append(spec.Traces, Trace{
			Series: ps.Series,
			Label:  ps.Label,
			X:      ds.Time(),
			Y:      values,
		})
	}

	return spec, nil
}

// ValidatePanels checks that every panel can be built from the dataset and
// that panel ids are unique. A failure here is a mapping mistake and should
// stop the process before it serves anything.
func ValidatePanels(ds *Dataset, panels []Panel) error {
	seen := make(map[string]bool, len(panels))
	for _, p := range panels {
		if seen[p.ID] {
			return fmt.Errorf("duplicate panel id %q", p.ID)
		}
		seen[p.ID] = true

		if _, err := BuildChart(ds, p); err != nil {
			return err
		}
	}

	return nil
}
