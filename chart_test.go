package sensordash

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultPanels(t *testing.T) {
	wantIDs := []string{"volume", "temperature", "co2", "o2", "humidity", "env-sensors", "all-pumps"}

	ids := make([]string, 0, len(DefaultPanels))
	for _, p := range DefaultPanels {
		ids = append(ids, p.ID)
	}

	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("panel ids = %v, want %v", ids, wantIDs)
	}

	wantTitles := map[string]string{
		"volume":      "Volume Dispensed vs Setpoint",
		"temperature": "Temperature Sensors",
		"co2":         "CO2 Levels",
		"o2":          "Oxygen Levels",
		"humidity":    "Humidity Levels",
		"env-sensors": "Environmental Sensors",
		"all-pumps":   "All Pumps",
	}
	for _, p := range DefaultPanels {
		if p.Title != wantTitles[p.ID] {
			t.Errorf("panel %q title = %q, want %q", p.ID, p.Title, wantTitles[p.ID])
		}
	}

	envSeries := []SeriesName{}
	panel, _ := LookupPanel(DefaultPanels, "env-sensors")
	for _, ps := range panel.Series {
		envSeries = append(envSeries, ps.Series)
	}
	if want := []SeriesName{TemperatureSensor1, CO2, O2, Humidity}; !reflect.DeepEqual(envSeries, want) {
		t.Errorf("env-sensors series = %v, want %v", envSeries, want)
	}
}

func TestPanelChartID(t *testing.T) {
	tests := map[string]string{
		"co2":         "co2_graph",
		"env-sensors": "env_sensors_graph",
		"all-pumps":   "all_pumps_graph",
	}

	for id, want := range tests {
		if got := (Panel{ID: id}).ChartID(); got != want {
			t.Errorf("ChartID(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestLookupPanel(t *testing.T) {
	p, err := LookupPanel(DefaultPanels, "humidity")
	if err != nil {
		t.Fatalf("LookupPanel(humidity) failed: %v", err)
	}
	if p.Title != "Humidity Levels" {
		t.Fatalf("got panel %+v", p)
	}

	_, err = LookupPanel(DefaultPanels, "pressure")
	if !errors.Is(err, ErrUnknownPanel) {
		t.Fatalf("LookupPanel(pressure) error = %v, want ErrUnknownPanel", err)
	}
}

func co2Dataset(t *testing.T) (*Dataset, []float64, []float64) {
	t.Helper()

	axis := Linspace(0.0, 10.0, 100)
	co2 := make([]float64, 100)
	for i := range co2 {
		co2[i] = 350 + float64(i)
	}

	ds, err := NewDataset(axis, map[SeriesName][]float64{CO2: co2}, []SeriesName{CO2})
	if err != nil {
		t.Fatalf("NewDataset() failed: %v", err)
	}

	return ds, axis, co2
}

func TestBuildChart(t *testing.T) {
	t.Run("co2 panel", func(t *testing.T) {
		ds, axis, co2 := co2Dataset(t)
		panel, _ := LookupPanel(DefaultPanels, "co2")

		got, err := BuildChart(ds, panel)
		if err != nil {
			t.Fatalf("BuildChart() failed: %v", err)
		}

		want := ChartSpec{
			PanelID: "co2",
			Title:   "CO2 Levels",
			XLabel:  "Time",
			YLabel:  "CO2 (ppm)",
			Theme:   "dark",
			Traces: []Trace{
				{Series: CO2, Label: "CO2", X: axis, Y: co2},
			},
		}

		if !reflect.DeepEqual(got, want) {
			t.Fatalf("chart mismatch:\nwant: %+v\ngot:  %+v", want, got)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		ds, err := Generate(seededOptions(11))
		if err != nil {
			t.Fatal(err)
		}
		panel, _ := LookupPanel(DefaultPanels, "co2")

		first, err := BuildChart(ds, panel)
		if err != nil {
			t.Fatal(err)
		}
		second, err := BuildChart(ds, panel)
		if err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Fatal("building the co2 chart twice gave different results")
		}
	})

	t.Run("charts do not alias the dataset", func(t *testing.T) {
		ds, _, co2 := co2Dataset(t)
		panel, _ := LookupPanel(DefaultPanels, "co2")

		spec, _ := BuildChart(ds, panel)
		spec.Traces[0].Y[0] = -1
		spec.Traces[0].X[0] = -1

		again, _ := BuildChart(ds, panel)
		if again.Traces[0].Y[0] != co2[0] || again.Traces[0].X[0] != 0 {
			t.Fatal("editing a chart changed the dataset")
		}
	})

	t.Run("every default panel", func(t *testing.T) {
		ds, err := Generate(seededOptions(5))
		if err != nil {
			t.Fatal(err)
		}

		for _, panel := range DefaultPanels {
			spec, err := BuildChart(ds, panel)
			if err != nil {
				t.Fatalf("panel %q: %v", panel.ID, err)
			}

			if spec.XLabel != "Time" || spec.Theme != DarkTheme || spec.YLabel == "" {
				t.Errorf("panel %q: unexpected labels %+v", panel.ID, spec)
			}

			if len(spec.Traces) != len(panel.Series) {
				t.Fatalf("panel %q: %d traces, want %d", panel.ID, len(spec.Traces), len(panel.Series))
			}

			for i, trace := range spec.Traces {
				if trace.Label != panel.Series[i].Label {
					t.Errorf("panel %q trace %d label = %q, want %q", panel.ID, i, trace.Label, panel.Series[i].Label)
				}
				if len(trace.X) != 100 || len(trace.Y) != 100 {
					t.Errorf("panel %q trace %q: %d/%d points", panel.ID, trace.Label, len(trace.X), len(trace.Y))
				}
			}
		}
	})

	t.Run("missing series", func(t *testing.T) {
		ds, _, _ := co2Dataset(t)
		panel, _ := LookupPanel(DefaultPanels, "humidity")

		_, err := BuildChart(ds, panel)
		if !errors.Is(err, ErrUnknownSeries) {
			t.Fatalf("BuildChart() error = %v, want ErrUnknownSeries", err)
		}
	})
}

func TestValidatePanels(t *testing.T) {
	ds, err := Generate(seededOptions(1))
	if err != nil {
		t.Fatal(err)
	}

	if err := ValidatePanels(ds, DefaultPanels); err != nil {
		t.Fatalf("ValidatePanels(DefaultPanels) = %v", err)
	}

	broken := []Panel{
		{ID: "pressure", Title: "Pressure", Series: []PanelSeries{{Series: "pressure", Label: "Pressure"}}},
	}
	if err := ValidatePanels(ds, broken); !errors.Is(err, ErrUnknownSeries) {
		t.Fatalf("ValidatePanels(broken) = %v, want ErrUnknownSeries", err)
	}

	duplicated := []Panel{DefaultPanels[0], DefaultPanels[0]}
	if err := ValidatePanels(ds, duplicated); err == nil {
		t.Fatal("ValidatePanels accepted duplicate panel ids")
	}
}
