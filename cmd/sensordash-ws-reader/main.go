package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"

	"github.com/cactusdynamics/sensordash"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Config holds the configuration for the WS reader
type Config struct {
	ServerURL string
	Output    io.Writer
	Logger    *slog.Logger
}

// WSReader reads every chart from the sensordash /ws endpoint and outputs the
// points as CSV
type WSReader struct {
	config    Config
	csvWriter *csv.Writer
}

// NewWSReader creates a new WS reader with the given configuration
func NewWSReader(config Config) *WSReader {
	return &WSReader{
		config:    config,
		csvWriter: csv.NewWriter(config.Output),
	}
}

// Connect establishes the websocket connection and writes charts until the
// server closes it
func (w *WSReader) Connect(ctx context.Context) error {
	u, err := url.Parse(w.config.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	u.Path = "/ws"

	w.config.Logger.Info("Connecting to websocket", "url", u.String())

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect to websocket: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	if err := w.csvWriter.Write([]string{"panel", "label", "x", "y"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	charts := 0
	for {
		var spec sensordash.ChartSpec
		err := wsjson.Read(ctx, conn, &spec)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				w.config.Logger.Info("Connection closed normally", "charts", charts)
				break
			}
			return fmt.Errorf("failed to read chart: %w", err)
		}

		w.config.Logger.Debug("Received chart", "panel", spec.PanelID, "title", spec.Title)
		if err := w.writeChart(spec); err != nil {
			return err
		}
		charts++
	}

	w.csvWriter.Flush()
	return w.csvWriter.Error()
}

func (w *WSReader) writeChart(spec sensordash.ChartSpec) error {
	for _, trace := range spec.Traces {
		if len(trace.X) != len(trace.Y) {
			return fmt.Errorf("panel %q trace %q: %d x values but %d y values", spec.PanelID, trace.Label, len(trace.X), len(trace.Y))
		}

		for i := range trace.X {
			row := []string{
				spec.PanelID,
				trace.Label,
				strconv.FormatFloat(trace.X[i], 'g', -1, 64),
				strconv.FormatFloat(trace.Y[i], 'g', -1, 64),
			}
			if err := w.csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.csvWriter.Flush()
	return w.csvWriter.Error()
}

func main() {
	var serverURL = flag.String("url", "http://localhost:8050", "URL of the sensordash server")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	config := Config{
		ServerURL: *serverURL,
		Output:    os.Stdout,
		Logger:    logger,
	}

	reader := NewWSReader(config)
	if err := reader.Connect(context.Background()); err != nil {
		config.Logger.Error("Failed to read charts", "error", err)
		os.Exit(1)
	}
}
