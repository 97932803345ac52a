package sensordash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const shutdownTimeout = 5 * time.Second

type HttpServer struct {
	dataset     *Dataset
	panels      []Panel
	host        string
	port        uint16
	pageOptions PageOptions
	metrics     *Metrics
	router      *mux.Router
	logger      logrus.FieldLogger
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHttpServer(dataset *Dataset, panels []Panel, host string, port uint16, pageOptions PageOptions, metrics *Metrics) *HttpServer {
	s := &HttpServer{
		dataset:     dataset,
		panels:      panels,
		host:        host,
		port:        port,
		pageOptions: pageOptions,
		metrics:     metrics,
		router:      mux.NewRouter(),
		logger:      logrus.WithField("tag", "HttpServer"),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/api/panels", s.handlePanels).Methods(http.MethodGet)
	s.router.HandleFunc("/api/panels/{id}", s.handlePanel).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return s
}

func (s *HttpServer) handleIndex(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.RecordDuration("index", time.Since(start).Seconds())
	}()

	// Render fully before writing anything so a failure can still become a
	// clean 500.
	var buf bytes.Buffer
	if err := RenderPage(&buf, s.dataset, s.panels, s.pageOptions); err != nil {
		s.logger.WithError(err).Error("failed to render dashboard")
		s.metrics.RecordError("render")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordPageRender()
	for _, panel := range s.panels {
		s.metrics.RecordChartBuild(panel.ID)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *HttpServer) handlePanels(w http.ResponseWriter, req *http.Request) {
	ids := make([]string, 0, len(s.panels))
	for _, panel := range s.panels {
		ids = append(ids, panel.ID)
	}

	s.writeJSON(w, http.StatusOK, ids)
}

func (s *HttpServer) handlePanel(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.RecordDuration("panel", time.Since(start).Seconds())
	}()

	id := mux.Vars(req)["id"]
	logger := s.logger.WithField("panel", id)

	panel, err := LookupPanel(s.panels, id)
	if err != nil {
		logger.WithError(err).Debug("unknown panel requested")
		s.metrics.RecordError("unknown_panel")
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	spec, err := BuildChart(s.dataset, panel)
	if err != nil {
		logger.WithError(err).Error("failed to build chart")
		s.metrics.RecordError("build")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.metrics.RecordChartBuild(panel.ID)
	s.writeJSON(w, http.StatusOK, spec)
}

// handleWebSocket sends every chart once, in page order, then closes. There
// are no further updates since the data never changes.
func (s *HttpServer) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	c, err := websocket.Accept(w, req, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.WithError(err).Warn("failed to accept new websocket connection")
		return
	}

	ctx := req.Context()
	ctx = c.CloseRead(ctx) // Nothing is read from the client.

	for _, panel := range s.panels {
		spec, err := BuildChart(s.dataset, panel)
		if err != nil {
			s.logger.WithField("panel", panel.ID).WithError(err).Error("failed to build chart")
			s.metrics.RecordError("build")
			c.Close(websocket.StatusInternalError, "failed to build chart")
			return
		}

		if err := wsjson.Write(ctx, c, spec); err != nil {
			s.logger.WithError(err).Warn("websocket write failed and closed")
			return
		}

		s.metrics.RecordChartBuild(panel.ID)
	}

	c.Close(websocket.StatusNormalClosure, "")
}

func (s *HttpServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "content-type")
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HttpServer) Run(ctx context.Context, openBrowserOnStart bool) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(int(s.port))))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	server := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := fmt.Sprintf("http://%s", listener.Addr().String())
	s.logger.Infof("starting HTTP server at %s", url)
	if openBrowserOnStart {
		openBrowser(url)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
