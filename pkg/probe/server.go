package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/mittwald/identityprobe/internal/config"
	log "github.com/sirupsen/logrus"
)

const DefaultListenPort = 9102

var ErrUnknownProbe = errors.New("unknown probe")

type Handler struct {
	probes  map[string]Probe
	metrics *Metrics
}

func NewProbeHandler(cfg *config.Ignition) (*Handler, error) {
	probes, err := BuildProbesFromConfig(cfg, nil)
	if err != nil {
		return nil, err
	}

	return NewHandler(probes), nil
}

func NewHandler(probes map[string]Probe) *Handler {
	return &Handler{
		probes:  probes,
		metrics: NewMetrics(),
	}
}

func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// Names returns the configured probe names in sorted order.
func (h *Handler) Names() []string {
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the named probe once and records the outcome.
func (h *Handler) Execute(ctx context.Context, name string) (Result, error) {
	p, ok := h.probes[name]
	if !ok {
		return Result{}, fmt.Errorf("%w %q", ErrUnknownProbe, name)
	}

	start := time.Now()
	result, err := p.Check(ctx)
	took := time.Since(start)

	status := strings.ToLower(string(result.Status))
	if err != nil {
		status = strings.ToLower(string(StatusMisconfigured))
		log.WithFields(log.Fields{"kind": "probe", "name": name, "err": err}).Error("probe could not be executed")
	}
	h.metrics.ObserveCheck(name, status, took)

	return result, err
}

func (h *Handler) HandleProbe(res http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["name"]

	result, err := h.Execute(req.Context(), name)

	response := ProbeResponse{
		Name:        name,
		Status:      result.Status,
		Description: result.Description,
	}
	statusCode := http.StatusOK

	switch {
	case errors.Is(err, ErrUnknownProbe):
		response.Status = StatusUnhealthy
		response.Description = err.Error()
		statusCode = http.StatusNotFound
	case err != nil:
		response.Status = StatusMisconfigured
		response.Description = err.Error()
		statusCode = http.StatusInternalServerError
	case !result.IsHealthy():
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(res, statusCode, &response)
}

func (h *Handler) HandleList(res http.ResponseWriter, req *http.Request) {
	response := ProbeListResponse{
		Probes: make([]ProbeInfo, 0, len(h.probes)),
	}

	for _, name := range h.Names() {
		response.Probes = append(response.Probes, ProbeInfo{Name: name, Kind: KindOf(h.probes[name])})
	}

	writeJSON(res, http.StatusOK, &response)
}

func (h *Handler) Router() *mux.Router {
	m := mux.NewRouter()
	m.Path("/probes").Methods(http.MethodGet).HandlerFunc(h.HandleList)
	m.Path("/probes/{name}").Methods(http.MethodGet).HandlerFunc(h.HandleProbe)
	m.Path("/metrics").Methods(http.MethodGet).Handler(h.metrics.Handler())
	return m
}

// RunProbeServer serves the probe endpoints until ctx is cancelled.
func RunProbeServer(ctx context.Context, ph *Handler, port int) error {
	server := http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           ph.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down probe server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if err != http.ErrServerClosed {
		return err
	}

	return nil
}

func writeJSON(res http.ResponseWriter, statusCode int, body interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)

	if err := json.NewEncoder(res).Encode(body); err != nil {
		log.WithFields(log.Fields{"kind": "probe"}).WithError(err).Warn("failed to write response")
	}
}
