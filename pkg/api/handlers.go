package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"rematching/pkg/config"
	"rematching/pkg/mesh"
	"rematching/pkg/remesh"
	"rematching/pkg/voronoi"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	cfg      *config.Server
	log      *zap.Logger
	started  time.Time
	requests atomic.Uint64
	remeshed atomic.Uint64
}

// NewHandlers creates handlers with the given configuration and logger.
func NewHandlers(cfg *config.Server, log *zap.Logger) *Handlers {
	return &Handlers{cfg: cfg, log: log, started: time.Now()}
}

// HandleRemesh handles POST /api/v1/remesh. The request body is a mesh
// in the format given by the format query parameter (obj, off or stl;
// default obj); the response is the remeshed mesh in the same format.
// Query parameters: samples (required), resample, evaluate.
func (h *Handlers) HandleRemesh(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)

	samples, err := strconv.Atoi(r.URL.Query().Get("samples"))
	if err != nil || samples <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_samples", "samples must be a positive integer")
		return
	}
	if samples > h.cfg.MaxSamples {
		writeError(w, http.StatusBadRequest, "invalid_samples", "samples exceeds server limit")
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "obj"
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(h.cfg.MaxBodyMB)<<20))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "")
		return
	}

	m, err := decodeMesh(format, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_mesh", err.Error())
		return
	}

	opts := remesh.Options{
		Samples:  samples,
		Resample: r.URL.Query().Get("resample") == "1",
		Evaluate: r.URL.Query().Get("evaluate") == "1",
	}
	res, err := remesh.Remesh(m, opts)
	if err != nil {
		if errors.Is(err, voronoi.ErrNonPositiveSamples) || errors.Is(err, mesh.ErrBadTriangle) || errors.Is(err, remesh.ErrNoLowVertices) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.Error("remesh failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	h.remeshed.Add(1)
	h.log.Info("remeshed",
		zap.Int("input_vertices", res.InputVertices),
		zap.Int("samples", len(res.Sampling.Seeds)),
		zap.Int("triangles", res.Low.NumTriangles()),
		zap.Int("components", res.NumComponents),
	)

	var buf bytes.Buffer
	if err := encodeMesh(format, &buf, res.Low); err != nil {
		h.log.Error("encode failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	w.Header().Set("Content-Type", meshContentType(format))
	w.Header().Set("X-Remesh-Samples", strconv.Itoa(len(res.Sampling.Seeds)))
	w.Header().Set("X-Remesh-Triangles", strconv.Itoa(res.Low.NumTriangles()))
	w.Header().Set("X-Remesh-Components", strconv.Itoa(res.NumComponents))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	h.requests.Add(1)
	writeJSON(w, http.StatusOK, StatsResponse{
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Requests:      h.requests.Load(),
		Remeshed:      h.remeshed.Load(),
	})
}

func decodeMesh(format string, body []byte) (*mesh.Mesh, error) {
	switch format {
	case "obj":
		return mesh.ReadOBJ(bytes.NewReader(body))
	case "off":
		return mesh.ReadOFF(bytes.NewReader(body))
	case "stl":
		return mesh.ReadSTL(bytes.NewReader(body))
	}
	return nil, errors.New("unsupported format " + format)
}

func encodeMesh(format string, w io.Writer, m *mesh.Mesh) error {
	switch format {
	case "obj":
		return mesh.WriteOBJ(w, m)
	case "off":
		return mesh.WriteOFF(w, m)
	case "stl":
		return mesh.WriteSTL(w, m)
	}
	return errors.New("unsupported format " + format)
}

func meshContentType(format string) string {
	if format == "stl" {
		return "application/octet-stream"
	}
	return "text/plain; charset=utf-8"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, ErrorResponse{Error: code, Detail: detail})
}
