// Package api serves a read-only HTTP view of a running simulation:
// run progress and the latest world snapshot. Purely observational; all
// control stays in-process with the runner.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/talgya/blobworld/internal/runner"
)

// Server exposes the runner's published snapshots over HTTP.
type Server struct {
	Runner *runner.Runner
	Addr   string

	started time.Time
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	s.started = time.Now()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/snapshot", s.handleSnapshot)

	slog.Info("HTTP API starting", "addr", s.Addr)
	go func() {
		if err := http.ListenAndServe(s.Addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.Runner.Latest()
	resp := map[string]any{
		"run_id":         s.Runner.RunID(),
		"uptime_seconds": int(time.Since(s.started).Seconds()),
	}
	if snap != nil {
		resp["episode"] = snap.Episode
		resp["tick"] = snap.Tick
		resp["alive"] = snap.Alive
	}
	writeJSON(w, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.Runner.Latest()
	if snap == nil {
		http.Error(w, `{"error":"no snapshot yet"}`, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
