package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"hbcheckup/internal/api"
	"hbcheckup/internal/logging"
)

func (s *Server) handleCheckup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.checkup(r.Context()))
}

func (s *Server) handleCheckupAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.checkupAll(r.Context()))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	page := newDashboardPage(s.checkupAll(r.Context()), time.Now())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, page); err != nil {
		logging.WithContext(r.Context(), s.logger).Error("render dashboard", logging.Error(err))
	}
}

// checkup scans the local log. A failed scan is reported in the body rather
// than as an HTTP error so dashboards keep rendering the other hosts.
func (s *Server) checkup(ctx context.Context) api.PeerStatus {
	logger := logging.WithContext(ctx, s.logger)
	hostname := s.localHostname()

	started := time.Now()
	snap, err := s.scanner.Scan()
	if err != nil {
		logging.WarnWithContext(logger, "activity log scan failed", "scan_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check handbrakePath in the config"),
			logging.String(logging.FieldImpact, "host reported as unsuccessful"),
		)
		return api.Failed(hostname)
	}
	logger.Debug("activity log scanned",
		logging.String("status", string(snap.Status)),
		logging.String("eta", snap.ETA),
		logging.Duration("duration", time.Since(started)),
	)
	return api.FromSnapshot(hostname, snap)
}

func (s *Server) checkupAll(ctx context.Context) api.CheckupAllResponse {
	self := s.checkup(ctx)
	others := s.peers.FetchAll(ctx)
	hosts := make([]api.PeerStatus, 0, len(others)+1)
	hosts = append(hosts, self)
	hosts = append(hosts, others...)
	return api.CheckupAllResponse{Success: true, HostData: hosts}
}

func (s *Server) localHostname() string {
	name, err := s.hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return api.ShortHostname(name)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
