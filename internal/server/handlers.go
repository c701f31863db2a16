package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/casting-agent/internal/types"
)

// HealthResponse represents the response for / and /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ScrapeResponse represents the response for /scrape
type ScrapeResponse struct {
	Success   bool            `json:"success"`
	Count     int             `json:"count"`
	Castings  []types.Casting `json:"castings"`
	Error     string          `json:"error,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// ApplyRequest represents the request body for /scrape-and-apply
type ApplyRequest struct {
	Profile types.Profile `json:"profile"`
	Limit   int           `json:"limit,omitempty"`
}

// ApplyResponse represents the response for /scrape-and-apply
type ApplyResponse struct {
	Success   bool                      `json:"success"`
	Applied   int                       `json:"applied"`
	Failed    int                       `json:"failed"`
	Results   []types.ApplicationResult `json:"results"`
	Error     string                    `json:"error,omitempty"`
	Timestamp string                    `json:"timestamp,omitempty"`
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		Status:    "Casting Agent Running",
		Timestamp: timestamp(),
	})
}

// handleScrape runs collection only. The run is deliberately detached from
// the request context: a disconnecting caller does not abort it mid-flight.
func (s *Server) handleScrape(w http.ResponseWriter, _ *http.Request) {
	castings, err := s.collect(context.Background())
	if err != nil {
		log.Printf("Collection run failed: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, ScrapeResponse{
			Success:  false,
			Error:    err.Error(),
			Castings: []types.Casting{},
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, ScrapeResponse{
		Success:   true,
		Count:     len(castings),
		Castings:  castings,
		Timestamp: timestamp(),
	})
}

// handleScrapeAndApply runs collection then dispatch. The profile is
// validated before any browser or mail activity.
func (s *Server) handleScrapeAndApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ApplyResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := req.Profile.Validate(); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, ApplyResponse{
			Success: false,
			Error:   "Profile with email required",
		})
		return
	}

	ctx := context.Background()
	castings, err := s.collect(ctx)
	if err != nil {
		log.Printf("Collection run failed: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, ApplyResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	report, err := s.dispatcher.Run(ctx, castings, req.Profile, req.Limit)
	if err != nil {
		log.Printf("Dispatch run failed: %v", err)
		s.jsonResponse(w, http.StatusInternalServerError, ApplyResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, ApplyResponse{
		Success:   true,
		Applied:   report.Applied,
		Failed:    report.Failed,
		Results:   report.Results,
		Timestamp: timestamp(),
	})
}
