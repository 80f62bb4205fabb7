package server

import (
	"encoding/json"
	"net/http"

	"github.com/talhabaig007/PhishStop/internal/model"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	URL              string   `json:"url"`
	IsPhishing       *bool    `json:"is_phishing"`
	DetectionMethods []string `json:"detection_methods"`
	Reasons          []string `json:"reasons"`
	RiskScore        int      `json:"risk_score"`
	Confidence       int      `json:"confidence"`
}

type statisticsResponse struct {
	TotalAnalyzed    int64   `json:"total_analyzed"`
	PhishingDetected int64   `json:"phishing_detected"`
	AvgRiskScore     float64 `json:"avg_risk_score"`
}

type blacklistRequest struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// handleAnalyze serves POST /analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "URL is required"})
		return
	}

	verdict, err := s.analyze(r.Context(), req.URL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid URL"})
		return
	}

	writeJSON(w, http.StatusOK, verdictResponse(verdict))
}

// handleStatistics serves GET /statistics.
func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	snapshot := s.stats.Snapshot()
	writeJSON(w, http.StatusOK, statisticsResponse{
		TotalAnalyzed:    snapshot.TotalAnalyzed,
		PhishingDetected: snapshot.PhishingDetected,
		AvgRiskScore:     snapshot.AvgRiskScore,
	})
}

// handleBlacklist serves POST /blacklist.
func (s *Server) handleBlacklist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req blacklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	if req.Domain == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Domain is required"})
		return
	}

	if req.Reason == "" {
		req.Reason = "User reported"
	}

	if err := s.matcher.Add(r.Context(), req.Domain, req.Reason); err != nil {
		s.logger.Warn("Failed to add blacklist domain", "domain", req.Domain, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid domain"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Domain added to blacklist",
	})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "phishstop",
	})
}

// verdictResponse maps a verdict onto the wire format. Suspicious verdicts
// serialize is_phishing as null.
func verdictResponse(v model.Verdict) analyzeResponse {
	methods := make([]string, len(v.Methods))
	for i, m := range v.Methods {
		methods[i] = string(m)
	}

	reasons := v.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	return analyzeResponse{
		URL:              v.URL,
		IsPhishing:       v.IsPhishing(),
		DetectionMethods: methods,
		Reasons:          reasons,
		RiskScore:        v.RiskScore,
		Confidence:       v.Confidence,
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(data)
}
