package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"quadrant-analyzer/internal/logger"
	"quadrant-analyzer/internal/research/quadrant"
)

const maxBodyBytes = 1 << 20

// CompareRequest is the body of POST /api/quadrant/compare
type CompareRequest struct {
	Equities []quadrant.EquityInput `json:"equities"`
}

// RankRequest is the body of POST /api/quadrant/rank
type RankRequest struct {
	Stocks []quadrant.StockEntry `json:"stocks"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("bad request")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in quadrant.EquityInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	analysis, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, analysis)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.analyzer.Compare(r.Context(), req.Equities)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req quadrant.ClassifyRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.analyzer.Classify(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req RankRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	ranked, err := s.analyzer.Rank(r.Context(), req.Stocks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ranked)
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.rules)
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.matrix)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	if errors.Is(err, errBadRequest) || quadrant.IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithErr(r.Context(), "Request failed", err, "path", r.URL.Path)
	}
	writeJSON(w, r, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to encode JSON response", err)
	}
}
