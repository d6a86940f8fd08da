package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/dispatch"
	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/model"
)

// SnapshotBody is the wire form of a dispatch snapshot
type SnapshotBody struct {
	Employees []model.Employee `json:"employees" validate:"dive"`
	Clients   []model.Client   `json:"clients" validate:"dive"`
	Absences  []model.Absence  `json:"absences" validate:"dive"`
	Jobs      []model.Job      `json:"jobs" validate:"dive"`
}

func (b SnapshotBody) snapshot() *dispatch.Snapshot {
	return dispatch.NewSnapshot(b.Employees, b.Clients, b.Absences, b.Jobs)
}

// CandidatesRequest asks for the ranked fit list of one job
type CandidatesRequest struct {
	Job      model.Job    `json:"job"`
	Snapshot SnapshotBody `json:"snapshot"`
}

// CandidateView is one ranked employee in a candidates response
type CandidateView struct {
	EmployeeID   string             `json:"employeeId"`
	Name         string             `json:"name"`
	Score        float64            `json:"score"`
	Disqualified bool               `json:"disqualified"`
	Reason       string             `json:"reason,omitempty"`
	Breakdown    map[string]float64 `json:"breakdown,omitempty"`
}

// CandidatesResponse is the ranked fit list and the auto-selection it implies
type CandidatesResponse struct {
	Candidates []CandidateView `json:"candidates"`
	Selected   []string        `json:"selected"`
}

// DispatchRequest asks for a batch run over the given jobs
type DispatchRequest struct {
	JobIDs           []string     `json:"jobIds" validate:"dive,required"`
	Snapshot         SnapshotBody `json:"snapshot"`
	TrackCommitments bool         `json:"trackCommitments"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var req CandidatesRequest
	if !s.decode(w, r, &req) {
		return
	}

	snap := req.Snapshot.snapshot()
	scorer := dispatch.NewFitScorer()
	candidates := dispatch.ComputeCandidates(snap, &req.Job, scorer)

	disqualified := 0
	views := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		if c.Result.Disqualified {
			disqualified++
		}
		views = append(views, CandidateView{
			EmployeeID:   c.EmployeeID,
			Name:         c.Name,
			Score:        c.Score,
			Disqualified: c.Result.Disqualified,
			Reason:       string(c.Result.Reason),
			Breakdown:    c.Result.Breakdown,
		})
	}
	s.recorder.RecordCandidates(scorer.Name(), len(candidates), disqualified)

	s.writeJSON(w, http.StatusOK, CandidatesResponse{
		Candidates: views,
		Selected:   dispatch.SelectTopN(snap, &req.Job, scorer),
	})
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if !s.decode(w, r, &req) {
		return
	}

	outcome := dispatch.BatchDispatch(req.Snapshot.snapshot(), req.JobIDs, dispatch.BatchOptions{
		TrackCommitments: req.TrackCommitments,
	})
	s.recorder.RecordBatch(len(outcome.Decisions), len(outcome.Unmatched), len(outcome.Skipped))

	s.logger.Info("Dispatched batch",
		zap.Int("jobs", len(req.JobIDs)),
		zap.Int("assigned", len(outcome.Decisions)),
		zap.Int("unmatched", len(outcome.Unmatched)))

	s.writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads and validates a JSON body, writing a 400 and returning false on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed request body: %v", err))
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.logger.Debug("Rejected request", zap.Int("status", status), zap.String("error", msg))
	s.writeJSON(w, status, errorResponse{Error: msg})
}
