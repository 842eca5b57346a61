package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/patrimonio-backend/internal/domain"
	"github.com/simaogato/patrimonio-backend/internal/usecase/goal"
)

// goalRequest is the JSON body for creating or updating a goal.
// The invested amount is derived and cannot be submitted.
type goalRequest struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Priority     int             `json:"priority"`
}

// goalResponse is the JSON shape of one goal
type goalResponse struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	TargetAmount   decimal.Decimal `json:"target_amount"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	Priority       int             `json:"priority"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toGoalResponse(g *domain.Goal) *goalResponse {
	return &goalResponse{
		ID:             g.ID,
		Title:          g.Title,
		TargetAmount:   g.TargetAmount,
		InvestedAmount: g.InvestedAmount,
		Priority:       g.Priority,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}
}

// handleListGoals lists the owner's goals with invested amounts overlaid
// from the live investment sums
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]*goalResponse, 0, len(goals))
	for _, g := range goals {
		responses = append(responses, toGoalResponse(g))
	}
	s.writeJSON(w, http.StatusOK, responses)
}

// handleCreateGoal creates a goal
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := s.goals.Create(r.Context(), ownerFromContext(r.Context()), goal.CreateGoalInput{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Priority:     req.Priority,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, toGoalResponse(g))
}

// handleUpdateGoal updates a goal's editable fields
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := s.goals.Update(r.Context(), ownerFromContext(r.Context()), id, goal.UpdateGoalInput{
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Priority:     req.Priority,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toGoalResponse(g))
}

// handleDeleteGoal deletes a goal
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := s.goals.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleRecalcGoal re-runs the invested amount recalculation for one goal.
// This is the manual retry for the staleness window left by a failed
// post-mutation recalc.
func (s *Server) handleRecalcGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	if err := s.goals.RecalcInvestedAmount(r.Context(), ownerFromContext(r.Context()), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
