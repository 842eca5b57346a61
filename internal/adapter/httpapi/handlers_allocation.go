package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/patrimonio-backend/internal/domain"
	"github.com/simaogato/patrimonio-backend/internal/usecase/allocation"
)

// allocationTargetRequest is the JSON body for setting a target; the
// (owner, asset class) pair is the upsert key
type allocationTargetRequest struct {
	AssetClassID  uuid.UUID       `json:"asset_class_id"`
	TargetPercent decimal.Decimal `json:"target_percent"`
}

// allocationTargetResponse is the JSON shape of one allocation target
type allocationTargetResponse struct {
	ID            uuid.UUID       `json:"id"`
	AssetClassID  uuid.UUID       `json:"asset_class_id"`
	TargetPercent decimal.Decimal `json:"target_percent"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toAllocationTargetResponse(t *domain.AllocationTarget) *allocationTargetResponse {
	return &allocationTargetResponse{
		ID:            t.ID,
		AssetClassID:  t.AssetClassID,
		TargetPercent: t.TargetPercent,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// handleListAllocationTargets lists the owner's allocation targets
func (s *Server) handleListAllocationTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := s.allocation.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]*allocationTargetResponse, 0, len(targets))
	for _, t := range targets {
		responses = append(responses, toAllocationTargetResponse(t))
	}
	s.writeJSON(w, http.StatusOK, responses)
}

// handleUpsertAllocationTarget sets the target percentage for one asset
// class, replacing any previous target for the same class
func (s *Server) handleUpsertAllocationTarget(w http.ResponseWriter, r *http.Request) {
	var req allocationTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := s.allocation.Upsert(r.Context(), ownerFromContext(r.Context()), allocation.UpsertTargetInput{
		AssetClassID:  req.AssetClassID,
		TargetPercent: req.TargetPercent,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAllocationTargetResponse(target))
}

// handleDeleteAllocationTarget removes an allocation target
func (s *Server) handleDeleteAllocationTarget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid allocation target id")
		return
	}

	if err := s.allocation.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
