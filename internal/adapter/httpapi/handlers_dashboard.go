package httpapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/patrimonio-backend/internal/usecase/dashboard"
)

// Dashboard JSON shapes. Percentages are plain numbers; a null
// target/diff means "no target configured", which is distinct from 0.
type classRowResponse struct {
	ClassKey      string          `json:"asset_class_key"`
	Name          string          `json:"name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	RealPercent   float64         `json:"real_percent"`
	TargetPercent *float64        `json:"target_percent"`
	DiffPercent   *float64        `json:"diff_percent"`
}

type goalRowResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	TargetAmount    decimal.Decimal `json:"target_amount"`
	InvestedAmount  decimal.Decimal `json:"invested_amount"`
	ProgressPercent float64         `json:"progress_percent"`
	Priority        int             `json:"priority"`
}

type insightResponse struct {
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	GoalID   *uuid.UUID `json:"goal_id,omitempty"`
	ClassKey string     `json:"asset_class_key,omitempty"`
}

type dashboardResponse struct {
	TotalPatrimony decimal.Decimal    `json:"total_patrimony"`
	Classes        []classRowResponse `json:"classes"`
	Goals          []goalRowResponse  `json:"goals"`
	Insights       []insightResponse  `json:"insights"`
}

// handleDashboard builds a fresh snapshot from the current entity lists
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.dashboard.Load(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toDashboardResponse(snap))
}

func toDashboardResponse(snap *dashboard.Snapshot) dashboardResponse {
	resp := dashboardResponse{
		TotalPatrimony: snap.TotalPatrimony,
		Classes:        make([]classRowResponse, 0, len(snap.Classes)),
		Goals:          make([]goalRowResponse, 0, len(snap.Goals)),
		Insights:       make([]insightResponse, 0, len(snap.Insights)),
	}

	for _, row := range snap.Classes {
		resp.Classes = append(resp.Classes, classRowResponse{
			ClassKey:      row.ClassKey,
			Name:          row.Name,
			TotalAmount:   row.TotalAmount,
			RealPercent:   row.RealPercent,
			TargetPercent: row.TargetPercent,
			DiffPercent:   row.DiffPercent,
		})
	}
	for _, row := range snap.Goals {
		resp.Goals = append(resp.Goals, goalRowResponse{
			ID:              row.ID,
			Title:           row.Title,
			TargetAmount:    row.TargetAmount,
			InvestedAmount:  row.InvestedAmount,
			ProgressPercent: row.ProgressPercent,
			Priority:        row.Priority,
		})
	}
	for _, in := range snap.Insights {
		resp.Insights = append(resp.Insights, insightResponse{
			Code:     in.Code,
			Title:    in.Title,
			Body:     in.Body,
			GoalID:   in.GoalID,
			ClassKey: in.ClassKey,
		})
	}

	return resp
}
