package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/patrimonio-backend/internal/domain"
	"github.com/simaogato/patrimonio-backend/internal/usecase/investment"
)

const dateLayout = "2006-01-02"

// investmentRequest is the JSON body for creating or updating an investment.
// Either asset_class_id or asset_class_label identifies the class.
type investmentRequest struct {
	InvestedAt      string          `json:"invested_at"`
	Amount          decimal.Decimal `json:"amount"`
	AssetClassID    *uuid.UUID      `json:"asset_class_id"`
	AssetClassLabel string          `json:"asset_class_label"`
	LiquidityType   string          `json:"liquidity_type"`
	MaturityDate    *string         `json:"maturity_date"`
	InstitutionID   *uuid.UUID      `json:"institution_id"`
	GoalID          *uuid.UUID      `json:"goal_id"`
}

// investmentResponse is the JSON shape of one investment
type investmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvestedAt      string          `json:"invested_at"`
	Amount          decimal.Decimal `json:"amount"`
	AssetClassID    *uuid.UUID      `json:"asset_class_id"`
	AssetClassLabel string          `json:"asset_class_label,omitempty"`
	AssetClassName  string          `json:"asset_class_name,omitempty"`
	LiquidityType   string          `json:"liquidity_type"`
	MaturityDate    *string         `json:"maturity_date"`
	InstitutionID   *uuid.UUID      `json:"institution_id"`
	GoalID          *uuid.UUID      `json:"goal_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// recalcWarning reports that the record mutation succeeded but a linked
// goal's invested amount could not be recalculated and is stale until
// retried
type recalcWarning struct {
	Code    string    `json:"code"`
	GoalID  uuid.UUID `json:"goal_id"`
	Message string    `json:"message"`
}

type investmentEnvelope struct {
	Investment *investmentResponse `json:"investment,omitempty"`
	Warning    *recalcWarning      `json:"warning,omitempty"`
}

func (req *investmentRequest) toInput() (investment.InvestmentInput, error) {
	var input investment.InvestmentInput

	investedAt, err := time.Parse(dateLayout, req.InvestedAt)
	if err != nil {
		return input, domain.NewValidationError("invested_at must be a YYYY-MM-DD date")
	}

	var maturity *time.Time
	if req.MaturityDate != nil {
		m, err := time.Parse(dateLayout, *req.MaturityDate)
		if err != nil {
			return input, domain.NewValidationError("maturity_date must be a YYYY-MM-DD date")
		}
		maturity = &m
	}

	input = investment.InvestmentInput{
		InvestedAt: investedAt,
		Amount:     req.Amount,
		AssetClass: domain.AssetClassRef{
			ID:    req.AssetClassID,
			Label: req.AssetClassLabel,
		},
		LiquidityType: domain.LiquidityType(req.LiquidityType),
		MaturityDate:  maturity,
		InstitutionID: req.InstitutionID,
		GoalID:        req.GoalID,
	}
	return input, nil
}

func toInvestmentResponse(inv *domain.Investment) *investmentResponse {
	resp := &investmentResponse{
		ID:              inv.ID,
		InvestedAt:      inv.InvestedAt.Format(dateLayout),
		Amount:          inv.Amount,
		AssetClassID:    inv.AssetClass.ID,
		AssetClassLabel: inv.AssetClass.Label,
		AssetClassName:  inv.AssetClass.InlineName,
		LiquidityType:   string(inv.LiquidityType),
		InstitutionID:   inv.InstitutionID,
		GoalID:          inv.GoalID,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if inv.MaturityDate != nil {
		m := inv.MaturityDate.Format(dateLayout)
		resp.MaturityDate = &m
	}
	return resp
}

// handleListInvestments lists the owner's investments.
// Query parameters: class (id or label), from, to (inclusive dates).
func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	filter := domain.InvestmentFilter{
		AssetClassKey: r.URL.Query().Get("class"),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "from must be a YYYY-MM-DD date")
			return
		}
		filter.DateFrom = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "to must be a YYYY-MM-DD date")
			return
		}
		filter.DateTo = &t
	}

	investments, err := s.investments.List(r.Context(), ownerFromContext(r.Context()), filter)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]*investmentResponse, 0, len(investments))
	for _, inv := range investments {
		responses = append(responses, toInvestmentResponse(inv))
	}
	s.writeJSON(w, http.StatusOK, responses)
}

// handleCreateInvestment creates an investment and reports a stale linked
// goal as a warning rather than failing the whole request: the record is
// already persisted
func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	inv, err := s.investments.Create(r.Context(), ownerFromContext(r.Context()), input)
	if err != nil {
		var recalcErr *domain.GoalRecalcError
		if errors.As(err, &recalcErr) {
			s.log.Warn().Err(err).Str("goal_id", recalcErr.GoalID.String()).Msg("Goal recalculation failed after create")
			s.writeJSON(w, http.StatusCreated, investmentEnvelope{
				Investment: toInvestmentResponse(inv),
				Warning:    toRecalcWarning(recalcErr),
			})
			return
		}
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, investmentEnvelope{Investment: toInvestmentResponse(inv)})
}

// handleUpdateInvestment updates an investment, with the same staleness
// reporting as create
func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid investment id")
		return
	}

	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	inv, err := s.investments.Update(r.Context(), ownerFromContext(r.Context()), id, input)
	if err != nil {
		var recalcErr *domain.GoalRecalcError
		if errors.As(err, &recalcErr) {
			s.log.Warn().Err(err).Str("goal_id", recalcErr.GoalID.String()).Msg("Goal recalculation failed after update")
			s.writeJSON(w, http.StatusOK, investmentEnvelope{
				Investment: toInvestmentResponse(inv),
				Warning:    toRecalcWarning(recalcErr),
			})
			return
		}
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, investmentEnvelope{Investment: toInvestmentResponse(inv)})
}

// handleDeleteInvestment deletes an investment
func (s *Server) handleDeleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid investment id")
		return
	}

	if err := s.investments.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
		var recalcErr *domain.GoalRecalcError
		if errors.As(err, &recalcErr) {
			s.log.Warn().Err(err).Str("goal_id", recalcErr.GoalID.String()).Msg("Goal recalculation failed after delete")
			s.writeJSON(w, http.StatusOK, investmentEnvelope{Warning: toRecalcWarning(recalcErr)})
			return
		}
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toRecalcWarning(err *domain.GoalRecalcError) *recalcWarning {
	return &recalcWarning{
		Code:    "goal_recalc_failed",
		GoalID:  err.GoalID,
		Message: "the investment change was saved, but the goal's invested amount is stale; retry the recalculation",
	}
}
