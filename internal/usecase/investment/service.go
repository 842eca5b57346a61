package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// GoalRecalculator recomputes a goal's derived invested amount.
// Implemented by the goal service.
type GoalRecalculator interface {
	RecalcInvestedAmount(ctx context.Context, ownerID, goalID uuid.UUID) error
}

// InvestmentInput represents the full set of user-editable investment
// fields, used for both create and update (forms submit the whole record)
type InvestmentInput struct {
	InvestedAt    time.Time
	Amount        decimal.Decimal
	AssetClass    domain.AssetClassRef
	LiquidityType domain.LiquidityType
	MaturityDate  *time.Time
	InstitutionID *uuid.UUID
	GoalID        *uuid.UUID
}

// InvestmentService wraps investment mutations with the side effect of
// recalculating every goal whose linkage changed. A single edit can affect
// at most two goals (the old link and the new link); exactly one recalc per
// affected goal is both sufficient and necessary, since there is no
// background reconciliation to pick up a skipped one.
type InvestmentService struct {
	InvestmentRepo domain.InvestmentRepository
	Goals          GoalRecalculator
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(investmentRepo domain.InvestmentRepository, goals GoalRecalculator) *InvestmentService {
	return &InvestmentService{
		InvestmentRepo: investmentRepo,
		Goals:          goals,
	}
}

// List retrieves the owner's investments, optionally filtered by asset
// class and inclusive date range
func (s *InvestmentService) List(ctx context.Context, ownerID uuid.UUID, filter domain.InvestmentFilter) ([]*domain.Investment, error) {
	return s.InvestmentRepo.List(ctx, ownerID, filter)
}

// Create validates and persists a new investment, then recalculates the
// linked goal, if any.
// If the recalculation fails the investment is NOT rolled back: the record
// is returned together with a *domain.GoalRecalcError so the caller can
// report the accepted staleness window and offer a retry.
func (s *InvestmentService) Create(ctx context.Context, ownerID uuid.UUID, input InvestmentInput) (*domain.Investment, error) {
	inv := &domain.Investment{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		InvestedAt:    input.InvestedAt,
		Amount:        input.Amount,
		AssetClass:    input.AssetClass,
		LiquidityType: input.LiquidityType,
		MaturityDate:  input.MaturityDate,
		InstitutionID: input.InstitutionID,
		GoalID:        input.GoalID,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := inv.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.InvestmentRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}

	if err := s.recalcAffected(ctx, ownerID, nil, inv.GoalID); err != nil {
		return inv, err
	}

	return inv, nil
}

// Update rewrites an existing investment and recalculates every goal whose
// linkage changed (previous link, next link, or both).
// Recalc failures are reported the same way as in Create.
func (s *InvestmentService) Update(ctx context.Context, ownerID, id uuid.UUID, input InvestmentInput) (*domain.Investment, error) {
	// Capture the previous goal link before mutating
	current, err := s.InvestmentRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	previousGoal := current.GoalID

	inv := &domain.Investment{
		ID:            current.ID,
		OwnerID:       current.OwnerID,
		InvestedAt:    input.InvestedAt,
		Amount:        input.Amount,
		AssetClass:    input.AssetClass,
		LiquidityType: input.LiquidityType,
		MaturityDate:  input.MaturityDate,
		InstitutionID: input.InstitutionID,
		GoalID:        input.GoalID,
		CreatedAt:     current.CreatedAt,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := inv.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.InvestmentRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}

	if err := s.recalcAffected(ctx, ownerID, previousGoal, inv.GoalID); err != nil {
		return inv, err
	}

	return inv, nil
}

// Delete removes an investment and recalculates the goal it was linked to,
// if any
func (s *InvestmentService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	current, err := s.InvestmentRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	previousGoal := current.GoalID

	if err := s.InvestmentRepo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	return s.recalcAffected(ctx, ownerID, previousGoal, nil)
}

// recalcAffected recalculates each distinct non-nil goal among
// {previous, next}, sequentially. Order across distinct goals is
// irrelevant: they are independent.
func (s *InvestmentService) recalcAffected(ctx context.Context, ownerID uuid.UUID, previous, next *uuid.UUID) error {
	affected := make([]uuid.UUID, 0, 2)
	if previous != nil {
		affected = append(affected, *previous)
	}
	if next != nil && (previous == nil || *next != *previous) {
		affected = append(affected, *next)
	}

	for _, goalID := range affected {
		if err := s.Goals.RecalcInvestedAmount(ctx, ownerID, goalID); err != nil {
			return &domain.GoalRecalcError{GoalID: goalID, Err: err}
		}
	}

	return nil
}
