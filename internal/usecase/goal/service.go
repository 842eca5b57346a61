package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// CreateGoalInput represents the input for creating a goal
type CreateGoalInput struct {
	Title        string
	TargetAmount decimal.Decimal
	Priority     int
}

// UpdateGoalInput represents the input for updating a goal.
// InvestedAmount is deliberately absent: it is derived and owned by the
// recalculator.
type UpdateGoalInput struct {
	Title        string
	TargetAmount decimal.Decimal
	Priority     int
}

// GoalService handles goal CRUD and keeps the derived invested amount
// consistent with the linked investments
type GoalService struct {
	GoalRepo       domain.GoalRepository
	InvestmentRepo domain.InvestmentRepository
}

// NewGoalService creates a new GoalService instance
func NewGoalService(goalRepo domain.GoalRepository, investmentRepo domain.InvestmentRepository) *GoalService {
	return &GoalService{
		GoalRepo:       goalRepo,
		InvestmentRepo: investmentRepo,
	}
}

// Create creates a new goal. The invested amount always starts at zero;
// linking investments is what makes it grow.
func (s *GoalService) Create(ctx context.Context, ownerID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	goal := &domain.Goal{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Title:          input.Title,
		TargetAmount:   input.TargetAmount,
		InvestedAmount: decimal.Zero,
		Priority:       input.Priority,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := goal.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.GoalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// Update rewrites the user-editable fields of a goal. The derived invested
// amount is never part of the patch.
func (s *GoalService) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.GoalRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	goal.Title = input.Title
	goal.TargetAmount = input.TargetAmount
	goal.Priority = input.Priority
	goal.UpdatedAt = time.Now().UTC()

	if err := goal.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.GoalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

// Delete removes a goal. Investments that referenced it are unlinked by the
// store, so no recalculation is needed: the goal row is gone.
func (s *GoalService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.GoalRepo.Delete(ctx, ownerID, id)
}

// List retrieves the owner's goals with InvestedAmount overlaid from the
// live per-goal investment sums. The cached field may be stale after a
// failed recalculation; the overlay makes listings reflect the linked
// investments regardless.
func (s *GoalService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error) {
	goals, err := s.GoalRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	if len(goals) == 0 {
		return goals, nil
	}

	sums, err := s.InvestmentRepo.SumsByGoal(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum investments by goal: %w", err)
	}

	for _, g := range goals {
		if sum, ok := sums[g.ID]; ok {
			g.InvestedAmount = sum
		} else {
			g.InvestedAmount = decimal.Zero
		}
	}

	return goals, nil
}

// RecalcInvestedAmount recomputes a goal's invested amount from the
// investments currently linked to it and persists the result.
// This is the single point that keeps the derived field consistent: there
// are no database triggers. Safe to call redundantly; any read or write
// failure propagates to the caller, which decides how to surface it.
func (s *GoalService) RecalcInvestedAmount(ctx context.Context, ownerID, goalID uuid.UUID) error {
	total, err := s.InvestmentRepo.SumByGoal(ctx, ownerID, goalID)
	if err != nil {
		return fmt.Errorf("failed to sum investments for goal %s: %w", goalID, err)
	}

	if err := s.GoalRepo.UpdateInvestedAmount(ctx, ownerID, goalID, total); err != nil {
		return fmt.Errorf("failed to persist invested amount for goal %s: %w", goalID, err)
	}

	return nil
}
