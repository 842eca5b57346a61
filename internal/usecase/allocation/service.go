package allocation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// UpsertTargetInput represents the input for setting an allocation target
type UpsertTargetInput struct {
	AssetClassID  uuid.UUID
	TargetPercent decimal.Decimal
}

// AllocationService handles allocation target operations
type AllocationService struct {
	TargetRepo domain.AllocationTargetRepository
}

// NewAllocationService creates a new AllocationService instance
func NewAllocationService(targetRepo domain.AllocationTargetRepository) *AllocationService {
	return &AllocationService{TargetRepo: targetRepo}
}

// List retrieves the owner's allocation targets ordered by asset class
func (s *AllocationService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.AllocationTarget, error) {
	return s.TargetRepo.List(ctx, ownerID)
}

// Upsert sets the target percentage for one asset class, keyed by
// (owner, asset class): setting the same class twice replaces the previous
// target instead of duplicating it.
// Logic:
//  1. Validate the target (class required, percent within 0..100)
//  2. Reject when the new total across all classes would exceed 100%
//  3. Natural-key upsert through the repository
func (s *AllocationService) Upsert(ctx context.Context, ownerID uuid.UUID, input UpsertTargetInput) (*domain.AllocationTarget, error) {
	target := &domain.AllocationTarget{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AssetClassID:  input.AssetClassID,
		TargetPercent: input.TargetPercent,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := target.Validate(); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	existing, err := s.TargetRepo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation targets: %w", err)
	}

	// Total over all classes, replacing this class's current value
	total := input.TargetPercent
	for _, t := range existing {
		if t.AssetClassID != input.AssetClassID {
			total = total.Add(t.TargetPercent)
		}
	}
	if total.GreaterThan(oneHundred) {
		return nil, domain.NewValidationError("allocation targets exceed 100% in total; adjust the percentages so the total stays at or below 100%")
	}

	saved, err := s.TargetRepo.Upsert(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert allocation target: %w", err)
	}

	return saved, nil
}

// Delete removes an allocation target by id
func (s *AllocationService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.TargetRepo.Delete(ctx, ownerID, id)
}
