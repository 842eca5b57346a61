package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a savings goal in the domain layer.
// InvestedAmount is a derived field: it caches the sum of the amounts of all
// investments linked to this goal. It is kept consistent by explicit
// recomputation (see usecase/goal), not by database triggers, so between a
// linkage-changing mutation and the next recompute it may be transiently
// stale. The dedicated UpdateInvestedAmount repository call is its only
// writer.
type Goal struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Title          string
	TargetAmount   decimal.Decimal
	InvestedAmount decimal.Decimal
	Priority       int // lower = higher display priority
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate ensures the goal adheres to domain rules
func (g *Goal) Validate() error {
	if g.Title == "" {
		return errors.New("goal title cannot be empty")
	}

	if g.TargetAmount.IsNegative() {
		return errors.New("goal target amount cannot be negative")
	}

	if g.Priority < 0 {
		return errors.New("goal priority cannot be negative")
	}

	return nil
}
