package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationTarget represents the owner's desired percentage of total
// patrimony for one asset class. At most one target exists per
// (owner, asset class); the repository enforces this with a natural-key
// upsert rather than a separate uniqueness check.
type AllocationTarget struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	AssetClassID  uuid.UUID
	TargetPercent decimal.Decimal // 0..100
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate ensures the allocation target adheres to domain rules
func (t *AllocationTarget) Validate() error {
	if t.AssetClassID == uuid.Nil {
		return errors.New("allocation target must reference an asset class")
	}

	if t.TargetPercent.IsNegative() || t.TargetPercent.GreaterThan(decimal.NewFromInt(100)) {
		return errors.New("target percent must be between 0 and 100")
	}

	return nil
}
