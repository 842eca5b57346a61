package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiquidityType represents how an investment can be redeemed
type LiquidityType string

const (
	LiquidityDaily      LiquidityType = "DAILY"
	LiquidityAtMaturity LiquidityType = "AT_MATURITY"
)

// AssetClassRef identifies the asset class of an investment.
// Two shapes exist in stored data: a normalized reference to an asset_classes
// row (ID, with the class name optionally joined in as InlineName), or a
// legacy free-text label. Exactly one of ID/Label is expected to be set.
type AssetClassRef struct {
	ID         *uuid.UUID
	Label      string
	InlineName string // class name embedded by the store join, if available
}

// IsZero reports whether the reference identifies no class at all
func (r AssetClassRef) IsZero() bool {
	return r.ID == nil && r.Label == ""
}

// Key returns the grouping key for this reference: the class id when
// normalized, otherwise the raw label
func (r AssetClassRef) Key() string {
	if r.ID != nil {
		return r.ID.String()
	}
	return r.Label
}

// Investment represents a single investment record in the domain layer
type Investment struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	InvestedAt    time.Time // calendar date, time component ignored
	Amount        decimal.Decimal
	AssetClass    AssetClassRef
	LiquidityType LiquidityType
	MaturityDate  *time.Time // present iff LiquidityType is AT_MATURITY
	InstitutionID *uuid.UUID
	GoalID        *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate ensures the investment adheres to domain rules
// Returns an error if validation fails
func (i *Investment) Validate() error {
	if i.InvestedAt.IsZero() {
		return errors.New("investment date is required")
	}

	if i.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("investment amount must be positive")
	}

	if i.AssetClass.IsZero() {
		return errors.New("investment must reference an asset class")
	}

	// MaturityDate presence is a deterministic function of LiquidityType
	switch i.LiquidityType {
	case LiquidityDaily:
		if i.MaturityDate != nil {
			return errors.New("daily liquidity investment must not have a maturity date")
		}
	case LiquidityAtMaturity:
		if i.MaturityDate == nil {
			return errors.New("at-maturity investment must have a maturity date")
		}
	default:
		return errors.New("liquidity type must be DAILY or AT_MATURITY")
	}

	return nil
}
