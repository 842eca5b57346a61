package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvestmentFilter narrows an investment listing. Zero values mean "no
// filter". Date bounds are inclusive calendar dates.
type InvestmentFilter struct {
	AssetClassKey string // AssetClassRef key: class id or free-text label
	DateFrom      *time.Time
	DateTo        *time.Time
}

// InvestmentRepository defines the interface for investment persistence
// operations. Every call is scoped to the owning user.
type InvestmentRepository interface {
	// GetByID retrieves an investment by its ID
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Investment, error)

	// List retrieves the owner's investments, newest first,
	// optionally narrowed by filter
	List(ctx context.Context, ownerID uuid.UUID, filter InvestmentFilter) ([]*Investment, error)

	// Create creates a new investment
	Create(ctx context.Context, inv *Investment) error

	// Update rewrites all mutable fields of an existing investment
	Update(ctx context.Context, inv *Investment) error

	// Delete removes an investment
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// SumByGoal returns the sum of amounts over the owner's investments
	// linked to the given goal (zero when none are linked)
	SumByGoal(ctx context.Context, ownerID, goalID uuid.UUID) (decimal.Decimal, error)

	// SumsByGoal returns per-goal amount sums for every goal the owner's
	// investments are linked to
	SumsByGoal(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	// GetByID retrieves a goal by its ID
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Goal, error)

	// List retrieves the owner's goals, newest first
	List(ctx context.Context, ownerID uuid.UUID) ([]*Goal, error)

	// Create creates a new goal
	Create(ctx context.Context, goal *Goal) error

	// Update rewrites title, target amount and priority.
	// It must never touch InvestedAmount.
	Update(ctx context.Context, goal *Goal) error

	// UpdateInvestedAmount persists the derived invested amount and bumps
	// the updated-at timestamp. This is the only writer of the field.
	UpdateInvestedAmount(ctx context.Context, ownerID, goalID uuid.UUID, amount decimal.Decimal) error

	// Delete removes a goal; the store unlinks referencing investments
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// AllocationTargetRepository defines the interface for allocation target
// persistence operations
type AllocationTargetRepository interface {
	// List retrieves the owner's allocation targets ordered by asset class
	List(ctx context.Context, ownerID uuid.UUID) ([]*AllocationTarget, error)

	// Upsert inserts or replaces the target keyed by (owner, asset class)
	// and returns the resulting record
	Upsert(ctx context.Context, target *AllocationTarget) (*AllocationTarget, error)

	// Delete removes an allocation target by id
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// ReferenceRepository defines the interface for global reference data.
// Reference data is not owner-scoped.
type ReferenceRepository interface {
	// ListAssetClasses retrieves all asset classes ordered by name
	ListAssetClasses(ctx context.Context) ([]*AssetClass, error)

	// ListInstitutions retrieves all active institutions ordered by name
	ListInstitutions(ctx context.Context) ([]*Institution, error)

	// CreateAssetClass creates a new asset class (used by the seeder)
	CreateAssetClass(ctx context.Context, class *AssetClass) error
}
