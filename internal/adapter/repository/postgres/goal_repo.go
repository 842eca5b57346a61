package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// goalRepository implements domain.GoalRepository
type goalRepository struct {
	db *DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *DB) domain.GoalRepository {
	return &goalRepository{db: db}
}

// GetByID retrieves a goal by its ID
func (r *goalRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, invested_amount, priority, created_at, updated_at
		FROM goals
		WHERE id = $1 AND user_id = $2
	`

	goal, err := scanGoal(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal by ID: %w", err)
	}

	return goal, nil
}

// List retrieves the owner's goals, newest first
func (r *goalRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, invested_amount, priority, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

// Create creates a new goal
func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, target_amount, invested_amount, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.OwnerID,
		goal.Title,
		goal.TargetAmount.String(),
		goal.InvestedAmount.String(),
		goal.Priority,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// Update rewrites title, target amount and priority.
// invested_amount is deliberately not in the SET list: the derived field has
// exactly one writer, UpdateInvestedAmount.
func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = $3, target_amount = $4, priority = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.OwnerID,
		goal.Title,
		goal.TargetAmount.String(),
		goal.Priority,
		goal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	return requireAffected(result, "goal", goal.ID)
}

// UpdateInvestedAmount persists the derived invested amount
func (r *goalRepository) UpdateInvestedAmount(ctx context.Context, ownerID, goalID uuid.UUID, amount decimal.Decimal) error {
	query := `
		UPDATE goals
		SET invested_amount = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, goalID, ownerID, amount.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update invested amount: %w", err)
	}

	return requireAffected(result, "goal", goalID)
}

// Delete removes a goal. Referencing investments are unlinked by the
// goal_id foreign key (ON DELETE SET NULL).
func (r *goalRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return requireAffected(result, "goal", id)
}

// scanGoal reads one goal row
func scanGoal(row scanner) (*domain.Goal, error) {
	var goal domain.Goal
	var targetStr, investedStr string

	err := row.Scan(
		&goal.ID,
		&goal.OwnerID,
		&goal.Title,
		&targetStr,
		&investedStr,
		&goal.Priority,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	goal.TargetAmount = domain.ParseAmount(targetStr)
	goal.InvestedAmount = domain.ParseAmount(investedStr)

	return &goal, nil
}
