package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// allocationTargetRepository implements domain.AllocationTargetRepository
type allocationTargetRepository struct {
	db *DB
}

// NewAllocationTargetRepository creates a new allocation target repository
func NewAllocationTargetRepository(db *DB) domain.AllocationTargetRepository {
	return &allocationTargetRepository{db: db}
}

// List retrieves the owner's allocation targets ordered by asset class
func (r *allocationTargetRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.AllocationTarget, error) {
	query := `
		SELECT id, user_id, asset_class_id, target_percent, created_at, updated_at
		FROM allocation_targets
		WHERE user_id = $1
		ORDER BY asset_class_id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocation targets: %w", err)
	}
	defer rows.Close()

	targets := make([]*domain.AllocationTarget, 0)
	for rows.Next() {
		var t domain.AllocationTarget
		var percentStr string
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.AssetClassID, &percentStr, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation target: %w", err)
		}
		t.TargetPercent = domain.ParseAmount(percentStr)
		targets = append(targets, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocation targets: %w", err)
	}

	return targets, nil
}

// Upsert inserts or replaces the target keyed by (owner, asset class).
// The natural key is what prevents duplicates; the row id survives a
// replace so existing deletes-by-id keep working.
func (r *allocationTargetRepository) Upsert(ctx context.Context, target *domain.AllocationTarget) (*domain.AllocationTarget, error) {
	query := `
		INSERT INTO allocation_targets (id, user_id, asset_class_id, target_percent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, asset_class_id)
		DO UPDATE SET target_percent = EXCLUDED.target_percent, updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, asset_class_id, target_percent, created_at, updated_at
	`

	var saved domain.AllocationTarget
	var percentStr string
	err := r.db.QueryRowContext(ctx, query,
		target.ID,
		target.OwnerID,
		target.AssetClassID,
		target.TargetPercent.String(),
		target.CreatedAt,
		target.UpdatedAt,
	).Scan(&saved.ID, &saved.OwnerID, &saved.AssetClassID, &percentStr, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert allocation target: %w", err)
	}
	saved.TargetPercent = domain.ParseAmount(percentStr)

	return &saved, nil
}

// Delete removes an allocation target by id
func (r *allocationTargetRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM allocation_targets WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation target: %w", err)
	}

	return requireAffected(result, "allocation target", id)
}
