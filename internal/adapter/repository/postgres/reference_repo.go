package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// referenceRepository implements domain.ReferenceRepository
type referenceRepository struct {
	db *DB
}

// NewReferenceRepository creates a new reference data repository
func NewReferenceRepository(db *DB) domain.ReferenceRepository {
	return &referenceRepository{db: db}
}

// ListAssetClasses retrieves all asset classes ordered by name
func (r *referenceRepository) ListAssetClasses(ctx context.Context) ([]*domain.AssetClass, error) {
	query := `
		SELECT id, name, risk_level
		FROM asset_classes
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset classes: %w", err)
	}
	defer rows.Close()

	classes := make([]*domain.AssetClass, 0)
	for rows.Next() {
		var c domain.AssetClass
		var risk sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &risk); err != nil {
			return nil, fmt.Errorf("failed to scan asset class: %w", err)
		}
		c.RiskLevel = risk.String
		classes = append(classes, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate asset classes: %w", err)
	}

	return classes, nil
}

// ListInstitutions retrieves all active institutions ordered by name
func (r *referenceRepository) ListInstitutions(ctx context.Context) ([]*domain.Institution, error) {
	query := `
		SELECT id, name, type, active
		FROM institutions
		WHERE active = TRUE
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	defer rows.Close()

	institutions := make([]*domain.Institution, 0)
	for rows.Next() {
		var inst domain.Institution
		var instType sql.NullString
		if err := rows.Scan(&inst.ID, &inst.Name, &instType, &inst.Active); err != nil {
			return nil, fmt.Errorf("failed to scan institution: %w", err)
		}
		inst.Type = instType.String
		institutions = append(institutions, &inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate institutions: %w", err)
	}

	return institutions, nil
}

// CreateAssetClass creates a new asset class
func (r *referenceRepository) CreateAssetClass(ctx context.Context, class *domain.AssetClass) error {
	query := `
		INSERT INTO asset_classes (id, name, risk_level)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, class.ID, class.Name, nullableString(class.RiskLevel))
	if err != nil {
		return fmt.Errorf("failed to create asset class: %w", err)
	}

	return nil
}
