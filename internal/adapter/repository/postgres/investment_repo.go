package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// investmentRepository implements domain.InvestmentRepository
type investmentRepository struct {
	db *DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *DB) domain.InvestmentRepository {
	return &investmentRepository{db: db}
}

// investmentColumns is the select list shared by all investment reads.
// The asset class name is joined in so the legacy label shape and the
// normalized shape both come back with a usable display name.
const investmentColumns = `
	i.id, i.user_id, i.invested_at, i.amount,
	i.asset_class_id, i.asset_class_label, ac.name,
	i.liquidity_type, i.maturity_date, i.institution_id, i.goal_id,
	i.created_at, i.updated_at
`

// GetByID retrieves an investment by its ID
func (r *investmentRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments i
		LEFT JOIN asset_classes ac ON ac.id = i.asset_class_id
		WHERE i.id = $1 AND i.user_id = $2
	`

	inv, err := scanInvestment(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("investment %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get investment by ID: %w", err)
	}

	return inv, nil
}

// List retrieves the owner's investments, newest first, optionally narrowed
// by asset class and inclusive date range
func (r *investmentRepository) List(ctx context.Context, ownerID uuid.UUID, filter domain.InvestmentFilter) ([]*domain.Investment, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + investmentColumns + `
		FROM investments i
		LEFT JOIN asset_classes ac ON ac.id = i.asset_class_id
		WHERE i.user_id = $1
	`)

	args := []interface{}{ownerID}
	if filter.AssetClassKey != "" {
		// The key is either a class id or a legacy free-text label
		args = append(args, filter.AssetClassKey)
		fmt.Fprintf(&sb, " AND (i.asset_class_id::text = $%d OR i.asset_class_label = $%d)", len(args), len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		fmt.Fprintf(&sb, " AND i.invested_at >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		fmt.Fprintf(&sb, " AND i.invested_at <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY i.invested_at DESC, i.created_at DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	investments := make([]*domain.Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		investments = append(investments, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate investments: %w", err)
	}

	return investments, nil
}

// Create creates a new investment
func (r *investmentRepository) Create(ctx context.Context, inv *domain.Investment) error {
	query := `
		INSERT INTO investments
			(id, user_id, invested_at, amount, asset_class_id, asset_class_label,
			 liquidity_type, maturity_date, institution_id, goal_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.OwnerID,
		inv.InvestedAt,
		inv.Amount.String(),
		nullableUUID(inv.AssetClass.ID),
		nullableString(inv.AssetClass.Label),
		string(inv.LiquidityType),
		nullableTime(inv.MaturityDate),
		nullableUUID(inv.InstitutionID),
		nullableUUID(inv.GoalID),
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}

	return nil
}

// Update rewrites all mutable fields of an existing investment
func (r *investmentRepository) Update(ctx context.Context, inv *domain.Investment) error {
	query := `
		UPDATE investments
		SET invested_at = $3, amount = $4, asset_class_id = $5, asset_class_label = $6,
		    liquidity_type = $7, maturity_date = $8, institution_id = $9, goal_id = $10,
		    updated_at = $11
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.OwnerID,
		inv.InvestedAt,
		inv.Amount.String(),
		nullableUUID(inv.AssetClass.ID),
		nullableString(inv.AssetClass.Label),
		string(inv.LiquidityType),
		nullableTime(inv.MaturityDate),
		nullableUUID(inv.InstitutionID),
		nullableUUID(inv.GoalID),
		inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	return requireAffected(result, "investment", inv.ID)
}

// Delete removes an investment
func (r *investmentRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}

	return requireAffected(result, "investment", id)
}

// SumByGoal returns the sum of amounts over the owner's investments linked
// to the given goal
func (r *investmentRepository) SumByGoal(ctx context.Context, ownerID, goalID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM investments
		WHERE user_id = $1 AND goal_id = $2
	`

	var sumStr string
	if err := r.db.QueryRowContext(ctx, query, ownerID, goalID).Scan(&sumStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum investments by goal: %w", err)
	}

	return domain.ParseAmount(sumStr), nil
}

// SumsByGoal returns per-goal amount sums for every goal the owner's
// investments are linked to
func (r *investmentRepository) SumsByGoal(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	query := `
		SELECT goal_id, COALESCE(SUM(amount), 0)
		FROM investments
		WHERE user_id = $1 AND goal_id IS NOT NULL
		GROUP BY goal_id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum investments by goal: %w", err)
	}
	defer rows.Close()

	sums := make(map[uuid.UUID]decimal.Decimal)
	for rows.Next() {
		var goalID uuid.UUID
		var sumStr string
		if err := rows.Scan(&goalID, &sumStr); err != nil {
			return nil, fmt.Errorf("failed to scan goal sum: %w", err)
		}
		sums[goalID] = domain.ParseAmount(sumStr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goal sums: %w", err)
	}

	return sums, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanInvestment reads one investment row in investmentColumns order
func scanInvestment(row scanner) (*domain.Investment, error) {
	var inv domain.Investment
	var amountStr string
	var classID, institutionID, goalID sql.NullString
	var classLabel, className sql.NullString
	var liquidity string
	var maturity sql.NullTime

	err := row.Scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.InvestedAt,
		&amountStr,
		&classID,
		&classLabel,
		&className,
		&liquidity,
		&maturity,
		&institutionID,
		&goalID,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// A malformed stored amount contributes 0 rather than failing the read
	inv.Amount = domain.ParseAmount(amountStr)
	inv.LiquidityType = domain.LiquidityType(liquidity)
	if maturity.Valid {
		m := maturity.Time
		inv.MaturityDate = &m
	}

	inv.AssetClass = domain.AssetClassRef{
		Label:      classLabel.String,
		InlineName: className.String,
	}
	classUUID, err := parseNullUUID(classID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse asset_class_id: %w", err)
	}
	inv.AssetClass.ID = classUUID

	if inv.InstitutionID, err = parseNullUUID(institutionID); err != nil {
		return nil, fmt.Errorf("failed to parse institution_id: %w", err)
	}
	if inv.GoalID, err = parseNullUUID(goalID); err != nil {
		return nil, fmt.Errorf("failed to parse goal_id: %w", err)
	}

	return &inv, nil
}

// parseNullUUID parses a nullable uuid column
func parseNullUUID(v sql.NullString) (*uuid.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nullableUUID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// requireAffected maps a zero-row write to domain.ErrNotFound
func requireAffected(result sql.Result, entity string, id uuid.UUID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
