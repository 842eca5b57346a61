package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// ClassRow is one asset class with at least one investment: its total, its
// share of the total patrimony, and the drift against the configured target.
// TargetPercent and DiffPercent are nil when no target is configured for the
// class; "no target" is a distinct state from "target is 0%".
type ClassRow struct {
	ClassKey      string
	Name          string
	TotalAmount   decimal.Decimal
	RealPercent   float64
	TargetPercent *float64
	DiffPercent   *float64
}

// GoalRow is one goal with its derived progress
type GoalRow struct {
	ID              uuid.UUID
	Title           string
	TargetAmount    decimal.Decimal
	InvestedAmount  decimal.Decimal
	ProgressPercent float64
	Priority        int
}

// Snapshot is the fully derived dashboard state. It is constructed fresh on
// every load from the current entity lists and never cached or mutated.
type Snapshot struct {
	TotalPatrimony decimal.Decimal
	Classes        []ClassRow
	Goals          []GoalRow
	// TargetTotalPercent sums every configured allocation target, including
	// classes that have no class row because nothing is invested in them
	TargetTotalPercent float64
	Insights           []Insight
}

// DashboardService joins investments, goals, allocation targets and asset
// class reference data into a dashboard snapshot
type DashboardService struct {
	InvestmentRepo domain.InvestmentRepository
	GoalRepo       domain.GoalRepository
	TargetRepo     domain.AllocationTargetRepository
	ReferenceRepo  domain.ReferenceRepository
	Now            func() time.Time // injected so insight rules are testable
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	investmentRepo domain.InvestmentRepository,
	goalRepo domain.GoalRepository,
	targetRepo domain.AllocationTargetRepository,
	referenceRepo domain.ReferenceRepository,
) *DashboardService {
	return &DashboardService{
		InvestmentRepo: investmentRepo,
		GoalRepo:       goalRepo,
		TargetRepo:     targetRepo,
		ReferenceRepo:  referenceRepo,
		Now:            time.Now,
	}
}

// Load fetches the four entity lists and aggregates them into a snapshot.
// The fetches are independent reads and run concurrently; if any of them
// fails the whole load fails (no partial dashboard).
func (s *DashboardService) Load(ctx context.Context, ownerID uuid.UUID) (*Snapshot, error) {
	var (
		investments []*domain.Investment
		goals       []*domain.Goal
		targets     []*domain.AllocationTarget
		classes     []*domain.AssetClass
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		investments, err = s.InvestmentRepo.List(gctx, ownerID, domain.InvestmentFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.GoalRepo.List(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		targets, err = s.TargetRepo.List(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		classes, err = s.ReferenceRepo.ListAssetClasses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	snap := Aggregate(investments, goals, targets, classes)
	snap.Insights = EvaluateInsights(snap, investments, s.Now())

	return snap, nil
}

// Aggregate derives the dashboard snapshot from raw entity lists.
// Pure: no clock, no store. Insights are evaluated separately because they
// additionally need the load time.
// Logic:
//  1. Build the class-name lookup
//  2. Total patrimony = sum of all investment amounts
//  3. Group investment amounts by asset class reference
//  4. Index configured targets by class
//  5. Emit one row per class that has at least one investment; classes with
//     only a target and no investment get no row
//  6. Sort class rows by total amount descending, goal rows by priority
//     ascending (both stable)
func Aggregate(
	investments []*domain.Investment,
	goals []*domain.Goal,
	targets []*domain.AllocationTarget,
	classes []*domain.AssetClass,
) *Snapshot {
	nameByID := make(map[string]string, len(classes))
	for _, c := range classes {
		nameByID[c.ID.String()] = c.Name
	}

	totalPatrimony := decimal.Zero
	totalByClass := make(map[string]decimal.Decimal)
	refByClass := make(map[string]domain.AssetClassRef)
	classOrder := make([]string, 0)

	for _, inv := range investments {
		totalPatrimony = totalPatrimony.Add(inv.Amount)

		key := inv.AssetClass.Key()
		if _, seen := totalByClass[key]; !seen {
			classOrder = append(classOrder, key)
			refByClass[key] = inv.AssetClass
		}
		totalByClass[key] = totalByClass[key].Add(inv.Amount)
	}

	targetByClass := make(map[string]decimal.Decimal, len(targets))
	targetTotal := 0.0
	for _, t := range targets {
		targetByClass[t.AssetClassID.String()] = t.TargetPercent
		targetTotal += t.TargetPercent.InexactFloat64()
	}

	rows := make([]ClassRow, 0, len(totalByClass))
	for _, key := range classOrder {
		total := totalByClass[key]
		row := ClassRow{
			ClassKey:    key,
			Name:        resolveClassName(refByClass[key], nameByID),
			TotalAmount: total,
			RealPercent: domain.Percent(total, totalPatrimony),
		}
		if target, ok := targetByClass[key]; ok {
			tp := target.InexactFloat64()
			diff := row.RealPercent - tp
			row.TargetPercent = &tp
			row.DiffPercent = &diff
		}
		rows = append(rows, row)
	}

	// Largest holdings first; ties keep input order
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalAmount.GreaterThan(rows[j].TotalAmount)
	})

	goalRows := make([]GoalRow, 0, len(goals))
	for _, g := range goals {
		goalRows = append(goalRows, GoalRow{
			ID:              g.ID,
			Title:           g.Title,
			TargetAmount:    g.TargetAmount,
			InvestedAmount:  g.InvestedAmount,
			ProgressPercent: domain.SafeProgress(g.InvestedAmount, g.TargetAmount),
			Priority:        g.Priority,
		})
	}
	sort.SliceStable(goalRows, func(i, j int) bool {
		return goalRows[i].Priority < goalRows[j].Priority
	})

	return &Snapshot{
		TotalPatrimony:     totalPatrimony,
		Classes:            rows,
		Goals:              goalRows,
		TargetTotalPercent: targetTotal,
	}
}

// resolveClassName resolves the display name for a class reference:
// reference-data lookup by id, then the name the store embedded inline,
// then the raw label, then a placeholder
func resolveClassName(ref domain.AssetClassRef, nameByID map[string]string) string {
	if ref.ID != nil {
		if name, ok := nameByID[ref.ID.String()]; ok {
			return name
		}
	}
	if ref.InlineName != "" {
		return ref.InlineName
	}
	if ref.Label != "" {
		return ref.Label
	}
	return "—"
}
