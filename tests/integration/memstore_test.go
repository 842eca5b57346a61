package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// memStore is an in-memory implementation of the four repository interfaces,
// mirroring the store semantics the handlers rely on: owner scoping,
// newest-first investment listing, natural-key target upsert and
// goal-deletion unlinking.
type memStore struct {
	mu          sync.Mutex
	investments map[uuid.UUID]*domain.Investment
	goals       map[uuid.UUID]*domain.Goal
	targets     map[uuid.UUID]*domain.AllocationTarget
	classes     []*domain.AssetClass
}

func newMemStore() *memStore {
	return &memStore{
		investments: make(map[uuid.UUID]*domain.Investment),
		goals:       make(map[uuid.UUID]*domain.Goal),
		targets:     make(map[uuid.UUID]*domain.AllocationTarget),
	}
}

func copyInvestment(inv *domain.Investment) *domain.Investment {
	cp := *inv
	return &cp
}

func copyGoal(g *domain.Goal) *domain.Goal {
	cp := *g
	return &cp
}

func copyTarget(t *domain.AllocationTarget) *domain.AllocationTarget {
	cp := *t
	return &cp
}

func (s *memStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.investments[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return copyInvestment(inv), nil
}

func (s *memStore) List(ctx context.Context, ownerID uuid.UUID, filter domain.InvestmentFilter) ([]*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Investment, 0)
	for _, inv := range s.investments {
		if inv.OwnerID != ownerID {
			continue
		}
		if filter.AssetClassKey != "" && inv.AssetClass.Key() != filter.AssetClassKey {
			continue
		}
		if filter.DateFrom != nil && inv.InvestedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && inv.InvestedAt.After(*filter.DateTo) {
			continue
		}
		out = append(out, copyInvestment(inv))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].InvestedAt.After(out[j].InvestedAt)
	})
	return out, nil
}

func (s *memStore) Create(ctx context.Context, inv *domain.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.investments[inv.ID] = copyInvestment(inv)
	return nil
}

func (s *memStore) Update(ctx context.Context, inv *domain.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.investments[inv.ID]
	if !ok || stored.OwnerID != inv.OwnerID {
		return domain.ErrNotFound
	}
	s.investments[inv.ID] = copyInvestment(inv)
	return nil
}

func (s *memStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.investments[id]
	if !ok || inv.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(s.investments, id)
	return nil
}

func (s *memStore) SumByGoal(ctx context.Context, ownerID, goalID uuid.UUID) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := decimal.Zero
	for _, inv := range s.investments {
		if inv.OwnerID == ownerID && inv.GoalID != nil && *inv.GoalID == goalID {
			sum = sum.Add(inv.Amount)
		}
	}
	return sum, nil
}

func (s *memStore) SumsByGoal(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, inv := range s.investments {
		if inv.OwnerID == ownerID && inv.GoalID != nil {
			sums[*inv.GoalID] = sums[*inv.GoalID].Add(inv.Amount)
		}
	}
	return sums, nil
}

// goalStore exposes the goal half of memStore under a distinct method set
type goalStore struct {
	s *memStore
}

func (g *goalStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Goal, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	goal, ok := g.s.goals[id]
	if !ok || goal.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	return copyGoal(goal), nil
}

func (g *goalStore) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error) {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	out := make([]*domain.Goal, 0)
	for _, goal := range g.s.goals {
		if goal.OwnerID == ownerID {
			out = append(out, copyGoal(goal))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (g *goalStore) Create(ctx context.Context, goal *domain.Goal) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	g.s.goals[goal.ID] = copyGoal(goal)
	return nil
}

func (g *goalStore) Update(ctx context.Context, goal *domain.Goal) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	stored, ok := g.s.goals[goal.ID]
	if !ok || stored.OwnerID != goal.OwnerID {
		return domain.ErrNotFound
	}
	cp := copyGoal(goal)
	cp.InvestedAmount = stored.InvestedAmount
	g.s.goals[goal.ID] = cp
	return nil
}

func (g *goalStore) UpdateInvestedAmount(ctx context.Context, ownerID, goalID uuid.UUID, amount decimal.Decimal) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	stored, ok := g.s.goals[goalID]
	if !ok || stored.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	stored.InvestedAmount = amount
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *goalStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()

	stored, ok := g.s.goals[id]
	if !ok || stored.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(g.s.goals, id)

	// Referencing investments are unlinked, matching the FK's SET NULL
	for _, inv := range g.s.investments {
		if inv.GoalID != nil && *inv.GoalID == id {
			inv.GoalID = nil
		}
	}
	return nil
}

// targetStore exposes the allocation-target half of memStore
type targetStore struct {
	s *memStore
}

func (t *targetStore) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.AllocationTarget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	out := make([]*domain.AllocationTarget, 0)
	for _, target := range t.s.targets {
		if target.OwnerID == ownerID {
			out = append(out, copyTarget(target))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AssetClassID.String() < out[j].AssetClassID.String()
	})
	return out, nil
}

func (t *targetStore) Upsert(ctx context.Context, target *domain.AllocationTarget) (*domain.AllocationTarget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, existing := range t.s.targets {
		if existing.OwnerID == target.OwnerID && existing.AssetClassID == target.AssetClassID {
			existing.TargetPercent = target.TargetPercent
			existing.UpdatedAt = time.Now().UTC()
			return copyTarget(existing), nil
		}
	}
	t.s.targets[target.ID] = copyTarget(target)
	return copyTarget(target), nil
}

func (t *targetStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	stored, ok := t.s.targets[id]
	if !ok || stored.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(t.s.targets, id)
	return nil
}

// referenceStore exposes the global reference data half of memStore
type referenceStore struct {
	s *memStore
}

func (r *referenceStore) ListAssetClasses(ctx context.Context) ([]*domain.AssetClass, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.AssetClass, 0, len(r.s.classes))
	for _, c := range r.s.classes {
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *referenceStore) ListInstitutions(ctx context.Context) ([]*domain.Institution, error) {
	return []*domain.Institution{}, nil
}

func (r *referenceStore) CreateAssetClass(ctx context.Context, class *domain.AssetClass) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *class
	r.s.classes = append(r.s.classes, &cp)
	return nil
}
