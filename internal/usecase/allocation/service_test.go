package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/patrimonio-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAllocationTargetRepository is a mock implementation of AllocationTargetRepository for testing
type MockAllocationTargetRepository struct {
	mock.Mock
}

func (m *MockAllocationTargetRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.AllocationTarget, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AllocationTarget), args.Error(1)
}

func (m *MockAllocationTargetRepository) Upsert(ctx context.Context, target *domain.AllocationTarget) (*domain.AllocationTarget, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AllocationTarget), args.Error(1)
}

func (m *MockAllocationTargetRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func TestUpsert_FirstTarget(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAllocationTargetRepository)
	service := NewAllocationService(repo)

	ownerID := uuid.New()
	classID := uuid.New()

	repo.On("List", ctx, ownerID).Return([]*domain.AllocationTarget{}, nil)
	repo.On("Upsert", ctx, mock.MatchedBy(func(tg *domain.AllocationTarget) bool {
		return tg.OwnerID == ownerID &&
			tg.AssetClassID == classID &&
			tg.TargetPercent.Equal(decimal.NewFromInt(60))
	})).Return(&domain.AllocationTarget{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AssetClassID:  classID,
		TargetPercent: decimal.NewFromInt(60),
	}, nil)

	saved, err := service.Upsert(ctx, ownerID, UpsertTargetInput{
		AssetClassID:  classID,
		TargetPercent: decimal.NewFromInt(60),
	})

	assert.NoError(t, err)
	assert.True(t, saved.TargetPercent.Equal(decimal.NewFromInt(60)))
	repo.AssertExpectations(t)
}

func TestUpsert_PercentOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAllocationTargetRepository)
	service := NewAllocationService(repo)

	_, err := service.Upsert(ctx, uuid.New(), UpsertTargetInput{
		AssetClassID:  uuid.New(),
		TargetPercent: decimal.NewFromInt(101),
	})

	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "Upsert")
}

func TestUpsert_TotalOverHundredRejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAllocationTargetRepository)
	service := NewAllocationService(repo)

	ownerID := uuid.New()
	existingClass := uuid.New()

	repo.On("List", ctx, ownerID).Return([]*domain.AllocationTarget{
		{ID: uuid.New(), OwnerID: ownerID, AssetClassID: existingClass, TargetPercent: decimal.NewFromInt(70)},
	}, nil)

	_, err := service.Upsert(ctx, ownerID, UpsertTargetInput{
		AssetClassID:  uuid.New(),
		TargetPercent: decimal.NewFromInt(40),
	})

	assert.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "100%")
	repo.AssertNotCalled(t, "Upsert")
}

func TestUpsert_ReplacingSameClassDoesNotDoubleCount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAllocationTargetRepository)
	service := NewAllocationService(repo)

	ownerID := uuid.New()
	classID := uuid.New()

	// Raising the same class from 70 to 90 keeps the total at 90, not 160
	repo.On("List", ctx, ownerID).Return([]*domain.AllocationTarget{
		{ID: uuid.New(), OwnerID: ownerID, AssetClassID: classID, TargetPercent: decimal.NewFromInt(70)},
	}, nil)
	repo.On("Upsert", ctx, mock.Anything).Return(&domain.AllocationTarget{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AssetClassID:  classID,
		TargetPercent: decimal.NewFromInt(90),
	}, nil)

	saved, err := service.Upsert(ctx, ownerID, UpsertTargetInput{
		AssetClassID:  classID,
		TargetPercent: decimal.NewFromInt(90),
	})

	assert.NoError(t, err)
	assert.True(t, saved.TargetPercent.Equal(decimal.NewFromInt(90)))
}

func TestUpsert_TotalExactlyHundredAllowed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAllocationTargetRepository)
	service := NewAllocationService(repo)

	ownerID := uuid.New()

	repo.On("List", ctx, ownerID).Return([]*domain.AllocationTarget{
		{ID: uuid.New(), OwnerID: ownerID, AssetClassID: uuid.New(), TargetPercent: decimal.NewFromInt(60)},
	}, nil)
	repo.On("Upsert", ctx, mock.Anything).Return(&domain.AllocationTarget{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AssetClassID:  uuid.New(),
		TargetPercent: decimal.NewFromInt(40),
	}, nil)

	_, err := service.Upsert(ctx, ownerID, UpsertTargetInput{
		AssetClassID:  uuid.New(),
		TargetPercent: decimal.NewFromInt(40),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpsert_ListFailurePropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAllocationTargetRepository)
	service := NewAllocationService(repo)

	ownerID := uuid.New()
	repo.On("List", ctx, ownerID).Return(nil, errors.New("timeout"))

	_, err := service.Upsert(ctx, ownerID, UpsertTargetInput{
		AssetClassID:  uuid.New(),
		TargetPercent: decimal.NewFromInt(10),
	})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Upsert")
}
