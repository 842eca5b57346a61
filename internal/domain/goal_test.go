package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoalValidate(t *testing.T) {
	goal := &Goal{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        "Reserva de emergência",
		TargetAmount: decimal.NewFromInt(10000),
		Priority:     1,
	}
	assert.NoError(t, goal.Validate())

	goal.Title = ""
	assert.EqualError(t, goal.Validate(), "goal title cannot be empty")

	goal.Title = "Reserva de emergência"
	goal.TargetAmount = decimal.NewFromInt(-1)
	assert.EqualError(t, goal.Validate(), "goal target amount cannot be negative")

	// A zero target is allowed; progress is simply 0
	goal.TargetAmount = decimal.Zero
	assert.NoError(t, goal.Validate())

	goal.Priority = -1
	assert.EqualError(t, goal.Validate(), "goal priority cannot be negative")
}

func TestAllocationTargetValidate(t *testing.T) {
	target := &AllocationTarget{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		AssetClassID:  uuid.New(),
		TargetPercent: decimal.NewFromInt(50),
	}
	assert.NoError(t, target.Validate())

	target.TargetPercent = decimal.NewFromInt(101)
	assert.EqualError(t, target.Validate(), "target percent must be between 0 and 100")

	target.TargetPercent = decimal.NewFromInt(-1)
	assert.EqualError(t, target.Validate(), "target percent must be between 0 and 100")

	// Both boundaries are valid values
	target.TargetPercent = decimal.Zero
	assert.NoError(t, target.Validate())
	target.TargetPercent = decimal.NewFromInt(100)
	assert.NoError(t, target.Validate())

	target.AssetClassID = uuid.Nil
	assert.EqualError(t, target.Validate(), "allocation target must reference an asset class")
}
