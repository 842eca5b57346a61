package domain

import "github.com/google/uuid"

// AssetClass is global reference data: a category of investment used to
// group holdings (e.g. fixed income, equities). Not owned by any user.
type AssetClass struct {
	ID        uuid.UUID
	Name      string
	RiskLevel string // optional, empty when unknown
}

// Institution is global reference data: a financial institution holding
// investments. Not owned by any user.
type Institution struct {
	ID     uuid.UUID
	Name   string
	Type   string // optional, empty when unknown
	Active bool
}
