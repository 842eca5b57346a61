package seeder

import (
	"context"

	"github.com/google/uuid"
	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// Fixed UUIDs for the default asset classes, so fresh deployments agree on
// reference ids
var (
	ClassFixedIncome   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	ClassEquities      = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	ClassRealEstate    = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	ClassInternational = uuid.MustParse("00000000-0000-0000-0000-000000000004")
	ClassCrypto        = uuid.MustParse("00000000-0000-0000-0000-000000000005")
)

// ReferenceSeeder ensures the default asset classes exist
type ReferenceSeeder struct {
	repo domain.ReferenceRepository
}

// NewReferenceSeeder creates a new ReferenceSeeder instance
func NewReferenceSeeder(repo domain.ReferenceRepository) *ReferenceSeeder {
	return &ReferenceSeeder{repo: repo}
}

// Seed creates any default asset class that is missing.
// Existing classes are left untouched, so renames done by operators survive.
func (s *ReferenceSeeder) Seed(ctx context.Context) error {
	defaults := []domain.AssetClass{
		{ID: ClassFixedIncome, Name: "Renda Fixa", RiskLevel: "low"},
		{ID: ClassEquities, Name: "Renda Variável", RiskLevel: "high"},
		{ID: ClassRealEstate, Name: "Fundos Imobiliários", RiskLevel: "medium"},
		{ID: ClassInternational, Name: "Internacional", RiskLevel: "medium"},
		{ID: ClassCrypto, Name: "Cripto", RiskLevel: "high"},
	}

	existing, err := s.repo.ListAssetClasses(ctx)
	if err != nil {
		return err
	}

	present := make(map[uuid.UUID]bool, len(existing))
	for _, c := range existing {
		present[c.ID] = true
	}

	for _, def := range defaults {
		if present[def.ID] {
			continue
		}
		class := def
		if err := s.repo.CreateAssetClass(ctx, &class); err != nil {
			return err
		}
	}

	return nil
}
