package reference

import (
	"context"

	"github.com/simaogato/patrimonio-backend/internal/domain"
)

// ReferenceService exposes global reference data (asset classes and
// institutions). Reference data is read-only for users.
type ReferenceService struct {
	Repo domain.ReferenceRepository
}

// NewReferenceService creates a new ReferenceService instance
func NewReferenceService(repo domain.ReferenceRepository) *ReferenceService {
	return &ReferenceService{Repo: repo}
}

// ListAssetClasses retrieves all asset classes ordered by name
func (s *ReferenceService) ListAssetClasses(ctx context.Context) ([]*domain.AssetClass, error) {
	return s.Repo.ListAssetClasses(ctx)
}

// ListInstitutions retrieves all active institutions ordered by name
func (s *ReferenceService) ListInstitutions(ctx context.Context) ([]*domain.Institution, error) {
	return s.Repo.ListInstitutions(ctx)
}
