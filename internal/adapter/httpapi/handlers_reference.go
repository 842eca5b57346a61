package httpapi

import (
	"net/http"

	"github.com/google/uuid"
)

type assetClassResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	RiskLevel string    `json:"risk_level,omitempty"`
}

type institutionResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type,omitempty"`
}

// handleListAssetClasses lists all asset classes
func (s *Server) handleListAssetClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := s.reference.ListAssetClasses(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]assetClassResponse, 0, len(classes))
	for _, c := range classes {
		responses = append(responses, assetClassResponse{ID: c.ID, Name: c.Name, RiskLevel: c.RiskLevel})
	}
	s.writeJSON(w, http.StatusOK, responses)
}

// handleListInstitutions lists all active institutions
func (s *Server) handleListInstitutions(w http.ResponseWriter, r *http.Request) {
	institutions, err := s.reference.ListInstitutions(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	responses := make([]institutionResponse, 0, len(institutions))
	for _, inst := range institutions {
		responses = append(responses, institutionResponse{ID: inst.ID, Name: inst.Name, Type: inst.Type})
	}
	s.writeJSON(w, http.StatusOK, responses)
}
