package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// Service fetches the companion catalog from the external persona API.
// The backend only ever needs an existence check at room-creation time
// plus the raw list for the catalog endpoint; catalog semantics live
// upstream.
type Service struct {
	baseURL string
	client  *http.Client
}

func NewService(baseURL string) *Service {
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchCompanions returns the catalog. When the upstream API is down or
// returns garbage, a small built-in fallback list keeps the product
// usable instead of failing the call flow.
func (s *Service) FetchCompanions(ctx context.Context) []models.Companion {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		log.Printf("ERROR: building companion request: %v", err)
		return mockCompanions()
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("ERROR: fetching companions from %s: %v", s.baseURL, err)
		return mockCompanions()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ERROR: companion API returned %s", resp.Status)
		return mockCompanions()
	}

	var companions []models.Companion
	if err := json.NewDecoder(resp.Body).Decode(&companions); err != nil {
		log.Printf("ERROR: decoding companion response: %v", err)
		return mockCompanions()
	}

	log.Printf("fetched %d companions", len(companions))
	return companions
}

// CompanionByID resolves a single companion, or KindNotFound.
func (s *Service) CompanionByID(ctx context.Context, id string) (*models.Companion, error) {
	for _, c := range s.FetchCompanions(ctx) {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, errs.New(errs.KindNotFound, fmt.Sprintf("companion %s not found", id))
}

func mockCompanions() []models.Companion {
	log.Println("using mock companions as fallback")
	return []models.Companion{
		{
			ID:          "companion_1",
			Name:        "Alex",
			AvatarURL:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&h=200&fit=crop&crop=face",
			Description: "A friendly and helpful AI companion",
			VoiceID:     "voice_1",
			Personality: "Friendly and supportive",
			Metadata:    map[string]string{"age": "25"},
		},
		{
			ID:          "companion_2",
			Name:        "Sarah",
			AvatarURL:   "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=200&h=200&fit=crop&crop=face",
			Description: "An intelligent and curious AI companion",
			VoiceID:     "voice_2",
			Personality: "Intelligent and curious",
			Metadata:    map[string]string{"age": "28"},
		},
		{
			ID:          "companion_3",
			Name:        "Marcus",
			AvatarURL:   "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200&h=200&fit=crop&crop=face",
			Description: "A creative and artistic AI companion",
			VoiceID:     "voice_3",
			Personality: "Creative and artistic",
			Metadata:    map[string]string{"age": "30"},
		},
	}
}
