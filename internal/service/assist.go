package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fikaregister/fika-api/internal/assist"
)

const (
	defaultRecommendations = 5
	maxRecommendations     = 20
)

// Recommend asks the oracle for place suggestions matching the preferences
func (s *Service) Recommend(ctx context.Context, preferences map[string]interface{}, city string, maxResults int) (*assist.RecommendationResult, error) {
	if maxResults <= 0 {
		maxResults = defaultRecommendations
	}
	if maxResults > maxRecommendations {
		maxResults = maxRecommendations
	}
	return s.oracle.Recommend(ctx, preferences, city, maxResults)
}

// ModerateText returns the oracle's advisory verdict on a piece of text.
// The verdict never changes review state by itself.
func (s *Service) ModerateText(ctx context.Context, text string) (*assist.Moderation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text required: %w", ErrValidation)
	}
	return s.oracle.ModerateText(ctx, text)
}
