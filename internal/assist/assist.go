// Package assist provides AI-backed helpers for recommendations, content
// moderation and place enrichment. A live OpenRouter backend is used when an
// API key is configured; otherwise, and on any live failure, answers come
// from a deterministic fallback so callers never see the backend being down.
package assist

import (
	"context"

	"github.com/fikaregister/fika-api/internal/config"
	"github.com/fikaregister/fika-api/internal/model"
	"go.uber.org/zap"
)

// Recommendation is one suggested place
type Recommendation struct {
	Name   string `json:"name"`
	City   string `json:"city"`
	Reason string `json:"reason"`
}

// RecommendationResult carries recommendations plus the backend's own
// confidence in them
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Explanation     string           `json:"explanation"`
	Confidence      float64          `json:"confidence"`
}

// Moderation is the verdict on a piece of user-generated text
type Moderation struct {
	IsAppropriate bool    `json:"is_appropriate"`
	ToxicityScore float64 `json:"toxicity_score"`
	ContainsSpam  bool    `json:"contains_spam"`
	Language      string  `json:"language"`
	Explanation   string  `json:"explanation"`
}

// Enrichment is suggested additional content for a place
type Enrichment struct {
	Description     string   `json:"description"`
	Specialties     []string `json:"specialties"`
	Features        []string `json:"features"`
	MetaDescription string   `json:"meta_description"`
}

// Oracle answers assistance queries
type Oracle interface {
	Recommend(ctx context.Context, preferences map[string]interface{}, city string, maxResults int) (*RecommendationResult, error)
	ModerateText(ctx context.Context, text string) (*Moderation, error)
	Enrich(ctx context.Context, place *model.Place) (*Enrichment, error)
}

// New builds the Oracle for the given configuration. Without an API key the
// fallback answers directly.
func New(cfg config.AssistConfig, logger *zap.Logger) Oracle {
	if cfg.APIKey == "" {
		logger.Info("assist backend not configured, using fallback responses")
		return &Fallback{}
	}
	return &failover{
		live:     newOpenRouter(cfg),
		fallback: &Fallback{},
		logger:   logger,
	}
}

// failover shields callers from live backend errors
type failover struct {
	live     Oracle
	fallback Oracle
	logger   *zap.Logger
}

func (f *failover) Recommend(ctx context.Context, preferences map[string]interface{}, city string, maxResults int) (*RecommendationResult, error) {
	result, err := f.live.Recommend(ctx, preferences, city, maxResults)
	if err != nil {
		f.logger.Warn("assist recommend failed, using fallback", zap.Error(err))
		return f.fallback.Recommend(ctx, preferences, city, maxResults)
	}
	return result, nil
}

func (f *failover) ModerateText(ctx context.Context, text string) (*Moderation, error) {
	result, err := f.live.ModerateText(ctx, text)
	if err != nil {
		f.logger.Warn("assist moderation failed, using fallback", zap.Error(err))
		return f.fallback.ModerateText(ctx, text)
	}
	return result, nil
}

func (f *failover) Enrich(ctx context.Context, place *model.Place) (*Enrichment, error) {
	result, err := f.live.Enrich(ctx, place)
	if err != nil {
		f.logger.Warn("assist enrichment failed, using fallback", zap.Error(err))
		return f.fallback.Enrich(ctx, place)
	}
	return result, nil
}
