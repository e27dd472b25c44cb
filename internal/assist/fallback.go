package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/fikaregister/fika-api/internal/model"
)

// Fallback answers assistance queries without any external backend. The
// responses are deterministic so they stay cacheable and testable.
type Fallback struct{}

func (f *Fallback) Recommend(_ context.Context, _ map[string]interface{}, city string, maxResults int) (*RecommendationResult, error) {
	if city == "" {
		city = "Stockholm"
	}
	recommendations := []Recommendation{
		{Name: "Traditional Konditori", City: city, Reason: "Authentic Swedish pastries"},
		{Name: "Cozy Coffee Corner", City: city, Reason: "Perfect atmosphere for fika"},
		{Name: "Historic Bakery", City: city, Reason: "Rich Swedish heritage"},
	}
	if maxResults >= 0 && maxResults < len(recommendations) {
		recommendations = recommendations[:maxResults]
	}
	return &RecommendationResult{
		Recommendations: recommendations,
		Explanation:     "Mock recommendations based on your preferences (AI services not available)",
		Confidence:      0.5,
	}, nil
}

func (f *Fallback) ModerateText(_ context.Context, text string) (*Moderation, error) {
	lower := strings.ToLower(text)
	containsSpam := strings.Contains(lower, "spam")

	language := "en"
	for _, word := range []string{"fika", "kaffe", "kaka"} {
		if strings.Contains(lower, word) {
			language = "sv"
			break
		}
	}

	return &Moderation{
		IsAppropriate: len(text) > 0 && !containsSpam && !strings.Contains(lower, "hate"),
		ToxicityScore: 0.1,
		ContainsSpam:  containsSpam,
		Language:      language,
		Explanation:   "Mock moderation result (AI services not available)",
	}, nil
}

func (f *Fallback) Enrich(_ context.Context, place *model.Place) (*Enrichment, error) {
	return &Enrichment{
		Description:     fmt.Sprintf("%s offers an authentic Swedish fika experience in %s.", place.Name, place.City),
		Specialties:     []string{"Kanelbullar", "Coffee", "Traditional pastries"},
		Features:        []string{"Traditional atmosphere", "Local favorite"},
		MetaDescription: fmt.Sprintf("Experience traditional Swedish fika at %s in %s.", place.Name, place.City),
	}, nil
}
