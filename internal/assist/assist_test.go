package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fikaregister/fika-api/internal/config"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFallback_Recommend(t *testing.T) {
	f := &Fallback{}
	ctx := context.Background()

	t.Run("Defaults to Stockholm", func(t *testing.T) {
		result, err := f.Recommend(ctx, nil, "", 5)
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 3)
		assert.Equal(t, "Stockholm", result.Recommendations[0].City)
		assert.Equal(t, 0.5, result.Confidence)
	})

	t.Run("Respects city and max results", func(t *testing.T) {
		result, err := f.Recommend(ctx, nil, "Malmö", 1)
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, "Malmö", result.Recommendations[0].City)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := f.Recommend(ctx, nil, "Lund", 3)
		require.NoError(t, err)
		b, err := f.Recommend(ctx, nil, "Lund", 3)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestFallback_ModerateText(t *testing.T) {
	f := &Fallback{}
	ctx := context.Background()

	tests := []struct {
		name        string
		text        string
		appropriate bool
		spam        bool
		language    string
	}{
		{"Swedish review", "Underbar fika med kanelbulle och kaffe", true, false, "sv"},
		{"English review", "Great cinnamon buns and coffee", true, false, "en"},
		{"Spam content", "Buy now! spam offer", false, true, "en"},
		{"Empty text", "", false, false, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := f.ModerateText(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.appropriate, verdict.IsAppropriate)
			assert.Equal(t, tt.spam, verdict.ContainsSpam)
			assert.Equal(t, tt.language, verdict.Language)
		})
	}
}

func TestFallback_Enrich(t *testing.T) {
	f := &Fallback{}
	place := &model.Place{Name: "Vetekatten", City: "Stockholm"}

	result, err := f.Enrich(context.Background(), place)
	require.NoError(t, err)
	assert.Contains(t, result.Description, "Vetekatten")
	assert.Contains(t, result.MetaDescription, "Stockholm")
	assert.NotEmpty(t, result.Specialties)
}

func TestOpenRouter_ModerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "anthropic/claude-3-haiku", req.Model)

		// Models often wrap JSON in code fences
		content := "```json\n" + `{"is_appropriate": true, "toxicity_score": 0.05, "contains_spam": false, "language": "sv", "explanation": "Polite review"}` + "\n```"
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	defer server.Close()

	o := newOpenRouter(config.AssistConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "anthropic/claude-3-haiku",
		Timeout: 5 * time.Second,
	})

	verdict, err := o.ModerateText(context.Background(), "Mysigt fik")
	require.NoError(t, err)
	assert.True(t, verdict.IsAppropriate)
	assert.Equal(t, "sv", verdict.Language)
	assert.Equal(t, 0.05, verdict.ToxicityScore)
}

func TestFailover_UsesFallbackOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded","code":429}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	oracle := &failover{
		live: newOpenRouter(config.AssistConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
			Model:   "anthropic/claude-3-haiku",
			Timeout: 5 * time.Second,
		}),
		fallback: &Fallback{},
		logger:   zap.NewNop(),
	}

	verdict, err := oracle.ModerateText(context.Background(), "trevligt fika")
	require.NoError(t, err)
	assert.Equal(t, "Mock moderation result (AI services not available)", verdict.Explanation)
}

func TestNew_WithoutKeyReturnsFallback(t *testing.T) {
	oracle := New(config.AssistConfig{}, zap.NewNop())
	_, ok := oracle.(*Fallback)
	assert.True(t, ok)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Plain JSON", `{"a":1}`, `{"a":1}`},
		{"Fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Fenced without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"Leading prose", `Here is the result: {"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(extractJSON(tt.content)))
		})
	}
}
