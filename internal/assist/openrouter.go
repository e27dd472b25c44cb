package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fikaregister/fika-api/internal/config"
	"github.com/fikaregister/fika-api/internal/model"
)

// openRouter talks to an OpenAI-compatible chat completions endpoint
type openRouter struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func newOpenRouter(cfg config.AssistConfig) *openRouter {
	return &openRouter{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *openRouter) Recommend(ctx context.Context, preferences map[string]interface{}, city string, maxResults int) (*RecommendationResult, error) {
	prefs, err := json.Marshal(preferences)
	if err != nil {
		return nil, fmt.Errorf("failed to encode preferences: %w", err)
	}

	focus := ""
	if city != "" {
		focus = fmt.Sprintf("Focusing on %s, ", city)
	}
	prompt := fmt.Sprintf(`Based on these user preferences: %s
%srecommend %d traditional Swedish fika places.

Consider traditional Swedish pastries, atmosphere and authenticity, price
range preferences, special dietary needs and location preferences.

Respond in JSON format with keys: recommendations (array of objects with
name, city, reason), explanation, confidence.`, prefs, focus, maxResults)

	content, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result RecommendationResult
	if err := json.Unmarshal(extractJSON(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return &result, nil
}

func (o *openRouter) ModerateText(ctx context.Context, text string) (*Moderation, error) {
	prompt := fmt.Sprintf(`Analyze this review for a Swedish fika location and determine:
1. Is it appropriate and respectful?
2. Toxicity level (0.0 to 1.0, where 0 is completely safe)
3. Does it contain spam or promotional content?
4. What language is it in? (language code)
5. Brief explanation of the assessment

Text to analyze: "%s"

Respond in JSON format with keys: is_appropriate, toxicity_score,
contains_spam, language, explanation.`, text)

	content, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result Moderation
	if err := json.Unmarshal(extractJSON(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse moderation verdict: %w", err)
	}
	return &result, nil
}

func (o *openRouter) Enrich(ctx context.Context, place *model.Place) (*Enrichment, error) {
	description := "No description available"
	if place.Description != nil && *place.Description != "" {
		description = *place.Description
	}
	prompt := fmt.Sprintf(`Analyze this Swedish fika location and suggest enrichments:

Name: %s
City: %s
Current description: %s
Specialties: %s

Provide an improved description focusing on Swedish fika culture, suggested
traditional Swedish specialties if missing, recommended features and an
SEO-friendly meta description.

Respond in JSON format with keys: description, specialties, features,
meta_description.`, place.Name, place.City, description, strings.Join(place.FikaSpecialties, ", "))

	content, err := o.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result Enrichment
	if err := json.Unmarshal(extractJSON(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse enrichment: %w", err)
	}
	return &result, nil
}

func (o *openRouter) complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are an assistant for a Swedish fika place directory. Always answer with valid JSON when asked for JSON."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr chatError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("assist API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("assist API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// extractJSON strips markdown code fences and surrounding prose that chat
// models wrap around JSON payloads.
func extractJSON(content string) []byte {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "```"); start >= 0 {
		content = content[start+3:]
		content = strings.TrimPrefix(content, "json")
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}
	content = strings.TrimSpace(content)
	if start := strings.IndexAny(content, "{["); start > 0 {
		content = content[start:]
	}
	return []byte(content)
}
