package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

const (
	defaultBaseURL        = "https://generativelanguage.googleapis.com"
	defaultNutritionModel = "gemini-3-flash-preview"
	defaultCoachModel     = "gemini-3-pro-preview"
)

type Client struct {
	APIKey         string
	BaseURL        string
	NutritionModel string
	CoachModel     string
	HTTPClient     *http.Client
}

// AnalyzeNutrition asks the model for a {name, calories} estimate of a free
// text food description. Missing fields come back as zero values.
func (c *Client) AnalyzeNutrition(ctx context.Context, description string) (model.NutritionEstimate, error) {
	req := generateRequest{
		Contents: []content{userText(fmt.Sprintf(
			"Analyze this food description and estimate the calories: %q. Return ONLY a JSON object with \"name\" and \"calories\" (integer).",
			description,
		))},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"name":     {Type: "STRING"},
					"calories": {Type: "NUMBER"},
				},
			},
		},
	}
	text, err := c.generate(ctx, firstNonEmpty(c.NutritionModel, defaultNutritionModel), req)
	if err != nil {
		return model.NutritionEstimate{}, err
	}
	var out model.NutritionEstimate
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &out); err != nil {
		return model.NutritionEstimate{}, fmt.Errorf("decode gemini nutrition json: %w", err)
	}
	return out, nil
}

// CoachReply sends the assembled instruction, prior turns and the new
// message. The service keeps no conversation state between calls.
func (c *Client) CoachReply(ctx context.Context, prompt model.CoachPrompt) (string, error) {
	req := generateRequest{}
	if strings.TrimSpace(prompt.SystemInstruction) != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: prompt.SystemInstruction}}}
	}
	for _, turn := range prompt.Turns {
		role := "user"
		if turn.Role == model.RoleModel {
			role = "model"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: turn.Text}}})
	}
	req.Contents = append(req.Contents, userText(prompt.Message))

	text, err := c.generate(ctx, firstNonEmpty(c.CoachModel, defaultCoachModel), req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty reply")
	}
	return text, nil
}

func (c *Client) generate(ctx context.Context, modelName string, payload generateRequest) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", fmt.Errorf("missing Gemini API key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, modelName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute gemini request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini request failed with status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func userText(text string) content {
	return content{Role: "user", Parts: []part{{Text: text}}}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

type schema struct {
	Type       string             `json:"type"`
	Properties map[string]*schema `json:"properties,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
