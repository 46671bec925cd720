package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mallkiller3-ctrl/daily-health/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return &Client{
		APIKey:     "demo",
		BaseURL:    ts.URL,
		HTTPClient: ts.Client(),
	}
}

func replyWith(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}}},
		},
	})
}

func TestAnalyzeNutritionParsesJSONReply(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotReq)
		replyWith(w, `{"name": "사과", "calories": 95}`)
	})

	got, err := c.AnalyzeNutrition(context.Background(), "사과 1개")
	require.NoError(t, err)
	assert.Equal(t, model.NutritionEstimate{Name: "사과", Calories: 95}, got)
	assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", gotPath)
	assert.Equal(t, "demo", gotKey)
	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMIMEType)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "사과 1개")
}

func TestAnalyzeNutritionToleratesPartialReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		replyWith(w, "```json\n{}\n```")
	})
	got, err := c.AnalyzeNutrition(context.Background(), "뭔가")
	require.NoError(t, err)
	assert.Equal(t, model.NutritionEstimate{}, got)
}

func TestAnalyzeNutritionRejectsNonJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		replyWith(w, "I think about 100 kcal")
	})
	_, err := c.AnalyzeNutrition(context.Background(), "뭔가")
	assert.Error(t, err)
}

func TestGenerateSurfacesAPIErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded"}}`))
	})
	_, err := c.CoachReply(context.Background(), model.CoachPrompt{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	c := &Client{}
	_, err := c.AnalyzeNutrition(context.Background(), "x")
	assert.ErrorContains(t, err, "missing Gemini API key")
}

func TestCoachReplySendsInstructionAndTurns(t *testing.T) {
	var gotReq generateRequest
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotReq)
		replyWith(w, "물을 충분히 드세요.")
	})
	c.CoachModel = "coach-test"

	reply, err := c.CoachReply(context.Background(), model.CoachPrompt{
		SystemInstruction: "당신은 코치입니다.",
		Turns: []model.ChatMessage{
			{Role: model.RoleUser, Text: "안녕"},
			{Role: model.RoleModel, Text: "안녕하세요"},
		},
		Message: "오늘 뭐 먹을까?",
	})
	require.NoError(t, err)
	assert.Equal(t, "물을 충분히 드세요.", reply)
	assert.Equal(t, "/v1beta/models/coach-test:generateContent", gotPath)
	require.NotNil(t, gotReq.SystemInstruction)
	assert.Equal(t, "당신은 코치입니다.", gotReq.SystemInstruction.Parts[0].Text)
	require.Len(t, gotReq.Contents, 3)
	assert.Equal(t, "model", gotReq.Contents[1].Role)
	assert.Equal(t, "오늘 뭐 먹을까?", gotReq.Contents[2].Parts[0].Text)
}

func TestCoachReplyRejectsEmptyText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		replyWith(w, "  ")
	})
	_, err := c.CoachReply(context.Background(), model.CoachPrompt{Message: "hi"})
	assert.Error(t, err)
}
