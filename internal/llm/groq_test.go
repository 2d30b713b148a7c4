package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"meal-planner/internal/config"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedGroq(t *testing.T) *GroqClient {
	t.Helper()
	c := NewGroqClient(&config.Config{GroqAPIKey: "test-key"})
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestGroqClient_GenerateContent(t *testing.T) {
	c := newMockedGroq(t)

	httpmock.RegisterResponder(http.MethodPost, groqAPIURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))

			var body groqRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			assert.Equal(t, groqModel, body.Model)
			assert.Equal(t, "json_object", body.ResponseFormat["type"])
			require.Len(t, body.Messages, 1)
			assert.Equal(t, "extract this", body.Messages[0].Content)

			return httpmock.NewStringResponse(http.StatusOK, `{
				"model": "llama-3.3-70b-versatile",
				"choices": [{"message": {"role": "assistant", "content": "{\"name\":\"Soup\"}"}}],
				"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
			}`), nil
		})

	resp, err := c.GenerateContent(context.Background(), "extract this")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Soup"}`, resp.Content)
	assert.Equal(t, Usage{Model: groqModel, PromptTokens: 12, CompletionTokens: 5, TotalTokens: 17}, resp.Usage)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGroqClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error": {"message": "invalid key"}}`},
		{"server_error", http.StatusInternalServerError, `oops`},
		{"invalid_json", http.StatusOK, `{invalid`},
		{"no_choices", http.StatusOK, `{"choices": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMockedGroq(t)
			httpmock.RegisterResponder(http.MethodPost, groqAPIURL, httpmock.NewStringResponder(tt.status, tt.body))

			_, err := c.GenerateContent(context.Background(), "prompt")
			require.Error(t, err)
		})
	}
}

func TestNewTextGenerator(t *testing.T) {
	ctx := context.Background()

	gen, err := NewTextGenerator(ctx, &config.Config{LLMProvider: "groq"})
	require.NoError(t, err)
	assert.Nil(t, gen, "no key means no generator")

	gen, err = NewTextGenerator(ctx, &config.Config{LLMProvider: "groq", GroqAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GroqClient{}, gen)

	_, err = NewTextGenerator(ctx, &config.Config{LLMProvider: "mystery"})
	assert.Error(t, err)
}
