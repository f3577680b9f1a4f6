package extract

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snapspend-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubExtraction = `{
	"store_name": "Aling Nena's Store",
	"date": "2025-06-15",
	"category": "Groceries",
	"total_amount": "450.00",
	"tax_amount": "48.21",
	"currency": "₱",
	"items": [
		{"description": "Rice 5kg", "quantity": 1, "unit_price": "250.00", "line_total": "250.00"},
		{"description": "Eggs", "quantity": 0, "unit_price": "100.00", "line_total": "200.00"},
		{"description": "   ", "quantity": 1, "unit_price": "", "line_total": ""}
	]
}`

// stubChatServer records the last chat completion request body and answers
// every call with the given message content.
func stubChatServer(t *testing.T, content string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, captured))

		w.Header().Set("Content-Type", "application/json")
		response := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func newTestExtractor(baseURL string) *OpenAIExtractor {
	cfg := &config.ExtractionConfig{
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Temperature: 0.2,
		Currency:    "PHP",
	}
	return NewOpenAIExtractor(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExtract_RoundTrip(t *testing.T) {
	var captured map[string]interface{}
	srv := stubChatServer(t, stubExtraction, &captured)
	defer srv.Close()

	extractor := newTestExtractor(srv.URL + "/v1")
	fields, err := extractor.Extract(context.Background(), []byte("fake image bytes"), "receipt.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Aling Nena's Store", fields.StoreName)
	require.NotNil(t, fields.Date)
	assert.Equal(t, "2025-06-15", fields.Date.Format("2006-01-02"))
	assert.Equal(t, "Groceries", fields.Category)
	require.NotNil(t, fields.TotalAmount)
	assert.Equal(t, "450", fields.TotalAmount.String())
	assert.Equal(t, "PHP", fields.Currency)

	// blank descriptions are dropped, zero quantities floor to 1
	require.Len(t, fields.Items, 2)
	assert.Equal(t, "Rice 5kg", fields.Items[0].Description)
	assert.Equal(t, 1, fields.Items[0].Quantity)
	assert.Equal(t, "Eggs", fields.Items[1].Description)
	assert.Equal(t, 1, fields.Items[1].Quantity)
}

func TestExtract_ForwardsModelSettings(t *testing.T) {
	var captured map[string]interface{}
	srv := stubChatServer(t, stubExtraction, &captured)
	defer srv.Close()

	extractor := newTestExtractor(srv.URL + "/v1")
	_, err := extractor.Extract(context.Background(), []byte("fake image bytes"), "receipt.jpg")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.InDelta(t, 0.2, captured["temperature"], 0.001)

	format, ok := captured["response_format"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "json_object", format["type"])
}

func TestExtract_EmptyImage(t *testing.T) {
	extractor := newTestExtractor("")
	_, err := extractor.Extract(context.Background(), nil, "receipt.jpg")
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestExtract_InvalidJSON(t *testing.T) {
	var captured map[string]interface{}
	srv := stubChatServer(t, "sorry, I could not read that", &captured)
	defer srv.Close()

	extractor := newTestExtractor(srv.URL + "/v1")
	_, err := extractor.Extract(context.Background(), []byte("fake image bytes"), "receipt.jpg")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}
