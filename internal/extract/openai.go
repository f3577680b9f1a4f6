package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"snapspend-api/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a receipt data extraction engine. Given a photo of a purchase receipt,
return a JSON object with these fields:
  store_name: string, the merchant name, empty string if unreadable
  date: string, the purchase date as YYYY-MM-DD, empty string if unreadable
  category: string, one of Groceries, Dining, Transport, Utilities, Health, Shopping, Entertainment, Other
  total_amount: string, the grand total as a plain decimal, empty string if unreadable
  tax_amount: string, the tax portion as a plain decimal, empty string if none shown
  currency: string, 3-letter ISO code, empty string if unreadable
  items: array of {description: string, quantity: integer, unit_price: string, line_total: string}
Return ONLY the JSON object with no surrounding text.`

// rawFields mirrors the model's JSON output. All monetary fields arrive
// as strings so that unreadable values stay distinguishable from zero.
type rawFields struct {
	StoreName   string `json:"store_name"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	TotalAmount string `json:"total_amount"`
	TaxAmount   string `json:"tax_amount"`
	Currency    string `json:"currency"`
	Items       []struct {
		Description string `json:"description"`
		Quantity    int    `json:"quantity"`
		UnitPrice   string `json:"unit_price"`
		LineTotal   string `json:"line_total"`
	} `json:"items"`
}

// OpenAIExtractor extracts receipt fields using a vision-capable chat model
type OpenAIExtractor struct {
	client *openai.Client
	cfg    *config.ExtractionConfig
	logger *slog.Logger
}

// NewOpenAIExtractor creates an extractor backed by the OpenAI API
func NewOpenAIExtractor(cfg *config.ExtractionConfig, logger *slog.Logger) *OpenAIExtractor {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger,
	}
}

// Extract sends the image to the vision model and parses the structured result
func (e *OpenAIExtractor) Extract(ctx context.Context, image []byte, filename string) (*ReceiptFields, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	start := time.Now()
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType(filename), base64.StdEncoding.EncodeToString(image))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.cfg.Model,
		Temperature: float32(e.cfg.Temperature),
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Extract the receipt fields from this image.",
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		e.logger.Error("receipt extraction request failed",
			"filename", filename,
			"model", e.cfg.Model,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrExtractionFailed)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var raw rawFields
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		e.logger.Error("receipt extraction returned invalid JSON",
			"filename", filename,
			"error", err,
		)
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrExtractionFailed, err)
	}

	fields := e.normalize(&raw)

	e.logger.Info("receipt extraction completed",
		"filename", filename,
		"model", e.cfg.Model,
		"store_name", fields.StoreName,
		"items", len(fields.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return fields, nil
}

// normalize converts the model's string output into typed fields,
// dropping anything unparseable rather than failing the extraction
func (e *OpenAIExtractor) normalize(raw *rawFields) *ReceiptFields {
	fields := &ReceiptFields{
		StoreName:   strings.TrimSpace(raw.StoreName),
		Date:        ParseDate(raw.Date),
		Category:    strings.TrimSpace(raw.Category),
		TotalAmount: ParseAmount(raw.TotalAmount),
		TaxAmount:   ParseAmount(raw.TaxAmount),
		Currency:    NormalizeCurrency(raw.Currency, e.cfg.Currency),
	}

	for _, item := range raw.Items {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			continue
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		fields.Items = append(fields.Items, ItemFields{
			Description: desc,
			Quantity:    quantity,
			UnitPrice:   ParseAmount(item.UnitPrice),
			LineTotal:   ParseAmount(item.LineTotal),
		})
	}

	return fields
}

func mimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	case strings.HasSuffix(lower, ".heic"):
		return "image/heic"
	default:
		return "image/jpeg"
	}
}
