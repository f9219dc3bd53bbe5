// Package extraction calls the language-model document extraction service
// that turns a supplier price list (PDF or image) into structured rows.
package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/tyredesk/tyre-service/internal/types"
)

const systemPrompt = `You are a specialized AI for extracting tyre price information from price lists. ` +
	`Extract all tyre details including size (format: WIDTH/ASPECT_RATIO/DIAMETER like 205/55R16), ` +
	`brand, model, and cost. Return the data as a JSON array with objects containing these fields: ` +
	`size, brand, model, cost (as a number). Do not include any other text in your response.`

// jsonArrayPattern rescues a JSON array the model wrapped in prose.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// Request is one extraction call: the raw document plus routing metadata.
type Request struct {
	File       []byte
	FileName   string
	SupplierID string
	MimeType   string
}

// Extractor is the boundary the ingestion pipeline depends on.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*types.ExtractionResult, error)
}

// Options configures the extraction client.
type Options struct {
	APIKey  string
	BaseURL string // defaults to the OpenAI API
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat completions endpoint with the
// document inlined as a base64 data URL. Single blocking attempt, no retry:
// a timeout or failure is an ingestion-wide failure, not a partial batch.
type Client struct {
	httpClient *http.Client
	opts       Options
	logger     zerolog.Logger
}

// NewClient creates an extraction client.
func NewClient(opts Options, logger zerolog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 120 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		logger:     logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Extract sends the document and decodes the extracted rows. The response
// is untrusted: callers must still run the rows through the ingestion
// validator.
func (c *Client) Extract(ctx context.Context, req Request) (*types.ExtractionResult, error) {
	if c.opts.APIKey == "" {
		return nil, fmt.Errorf("extraction API key not configured")
	}
	if len(req.File) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	mime := req.MimeType
	if mime == "" {
		mime = "application/pdf"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(req.File))

	body, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Extract all tyre information from this price list."},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			}},
		},
		MaxTokens:   4000,
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Info().
		Str("supplier_id", req.SupplierID).
		Str("file_name", req.FileName).
		Int("bytes", len(req.File)).
		Msg("Calling extraction service")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("extraction service error: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("extraction response contained no choices")
	}

	rows, err := decodeRows(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("supplier_id", req.SupplierID).
		Int("rows", len(rows)).
		Msg("Extraction complete")

	return &types.ExtractionResult{
		SupplierID: req.SupplierID,
		Rows:       rows,
		Total:      len(rows),
	}, nil
}

// decodeRows parses the model output as a JSON array, falling back to the
// first bracketed array when the model wrapped it in prose. Anything else
// is a hard failure: unstructured output is never partially trusted.
func decodeRows(content string) ([]types.PriceListRow, error) {
	var rows []types.PriceListRow
	if err := json.Unmarshal([]byte(content), &rows); err == nil {
		return rows, nil
	}

	match := jsonArrayPattern.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("extraction response did not contain a JSON array")
	}
	if err := json.Unmarshal([]byte(match), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse extracted JSON array: %w", err)
	}
	return rows, nil
}
