package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"cloudstream/internal/domain"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel    = "gemini-2.5-flash"
	defaultTimeout  = 30 * time.Second
)

// Client implements domain.Refiner against the Generative Language REST API.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a refinement client. An empty apiKey produces a client
// whose calls always report ErrRefinementUnavailable.
func NewClient(apiKey, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		endpoint: defaultEndpoint,
		model:    model,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// candidate is the file context handed to the model
type candidate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MIMEType    string `json:"mimeType"`
	Description string `json:"description"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Config   genConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type genConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Refine asks the model which candidate ids are relevant to the query.
// Empty output, transport failure, or an unparseable response all surface as
// ErrRefinementUnavailable; the caller falls back to unfiltered matches.
func (c *Client) Refine(ctx context.Context, query string, candidates []domain.FileRecord) ([]string, error) {
	if c.apiKey == "" {
		return nil, domain.ErrRefinementUnavailable
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(query, candidates)}}}},
		Config:   genConfig{Temperature: 0, MaxOutputTokens: 512},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRefinementUnavailable, err)
	}

	reqURL := fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRefinementUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("refinement request", "model", c.model, "candidates", len(candidates))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("refinement request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrRefinementUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRefinementUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("refinement API error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrRefinementUnavailable, resp.StatusCode)
	}

	ids := ParseIDResponse(extractText(respBody))
	c.logger.Debug("refinement complete", "matched", len(ids))
	return ids, nil
}

func buildPrompt(query string, candidates []domain.FileRecord) string {
	ctx := make([]candidate, len(candidates))
	for i, f := range candidates {
		desc := f.Description
		if desc == "" {
			desc = "No description provided"
		}
		ctx[i] = candidate{ID: f.ID, Name: f.Name, MIMEType: f.MIMEType, Description: desc}
	}
	fileContext, _ := json.Marshal(ctx)

	var b strings.Builder
	b.WriteString("You are an intelligent file system assistant.\n")
	fmt.Fprintf(&b, "User Query: %q\n\n", query)
	b.WriteString("Here is the list of available files:\n")
	b.Write(fileContext)
	b.WriteString("\n\nReturn a list of file IDs that are relevant to the user's query.\n")
	b.WriteString("Only return the IDs as a JSON array of strings.\n")
	return b.String()
}

// extractText pulls the generated text out of the response envelope.
func extractText(body []byte) string {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return string(body)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return resp.Candidates[0].Content.Parts[0].Text
}

var jsonArrayPattern = regexp.MustCompile(`\[[^\]]*\]`)

// ParseIDResponse parses the model output into an id list. The model is
// expected to return a JSON array of strings; when it wraps the array in
// prose or a code fence, the first bracketed substring is recovered instead.
// Unparseable output yields nil.
func ParseIDResponse(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if ids, ok := parseStringArray(text); ok {
		return ids
	}

	if match := jsonArrayPattern.FindString(text); match != "" {
		if ids, ok := parseStringArray(match); ok {
			return ids
		}
	}

	return nil
}

func parseStringArray(text string) ([]string, bool) {
	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, false
	}
	return ids, true
}
