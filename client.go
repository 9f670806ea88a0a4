package typerighter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Checker resolves a batch of validation inputs into findings. The
// network client implements it; tests substitute stubs.
type Checker interface {
	Check(ctx context.Context, inputs []ValidationInput) ([]ValidationOutput, error)
}

// serviceRequest is the wire request: one block of text per call.
type serviceRequest struct {
	Text string `json:"text"`
}

// serviceResponse is the wire response of the validation service.
type serviceResponse struct {
	Results []serviceResult `json:"results"`
}

type serviceResult struct {
	FromPos int    `json:"fromPos"`
	ToPos   int    `json:"toPos"`
	Message string `json:"message"`
	Rule    struct {
		Description string `json:"description"`
	} `json:"rule"`
	SuggestedReplacements []string `json:"suggestedReplacements"`
}

// HTTPChecker submits validation inputs to a remote service via HTTP
// POST. Any non-200 status or transport failure fails the whole batch;
// the lifecycle then re-queues the affected ranges for retry.
type HTTPChecker struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// HTTPCheckerOptions configures an HTTPChecker. The zero value is usable.
type HTTPCheckerOptions struct {
	// Client is the HTTP client to use; defaults to one with a 30s timeout.
	Client *http.Client

	// Logger receives request lifecycle events; defaults to slog.Default.
	Logger *slog.Logger
}

// NewHTTPChecker creates a checker posting to the given service URL.
func NewHTTPChecker(serviceURL string, opts HTTPCheckerOptions) *HTTPChecker {
	c := &HTTPChecker{
		url:    serviceURL,
		client: opts.Client,
		logger: opts.Logger,
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Check posts each input's text to the service and converts the results
// into validation outputs positioned in document coordinates.
func (c *HTTPChecker) Check(ctx context.Context, inputs []ValidationInput) ([]ValidationOutput, error) {
	var outputs []ValidationOutput
	for _, in := range inputs {
		results, err := c.checkOne(ctx, in.Text)
		if err != nil {
			c.logger.Warn("validation request failed",
				"input_id", in.ID, "from", in.Span.From, "to", in.Span.To, "error", err)
			return nil, err
		}
		c.logger.Debug("validation input resolved",
			"input_id", in.ID, "results", len(results))
		for _, r := range results {
			if r.FromPos < 0 || r.ToPos > len(in.Text) || r.FromPos > r.ToPos {
				continue
			}
			outputs = append(outputs, ValidationOutput{
				ID:          OutputID(in.ID, r.FromPos),
				Category:    r.Rule.Description,
				Annotation:  r.Message,
				Span:        Range{From: in.Span.From + r.FromPos, To: in.Span.From + r.ToPos},
				Text:        in.Text[r.FromPos:r.ToPos],
				Suggestions: r.SuggestedReplacements,
			})
		}
	}
	return outputs, nil
}

func (c *HTTPChecker) checkOne(ctx context.Context, text string) ([]serviceResult, error) {
	body, err := json.Marshal(serviceRequest{Text: text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s", ErrServiceStatus, resp.Status)
	}

	var decoded serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded.Results, nil
}
