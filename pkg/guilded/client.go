package guilded

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mywio/guilded-relay/pkg/core"
)

// DefaultBaseURL is where Guilded serves webhook executions.
const DefaultBaseURL = "https://media.guilded.gg"

// maxResponseBytes caps how much of a Guilded response is relayed back.
const maxResponseBytes = 64 << 10

// ErrDelivery wraps transport failures talking to Guilded. A non-2xx response
// is not an ErrDelivery; the status is returned to the caller as is.
var ErrDelivery = errors.New("guilded delivery failed")

// Response is what Guilded answered to a webhook execution.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client executes Guilded webhooks.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a client posting to baseURL. A nil httpClient uses
// http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// WebhookURL is the execution endpoint for a webhook id/token pair.
func (c *Client) WebhookURL(id string, token core.Secret) string {
	return fmt.Sprintf("%s/webhooks/%s/%s", c.baseURL, url.PathEscape(id), url.PathEscape(token.Value))
}

// Execute posts msg to the webhook. No retries are attempted.
func (c *Client) Execute(ctx context.Context, id string, token core.Secret, msg Message) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.WebhookURL(id, token), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the full URL, token included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrDelivery, err)
	}

	c.logger.DebugContext(ctx, "Guilded webhook executed", "webhook_id", id, "token", token, "status", resp.StatusCode)
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
