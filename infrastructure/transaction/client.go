package transaction

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helixml/chickenrescue/internal/config"
)

const maxErrorBody = 512

type broadcastRequest struct {
	Symbol    string `json:"symbol"`
	Price     uint64 `json:"price"`
	Timestamp uint64 `json:"timestamp"`
}

type broadcastResponse struct {
	TxHash string `json:"tx_hash"`
}

type checkResponse struct {
	TxStatus string `json:"tx_status"`
}

// Client talks to a node's broadcast and check endpoints.
// Each call is a single request; nothing is retried or cached.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a Client for the node at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: config.DefaultNodeTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig builds a Client from node configuration. The HTTP
// transport tags every request with the caller's correlation id.
func NewClientFromConfig(cfg config.NodeConfig, logger *slog.Logger) *Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifySSL() {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via NODE_VERIFY_SSL=false
	}
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := &http.Client{
		Timeout:   cfg.Timeout(),
		Transport: NewCorrelationTransport(base, logger),
	}
	return NewClient(cfg.BaseURL(), WithHTTPClient(httpClient), WithLogger(logger))
}

// BaseURL returns the node URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Broadcast submits tx to the node and returns its receipt.
func (c *Client) Broadcast(ctx context.Context, tx Transaction) (Receipt, error) {
	const op = "broadcast"

	body, err := json.Marshal(broadcastRequest{
		Symbol:    tx.Symbol.String(),
		Price:     tx.Price.Value(),
		Timestamp: uint64(tx.Timestamp),
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("encode transaction: %w", err)
	}

	var resp broadcastResponse
	if err := c.do(ctx, op, http.MethodPost, c.baseURL+"/broadcast", body, &resp); err != nil {
		return Receipt{}, err
	}
	if resp.TxHash == "" {
		return Receipt{}, fmt.Errorf("%s: %w: missing tx_hash", op, ErrInvalidResponseBody)
	}

	c.logger.Info("transaction broadcast",
		slog.String("symbol", tx.Symbol.String()),
		slog.Uint64("price", tx.Price.Value()),
		slog.String("tx_hash", resp.TxHash),
	)
	return Receipt{Hash: resp.TxHash}, nil
}

// Monitor fetches the current status of a broadcast transaction.
func (c *Client) Monitor(ctx context.Context, hash string) (Status, error) {
	const op = "check"

	hash = strings.TrimSpace(hash)
	if hash == "" {
		return "", ErrEmptyHash
	}

	var resp checkResponse
	if err := c.do(ctx, op, http.MethodGet, c.baseURL+"/check/"+url.PathEscape(hash), nil, &resp); err != nil {
		return "", err
	}

	status, err := ParseStatus(resp.TxStatus)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrInvalidResponseBody, err)
	}

	c.logger.Debug("transaction status",
		slog.String("tx_hash", hash),
		slog.String("status", string(status)),
	)
	return status, nil
}

func (c *Client) do(ctx context.Context, op, method, target string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &RequestError{Op: op, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("node request",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidResponseBody, err)
	}
	return nil
}
