package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Client talks to the remote SmartSpend backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client for the given base URL. A zero timeout falls
// back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchDashboard implements API.
func (c *Client) FetchDashboard(ctx context.Context) (map[string]any, error) {
	body, err := c.get(ctx, "/dashboard")
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload, nil
}

// UploadReceipt implements API. The multipart boundary is computed by the
// transport layer; no Content-Type is forced beyond the one the writer
// produces.
func (c *Client) UploadReceipt(ctx context.Context, data []byte, filename, mimeType string) (UploadAck, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", mimeType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return UploadAck{}, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return UploadAck{}, fmt.Errorf("write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return UploadAck{}, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return UploadAck{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return UploadAck{}, err
	}

	var ack UploadAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return UploadAck{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return ack, nil
}

// DeletePurchase implements API. A missing id surfaces as the backend's
// status verbatim inside an *HTTPError.
func (c *Client) DeletePurchase(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/compras/%d", c.baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}

	if _, err := c.do(req); err != nil {
		return err
	}
	return nil
}

// Health implements API.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	body, err := c.get(ctx, "/health")
	if err != nil {
		return HealthStatus{}, err
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return HealthStatus{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return status, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

// do executes a request and normalizes transport failures into the gateway
// error taxonomy.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.DebugContext(req.Context(), "Backend request failed",
			"method", req.Method, "path", req.URL.Path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrMalformedResponse, err)
	}

	slog.DebugContext(req.Context(), "Backend request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
