// Package gateway talks to the external SMS gateway that renders previews
// and dispatches messages.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"hvac-serwis-server/internal/sms"
	"hvac-serwis-server/pkg/logger"
)

// Client is an HTTP implementation of sms.PreviewService and sms.Sender.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a gateway client. The timeout bounds every request; the
// workflow controller itself performs no retries.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type previewResponse struct {
	Message string `json:"message"`
}

// PreviewForDevice renders the default reminder draft for a device.
func (c *Client) PreviewForDevice(ctx context.Context, req sms.PreviewRequest) (string, error) {
	var resp previewResponse
	if err := c.post(ctx, "/preview/device", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// PreviewTemplate renders a draft with the given custom template
// substituted server-side.
func (c *Client) PreviewTemplate(ctx context.Context, req sms.PreviewRequest) (string, error) {
	var resp previewResponse
	if err := c.post(ctx, "/preview/template", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Send dispatches a message. A non-2xx reply with a decodable body is
// returned as a structured result so the caller can surface the gateway's
// own error text.
func (c *Client) Send(ctx context.Context, req sms.SendRequest) (*sms.SendResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer httpResp.Body.Close()

	var result sms.SendResult
	if decodeErr := json.NewDecoder(httpResp.Body).Decode(&result); decodeErr != nil {
		if httpResp.StatusCode >= 400 {
			return nil, fmt.Errorf("sms gateway returned status %d", httpResp.StatusCode)
		}
		return nil, fmt.Errorf("failed to decode gateway response: %w", decodeErr)
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("SMS gateway rejected request",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
