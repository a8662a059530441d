package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"offerstack-be/internal/config"
)

// ChatTurn is one prior exchange forwarded for conversational context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRelayRequest struct {
	SessionKey   string     `json:"session_key"`
	Message      string     `json:"message"`
	VisitorEmail string     `json:"visitor_email,omitempty"`
	VisitorName  string     `json:"visitor_name,omitempty"`
	History      []ChatTurn `json:"history,omitempty"`
}

type ChatRelayResponse struct {
	Reply          string `json:"reply"`
	Escalate       bool   `json:"escalate"`
	SchedulingLink string `json:"scheduling_link,omitempty"`
}

type LeadEvent struct {
	LeadId         string `json:"lead_id"`
	Email          string `json:"email,omitempty"`
	LinkedInHandle string `json:"linkedin_handle,omitempty"`
	Name           string `json:"name,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	Source         string `json:"source"`
	Notes          string `json:"notes,omitempty"`
}

type DiagnosticEvent struct {
	SessionKey   string `json:"session_key"`
	VisitorEmail string `json:"visitor_email,omitempty"`
	Trigger      string `json:"trigger"`
	Message      string `json:"message,omitempty"`
}

// Client talks to the external workflow engine over webhook triggers.
type Client struct {
	chatURL       string
	leadURL       string
	diagnosticURL string
	httpClient    *http.Client
}

func NewClient(cfg config.WorkflowConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		chatURL:       cfg.ChatWebhookURL,
		leadURL:       cfg.LeadWebhookURL,
		diagnosticURL: cfg.DiagnosticWebhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// RelayChat forwards a visitor message and blocks for the engine's reply.
// The client timeout bounds the wait; callers supply a fallback response
// when this errors.
func (c *Client) RelayChat(ctx context.Context, req ChatRelayRequest) (*ChatRelayResponse, error) {
	if c.chatURL == "" {
		return nil, fmt.Errorf("chat webhook not configured")
	}

	body, err := c.post(ctx, c.chatURL, req)
	if err != nil {
		return nil, err
	}

	var relayResp ChatRelayResponse
	if err := json.Unmarshal(body, &relayResp); err != nil {
		return nil, fmt.Errorf("decode engine response: %w", err)
	}
	return &relayResp, nil
}

// NotifyLead fires the lead-qualification workflow.
func (c *Client) NotifyLead(ctx context.Context, event LeadEvent) error {
	if c.leadURL == "" {
		return fmt.Errorf("lead webhook not configured")
	}
	_, err := c.post(ctx, c.leadURL, event)
	return err
}

// NotifyDiagnostic fires the diagnostic-completion workflow.
func (c *Client) NotifyDiagnostic(ctx context.Context, event DiagnosticEvent) error {
	if c.diagnosticURL == "" {
		return fmt.Errorf("diagnostic webhook not configured")
	}
	_, err := c.post(ctx, c.diagnosticURL, event)
	return err
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(raw))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("workflow request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("workflow engine returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
