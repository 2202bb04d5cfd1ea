// ABOUTME: HTTP client for the Vapi API: activate, deactivate, poll, answer, decline.
// ABOUTME: Remote failures come back as Result{Success:false, Error}, never as Go errors.

package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultBaseURL is the production Vapi API endpoint.
const DefaultBaseURL = "https://api.vapi.ai"

// incomingCallWindow bounds how far back IncomingCalls looks for ringing
// calls. Older ringing entries are stale provider records, not live calls.
const incomingCallWindow = 5 * time.Minute

// Result is the outcome of a provider operation. Exactly one of Data and
// Error is meaningful, selected by Success.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Call is one call record returned by the provider.
type Call struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Customer  *Customer `json:"customer,omitempty"`
}

// Customer identifies the remote party on a call.
type Customer struct {
	Number string `json:"number,omitempty"`
	Name   string `json:"name,omitempty"`
}

// CallsResult is the outcome of an IncomingCalls poll.
type CallsResult struct {
	Success      bool   `json:"success"`
	IncomingCall *Call  `json:"incomingCall,omitempty"`
	ActiveCalls  []Call `json:"activeCalls,omitempty"`
	Error        string `json:"error,omitempty"`
}

// CallResult is the outcome of answering a single call.
type CallResult struct {
	Success bool   `json:"success"`
	Call    *Call  `json:"call,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Status reports whether call forwarding is currently active.
type Status struct {
	IsListening   bool   `json:"isListening"`
	PhoneNumberID string `json:"phoneNumberId"`
	AssistantID   string `json:"assistantId"`
}

// ActivateParams configures call forwarding activation.
type ActivateParams struct {
	AssistantID   string
	PhoneNumberID string
	WebhookURL    string
}

// Config assembles a Client.
type Config struct {
	APIKey        string
	BaseURL       string // defaults to DefaultBaseURL
	AssistantID   string
	PhoneNumberID string
	WebhookSecret string
	HTTPClient    *http.Client // defaults to a 10s-timeout client
	Logger        *slog.Logger
}

// Client talks to the Vapi API.
type Client struct {
	apiKey        string
	baseURL       string
	assistantID   string
	phoneNumberID string
	webhookSecret string
	httpClient    *http.Client
	logger        *slog.Logger

	listening atomic.Bool
}

// NewClient creates a Vapi client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		assistantID:   cfg.AssistantID,
		phoneNumberID: cfg.PhoneNumberID,
		webhookSecret: cfg.WebhookSecret,
		httpClient:    cfg.HTTPClient,
		logger:        cfg.Logger.With("component", "vapi"),
	}
}

// ActivateIncomingCalls points the provider phone number at the assistant
// and the webhook URL so incoming calls are forwarded.
func (c *Client) ActivateIncomingCalls(ctx context.Context, params ActivateParams) Result {
	assistantID := params.AssistantID
	if assistantID == "" {
		assistantID = c.assistantID
	}
	phoneNumberID := params.PhoneNumberID
	if phoneNumberID == "" {
		phoneNumberID = c.phoneNumberID
	}

	body := map[string]any{
		"assistantId":     assistantID,
		"serverUrl":       params.WebhookURL,
		"serverUrlSecret": c.webhookSecret,
	}

	if _, err := c.do(ctx, http.MethodPatch, "/phone-number/"+phoneNumberID, body); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	c.listening.Store(true)
	c.logger.Info("incoming calls activated", "phone_number_id", phoneNumberID)

	return Result{
		Success: true,
		Data: map[string]any{
			"phoneNumberId": phoneNumberID,
			"assistantId":   assistantID,
			"webhookUrl":    params.WebhookURL,
			"status":        "active",
		},
	}
}

// DeactivateIncomingCalls detaches the assistant from the phone number.
func (c *Client) DeactivateIncomingCalls(ctx context.Context) Result {
	body := map[string]any{
		"assistantId": nil,
		"serverUrl":   nil,
	}

	if _, err := c.do(ctx, http.MethodPatch, "/phone-number/"+c.phoneNumberID, body); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	c.listening.Store(false)
	c.logger.Info("incoming calls deactivated")

	return Result{Success: true}
}

// IncomingCalls polls recent calls and returns the first one still ringing
// within the lookback window, plus any calls currently in progress.
func (c *Client) IncomingCalls(ctx context.Context) CallsResult {
	raw, err := c.do(ctx, http.MethodGet, "/call?limit=10", nil)
	if err != nil {
		return CallsResult{Success: false, Error: err.Error()}
	}

	var calls []Call
	if err := json.Unmarshal(raw, &calls); err != nil {
		return CallsResult{Success: false, Error: fmt.Sprintf("decoding call list: %v", err)}
	}

	res := CallsResult{Success: true}
	now := time.Now()
	for i := range calls {
		call := calls[i]
		switch call.Status {
		case "ringing":
			if res.IncomingCall == nil && now.Sub(call.CreatedAt) < incomingCallWindow {
				res.IncomingCall = &calls[i]
			}
		case "in-progress":
			res.ActiveCalls = append(res.ActiveCalls, call)
		}
	}
	return res
}

// AnswerCall hands control of the call to the assistant.
func (c *Client) AnswerCall(ctx context.Context, callID, assistantID string) CallResult {
	if assistantID == "" {
		assistantID = c.assistantID
	}

	body := map[string]any{
		"action":      "answer",
		"assistantId": assistantID,
	}

	raw, err := c.do(ctx, http.MethodPost, "/call/"+callID+"/control", body)
	if err != nil {
		return CallResult{Success: false, Error: err.Error()}
	}

	var call Call
	if err := json.Unmarshal(raw, &call); err != nil {
		return CallResult{Success: false, Error: fmt.Sprintf("decoding call: %v", err)}
	}

	c.logger.Info("call answered", "call_id", callID)
	return CallResult{Success: true, Call: &call}
}

// DeclineCall rejects an incoming call.
func (c *Client) DeclineCall(ctx context.Context, callID string) Result {
	if _, err := c.do(ctx, http.MethodDelete, "/call/"+callID, nil); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	c.logger.Info("call declined", "call_id", callID)
	return Result{Success: true}
}

// CurrentStatus reports whether forwarding is active and which assistant
// and number are configured.
func (c *Client) CurrentStatus() Status {
	return Status{
		IsListening:   c.listening.Load(),
		PhoneNumberID: c.phoneNumberID,
		AssistantID:   c.assistantID,
	}
}

// do performs one provider request and returns the response body. Non-2xx
// responses are reported with the provider's message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	return data, nil
}
