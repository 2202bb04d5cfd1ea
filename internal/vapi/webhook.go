// ABOUTME: Types for webhook events pushed by the provider on call activity.
// ABOUTME: The gateway relays these to chat connections as call notifications.

package vapi

import (
	"encoding/json"
	"time"
)

// Webhook event types sent by the provider. Older provider versions send
// "incoming_call" where newer ones send "call-start".
const (
	WebhookCallStart    = "call-start"
	WebhookIncomingCall = "incoming_call"
	WebhookCallEnd      = "call-end"
	WebhookCallUpdate   = "call-update"
)

// WebhookEvent is the body of a provider webhook POST.
type WebhookEvent struct {
	Type string      `json:"type"`
	Data WebhookCall `json:"data"`
}

// WebhookCall is the call payload inside a webhook event.
type WebhookCall struct {
	ID       string          `json:"id"`
	Customer *Customer       `json:"customer,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// CallNotification is the payload broadcast to chat connections when a call
// starts ringing.
type CallNotification struct {
	CallID       string          `json:"callId"`
	CallerNumber string          `json:"callerNumber"`
	CallerName   string          `json:"callerName"`
	Timestamp    time.Time       `json:"timestamp"`
	CallData     json.RawMessage `json:"callData,omitempty"`
}

// CallStateChange is the payload broadcast when a call ends or updates.
type CallStateChange struct {
	CallID   string          `json:"callId"`
	CallData json.RawMessage `json:"callData,omitempty"`
}

// Notification builds the ringing-call broadcast payload, substituting the
// legacy placeholder strings when the caller is anonymous.
func (e *WebhookEvent) Notification(raw json.RawMessage) CallNotification {
	number := "Numéro masqué"
	name := "Appelant inconnu"
	if e.Data.Customer != nil {
		if e.Data.Customer.Number != "" {
			number = e.Data.Customer.Number
		}
		if e.Data.Customer.Name != "" {
			name = e.Data.Customer.Name
		}
	}
	if name == "Appelant inconnu" {
		if prospect, ok := e.Data.Metadata["prospect_name"].(string); ok && prospect != "" {
			name = prospect
		}
	}

	return CallNotification{
		CallID:       e.Data.ID,
		CallerNumber: number,
		CallerName:   name,
		Timestamp:    time.Now(),
		CallData:     raw,
	}
}
