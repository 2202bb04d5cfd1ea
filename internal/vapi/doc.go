// Package vapi wraps the telephony provider behind the virtual
// receptionist.
//
// # Operations
//
//   - ActivateIncomingCalls: point the phone number at the assistant and
//     the webhook URL
//   - DeactivateIncomingCalls: detach the assistant
//   - IncomingCalls: poll for a ringing call and the in-progress list
//   - AnswerCall / DeclineCall: control a single call
//   - CurrentStatus: whether forwarding is active
//
// Every operation returns a result with an explicit success flag; remote
// failures are data, never Go errors, so handlers can relay them to
// clients as ordinary payloads.
//
// # Webhooks
//
// The provider pushes call lifecycle events (call-start, call-end,
// call-update) to the gateway. This package defines the event types and
// builds the notification payloads the gateway broadcasts to chat
// connections, substituting French placeholders for anonymous callers.
package vapi
