// Package chat provides the websocket chat surface of the guide gateway.
//
// # Overview
//
// The chat package binds websocket connections to guide sessions. The Hub
// upgrades incoming requests, assigns each connection an ID, and runs one
// reader goroutine per connection. Every message on the socket, in both
// directions, is a JSON envelope:
//
//	{"event": "user_message", "data": {"message": "envoyer un sms"}}
//
// # Inbound Events
//
//   - user_message: score the text and reply with staged guidance
//   - get_agent_info: full profile of one agent
//   - get_usage_examples: example sentences and categories
//   - get_all_agents: summary list of the catalog
//   - reset_conversation: clear session state, acknowledge
//   - user_feedback: acknowledge a rating
//
// # Staged Replies
//
// Replies that carry guidance are delayed so the bot reads as thinking:
//
//  1. welcome bot_message ~500ms after connect
//  2. guidance bot_message ~600ms after each scored user_message
//  3. agent_suggestion a further ~1200ms later, only when the match
//     confidence exceeds the suggestion gate (0.6 by default)
//
// Delayed emissions run on timer goroutines. Each one re-checks that the
// session still exists and the connection is still active before writing,
// so a timer that outlives its connection is a harmless no-op.
//
// # Failure Containment
//
// A panic while handling an event is converted to a generic error
// bot_message; the socket stays up. Write failures are logged and
// swallowed, since a dead peer is detected by the read loop.
//
// # Broadcast
//
// Hub.Broadcast sends one event to every live connection. The call
// webhook relay uses it to push incoming_call, call_ended, and
// call_updated notifications to all frontends at once.
package chat
