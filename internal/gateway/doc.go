// Package gateway orchestrates the guide gateway server components.
//
// # Overview
//
// The gateway package is the composition root. It owns the SQLite store,
// the agent catalog, the session store and its idle sweeper, the websocket
// chat hub, the token service, the telephony client, and the HTTP server
// that ties them together.
//
// # Routes
//
//   - /ws: websocket chat endpoint
//   - GET /api/health: liveness probe with connection count
//   - GET /api/history: recent activity log entries
//   - GET /api/agents: agent summary list
//   - POST /api/auth/register, /api/auth/login: account endpoints
//   - GET /api/auth/profile: authenticated account lookup
//   - POST /api/emma/webhook: telephony provider callback (public)
//   - /api/emma/*: call forwarding control (authenticated)
//
// Telephony control routes require a bearer token when auth.jwt_secret is
// configured; without a secret they are open, which is only meant for
// local development.
//
// # Lifecycle
//
// Run listens, starts the sweeper, and blocks until the context is
// canceled or the server fails, then drains with a five-second graceful
// shutdown.
package gateway
