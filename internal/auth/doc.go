// Package auth provides authentication for the gateway's REST API.
//
// # Overview
//
// Accounts authenticate with email and password; passwords are stored as
// bcrypt hashes. Successful registration and login issue an HS256-signed
// JWT whose subject claim is the user ID, valid for one hour by default.
//
// # Middleware
//
// Middleware wraps protected handlers, rejects requests without a valid
// bearer token, and stores the verified user ID in the request context:
//
//	userID := auth.UserIDFromContext(r.Context())
//
// The chat websocket is unauthenticated; only the account and telephony
// control endpoints go through here.
package auth
