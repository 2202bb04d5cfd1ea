// Package intent scores free-text user messages against the agent catalog
// to pick the specialist most likely to handle the request. Scoring is
// pure and deterministic and never fails on malformed input.
package intent
