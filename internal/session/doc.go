// Package session tracks ephemeral per-connection conversation state.
//
// A session is created when a websocket connection opens, mutated by the
// handler owning that connection and its timer callbacks, and removed on
// disconnect or by the idle sweeper, whichever happens first. The sweeper
// measures age from creation time, so a long-lived connection is evicted
// once the TTL elapses regardless of activity.
//
// Sessions are never persisted; the durable activity log lives in the
// store package.
package session
