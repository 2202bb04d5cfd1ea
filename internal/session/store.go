// ABOUTME: Thread-safe session store keyed by connection ID.
// ABOUTME: One session per live connection; create, read, remove, and sweep iteration.

package session

import (
	"sync"
	"time"
)

// Session is the conversation state for one live connection. Counters and
// context are guarded by an internal mutex because delayed emission timers
// run on their own goroutines.
type Session struct {
	// ID is the connection identifier the session is keyed by.
	ID string

	// CreatedAt is the eviction clock: the idle sweeper measures age from
	// creation, not from last activity.
	CreatedAt time.Time

	mu           sync.Mutex
	messageCount int
	lastMessage  string
	lastAgent    string
	context      map[string]any
}

// RecordMessage increments the message counter and stores the message text.
// Returns the new counter value.
func (s *Session) RecordMessage(text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageCount++
	s.lastMessage = text
	return s.messageCount
}

// MessageCount returns the number of messages received on this session.
func (s *Session) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageCount
}

// LastMessage returns the text of the most recent message.
func (s *Session) LastMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMessage
}

// SetLastAgent records the agent most recently suggested to this user.
func (s *Session) SetLastAgent(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAgent = agentID
}

// LastAgent returns the most recently suggested agent ID, or "" if none.
func (s *Session) LastAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAgent
}

// MergeContext copies the given key/value pairs into the session context.
func (s *Session) MergeContext(ctx map[string]any) {
	if len(ctx) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.context == nil {
		s.context = make(map[string]any, len(ctx))
	}
	for k, v := range ctx {
		s.context[k] = v
	}
}

// Reset clears the message counter, last suggested agent, and context.
// The creation timestamp is kept: resetting a conversation does not extend
// the session's lifetime.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageCount = 0
	s.lastMessage = ""
	s.lastAgent = ""
	s.context = nil
}

// Store holds the sessions of all live connections.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create adds a fresh session for the connection ID and returns it.
// An existing session under the same ID is replaced; a connection identity
// can only belong to one live connection at a time.
func (st *Store) Create(connectionID string) *Session {
	s := &Session{
		ID:        connectionID,
		CreatedAt: time.Now(),
	}
	st.mu.Lock()
	st.sessions[connectionID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session for the connection ID, or false if absent.
func (st *Store) Get(connectionID string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[connectionID]
	return s, ok
}

// Remove deletes the session for the connection ID. Removing an absent
// session is a no-op.
func (st *Store) Remove(connectionID string) {
	st.mu.Lock()
	delete(st.sessions, connectionID)
	st.mu.Unlock()
}

// ForEach calls fn for every session. The snapshot is taken under the read
// lock, so fn may call Remove without deadlocking.
func (st *Store) ForEach(fn func(*Session)) {
	st.mu.RLock()
	snapshot := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		snapshot = append(snapshot, s)
	}
	st.mu.RUnlock()

	for _, s := range snapshot {
		fn(s)
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
