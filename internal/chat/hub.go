// ABOUTME: Hub upgrades websocket connections and tracks the live set for broadcast.
// ABOUTME: Owns the shared guide components handed to every connection.

package chat

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
	"github.com/Trikisalem/multi-agents-dentaire/internal/guidance"
	"github.com/Trikisalem/multi-agents-dentaire/internal/intent"
	"github.com/Trikisalem/multi-agents-dentaire/internal/session"
)

// Staged emission delays and the suggestion gate, tuned to the pacing the
// frontend expects. All overridable through Timings for tests and config.
const (
	DefaultWelcomeDelay    = 500 * time.Millisecond
	DefaultGuidanceDelay   = 600 * time.Millisecond
	DefaultSuggestionDelay = 1200 * time.Millisecond

	// DefaultSuggestionConfidence gates the follow-up agent_suggestion
	// event: it only fires when guidance confidence exceeds this.
	DefaultSuggestionConfidence = 0.6
)

// Timings groups the staged emission delays.
type Timings struct {
	Welcome    time.Duration
	Guidance   time.Duration
	Suggestion time.Duration
}

// DefaultTimings returns the production delays.
func DefaultTimings() Timings {
	return Timings{
		Welcome:    DefaultWelcomeDelay,
		Guidance:   DefaultGuidanceDelay,
		Suggestion: DefaultSuggestionDelay,
	}
}

// Recorder receives notable chat activity for the history log. Implementations
// must not block; the hub calls it inline on the connection goroutine.
type Recorder interface {
	Record(text string)
}

// Config assembles a Hub.
type Config struct {
	Catalog  *catalog.Catalog
	Sessions *session.Store
	History  Recorder // optional
	Logger   *slog.Logger

	Timings              Timings
	SuggestionConfidence float64
}

// Hub owns the websocket endpoint. It upgrades connections, binds each one
// to a session, and keeps the live connection set for broadcasts.
type Hub struct {
	catalog  *catalog.Catalog
	engine   *intent.Engine
	composer *guidance.Composer
	sessions *session.Store
	history  Recorder
	logger   *slog.Logger

	timings              Timings
	suggestionConfidence float64

	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewHub creates a hub with the given components. Zero timings and a zero
// confidence gate fall back to the defaults.
func NewHub(cfg Config) *Hub {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Timings.Welcome <= 0 {
		cfg.Timings.Welcome = DefaultWelcomeDelay
	}
	if cfg.Timings.Guidance <= 0 {
		cfg.Timings.Guidance = DefaultGuidanceDelay
	}
	if cfg.Timings.Suggestion <= 0 {
		cfg.Timings.Suggestion = DefaultSuggestionDelay
	}
	if cfg.SuggestionConfidence <= 0 {
		cfg.SuggestionConfidence = DefaultSuggestionConfidence
	}

	return &Hub{
		catalog:              cfg.Catalog,
		engine:               intent.NewEngine(cfg.Catalog),
		composer:             guidance.NewComposer(cfg.Catalog),
		sessions:             cfg.Sessions,
		history:              cfg.History,
		logger:               cfg.Logger.With("component", "chat"),
		timings:              cfg.Timings,
		suggestionConfidence: cfg.SuggestionConfidence,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[string]*Conn),
	}
}

// ServeHTTP upgrades the request to a websocket and runs the connection
// until the peer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn := newConn(uuid.New().String(), ws, h)
	h.register(conn)
	conn.run()
}

// Broadcast sends an event to every live connection. Used by the call
// webhook relay to notify all frontends at once.
func (h *Hub) Broadcast(event string, payload any) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.send(event, payload)
	}
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

func (h *Hub) record(text string) {
	if h.history != nil {
		h.history.Record(text)
	}
}
