// ABOUTME: Gateway construction, route registration, and server lifecycle.
// ABOUTME: Sessions, sweeper, hub, store, and vapi client all hang off the Gateway.

package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Trikisalem/multi-agents-dentaire/internal/auth"
	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
	"github.com/Trikisalem/multi-agents-dentaire/internal/chat"
	"github.com/Trikisalem/multi-agents-dentaire/internal/config"
	"github.com/Trikisalem/multi-agents-dentaire/internal/session"
	"github.com/Trikisalem/multi-agents-dentaire/internal/store"
	"github.com/Trikisalem/multi-agents-dentaire/internal/vapi"
)

// Gateway orchestrates the guide server components: the websocket chat hub,
// the REST API, the session sweeper, and the persistence layer.
type Gateway struct {
	config     *config.Config
	store      store.Store
	catalog    *catalog.Catalog
	sessions   *session.Store
	sweeper    *session.Sweeper
	hub        *chat.Hub
	tokens     *auth.Tokens
	vapiClient *vapi.Client
	httpServer *http.Server
	logger     *slog.Logger
}

// historyRecorder adapts the store to the chat hub's Recorder interface.
// Failures only log; history is best-effort and must never stall chat.
type historyRecorder struct {
	store  store.Store
	logger *slog.Logger
}

func (h *historyRecorder) Record(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.store.RecordEvent(ctx, text); err != nil {
		h.logger.Warn("recording history event failed", "error", err)
	}
}

// New creates a Gateway from the configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	cat := catalog.Builtin()
	sessions := session.NewStore()
	sweeper := session.NewSweeper(sessions, cfg.Sessions.SweepInterval, cfg.Sessions.TTL,
		logger.With("component", "sessions"))

	hub := chat.NewHub(chat.Config{
		Catalog:  cat,
		Sessions: sessions,
		History:  &historyRecorder{store: st, logger: logger.With("component", "history")},
		Logger:   logger,
		Timings: chat.Timings{
			Welcome:    cfg.Chat.WelcomeDelay,
			Guidance:   cfg.Chat.GuidanceDelay,
			Suggestion: cfg.Chat.SuggestionDelay,
		},
		SuggestionConfidence: cfg.Chat.SuggestionConfidence,
	})

	var tokens *auth.Tokens
	if cfg.Auth.JWTSecret != "" {
		tokens, err = auth.NewTokens([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("creating token service: %w", err)
		}
	}

	vapiClient := vapi.NewClient(vapi.Config{
		APIKey:        cfg.Vapi.APIKey,
		BaseURL:       cfg.Vapi.BaseURL,
		AssistantID:   cfg.Vapi.AssistantID,
		PhoneNumberID: cfg.Vapi.PhoneNumberID,
		WebhookSecret: cfg.Vapi.WebhookSecret,
		Logger:        logger,
	})

	g := &Gateway{
		config:     cfg,
		store:      st,
		catalog:    cat,
		sessions:   sessions,
		sweeper:    sweeper,
		hub:        hub,
		tokens:     tokens,
		vapiClient: vapiClient,
		logger:     logger.With("component", "gateway"),
	}

	mux := http.NewServeMux()
	g.registerRoutes(mux, logger)

	g.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           g.corsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return g, nil
}

// registerRoutes wires the websocket endpoint and the REST API.
// Account-bound and telephony routes require auth when a JWT secret is
// configured; the provider webhook and the chat socket stay public.
func (g *Gateway) registerRoutes(mux *http.ServeMux, logger *slog.Logger) {
	mux.Handle("/ws", g.hub)

	mux.HandleFunc("GET /api/health", g.handleHealth)
	mux.HandleFunc("GET /api/history", g.handleHistory)
	mux.HandleFunc("GET /api/agents", g.handleAgents)

	mux.HandleFunc("POST /api/auth/register", g.handleRegister)
	mux.HandleFunc("POST /api/auth/login", g.handleLogin)

	mux.HandleFunc("POST /api/emma/webhook", g.handleCallWebhook)

	protected := func(h http.HandlerFunc) http.Handler {
		if g.tokens == nil {
			return h
		}
		return auth.Middleware(g.tokens)(h)
	}

	mux.Handle("GET /api/auth/profile", protected(g.handleProfile))
	mux.Handle("POST /api/emma/activate", protected(g.handleCallActivate))
	mux.Handle("POST /api/emma/deactivate", protected(g.handleCallDeactivate))
	mux.Handle("GET /api/emma/incoming-calls", protected(g.handleIncomingCalls))
	mux.Handle("GET /api/emma/status", protected(g.handleCallStatus))
	mux.Handle("POST /api/emma/answer-call/{callId}", protected(g.handleAnswerCall))
	mux.Handle("POST /api/emma/decline-call/{callId}", protected(g.handleDeclineCall))

	if g.tokens != nil {
		logger.Info("HTTP auth middleware enabled")
	} else {
		logger.Warn("HTTP auth disabled - no jwt_secret configured")
	}
}

// corsMiddleware restricts browser access to the configured frontend origin.
func (g *Gateway) corsMiddleware(next http.Handler) http.Handler {
	origin := g.config.CORS.AllowedOrigin
	if origin == "" {
		origin = "http://localhost:3000"
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Run starts the server and the sweeper, and blocks until the context is
// canceled or the server fails.
func (g *Gateway) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	g.sweeper.Start()

	errCh := make(chan error, 1)
	go func() {
		g.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := g.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		g.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		g.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := g.gracefulShutdown()
	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the run context is already
// canceled.
func (g *Gateway) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return g.Shutdown(ctx)
}

// Shutdown stops the HTTP server, the sweeper, and the store.
func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info("shutting down gateway")

	var errs []error
	if err := g.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}

	g.sweeper.Close()

	if err := g.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
