// ABOUTME: REST handlers: health, accounts, history, agent list, telephony.
// ABOUTME: Provider failures come back as success:false payloads, never as crashes.

package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Trikisalem/multi-agents-dentaire/internal/auth"
	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
	"github.com/Trikisalem/multi-agents-dentaire/internal/store"
	"github.com/Trikisalem/multi-agents-dentaire/internal/vapi"
)

// RegisterRequest is the JSON body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful register and login.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

// HistoryEntry is one item of the GET /api/history response.
type HistoryEntry struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// AgentListResponse is the GET /api/agents response.
type AgentListResponse struct {
	Agents []catalog.Summary `json:"agents"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Serveur Dentalteam backend opérationnel",
		"timestamp":   time.Now(),
		"chatbot":     "websocket activé",
		"connections": g.hub.ConnectionCount(),
	})
}

func (g *Gateway) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requête invalide")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Nom, email et mot de passe requis")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		g.logger.Error("hashing password failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	user := &store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := g.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "Email déjà utilisé")
			return
		}
		g.logger.Error("creating user failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	resp := AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email}
	if g.tokens != nil {
		if resp.Token, err = g.tokens.Issue(user.ID); err != nil {
			g.logger.Error("issuing token failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Erreur serveur")
			return
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (g *Gateway) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Requête invalide")
		return
	}

	user, err := g.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			g.logger.Error("looking up user failed", "error", err)
		}
		writeError(w, http.StatusUnauthorized, "Email ou mot de passe invalide")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Email ou mot de passe invalide")
		return
	}

	resp := AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email}
	if g.tokens != nil {
		if resp.Token, err = g.tokens.Issue(user.ID); err != nil {
			g.logger.Error("issuing token failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Erreur serveur")
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (g *Gateway) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	user, err := g.store.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Utilisateur non trouvé")
			return
		}
		g.logger.Error("loading profile failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

func (g *Gateway) handleHistory(w http.ResponseWriter, r *http.Request) {
	events, err := g.store.RecentEvents(r.Context(), 20)
	if err != nil {
		g.logger.Error("loading history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Erreur serveur")
		return
	}

	entries := make([]HistoryEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, HistoryEntry{ID: e.ID, Text: e.Text, Date: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (g *Gateway) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AgentListResponse{Agents: g.catalog.Summaries()})
}

// --- telephony endpoints ---

// CallActionRequest is the JSON body of the telephony activation and
// answer endpoints.
type CallActionRequest struct {
	AssistantID   string `json:"assistantId,omitempty"`
	PhoneNumberID string `json:"phoneNumberId,omitempty"`
}

func (g *Gateway) handleCallActivate(w http.ResponseWriter, r *http.Request) {
	var req CallActionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result := g.vapiClient.ActivateIncomingCalls(r.Context(), vapi.ActivateParams{
		AssistantID:   req.AssistantID,
		PhoneNumberID: req.PhoneNumberID,
		WebhookURL:    g.config.Server.BaseURL + "/api/emma/webhook",
	})
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (g *Gateway) handleCallDeactivate(w http.ResponseWriter, r *http.Request) {
	result := g.vapiClient.DeactivateIncomingCalls(r.Context())
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (g *Gateway) handleIncomingCalls(w http.ResponseWriter, r *http.Request) {
	result := g.vapiClient.IncomingCalls(r.Context())
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (g *Gateway) handleCallStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, g.vapiClient.CurrentStatus())
}

func (g *Gateway) handleAnswerCall(w http.ResponseWriter, r *http.Request) {
	callID := r.PathValue("callId")
	var req CallActionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result := g.vapiClient.AnswerCall(r.Context(), callID, req.AssistantID)
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (g *Gateway) handleDeclineCall(w http.ResponseWriter, r *http.Request) {
	callID := r.PathValue("callId")
	result := g.vapiClient.DeclineCall(r.Context(), callID)
	if !result.Success {
		writeJSON(w, http.StatusInternalServerError, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCallWebhook relays provider call events to every chat connection.
// Unknown event types are acknowledged and dropped.
func (g *Gateway) handleCallWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, vapi.Result{Success: false, Error: "lecture du corps impossible"})
		return
	}

	var event vapi.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, vapi.Result{Success: false, Error: "événement invalide"})
		return
	}

	var rawCall json.RawMessage
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(body, &probe) == nil {
		rawCall = probe.Data
	}

	switch event.Type {
	case vapi.WebhookCallStart, vapi.WebhookIncomingCall:
		g.logger.Info("incoming call", "call_id", event.Data.ID)
		g.hub.Broadcast("incoming_call", event.Notification(rawCall))
	case vapi.WebhookCallEnd:
		g.logger.Info("call ended", "call_id", event.Data.ID)
		g.hub.Broadcast("call_ended", vapi.CallStateChange{CallID: event.Data.ID, CallData: rawCall})
	case vapi.WebhookCallUpdate:
		g.logger.Info("call updated", "call_id", event.Data.ID)
		g.hub.Broadcast("call_updated", vapi.CallStateChange{CallID: event.Data.ID, CallData: rawCall})
	default:
		g.logger.Debug("unhandled webhook event", "type", event.Type)
	}

	writeJSON(w, http.StatusOK, vapi.Result{Success: true})
}
