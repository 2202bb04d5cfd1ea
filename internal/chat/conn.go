// ABOUTME: Per-connection state machine: session lifecycle and event dispatch.
// ABOUTME: Dispatch faults become error events; the socket stays up.

package chat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Trikisalem/multi-agents-dentaire/internal/guidance"
)

// Connection states. A connection is CONNECTING until its session exists,
// ACTIVE while serving events, and CLOSED after disconnect.
type connState int

const (
	stateConnecting connState = iota
	stateActive
	stateClosed
)

const writeTimeout = 10 * time.Second

// Conn is one live websocket connection bound to one session.
type Conn struct {
	id     string
	ws     *websocket.Conn
	hub    *Hub
	logger *slog.Logger

	writeMu sync.Mutex

	stateMu sync.Mutex
	state   connState
}

func newConn(id string, ws *websocket.Conn, h *Hub) *Conn {
	return &Conn{
		id:     id,
		ws:     ws,
		hub:    h,
		logger: h.logger.With("connection_id", id),
	}
}

// run creates the session, schedules the welcome, and reads events until
// the peer disconnects. Cleanup removes the session and the hub entry;
// timers scheduled before disconnect find the session gone and do nothing.
func (c *Conn) run() {
	defer c.close()

	c.hub.sessions.Create(c.id)
	c.setState(stateActive)
	c.logger.Info("connection opened", "sessions", c.hub.sessions.Len())
	c.hub.record(fmt.Sprintf("connexion ouverte (%s)", c.id))

	time.AfterFunc(c.hub.timings.Welcome, c.emitWelcome)

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("websocket read error", "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.logger.Debug("malformed envelope", "error", err)
			continue
		}

		c.dispatch(env)
	}
}

func (c *Conn) close() {
	c.setState(stateClosed)
	c.hub.sessions.Remove(c.id)
	c.hub.unregister(c.id)
	_ = c.ws.Close()
	c.logger.Info("connection closed", "sessions", c.hub.sessions.Len())
}

func (c *Conn) setState(s connState) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

func (c *Conn) isActive() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state == stateActive
}

// dispatch routes one inbound event. Any panic while handling is converted
// into a generic error event so a bad message can never kill the connection.
func (c *Conn) dispatch(env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("event handling panicked", "event", env.Event, "panic", r)
			c.sendBotMessage(BotMessage{
				Type:      BotTypeError,
				Content:   guidance.ErrorMessage,
				Timestamp: time.Now(),
			})
		}
	}()

	switch env.Event {
	case EventUserMessage:
		c.handleUserMessage(env.Data)
	case EventGetAgentInfo:
		c.handleAgentInfo(env.Data)
	case EventGetUsageExamples:
		c.send(EventUsageExamples, c.hub.catalog.Examples())
	case EventGetAllAgents:
		c.send(EventAllAgents, AllAgents{Agents: c.hub.catalog.Summaries()})
	case EventResetConversation:
		c.handleReset()
	case EventUserFeedback:
		c.handleFeedback(env.Data)
	default:
		c.logger.Debug("unknown event ignored", "event", env.Event)
	}
}

func (c *Conn) handleUserMessage(data json.RawMessage) {
	var msg UserMessage
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("malformed user_message payload", "error", err)
		}
	}

	if sess, ok := c.hub.sessions.Get(c.id); ok {
		sess.RecordMessage(msg.Message)
		sess.MergeContext(msg.Context)
	}

	if msg.Message == "" {
		c.sendBotMessage(BotMessage{
			Type:      BotTypeError,
			Content:   "Message vide reçu. Pouvez-vous reformuler votre demande ?",
			Timestamp: time.Now(),
		})
		return
	}

	c.logger.Info("user message", "length", len(msg.Message))
	c.hub.record(fmt.Sprintf("message utilisateur (%s)", c.id))

	// Meta questions about the guide bypass scoring entirely.
	if help, ok := guidance.ContextualHelp(msg.Message); ok {
		c.sendBotMessage(BotMessage{
			Type:      BotTypeHelp,
			Content:   help,
			Timestamp: time.Now(),
		})
		return
	}

	scores := c.hub.engine.Score(msg.Message)
	result := c.hub.composer.Compose(scores)

	// Guidance is delayed to read as "thinking"; the suggestion follows
	// a further delay only on a high-confidence match.
	time.AfterFunc(c.hub.timings.Guidance, func() {
		c.emitGuidance(result)
	})
}

func (c *Conn) emitWelcome() {
	if _, ok := c.hub.sessions.Get(c.id); !ok || !c.isActive() {
		return
	}
	c.sendBotMessage(BotMessage{
		Type:      BotTypeWelcome,
		Content:   guidance.WelcomeMessage,
		Timestamp: time.Now(),
		SessionID: c.id,
	})
}

func (c *Conn) emitGuidance(result guidance.Result) {
	if _, ok := c.hub.sessions.Get(c.id); !ok || !c.isActive() {
		return
	}

	botMsg := BotMessage{
		Type:        BotTypeGuidance,
		Content:     result.Response,
		Timestamp:   time.Now(),
		Confidence:  &result.Confidence,
		NextActions: result.NextActions,
	}
	if result.SuggestedAgent != "" {
		botMsg.SuggestedAgent = &result.SuggestedAgent
	}
	c.sendBotMessage(botMsg)

	if result.SuggestedAgent != "" && result.Confidence > c.hub.suggestionConfidence {
		time.AfterFunc(c.hub.timings.Suggestion, func() {
			c.emitSuggestion(result)
		})
	}
}

func (c *Conn) emitSuggestion(result guidance.Result) {
	sess, ok := c.hub.sessions.Get(c.id)
	if !ok || !c.isActive() {
		return
	}

	profile, err := c.hub.catalog.Lookup(result.SuggestedAgent)
	if err != nil {
		return
	}

	sess.SetLastAgent(profile.ID)
	c.hub.record(fmt.Sprintf("agent %s suggéré (%s)", profile.ID, c.id))

	c.send(EventAgentSuggestion, AgentSuggestion{
		Agent:          profile.ID,
		Name:           profile.Name,
		Speciality:     profile.Speciality,
		Icon:           profile.Icon,
		Color:          profile.Color,
		Capabilities:   profile.Capabilities,
		WelcomeMessage: profile.WelcomeMessage,
		Confidence:     result.Confidence,
	})
}

func (c *Conn) handleAgentInfo(data json.RawMessage) {
	agentID := decodeAgentID(data)

	profile, err := c.hub.catalog.Lookup(agentID)
	if err != nil {
		c.send(EventAgentInfo, AgentInfo{
			Success: false,
			Message: "Agent non trouvé",
		})
		return
	}

	c.send(EventAgentInfo, AgentInfo{
		Success: true,
		Agent:   profile.ID,
		Profile: profile,
	})
}

// decodeAgentID accepts either a bare JSON string or an {"agent": id}
// object, matching what different frontend versions send.
func decodeAgentID(data json.RawMessage) string {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id
	}
	var req AgentInfoRequest
	if err := json.Unmarshal(data, &req); err == nil {
		return req.Agent
	}
	return ""
}

func (c *Conn) handleReset() {
	if sess, ok := c.hub.sessions.Get(c.id); ok {
		sess.Reset()
	}

	// Reset acknowledgment is synchronous, no staged delay.
	c.sendBotMessage(BotMessage{
		Type:      BotTypeReset,
		Content:   "Conversation réinitialisée ! " + guidance.WelcomeMessage,
		Timestamp: time.Now(),
	})
}

func (c *Conn) handleFeedback(data json.RawMessage) {
	c.logger.Info("user feedback received", "bytes", len(data))
	c.send(EventFeedbackReceived, FeedbackReceived{
		Message: "Merci pour votre retour ! Cela nous aide à améliorer le service.",
	})
}

func (c *Conn) sendBotMessage(msg BotMessage) {
	c.send(EventBotMessage, msg)
}

// send marshals the payload into an envelope and writes it. Write failures
// are logged, never propagated: a dead peer is detected by the read loop.
func (c *Conn) send(event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("marshaling event payload", "event", event, "error", err)
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteJSON(Envelope{Event: event, Data: data}); err != nil {
		c.logger.Debug("websocket write failed", "event", event, "error", err)
	}
}
