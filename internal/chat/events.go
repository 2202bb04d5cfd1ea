// ABOUTME: Wire format of the chat channel: event envelope and payload types.
// ABOUTME: Field casing matches the original Dentalteam frontend contract.

package chat

import (
	"encoding/json"
	"time"

	"github.com/Trikisalem/multi-agents-dentaire/internal/catalog"
)

// Inbound event names.
const (
	EventUserMessage       = "user_message"
	EventGetAgentInfo      = "get_agent_info"
	EventGetUsageExamples  = "get_usage_examples"
	EventGetAllAgents      = "get_all_agents"
	EventResetConversation = "reset_conversation"
	EventUserFeedback      = "user_feedback"
)

// Outbound event names.
const (
	EventBotMessage       = "bot_message"
	EventAgentSuggestion  = "agent_suggestion"
	EventAgentInfo        = "agent_info"
	EventUsageExamples    = "usage_examples"
	EventAllAgents        = "all_agents"
	EventFeedbackReceived = "feedback_received"
)

// Bot message types carried in BotMessage.Type.
const (
	BotTypeWelcome  = "welcome"
	BotTypeError    = "error"
	BotTypeHelp     = "help"
	BotTypeGuidance = "guidance"
	BotTypeReset    = "reset"
)

// Envelope wraps every message on the websocket in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// UserMessage is the payload of a user_message event.
type UserMessage struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// AgentInfoRequest is the payload of a get_agent_info event. The frontend
// may send either a bare JSON string or an {"agent": id} object.
type AgentInfoRequest struct {
	Agent string `json:"agent"`
}

// BotMessage is the payload of every bot_message event.
type BotMessage struct {
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	SessionID      string    `json:"sessionId,omitempty"`
	SuggestedAgent *string   `json:"suggestedAgent,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
	NextActions    []string  `json:"nextActions,omitempty"`
}

// AgentSuggestion is the payload of an agent_suggestion event: the full
// profile of the recommended agent plus the match confidence.
type AgentSuggestion struct {
	Agent          string   `json:"agent"`
	Name           string   `json:"name"`
	Speciality     string   `json:"speciality"`
	Icon           string   `json:"icon"`
	Color          string   `json:"color"`
	Capabilities   []string `json:"capabilities"`
	WelcomeMessage string   `json:"welcomeMessage"`
	Confidence     float64  `json:"confidence"`
}

// AgentInfo is the payload of an agent_info reply. On success the profile
// fields are flattened alongside the success flag; on failure only
// Success=false and Message are set.
type AgentInfo struct {
	Success bool   `json:"success"`
	Agent   string `json:"agent,omitempty"`
	*catalog.Profile
	Message string `json:"message,omitempty"`
}

// AllAgents is the payload of an all_agents reply.
type AllAgents struct {
	Agents []catalog.Summary `json:"agents"`
}

// FeedbackReceived acknowledges a user_feedback event.
type FeedbackReceived struct {
	Message string `json:"message"`
}
