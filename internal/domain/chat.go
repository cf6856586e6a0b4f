package domain

// Chat message roles accepted by the completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is the provider-agnostic chat message shape used by the relay
// and the upstream integration.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
