package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"chat-relay/internal/domain"
)

const (
	upstreamTemperature = 0.8
	upstreamMaxTokens   = 2048
)

// upstreamPayload is the Chat Completions request body. Caller messages are kept
// as raw JSON so they reach the provider exactly as sent.
type upstreamPayload struct {
	Model       string            `json:"model"`
	Messages    []json.RawMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

// parseMessages extracts the non-empty "messages" array from a request body.
// An empty body is read as an empty object.
func parseMessages(body []byte) ([]json.RawMessage, *Error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		return nil, newError(ErrorInvalidInput, "invalid_json", MessageInvalidFormat, nil)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, newError(ErrorInvalidInput, "body_not_object", MessageMessagesRequired, err)
	}
	raw, ok := fields["messages"]
	if !ok {
		return nil, newError(ErrorInvalidInput, "messages_missing", MessageMessagesRequired, nil)
	}
	var messages []json.RawMessage
	if err := json.Unmarshal(raw, &messages); err != nil {
		return nil, newError(ErrorInvalidInput, "messages_not_array", MessageMessagesRequired, err)
	}
	if len(messages) == 0 {
		return nil, newError(ErrorInvalidInput, "messages_empty", MessageMessagesRequired, nil)
	}
	return messages, nil
}

func buildPayload(model string, messages []json.RawMessage) ([]byte, error) {
	system, err := json.Marshal(domain.ChatMessage{Role: domain.RoleSystem, Content: systemPersona})
	if err != nil {
		return nil, fmt.Errorf("usecase: marshal system message: %w", err)
	}

	all := make([]json.RawMessage, 0, len(messages)+1)
	all = append(all, system)
	all = append(all, messages...)

	body, err := json.Marshal(upstreamPayload{
		Model:       model,
		Messages:    all,
		Temperature: upstreamTemperature,
		MaxTokens:   upstreamMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("usecase: marshal payload: %w", err)
	}
	return body, nil
}

// upstreamError reports whether the result carries a truthy "error" field and the
// message to surface for it: the string itself, error.message, or a generic fallback.
func upstreamError(result json.RawMessage) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(result, &fields); err != nil {
		return "", false
	}
	raw, ok := fields["error"]
	if !ok || !truthy(raw) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var obj struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && len(obj.Message) > 0 {
		if err := json.Unmarshal(obj.Message, &s); err == nil && s != "" {
			return s, true
		}
	}
	return MessageUnknownUpstream, true
}

// replyContent returns choices[0].message.content when it is a string.
func replyContent(result json.RawMessage) string {
	var out struct {
		Choices []json.RawMessage `json:"choices"`
	}
	if err := json.Unmarshal(result, &out); err != nil || len(out.Choices) == 0 {
		return ""
	}
	var choice struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(out.Choices[0], &choice); err != nil {
		return ""
	}
	var content string
	if err := json.Unmarshal(choice.Message.Content, &content); err != nil {
		return ""
	}
	return content
}

// truthy mirrors the provider-client convention of ignoring null, false, 0 and "".
func truthy(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
