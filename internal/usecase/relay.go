package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"chat-relay/internal/domain"
)

const DefaultModel = "gpt-4o"

// KeySource resolves the upstream API key for one invocation.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// Completer performs the single upstream call with a serialized payload.
type Completer interface {
	Post(ctx context.Context, apiKey string, payload []byte) (json.RawMessage, error)
}

type bodyExcerpter interface {
	BodyExcerpt() string
}

// StaticKey is a KeySource for a key supplied through the environment.
type StaticKey string

func (k StaticKey) APIKey(_ context.Context) (string, error) {
	return string(k), nil
}

type RelayService struct {
	keys  KeySource
	llm   Completer
	model string
	mode  domain.ResponseMode
}

type RelayInput struct {
	Body []byte
}

// RelayOutput holds either the normalized reply or, in passthrough mode, the raw
// upstream result.
type RelayOutput struct {
	Reply string
	Model string
	Raw   json.RawMessage
}

func NewRelayService(keys KeySource, llm Completer, model string, mode domain.ResponseMode) (*RelayService, error) {
	if keys == nil {
		return nil, errors.New("usecase: key source must not be nil")
	}
	if llm == nil {
		return nil, errors.New("usecase: completer must not be nil")
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	if mode == "" {
		mode = domain.ResponseModeStrict
	}
	if mode != domain.ResponseModeStrict && mode != domain.ResponseModePassthrough {
		return nil, errors.New("usecase: unknown response mode " + string(mode))
	}
	return &RelayService{keys: keys, llm: llm, model: model, mode: mode}, nil
}

func (s *RelayService) Mode() domain.ResponseMode {
	return s.mode
}

// Relay validates the request body, prepends the persona and forwards the
// conversation upstream exactly once.
func (s *RelayService) Relay(ctx context.Context, in RelayInput) (RelayOutput, error) {
	apiKey, err := s.keys.APIKey(ctx)
	if err != nil {
		return RelayOutput{}, newError(ErrorConfig, "api_key_unavailable", MessageMissingAPIKey, err)
	}
	if strings.TrimSpace(apiKey) == "" {
		return RelayOutput{}, newError(ErrorConfig, "api_key_missing", MessageMissingAPIKey, nil)
	}

	messages, verr := parseMessages(in.Body)
	if verr != nil {
		return RelayOutput{}, verr
	}

	payload, err := buildPayload(s.model, messages)
	if err != nil {
		return RelayOutput{}, newError(ErrorInternal, "payload_marshal_error", MessageInternal, err)
	}

	result, err := s.llm.Post(ctx, apiKey, payload)
	if err != nil {
		var excerpter bodyExcerpter
		if errors.As(err, &excerpter) {
			return RelayOutput{}, newError(ErrorUpstream, "openai_malformed_response", err.Error(), err)
		}
		return RelayOutput{}, newError(ErrorUpstream, "openai_request_failed", err.Error(), err)
	}

	if msg, ok := upstreamError(result); ok {
		return RelayOutput{}, newError(ErrorUpstream, "openai_error", msg, nil)
	}

	if s.mode == domain.ResponseModePassthrough {
		return RelayOutput{Model: s.model, Raw: result}, nil
	}

	reply := replyContent(result)
	if reply == "" {
		return RelayOutput{}, newError(ErrorUpstream, "openai_empty_reply", MessageEmptyReply, nil)
	}
	return RelayOutput{Reply: reply, Model: s.model}, nil
}
