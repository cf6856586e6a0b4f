package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"chat-relay/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// Relayer is the chat relay use case consumed by the handler.
type Relayer interface {
	Relay(ctx context.Context, in usecase.RelayInput) (usecase.RelayOutput, error)
}

type chatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the single chat endpoint for API Gateway proxy events.
type Handler struct {
	relay Relayer
	log   *slog.Logger
}

func NewHandler(relay Relayer, log *slog.Logger) (*Handler, error) {
	if relay == nil {
		return nil, errors.New("handler: relay must not be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Handler{relay: relay, log: log}, nil
}

// Handle never returns an error: every failure becomes a JSON response with CORS headers.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := correlationIDFrom(req.Headers)
	log := h.log.With("correlation_id", correlationID, "method", req.HTTPMethod)

	switch req.HTTPMethod {
	case http.MethodOptions:
		return newResponse(http.StatusOK, "", correlationID), nil
	case http.MethodPost:
	default:
		log.Warn("method not allowed", "path", req.Path)
		return respondJSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"}, correlationID), nil
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			log.Warn("undecodable request body", "err", err)
			return respondJSON(http.StatusBadRequest, errorResponse{Error: usecase.MessageInvalidFormat}, correlationID), nil
		}
		body = decoded
	}

	out, err := h.relay.Relay(ctx, usecase.RelayInput{Body: body})
	if err != nil {
		status, message := mapError(err)
		log.Error("relay failed", "status", status, "err", err)
		return respondJSON(status, errorResponse{Error: message}, correlationID), nil
	}

	if out.Raw != nil {
		return newResponse(http.StatusOK, string(out.Raw), correlationID), nil
	}
	return respondJSON(http.StatusOK, chatResponse{Reply: out.Reply, Model: out.Model}, correlationID), nil
}

func mapError(err error) (int, string) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return http.StatusInternalServerError, usecase.MessageInternal
	}
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, ucErr.Message
	default:
		return http.StatusInternalServerError, ucErr.Message
	}
}

func respondJSON(status int, v any, correlationID string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(v)
	if err != nil {
		return newResponse(http.StatusInternalServerError, `{"error":"`+usecase.MessageInternal+`"}`, correlationID)
	}
	return newResponse(status, string(body), correlationID)
}

func newResponse(status int, body, correlationID string) events.APIGatewayProxyResponse {
	headers := corsHeaders()
	headers[correlationHeader] = correlationID
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}

func correlationIDFrom(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return uuid.NewString()
}
