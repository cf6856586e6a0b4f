package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/respond"
	"github.com/aws/aws-lambda-go/events"
)

const maxRequestBytes = 1 << 20

// NewHTTPHandler serves h over plain net/http, converting each request into the
// proxy event the Lambda runtime would deliver.
func NewHTTPHandler(h *Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		if err != nil {
			log.Error("failed to read body", slog.Any("error", err))
			for k, v := range corsHeaders() {
				w.Header().Set(k, v)
			}
			respond.WithError(w, "failed to read body", http.StatusBadRequest)
			return
		}

		resp, _ := h.Handle(r.Context(), toProxyRequest(r, body))
		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(resp.StatusCode)
		_, _ = io.WriteString(w, resp.Body)

		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"correlation_id", resp.Headers[correlationHeader],
		)
	})
}

func toProxyRequest(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}
	query := make(map[string]string, len(r.URL.Query()))
	for k := range r.URL.Query() {
		query[k] = r.URL.Query().Get(k)
	}
	return events.APIGatewayProxyRequest{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
	}
}
