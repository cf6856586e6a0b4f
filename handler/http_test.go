package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/internal/usecase"
)

func TestHTTPHandler_ForwardsRequest(t *testing.T) {
	relay := &stubRelay{out: usecase.RelayOutput{Reply: "hi there", Model: "gpt-4o"}}
	srv := NewHTTPHandler(newTestHandler(t, relay), nil)

	body := `{"messages":[{"role":"user","content":"hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat?debug=1", strings.NewReader(body))
	req.Header.Set("X-Correlation-Id", "corr-http")
	rec := httptest.NewRecorder()

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"reply":"hi there","model":"gpt-4o"}`, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "corr-http", rec.Header().Get("X-Correlation-Id"))
	require.Equal(t, body, string(relay.in.Body))
}

func TestHTTPHandler_Preflight(t *testing.T) {
	srv := NewHTTPHandler(newTestHandler(t, &stubRelay{}), nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/chat", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestHTTPHandler_BodyTooLarge(t *testing.T) {
	relay := &stubRelay{}
	srv := NewHTTPHandler(newTestHandler(t, relay), nil)

	big := strings.Repeat("a", maxRequestBytes+1)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(big)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.False(t, relay.called)
}

func TestToProxyRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat?a=1&b=2", nil)
	req.Header.Set("Accept", "application/json")

	event := toProxyRequest(req, []byte(`{}`))
	require.Equal(t, http.MethodPost, event.HTTPMethod)
	require.Equal(t, "/chat", event.Path)
	require.Equal(t, "application/json", event.Headers["Accept"])
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, event.QueryStringParameters)
	require.Equal(t, `{}`, event.Body)
	require.False(t, event.IsBase64Encoded)
}
