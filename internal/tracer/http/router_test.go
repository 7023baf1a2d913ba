package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spendtrace/spendtrace/internal/tracer/service"
	"github.com/spendtrace/spendtrace/internal/tracer/store/drivers/sqlite"
	"github.com/spendtrace/spendtrace/pkg/jwtx"
	"github.com/spendtrace/spendtrace/pkg/langdetect"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := jwtx.NewCodec([]byte("test-secret"), "spendtrace-test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(tokens, time.Hour, "test", st, logger)
	router.IdentityService = &service.IdentityService{Store: st, Tokens: tokens, ResetTTL: 10 * time.Minute}
	router.FollowService = &service.FollowService{Store: st}
	router.LedgerService = &service.LedgerService{Store: st, PerPage: 5, DetectLanguage: langdetect.Detect}
	router.FeedService = &service.FeedService{Store: st, PerPage: 5}
	router.ReportService = &service.ReportService{Store: st}
	router.Mailer = service.LogMailer{}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestRegisterLoginAndPurchaseFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password1234",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "alice", body["username"])

	t.Run("duplicate username conflicts", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/register", "", map[string]any{
			"username": "alice",
			"email":    "alice2@example.com",
			"password": "password1234",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		require.Equal(t, "duplicate_username", body["error"])
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", map[string]any{
			"username": "alice",
			"password": "wrong password",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/v1/login", "", map[string]any{
		"username": "alice",
		"password": "password1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	t.Run("purchases require a session", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/purchases", "", map[string]any{
			"purchaser":     "Alice",
			"shopname":      "corner store",
			"purchase_date": "2026-08-14",
			"value":         12.5,
			"subject":       "groceries",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("create and read back a purchase", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/purchases", token, map[string]any{
			"purchaser":     "Alice",
			"shopname":      "corner store",
			"purchase_date": "2026-08-14",
			"value":         12.5,
			"subject":       "groceries",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "2026-08-14", body["purchase_date"])

		resp, body = doJSON(t, http.MethodGet, srv.URL+"/v1/feed", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		items, _ := body["items"].([]any)
		require.Len(t, items, 1)
		require.Equal(t, float64(1), body["page"])
		require.Equal(t, false, body["has_next"])
	})

	t.Run("non-positive value rejected", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/purchases", token, map[string]any{
			"purchaser":     "Alice",
			"shopname":      "corner store",
			"purchase_date": "2026-08-14",
			"value":         0,
			"subject":       "free",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("self-follow rejected", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/users/alice/follow", token, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "self_follow", body["error"])
	})

	t.Run("following an unknown user is a 404", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/users/nobody/follow", token, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.Equal(t, "unknown_user", body["error"])
	})

	t.Run("liveness", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, srv.URL+"/livez", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "ok", body["status"])
	})
}
