package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tasknest-service/auth"
	"tasknest-service/config"
	"tasknest-service/models"
	"tasknest-service/store"
	"tasknest-service/store/storetest"
	"tasknest-service/weather"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	*httptest.Server
	t *testing.T
}

func newTestServer(t *testing.T) *testServer {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Paris" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":{"code":1006,"message":"No matching location found."}}`)
			return
		}
		io.WriteString(w, `{"location":{"name":"Paris"},"current":{"temp_c":18.5}}`)
	}))
	t.Cleanup(provider.Close)

	db := storetest.NewDB(t)
	router := NewRouter(Dependencies{
		Users:   store.NewUserStore(db),
		Tasks:   store.NewTaskStore(db),
		Hasher:  auth.NewPasswordHasherWithCost(4),
		Tokens:  auth.NewTokenService("e2e-secret", 24*time.Hour, "tasknest"),
		Weather: weather.NewClient(config.WeatherConfig{BaseURL: provider.URL, APIKey: "k", Timeout: time.Second}),
		Logger:  zap.NewNop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, t: t}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, raw
}

func (s *testServer) register(name, email, role string) {
	s.t.Helper()
	body := map[string]string{"name": name, "email": email, "password": "secret1"}
	if role != "" {
		body["role"] = role
	}
	code, raw := s.do("POST", "/", "", body)
	require.Equal(s.t, http.StatusOK, code, string(raw))
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	code, raw := s.do("POST", "/", "", map[string]string{"email": email, "password": "secret1"})
	require.Equal(s.t, http.StatusOK, code, string(raw))

	var resp models.TokenResponse
	require.NoError(s.t, json.Unmarshal(raw, &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)

	s.register("Alice", "a@x.com", "")
	token := s.login("a@x.com")

	code, raw := s.do("POST", "/taskNest", token, map[string]string{"text": "buy milk"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Task added"}`, string(raw))

	code, raw = s.do("GET", "/taskNest", token, nil)
	require.Equal(t, http.StatusOK, code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(raw, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Status)

	code, raw = s.do("PUT", "/taskNest", token, map[string]interface{}{"id": tasks[0].ID, "status": true})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":true}`, string(raw))

	s.register("Bob", "b@x.com", "")
	other := s.login("b@x.com")
	code, _ = s.do("DELETE", "/taskNest", other, map[string]string{"id": tasks[0].ID})
	assert.Equal(t, http.StatusNotFound, code)

	code, raw = s.do("GET", "/taskNest", other, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(raw))

	code, raw = s.do("DELETE", "/taskNest", token, map[string]string{"id": tasks[0].ID})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"message":"Task deleted"}`, string(raw))
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do("GET", "/taskNest", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do("GET", "/api/protected", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	s.register("Alice", "a@x.com", "")
	token := s.login("a@x.com")
	code, raw := s.do("GET", "/api/protected", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(raw), `"userId"`)
}

func TestValidationRunsBeforeAuthentication(t *testing.T) {
	s := newTestServer(t)

	code, raw := s.do("POST", "/taskNest", "", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(raw), "not allowed to be empty")

	code, _ = s.do("POST", "/taskNest", "", map[string]string{"text": "buy milk"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)

	s.register("Alice", "a@x.com", "")
	s.register("Manny", "m@x.com", "manager")
	s.register("Root", "root@x.com", "admin")
	user := s.login("a@x.com")
	manager := s.login("m@x.com")
	admin := s.login("root@x.com")

	code, _ := s.do("GET", "/api/admin/users", user, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do("GET", "/api/admin/users", manager, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do("GET", "/api/admin/tasks", manager, nil)
	assert.Equal(t, http.StatusOK, code)

	code, raw := s.do("GET", "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 3)
	assert.NotContains(t, string(raw), "password")

	code, _ = s.do("GET", "/api/admin/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestWeather(t *testing.T) {
	s := newTestServer(t)
	s.register("Alice", "a@x.com", "")
	token := s.login("a@x.com")

	code, raw := s.do("POST", "/weatherMe", token, map[string]string{"city": "Paris"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"city":"Paris","temp":18.5}`, string(raw))

	code, raw = s.do("POST", "/weatherMe", token, map[string]string{"city": "Atlantis"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(raw), "No matching location found.")

	code, _ = s.do("POST", "/weatherMe", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	code, raw := s.do("GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"healthy","service":"tasknest"}`, string(raw))
}

func TestRecoverPanics(t *testing.T) {
	handler := recoverPanics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	cfg.Env = config.EnvDevelopment
	logger, err = NewLogger(cfg)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

type recordingCloser struct {
	closed        bool
	handlerDoneAt bool
	handlerDone   *atomic.Bool
}

func (c *recordingCloser) Close() error {
	c.closed = true
	c.handlerDoneAt = c.handlerDone.Load()
	return nil
}

func TestShutdownOperations_ClosesDatabaseAfterDrain(t *testing.T) {
	started := make(chan struct{})
	var handlerDone atomic.Bool

	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		handlerDone.Store(true)
		w.WriteHeader(http.StatusOK)
	})}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)

	respCode := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			respCode <- 0
			return
		}
		resp.Body.Close()
		respCode <- resp.StatusCode
	}()
	<-started

	closer := &recordingCloser{handlerDone: &handlerDone}
	ops := shutdownOperations(srv, closer, zap.NewNop())
	require.Len(t, ops, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, op := range ops {
		require.NoError(t, op(ctx))
	}

	assert.True(t, closer.closed)
	assert.True(t, closer.handlerDoneAt, "database closed while a request was in flight")
	assert.Equal(t, http.StatusOK, <-respCode)
}
