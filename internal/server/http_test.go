package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireup/internal/auth"
	"hireup/internal/config"
	"hireup/internal/events"
	"hireup/internal/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ScanCompleted
	closed bool
}

func (p *recordingPublisher) PublishScanCompleted(_ context.Context, event events.ScanCompleted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

type archived struct {
	key         string
	size        int
	contentType string
}

type recordingArchiver struct {
	mu      sync.Mutex
	objects []archived
}

func (a *recordingArchiver) Archive(_ context.Context, key string, data []byte, contentType string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects = append(a.objects, archived{key: key, size: len(data), contentType: contentType})
	return nil
}

type failingStore struct {
	store.Store
}

func (failingStore) AddScan(context.Context, *store.ScanEntry) error {
	return stderrors.New("disk full")
}

func (failingStore) Ping(context.Context) error {
	return stderrors.New("connection refused")
}

type testEnv struct {
	server    *Server
	handler   http.Handler
	store     store.Store
	publisher *recordingPublisher
	archiver  *recordingArchiver
}

type envOption func(*ServerConfig, *Dependencies)

func withAPIKeys(keys ...string) envOption {
	return func(cfg *ServerConfig, _ *Dependencies) { cfg.APIKeys = keys }
}

func withStore(st store.Store) envOption {
	return func(_ *ServerConfig, deps *Dependencies) { deps.Store = st }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	hasher, err := auth.NewPasswordHasher(auth.DefaultBcryptCost, "")
	require.NoError(t, err)
	tokens, err := auth.NewTokenService("test-secret", 0)
	require.NoError(t, err)

	env := &testEnv{publisher: &recordingPublisher{}, archiver: &recordingArchiver{}}
	cfg := ServerConfig{Host: "localhost", Port: "0", Version: "test", MaxRequestSize: 10 << 20}
	deps := Dependencies{
		Store:   st,
		Events:  env.publisher,
		Archive: env.archiver,
	}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}
	deps.Accounts = auth.NewAccounts(deps.Store, hasher, tokens)

	appCfg := &config.Config{}
	appCfg.App.MaxFileSize = 5 << 20

	env.store = deps.Store
	env.server = NewServer(appCfg, cfg, deps, nil)
	env.handler = env.server.Handler()
	t.Cleanup(func() {
		if env.server.RateLimiter != nil {
			env.server.RateLimiter.Close()
		}
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Jane Doe", "email": email, "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string          `json:"token"`
		User  auth.PublicUser `json:"user"`
	}
	decode(t, rec, &resp)
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	decode(t, rec, &resp)
	return resp
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := newTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		decode(t, rec, &resp)
		assert.Equal(t, "healthy", resp["status"])
		assert.Equal(t, "connected", resp["database"])
		assert.NotEmpty(t, resp["timestamp"])
		assert.NotContains(t, resp, "certificates")
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t, withStore(failingStore{Store: store.NewMemoryStore()}))
		rec := env.do(t, http.MethodGet, "/api/health", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp map[string]any
		decode(t, rec, &resp)
		assert.Equal(t, "degraded", resp["status"])
		assert.Equal(t, "disconnected", resp["database"])
	})
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, withAPIKeys("k1", "k2"))
	rec := env.do(t, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	decode(t, rec, &resp)
	assert.Equal(t, "hireup", resp["service"])
	assert.Equal(t, float64(2), resp["server"].(map[string]any)["api_keys_configured"])
	assert.Equal(t, false, resp["rate_limiting"].(map[string]any)["enabled"])
}

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)
	token, id := env.register(t, "Jane@Example.com")
	require.NotEmpty(t, token)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Jane Again", "email": "jane@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", errorOf(t, rec).Error)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", errorOf(t, rec).Error)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Success bool            `json:"success"`
		User    auth.PublicUser `json:"user"`
	}
	decode(t, rec, &me)
	assert.True(t, me.Success)
	assert.Equal(t, id, me.User.ID)
	assert.Equal(t, "jane@example.com", me.User.Email)

	rec = env.do(t, http.MethodPut, "/api/auth/profile", token, map[string]string{"name": "Jane Smith"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &me)
	assert.Equal(t, "Jane Smith", me.User.Name)
}

func TestPrivateRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/auth/resumes"},
		{http.MethodGet, "/api/dashboard/stats"},
		{http.MethodPost, "/api/resume/analyze"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec := env.do(t, tc.method, tc.path, "not-a-token", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, auth.NotAuthorized, errorOf(t, rec).Error)
		})
	}
}

func TestInvalidJSONBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", errorOf(t, rec).Error)
}

func TestScanHistoryAndDashboard(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPost, "/api/auth/resume", token, map[string]any{
		"score": 40, "totalChecksPassed": 4, "wordCount": 300, "skills": []string{"go"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var first struct {
		Resume store.ScanEntry `json:"resume"`
	}
	decode(t, rec, &first)
	assert.Equal(t, store.UnknownFileName, first.Resume.FileName)

	rec = env.do(t, http.MethodPost, "/api/auth/resume", token, map[string]any{
		"fileName": "cv.pdf", "score": 80, "totalChecksPassed": 8, "matchScore": 50, "skills": []string{"go", "sql"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/resume", token, map[string]any{"score": 101})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "score is out of range", errorOf(t, rec).Error)

	rec = env.do(t, http.MethodGet, "/api/auth/resumes", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Resumes []store.ScanEntry `json:"resumes"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Resumes, 2)
	assert.Equal(t, "cv.pdf", list.Resumes[0].FileName)

	rec = env.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		Success bool                 `json:"success"`
		Data    store.DashboardStats `json:"data"`
	}
	decode(t, rec, &dash)
	assert.Equal(t, 2, dash.Data.Stats.TotalScans)
	assert.Equal(t, 60, dash.Data.Stats.AverageScore)
	assert.Equal(t, 80, dash.Data.Stats.HighestScore)
	assert.Equal(t, 100, dash.Data.Stats.ImprovementRate)
	assert.Equal(t, 2, dash.Data.Stats.SkillsCount)
	assert.Equal(t, 1, dash.Data.Stats.MatchesCount)

	rec = env.do(t, http.MethodDelete, "/api/auth/resume/"+first.Resume.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg struct {
		Message string `json:"message"`
	}
	decode(t, rec, &msg)
	assert.Equal(t, "Resume deleted successfully", msg.Message)

	rec = env.do(t, http.MethodDelete, "/api/auth/resume/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/auth/resume/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resume not found", errorOf(t, rec).Error)
}

func TestSavedJobs(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPost, "/api/auth/save-job", token, map[string]string{
		"title": "Backend Engineer", "company": "Acme", "url": "https://acme.example/jobs/1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved struct {
		Job store.SavedJob `json:"job"`
	}
	decode(t, rec, &saved)
	assert.Equal(t, store.DefaultJobStatus, saved.Job.Status)

	rec = env.do(t, http.MethodPost, "/api/auth/save-job", token, map[string]string{"company": "Acme"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", errorOf(t, rec).Error)

	rec = env.do(t, http.MethodPut, "/api/auth/job/"+saved.Job.ID.String(), token, map[string]string{"status": "applied"})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &saved)
	assert.Equal(t, "applied", saved.Job.Status)

	rec = env.do(t, http.MethodPut, "/api/auth/job/"+uuid.NewString(), token, map[string]string{"status": "applied"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Job not found", errorOf(t, rec).Error)

	other, _ := env.register(t, "bob@example.com")
	rec = env.do(t, http.MethodPut, "/api/auth/job/"+saved.Job.ID.String(), other, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConnectGitHub(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "jane@example.com")

	rec := env.do(t, http.MethodPost, "/api/auth/github", token, map[string]string{"username": "octocat"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		GitHub store.GitHubLink `json:"github"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "octocat", resp.GitHub.Username)

	rec = env.do(t, http.MethodPost, "/api/auth/github", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *ServerConfig, _ *Dependencies) {
		cfg.RateLimit = &config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstCapacity: 1, ByIP: true}
	})

	body := map[string]string{"email": "nobody@example.com", "password": "whatever"}
	first := env.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second := env.do(t, http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "Rate limit exceeded", errorOf(t, second).Error)

	// health is not rate limited
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/health", "", nil).Code)
	assert.Equal(t, int64(1), env.server.RateLimiter.GetStats()["rejected_requests"])
}

func TestCORS(t *testing.T) {
	env := newTestEnv(t, func(cfg *ServerConfig, _ *Dependencies) {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "abcdefgh****", maskAPIKey("abcdefghijkl"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "garbage, 203.0.113.7"}, "10.0.0.1:1", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "10.0.0.1:1", "198.51.100.2"},
		{"remote addr", nil, "10.0.0.1:5555", "10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "8000"
	cfg.Database.Driver = "memory"
	cfg.App.MaxFileSize = 1 << 20

	_, err := NewFromConfig(t.Context(), cfg, "test", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwtSecret is required")

	cfg.Auth.JWTSecret = "s3cret"
	cfg.Server.APIKeys = []string{"key-1", ""}
	s, err := NewFromConfig(t.Context(), cfg, "test", nil)
	require.NoError(t, err)
	t.Cleanup(s.close)

	assert.Equal(t, int64(1<<20+multipartOverhead), s.MaxRequestSize)
	assert.Len(t, s.APIKeys, 1)
	assert.NotNil(t, s.deps.GitHub)
	assert.IsType(t, events.NopPublisher{}, s.deps.Events)

	cfg.Database.Driver = "oracle"
	_, err = NewFromConfig(t.Context(), cfg, "test", nil)
	assert.Error(t, err)
}
