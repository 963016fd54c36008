package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hireup/internal/config"
	"hireup/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		repos   []Repo
		events  []Event
		want    int
	}{
		{
			name: "empty profile",
			want: 0,
		},
		{
			name:    "typical profile",
			profile: Profile{Followers: 10, CreatedAt: fixedNow.Add(-2 * year)},
			repos: []Repo{
				{StargazersCount: 5, Language: "Go"},
				{StargazersCount: 10, Language: "Go"},
				{Language: ""},
			},
			events: []Event{{Type: "PushEvent"}, {Type: "PushEvent"}, {Type: "PushEvent"}, {Type: "PushEvent"}, {Type: "WatchEvent"}},
			// 6 + 6 + 3 + 1.5 + 1.2 + 6 = 23.7
			want: 24,
		},
		{
			name:    "capped at 100",
			profile: Profile{Followers: 500, CreatedAt: fixedNow.Add(-10 * year)},
			repos:   manyRepos(30, 10),
			events:  repeatEvents(40),
			want:    100,
		},
		{
			name:    "future account clamps to zero",
			profile: Profile{CreatedAt: fixedNow.Add(year)},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.profile, tt.repos, tt.events, fixedNow))
		})
	}
}

func manyRepos(n, languages int) []Repo {
	repos := make([]Repo, n)
	for i := range repos {
		repos[i] = Repo{StargazersCount: 10, Language: string(rune('A' + i%languages))}
	}
	return repos
}

func repeatEvents(n int) []Event {
	events := make([]Event, n)
	for i := range events {
		events[i] = Event{Type: "PushEvent"}
	}
	return events
}

func TestFormatRepos(t *testing.T) {
	summaries := FormatRepos([]Repo{
		{ID: 1, Name: "hireup", FullName: "jane/hireup", HTMLURL: "https://github.com/jane/hireup", StargazersCount: 3},
		{ID: 2, Name: "dots", Description: "dotfiles", Topics: []string{"shell"}},
	})

	require.Len(t, summaries, 2)
	assert.Equal(t, "No description", summaries[0].Description)
	assert.Equal(t, "https://github.com/jane/hireup", summaries[0].URL)
	assert.Equal(t, 3, summaries[0].Stars)
	assert.Equal(t, []string{}, summaries[0].Topics)
	assert.Equal(t, "dotfiles", summaries[1].Description)
	assert.Empty(t, FormatRepos(nil))
}

type fakeGitHub struct {
	userStatus   int
	reposStatus  int
	eventsStatus int
	authHeader   atomic.Value
	calls        atomic.Int32
}

func (f *fakeGitHub) handler() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, v any) {
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
	mux.HandleFunc("GET /users/{name}", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.authHeader.Store(r.Header.Get("Authorization"))
		write(w, f.userStatus, map[string]any{
			"login":      r.PathValue("name"),
			"followers":  10,
			"created_at": fixedNow.Add(-2 * year).Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /users/{name}/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "100" || r.URL.Query().Get("sort") != "updated" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		write(w, f.reposStatus, []map[string]any{
			{"id": 1, "name": "a", "stargazers_count": 5, "language": "Go"},
			{"id": 2, "name": "b", "stargazers_count": 10, "language": "Go", "description": "second"},
			{"id": 3, "name": "c", "language": nil},
		})
	})
	mux.HandleFunc("GET /users/{name}/events", func(w http.ResponseWriter, r *http.Request) {
		write(w, f.eventsStatus, []map[string]any{
			{"type": "PushEvent"}, {"type": "PushEvent"}, {"type": "PushEvent"}, {"type": "PushEvent"}, {"type": "WatchEvent"},
		})
	})
	return mux
}

func newTestClient(t *testing.T, fake *fakeGitHub, breaker config.CircuitBreakerConfig) *Client {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	c := NewClient(config.GitHubConfig{BaseURL: srv.URL, Token: "ghp_test", CircuitBreaker: breaker}, nil)
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestFetchProfile(t *testing.T) {
	fake := &fakeGitHub{}
	c := newTestClient(t, fake, config.CircuitBreakerConfig{})

	result, err := c.FetchProfile(context.Background(), "jane")
	require.NoError(t, err)

	assert.Equal(t, "jane", result.Profile.Login)
	assert.Equal(t, 24, result.Score)
	assert.Equal(t, 15, result.TotalStars)
	assert.Equal(t, []string{"Go"}, result.Languages)
	assert.Equal(t, 4, result.PushEvents)
	require.Len(t, result.Repos, 3)
	assert.Equal(t, "second", result.Repos[1].Description)
	assert.Equal(t, "Bearer ghp_test", fake.authHeader.Load())
}

func TestFetchProfileNotFound(t *testing.T) {
	c := newTestClient(t, &fakeGitHub{userStatus: http.StatusNotFound}, config.CircuitBreakerConfig{})

	_, err := c.FetchProfile(context.Background(), "ghost")
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "User not found", appErr.Message)
	assert.Equal(t, http.StatusNotFound, errors.StatusForError(err))
}

func TestFetchProfileDegradedEvents(t *testing.T) {
	c := newTestClient(t, &fakeGitHub{eventsStatus: http.StatusInternalServerError}, config.CircuitBreakerConfig{})

	result, err := c.FetchProfile(context.Background(), "jane")
	require.NoError(t, err)
	assert.Equal(t, 0, result.PushEvents)
	// 6 + 6 + 3 + 1.5 + 0 + 6 = 22.5
	assert.Equal(t, 23, result.Score)
}

func TestFetchProfileReposFailure(t *testing.T) {
	c := newTestClient(t, &fakeGitHub{reposStatus: http.StatusInternalServerError}, config.CircuitBreakerConfig{})

	_, err := c.FetchProfile(context.Background(), "jane")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUpstreamFailed))
	assert.Equal(t, http.StatusBadGateway, errors.StatusForError(err))
}

func TestFetchProfileRequiresUsername(t *testing.T) {
	c := newTestClient(t, &fakeGitHub{}, config.CircuitBreakerConfig{})
	_, err := c.FetchProfile(context.Background(), "  ")
	assert.Equal(t, http.StatusBadRequest, errors.StatusForError(err))
}

func TestBreakerOpens(t *testing.T) {
	fake := &fakeGitHub{userStatus: http.StatusInternalServerError}
	c := newTestClient(t, fake, config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      2,
		FailureThreshold: 0.5,
	})

	for range 2 {
		_, err := c.GetProfile(context.Background(), "jane")
		require.Error(t, err)
	}
	assert.False(t, c.Breaker().IsHealthy())

	_, err := c.GetProfile(context.Background(), "jane")
	require.Error(t, err)
	appErr, _ := errors.As(err)
	assert.Equal(t, "GitHub API temporarily unavailable", appErr.Message)
	assert.Equal(t, int32(2), fake.calls.Load())
	assert.Equal(t, true, c.Breaker().Stats()["enabled"])
}

func TestBreakerIgnoresNotFound(t *testing.T) {
	c := newTestClient(t, &fakeGitHub{userStatus: http.StatusNotFound}, config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      1,
		FailureThreshold: 0.5,
	})

	for range 3 {
		_, err := c.GetProfile(context.Background(), "ghost")
		require.Error(t, err)
	}
	assert.True(t, c.Breaker().IsHealthy())
}

func TestNilBreaker(t *testing.T) {
	var b *Breaker
	out, err := b.Execute(func() ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.True(t, b.IsHealthy())
	assert.Equal(t, false, b.Stats()["enabled"])
}
