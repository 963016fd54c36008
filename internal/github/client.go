package github

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hireup/internal/config"
	"hireup/internal/errors"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

const maxResponseBytes = 10 << 20

var errUpstreamNotFound = stderrors.New("github: not found")

// Client is a small GitHub REST client for public profile data.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *Breaker
	logger  *errors.Logger
	now     func() time.Time
}

// NewClient builds a client from configuration.
func NewClient(cfg config.GitHubConfig, logger *errors.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: NewBreaker("github-api", cfg.CircuitBreaker, logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Breaker exposes the client's circuit breaker for stats reporting.
func (c *Client) Breaker() *Breaker {
	return c.breaker
}

// GetProfile fetches a user's public profile.
func (c *Client) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), nil, &profile); err != nil {
		if stderrors.Is(err, errUpstreamNotFound) {
			return nil, errors.NewNotFoundError(errors.ErrCodeNotFound, "User not found", err).
				WithContext("username", username)
		}
		return nil, upstreamError("Failed to fetch user profile", err)
	}
	return &profile, nil
}

// GetRepos fetches the first page of up to 100 repositories, most recently
// updated first.
func (c *Client) GetRepos(ctx context.Context, username string) ([]Repo, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("per_page", "100")
	query.Set("sort", "updated")

	var repos []Repo
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/repos", query, &repos); err != nil {
		return nil, upstreamError("Failed to fetch repositories", err)
	}
	return repos, nil
}

// GetEvents fetches recent public events. Failures yield an empty list.
func (c *Client) GetEvents(ctx context.Context, username string) []Event {
	var events []Event
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/events", nil, &events); err != nil {
		c.logger.Warn("GitHub events unavailable, scoring without activity", "username", username, "error", err.Error())
		return []Event{}
	}
	return events
}

// FetchProfile looks up a user and scores their public activity.
func (c *Client) FetchProfile(ctx context.Context, username string) (*ProfileScore, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest, "GitHub username is required", nil)
	}

	profile, err := c.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	var (
		repos  []Repo
		events []Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repos, err = c.GetRepos(gctx, username)
		return err
	})
	g.Go(func() error {
		events = c.GetEvents(gctx, username)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ProfileScore{
		Profile:    *profile,
		Score:      Score(*profile, repos, events, c.now()),
		TotalStars: totalStars(repos),
		Languages:  languages(repos),
		PushEvents: pushEvents(events),
		Repos:      FormatRepos(repos),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", "hireup")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to call %s: %w", path, err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode == http.StatusNotFound {
			return nil, errUpstreamNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("github returned status %d for %s", resp.StatusCode, path)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func upstreamError(message string, err error) error {
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		message = "GitHub API temporarily unavailable"
	}
	return errors.NewNetworkError(errors.ErrCodeUpstreamFailed, message, err)
}
