package ghcrawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const (
	userAgent      = "cryops"
	requestTimeout = 30 * time.Second
)

// newHTTPClient returns the client shared by the REST and GraphQL APIs. An
// empty token yields an anonymous client with the lower public rate limit.
func newHTTPClient(token string) *http.Client {
	var base http.RoundTripper = http.DefaultTransport
	if token != "" {
		base = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   http.DefaultTransport,
		}
	}
	return &http.Client{
		Transport: &rateLimitTransport{base: base},
		Timeout:   requestTimeout,
	}
}

func newGitHubClient(httpClient *http.Client) *github.Client {
	client := github.NewClient(httpClient)
	client.UserAgent = userAgent
	return client
}

// newGraphQLClient returns nil without a token: the GraphQL API rejects
// anonymous requests.
func newGraphQLClient(token string, httpClient *http.Client) *githubv4.Client {
	if token == "" {
		return nil
	}
	return githubv4.NewClient(httpClient)
}

// rateLimitTransport wraps an http.RoundTripper and pauses when rate-limited.
type rateLimitTransport struct {
	base http.RoundTripper
}

const (
	maxRetries        = 3
	lowRemainingQuota = 10
	maxRateLimitPause = 15 * time.Minute
	maxRetryAfterSecs = 900
)

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := range maxRetries {
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("rewinding request body: %w", err)
			}
			req = req.Clone(req.Context())
			req.Body = body
		}
		resp, err = t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		limited := resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests
		if !limited {
			if wait, ok := quotaPause(resp.Header); ok {
				slog.Warn("github quota nearly spent, pausing", "path", req.URL.Path, "wait", wait.Round(time.Second))
				if err := sleepContext(req.Context(), wait+time.Second); err != nil {
					resp.Body.Close()
					return nil, err
				}
			}
			return resp, nil
		}

		secs, parseErr := strconv.Atoi(resp.Header.Get("Retry-After"))
		if parseErr != nil || secs <= 0 || secs >= maxRetryAfterSecs {
			return resp, nil
		}

		slog.Warn("github rate limited, retrying", "retry_after", secs, "attempt", attempt+1)
		resp.Body.Close()
		if err := sleepContext(req.Context(), time.Duration(secs)*time.Second); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("github rate limit: retries exhausted after %d attempts", maxRetries)
}

// quotaPause reports how long to wait when the remaining quota is low and
// the reset is near enough to be worth waiting for.
func quotaPause(h http.Header) (time.Duration, bool) {
	rem, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil || rem > lowRemainingQuota {
		return 0, false
	}
	reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return 0, false
	}
	wait := time.Until(time.Unix(reset, 0))
	if wait <= 0 || wait >= maxRateLimitPause {
		return 0, false
	}
	return wait, true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
