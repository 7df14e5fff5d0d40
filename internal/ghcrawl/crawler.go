package ghcrawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cryops/cryops/internal/analytics"
	"github.com/google/go-github/v68/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCalendarURL serves public contribution calendars by username.
	DefaultCalendarURL = "https://github-contributions-api.jogruber.de/v4/"

	reposPerPage     = 100
	searchPerPage    = 100
	maxPinnedRepos   = 6
	maxCalendarBytes = 4 << 20
)

// ErrUserNotFound is returned when GitHub has no user with the given login.
var ErrUserNotFound = errors.New("github user not found")

// Crawler fetches everything a portfolio report needs about a GitHub user.
type Crawler struct {
	client      *github.Client
	graphql     *githubv4.Client
	http        *http.Client
	calendarURL string
}

// NewCrawler returns a Crawler authenticated with the given token. An empty
// token crawls anonymously and skips pinned repositories.
func NewCrawler(token string) *Crawler {
	httpClient := newHTTPClient(token)
	return &Crawler{
		client:  newGitHubClient(httpClient),
		graphql: newGraphQLClient(token, httpClient),
		// The calendar lives on a third-party host and must never see the token.
		http:        &http.Client{Timeout: requestTimeout},
		calendarURL: DefaultCalendarURL,
	}
}

// Crawl collects the profile, repositories, contribution calendar, issue and
// pull request searches and pinned repositories of username. Only the
// profile is required; every other source degrades to empty on failure.
func (c *Crawler) Crawl(ctx context.Context, username string) (*CrawlResult, error) {
	user, err := c.fetchUser(ctx, username)
	if err != nil {
		return nil, err
	}
	result := &CrawlResult{User: user}

	// Each goroutine writes its own field of result.
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		repos, err := c.fetchRepos(gCtx, username)
		if err != nil {
			slog.Warn("could not fetch repos", "user", username, "error", err)
			return nil
		}
		result.Repos = repos
		return nil
	})

	g.Go(func() error {
		cal, err := c.fetchCalendar(gCtx, username)
		if err != nil {
			slog.Warn("could not fetch contribution calendar", "user", username, "error", err)
			return nil
		}
		result.Contributions = cal
		return nil
	})

	g.Go(func() error {
		issues, err := c.search(gCtx, "author:"+username)
		if err != nil {
			slog.Warn("could not search issues", "user", username, "error", err)
			return nil
		}
		result.Issues = issues
		return nil
	})

	g.Go(func() error {
		prs, err := c.search(gCtx, "author:"+username+" type:pr")
		if err != nil {
			slog.Warn("could not search pull requests", "user", username, "error", err)
			return nil
		}
		result.PullRequests = prs
		return nil
	})

	if c.graphql != nil {
		g.Go(func() error {
			pinned, err := c.fetchPinned(gCtx, username)
			if err != nil {
				slog.Warn("could not fetch pinned repos", "user", username, "error", err)
				return nil
			}
			result.Pinned = pinned
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Sources swallow their own errors, so a cancelled crawl would otherwise
	// look like an empty one.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("crawl complete",
		"user", username,
		"repos", len(result.Repos),
		"pinned", len(result.Pinned),
		"missing", result.Missing(),
	)
	return result, nil
}

// Validate reports whether username exists and returns its profile.
func (c *Crawler) Validate(ctx context.Context, username string) (*analytics.Profile, error) {
	user, err := c.fetchUser(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := analytics.ProfileFrom(user)
	return &profile, nil
}

func (c *Crawler) fetchUser(ctx context.Context, username string) (analytics.RawUser, error) {
	user, _, err := c.client.Users.Get(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return analytics.RawUser{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return analytics.RawUser{}, fmt.Errorf("fetching user %s: %w", username, err)
	}
	return rawUser(user), nil
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

func (c *Crawler) fetchRepos(ctx context.Context, username string) ([]analytics.RawRepo, error) {
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: reposPerPage},
	}

	all := []analytics.RawRepo{}
	for {
		repos, resp, err := c.client.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, fmt.Errorf("listing repos page %d: %w", max(opts.Page, 1), err)
		}
		for _, r := range repos {
			all = append(all, rawRepo(r))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

func (c *Crawler) fetchCalendar(ctx context.Context, username string) (*analytics.Contributions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.calendarURL+url.PathEscape(username), nil)
	if err != nil {
		return nil, fmt.Errorf("building calendar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCalendarBytes))
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}
	return analytics.ParseContributions(body), nil
}

// search runs an issue search and keeps the first page only: the total
// comes from the response, closed items are counted over what was returned.
func (c *Crawler) search(ctx context.Context, query string) (*analytics.SearchResult, error) {
	res, _, err := c.client.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: searchPerPage},
	})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	out := &analytics.SearchResult{
		TotalCount: res.GetTotal(),
		Items:      make([]analytics.SearchItem, 0, len(res.Issues)),
	}
	for _, issue := range res.Issues {
		out.Items = append(out.Items, analytics.SearchItem{State: issue.GetState()})
	}
	return out, nil
}

type pinnedQuery struct {
	User struct {
		PinnedItems struct {
			Nodes []struct {
				Repository struct {
					Name githubv4.String
				} `graphql:"... on Repository"`
			}
		} `graphql:"pinnedItems(first: $first, types: REPOSITORY)"`
	} `graphql:"user(login: $login)"`
}

func (c *Crawler) fetchPinned(ctx context.Context, username string) ([]string, error) {
	var q pinnedQuery
	vars := map[string]interface{}{
		"login": githubv4.String(username),
		"first": githubv4.Int(maxPinnedRepos),
	}
	if err := c.graphql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("querying pinned items: %w", err)
	}

	names := make([]string, 0, len(q.User.PinnedItems.Nodes))
	for _, n := range q.User.PinnedItems.Nodes {
		if name := string(n.Repository.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func rawUser(u *github.User) analytics.RawUser {
	return analytics.RawUser{
		Login:           u.GetLogin(),
		Name:            u.Name,
		Bio:             u.Bio,
		AvatarURL:       u.GetAvatarURL(),
		HTMLURL:         u.GetHTMLURL(),
		Location:        u.Location,
		Company:         u.Company,
		Blog:            u.Blog,
		TwitterUsername: u.TwitterUsername,
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		PublicRepos:     u.GetPublicRepos(),
		PublicGists:     u.GetPublicGists(),
		CreatedAt:       timestamp(u.CreatedAt),
	}
}

func rawRepo(r *github.Repository) analytics.RawRepo {
	out := analytics.RawRepo{
		Owner:           analytics.RawOwner{Login: r.GetOwner().GetLogin()},
		Name:            r.GetName(),
		Description:     r.Description,
		Language:        r.Language,
		StargazersCount: r.GetStargazersCount(),
		Forks:           r.GetForksCount(),
		CreatedAt:       timestamp(r.CreatedAt),
		UpdatedAt:       timestamp(r.UpdatedAt),
	}
	if r.PushedAt != nil {
		pushed := timestamp(r.PushedAt)
		out.PushedAt = &pushed
	}
	return out
}

func timestamp(ts *github.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
