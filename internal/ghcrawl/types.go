package ghcrawl

import "github.com/cryops/cryops/internal/analytics"

// CrawlResult holds everything fetched about one GitHub user. Nil calendar
// or search fields mark sources that could not be fetched.
type CrawlResult struct {
	User          analytics.RawUser
	Repos         []analytics.RawRepo
	Pinned        []string
	Contributions *analytics.Contributions
	Issues        *analytics.SearchResult
	PullRequests  *analytics.SearchResult
}

// Sources hands the crawl over to the report builder.
func (r *CrawlResult) Sources(profileURL string) analytics.Sources {
	return analytics.Sources{
		User:          r.User,
		Repos:         r.Repos,
		Pinned:        r.Pinned,
		Contributions: r.Contributions,
		Issues:        r.Issues,
		PullRequests:  r.PullRequests,
		ProfileURL:    profileURL,
	}
}

// Missing names the optional sources that could not be fetched.
func (r *CrawlResult) Missing() []string {
	var missing []string
	if r.Repos == nil {
		missing = append(missing, "repos")
	}
	if r.Contributions == nil {
		missing = append(missing, "contributions")
	}
	if r.Issues == nil {
		missing = append(missing, "issues")
	}
	if r.PullRequests == nil {
		missing = append(missing, "pull_requests")
	}
	return missing
}

func (r *CrawlResult) TotalRepos() int  { return len(r.Repos) }
func (r *CrawlResult) TotalPinned() int { return len(r.Pinned) }
func (r *CrawlResult) TotalDays() int   { return len(r.Contributions.Points()) }
