package ghcrawl

import (
	"slices"
	"testing"

	"github.com/cryops/cryops/internal/analytics"
)

func TestCrawlResult_Totals(t *testing.T) {
	r := &CrawlResult{
		Repos:  make([]analytics.RawRepo, 3),
		Pinned: []string{"a", "b"},
		Contributions: &analytics.Contributions{
			Contributions: make([]analytics.ContributionPoint, 365),
		},
	}
	if got := r.TotalRepos(); got != 3 {
		t.Errorf("TotalRepos() = %d, want 3", got)
	}
	if got := r.TotalPinned(); got != 2 {
		t.Errorf("TotalPinned() = %d, want 2", got)
	}
	if got := r.TotalDays(); got != 365 {
		t.Errorf("TotalDays() = %d, want 365", got)
	}
}

func TestCrawlResult_Zeros(t *testing.T) {
	r := &CrawlResult{}
	if r.TotalRepos() != 0 || r.TotalPinned() != 0 || r.TotalDays() != 0 {
		t.Error("expected all zeros for empty CrawlResult")
	}
}

func TestCrawlResult_Missing(t *testing.T) {
	r := &CrawlResult{Repos: []analytics.RawRepo{}, Issues: &analytics.SearchResult{}}
	want := []string{"contributions", "pull_requests"}
	if got := r.Missing(); !slices.Equal(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestCrawlResult_Sources(t *testing.T) {
	r := &CrawlResult{
		User:   analytics.RawUser{Login: "octo"},
		Pinned: []string{"cli"},
	}
	src := r.Sources("https://github.com/octo")
	if src.User.Login != "octo" || src.ProfileURL != "https://github.com/octo" || !slices.Equal(src.Pinned, r.Pinned) {
		t.Errorf("Sources() = %+v", src)
	}
}
