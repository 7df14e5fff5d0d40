package analytics

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestProfileFrom(t *testing.T) {
	p := ProfileFrom(RawUser{Login: "octo", HTMLURL: "https://github.com/octo", Followers: 7})
	if p.Name != "octo" {
		t.Errorf("Name = %q, want login fallback", p.Name)
	}
	if p.Username != "octo" || p.ProfileURL != "https://github.com/octo" || p.Followers != 7 {
		t.Errorf("ProfileFrom() = %+v", p)
	}

	p = ProfileFrom(RawUser{Login: "octo", Name: strPtr("The Octocat"), Bio: strPtr("hi")})
	if p.Name != "The Octocat" || p.Bio != "hi" {
		t.Errorf("ProfileFrom() = %+v", p)
	}
}

func TestBuildReport(t *testing.T) {
	now := day(2024, 6, 15)
	src := Sources{
		User: RawUser{Login: "octo", HTMLURL: "https://github.com/octo"},
		Repos: []RawRepo{
			{Owner: RawOwner{Login: "octo"}, Name: "cli", Language: strPtr("Go"), StargazersCount: 4, PushedAt: strPtr("2024-06-02T10:00:00Z")},
			{Owner: RawOwner{Login: "octo"}, Name: "site", Language: strPtr("TypeScript"), StargazersCount: 10, PushedAt: strPtr("2023-01-02T10:00:00Z")},
		},
		Pinned: []string{"cli"},
	}

	r := BuildReport(src, now)

	if r.TotalStars != 14 {
		t.Errorf("TotalStars = %d, want 14", r.TotalStars)
	}
	if r.BestRepo == nil || r.BestRepo.Name != "site" {
		t.Errorf("BestRepo = %+v, want site", r.BestRepo)
	}
	if r.MostActiveRepoThisMonth == nil || r.MostActiveRepoThisMonth.Name != "cli" {
		t.Errorf("MostActiveRepoThisMonth = %+v, want cli", r.MostActiveRepoThisMonth)
	}
	if names(r.ActivelyMaintainedRepos) != "[cli]" {
		t.Errorf("ActivelyMaintainedRepos = %s, want [cli]", names(r.ActivelyMaintainedRepos))
	}
	if !r.SanitizedRepos[0].IsPinned || r.SanitizedRepos[1].IsPinned {
		t.Errorf("pinned flags = %v/%v", r.SanitizedRepos[0].IsPinned, r.SanitizedRepos[1].IsPinned)
	}
	if len(r.LanguageDistribution) != 2 {
		t.Errorf("LanguageDistribution = %+v", r.LanguageDistribution)
	}
	if r.ProfileURL != "https://github.com/octo" {
		t.Errorf("ProfileURL = %q", r.ProfileURL)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"contributionCalendar":{"contributions":[]}`, `"recentContributions":[]`, `"sanitizedReposData":[`, `"profileUrl":"https://github.com/octo"`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("JSON missing %s", want)
		}
	}
}

func TestBuildReport_RecentContributions(t *testing.T) {
	now := day(2024, 6, 15)
	src := Sources{
		User: RawUser{Login: "octo"},
		Contributions: &Contributions{Contributions: points(
			"2024-05-16", 9,
			"2024-05-17", 2,
			"2024-06-01", 0,
			"2024-06-15", 3,
			"2024-06-16", 5,
		)},
	}

	r := BuildReport(src, now)

	var got []string
	for _, p := range r.RecentContributions {
		got = append(got, p.Date)
	}
	want := "[2024-05-17 2024-06-01 2024-06-15]"
	if fmt.Sprint(got) != want {
		t.Errorf("RecentContributions = %v, want %s", got, want)
	}
}

func TestFormatOrdinalDate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2023-08-28", "28th Aug 2023"},
		{"2024-01-01", "1st Jan 2024"},
		{"2024-03-22", "22nd Mar 2024"},
		{"2024-05-13", "13th May 2024"},
		{"2024-06-15T10:00:00Z", "15th Jun 2024"},
		{"soon", "soon"},
	}
	for _, tt := range tests {
		if got := FormatOrdinalDate(tt.in); got != tt.want {
			t.Errorf("FormatOrdinalDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
