package analytics

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestContributionDetailsFor_MissingSources(t *testing.T) {
	d := ContributionDetailsFor(nil, nil, nil, day(2024, 1, 3))

	if d.Total != 0 || d.CurrentStreak != 0 || d.LongestStreak != 0 {
		t.Errorf("details = %+v, want zero counters", d)
	}
	if d.FirstCommitDate != nil || d.CodingYears != nil || d.YearOverYearChangePercentage != nil {
		t.Errorf("details = %+v, want null first commit and changes", d)
	}
	if d.Issues != (Counts{}) || d.PullRequests != (Counts{}) {
		t.Errorf("issues %+v prs %+v, want zero", d.Issues, d.PullRequests)
	}
	if d.Overall.MostActiveDay != nil {
		t.Errorf("Overall.MostActiveDay = %v, want nil", *d.Overall.MostActiveDay)
	}

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{
		`"activeYears":[]`,
		`"yearOverYearChangePercentage":null`,
		`"firstCommitDate":null`,
		`"bestCommit":null`,
	} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("JSON %s missing %s", raw, want)
		}
	}
}

func TestContributionDetailsFor(t *testing.T) {
	now := day(2024, 1, 3)
	c := &Contributions{
		Contributions: points(
			"2022-12-20", 4,
			"2023-01-05", 1,
			"2023-12-30", 2,
			"2024-01-01", 3,
			"2024-01-02", 0,
			"2024-01-03", 5,
		),
		Total: map[string]int{"2022": 4, "2023": 3, "2024": 8, "lastYear": 11},
	}
	prs := &SearchResult{TotalCount: 5, Items: []SearchItem{{State: "closed"}, {State: "open"}}}

	d := ContributionDetailsFor(c, &SearchResult{}, prs, now)

	if d.Total != 15 || d.CurrentYear != 8 {
		t.Errorf("Total/CurrentYear = %d/%d, want 15/8", d.Total, d.CurrentYear)
	}
	if d.CurrentStreak != 1 || d.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", d.CurrentStreak, d.LongestStreak)
	}
	if got := strings.Join(d.ActiveYears, ","); got != "2022,2023,2024" {
		t.Errorf("ActiveYears = %s", got)
	}
	if d.FirstCommitDate == nil || *d.FirstCommitDate != "20th Dec 2022" {
		t.Errorf("FirstCommitDate = %v, want 20th Dec 2022", d.FirstCommitDate)
	}
	if d.PullRequests != (Counts{Total: 5, Closed: 1}) {
		t.Errorf("PullRequests = %+v", d.PullRequests)
	}
	// The trailing year holds 11 contributions against 4 in the year before.
	if d.YearOverYearChangePercentage == nil || *d.YearOverYearChangePercentage != 175 {
		t.Errorf("YearOverYearChangePercentage = %v, want 175", d.YearOverYearChangePercentage)
	}
	if d.Last6Months.RecentContributions != 10 {
		t.Errorf("Last6Months.RecentContributions = %d, want 10", d.Last6Months.RecentContributions)
	}
	if d.Last1Year.RecentContributions != 11 {
		t.Errorf("Last1Year.RecentContributions = %d, want 11", d.Last1Year.RecentContributions)
	}
	if d.Overall.RecentContributions != 15 {
		t.Errorf("Overall.RecentContributions = %d, want 15", d.Overall.RecentContributions)
	}
}
