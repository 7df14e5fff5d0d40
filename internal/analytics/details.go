package analytics

import "time"

// ContributionDetails is the full set of contribution statistics shown on a
// portfolio.
type ContributionDetails struct {
	Total                              int           `json:"total"`
	CurrentYear                        int           `json:"currentYear"`
	CurrentStreak                      int           `json:"currentStreak"`
	LongestStreak                      int           `json:"longestStreak"`
	ActiveYears                        []string      `json:"activeYears"`
	YearOverYearChangePercentage       *int          `json:"yearOverYearChangePercentage"`
	QuarterOverQuarterChangePercentage *int          `json:"quarterOverQuarterChangePercentage"`
	HalfOverHalfChangePercentage       *int          `json:"halfOverHalfChangePercentage"`
	FirstCommitDate                    *string       `json:"firstCommitDate"`
	CodingYears                        *string       `json:"codingYears"`
	PullRequests                       Counts        `json:"pullRequests"`
	Issues                             Counts        `json:"issues"`
	Last6Months                        PeriodMetrics `json:"last6Months"`
	Last1Year                          PeriodMetrics `json:"last1Year"`
	Overall                            PeriodMetrics `json:"overall"`
}

// ContributionDetailsFor derives every contribution statistic as of now.
// Any input may be nil; missing data produces zero or null fields.
func ContributionDetailsFor(c *Contributions, issues, prs *SearchResult, now time.Time) ContributionDetails {
	points := c.Points()
	var totals map[string]int
	if c != nil {
		totals = c.Total
	}
	first := FirstCommit(points, now)

	return ContributionDetails{
		Total:                              TotalContributions(points),
		CurrentYear:                        CurrentYearContributions(points, now),
		CurrentStreak:                      CurrentStreak(points, now),
		LongestStreak:                      LongestStreak(points),
		ActiveYears:                        ActiveYears(totals),
		YearOverYearChangePercentage:       YearOverYearChange(points, now),
		QuarterOverQuarterChangePercentage: QuarterOverQuarterChange(points, now),
		HalfOverHalfChangePercentage:       HalfOverHalfChange(points, now),
		FirstCommitDate:                    first.Date,
		CodingYears:                        first.CodingYears,
		PullRequests:                       SummarizeSearch(prs),
		Issues:                             SummarizeSearch(issues),
		Last6Months:                        ComputeMetrics(FilterSince(points, now.AddDate(0, -6, 0), now)),
		Last1Year:                          ComputeMetrics(FilterSince(points, now.AddDate(-1, 0, 0), now)),
		Overall:                            ComputeMetrics(points),
	}
}
