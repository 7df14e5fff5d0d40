package analytics

import "time"

// Sources bundles the already fetched inputs of a report. Nil calendar or
// search results stand for sources that could not be fetched.
type Sources struct {
	User          RawUser
	Repos         []RawRepo
	Pinned        []string
	Contributions *Contributions
	Issues        *SearchResult
	PullRequests  *SearchResult
	ProfileURL    string
}

// Report is everything a generated portfolio shows about a GitHub user.
type Report struct {
	Profile                 Profile             `json:"profile"`
	Contributions           ContributionDetails `json:"contributions"`
	ContributionCalendar    Contributions       `json:"contributionCalendar"`
	RecentContributions     []ContributionPoint `json:"recentContributions"`
	SanitizedRepos          []SanitizedRepo     `json:"sanitizedReposData"`
	LanguageDistribution    []LanguageShare     `json:"languageDistribution"`
	TotalStars              int                 `json:"totalStars"`
	BestRepo                *SanitizedRepo      `json:"bestRepo"`
	MostActiveRepoThisMonth *SanitizedRepo      `json:"mostActiveRepoThisMonth"`
	ActivelyMaintainedRepos []SanitizedRepo     `json:"activelyMaintainedRepos"`
	TopActivelyUsedRepos    []SanitizedRepo     `json:"topActivelyUsedRepos"`
	ProfileURL              string              `json:"profileUrl"`
}

// BuildReport derives the full report as of now.
func BuildReport(src Sources, now time.Time) Report {
	repos := SanitizeRepos(src.Repos, src.Pinned)

	calendar := Contributions{Contributions: []ContributionPoint{}, Total: map[string]int{}}
	if src.Contributions != nil {
		if src.Contributions.Contributions != nil {
			calendar.Contributions = src.Contributions.Contributions
		}
		if src.Contributions.Total != nil {
			calendar.Total = src.Contributions.Total
		}
	}

	profile := ProfileFrom(src.User)
	profileURL := src.ProfileURL
	if profileURL == "" {
		profileURL = profile.ProfileURL
	}

	return Report{
		Profile:                 profile,
		Contributions:           ContributionDetailsFor(src.Contributions, src.Issues, src.PullRequests, now),
		ContributionCalendar:    calendar,
		RecentContributions:     RecentCalendar(calendar.Contributions, now),
		SanitizedRepos:          repos,
		LanguageDistribution:    LanguageDistribution(repos),
		TotalStars:              TotalStars(repos),
		BestRepo:                BestRepo(repos),
		MostActiveRepoThisMonth: MostActiveRepoThisMonth(repos, now),
		ActivelyMaintainedRepos: ActivelyMaintainedRepos(repos, now),
		TopActivelyUsedRepos:    TopActivelyUsedRepos(repos),
		ProfileURL:              profileURL,
	}
}
