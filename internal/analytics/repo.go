package analytics

import (
	"time"

	"github.com/cryops/cryops/internal/textutil"
)

// RawOwner is the owner object of a GitHub repository payload.
type RawOwner struct {
	Login string `json:"login"`
}

// RawRepo is the subset of a GitHub REST repository payload the analytics
// read. Nullable API fields are pointers.
type RawRepo struct {
	Owner           RawOwner `json:"owner"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Language        *string  `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	Forks           int      `json:"forks"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	PushedAt        *string  `json:"pushed_at"`
}

// SanitizedRepo is a repository normalized for display and ranking.
type SanitizedRepo struct {
	Author           string `json:"author"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Language         string `json:"language"`
	LanguageColor    string `json:"languageColor"`
	Stars            int    `json:"stars"`
	Forks            int    `json:"forks"`
	IsPinned         bool   `json:"isPinned"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
	PushedAt         string `json:"pushedAt"`
	ActivityDuration string `json:"activityDuration"`
}

// SanitizeRepos normalizes raw repository records, preserving their order.
// A repo is marked pinned when its name appears in pinned.
func SanitizeRepos(raw []RawRepo, pinned []string) []SanitizedRepo {
	pinnedNames := make(map[string]bool, len(pinned))
	for _, name := range pinned {
		pinnedNames[name] = true
	}

	out := make([]SanitizedRepo, 0, len(raw))
	for _, r := range raw {
		language := deref(r.Language)
		out = append(out, SanitizedRepo{
			Author:           r.Owner.Login,
			Name:             r.Name,
			Description:      deref(r.Description),
			Language:         language,
			LanguageColor:    ColorFor(language),
			Stars:            r.StargazersCount,
			Forks:            r.Forks,
			IsPinned:         pinnedNames[r.Name],
			CreatedAt:        r.CreatedAt,
			UpdatedAt:        r.UpdatedAt,
			PushedAt:         deref(r.PushedAt),
			ActivityDuration: ActivityDuration(r.CreatedAt, r.UpdatedAt),
		})
	}
	return out
}

// ActivityDuration describes the time between two RFC 3339 timestamps in the
// largest whole unit that fits: "Active 3 yrs", "Active 1 month",
// "Active 2 weeks", "Active 1 day". Missing or unparseable timestamps yield "".
func ActivityDuration(createdAt, updatedAt string) string {
	if createdAt == "" || updatedAt == "" {
		return ""
	}
	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return ""
	}
	updated, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return ""
	}

	days := max(updated.Sub(created).Hours()/24, 0)
	switch {
	case days >= 365:
		return "Active " + textutil.Plural(int(days/365), "yr", "yrs")
	case days >= 30:
		return "Active " + textutil.Plural(int(days/30), "month", "months")
	case days >= 7:
		return "Active " + textutil.Plural(int(days/7), "week", "weeks")
	default:
		return "Active " + textutil.Plural(int(days), "day", "days")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
