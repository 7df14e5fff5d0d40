package analytics

import (
	"slices"
	"time"
)

const topActiveRepos = 6

func pushedTime(r SanitizedRepo) (time.Time, bool) {
	if r.PushedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.PushedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MostActiveRepoThisMonth returns the most recently pushed repo among those
// pushed during now's calendar month, or nil if there is none.
func MostActiveRepoThisMonth(repos []SanitizedRepo, now time.Time) *SanitizedRepo {
	var best *SanitizedRepo
	var bestPushed time.Time
	for i := range repos {
		pushed, ok := pushedTime(repos[i])
		if !ok {
			continue
		}
		local := pushed.In(now.Location())
		if local.Year() != now.Year() || local.Month() != now.Month() {
			continue
		}
		if best == nil || pushed.After(bestPushed) {
			r := repos[i]
			best, bestPushed = &r, pushed
		}
	}
	return best
}

// ActivelyMaintainedRepos returns the repos pushed within the six months
// before now.
func ActivelyMaintainedRepos(repos []SanitizedRepo, now time.Time) []SanitizedRepo {
	cutoff := now.AddDate(0, -6, 0)
	out := make([]SanitizedRepo, 0)
	for _, r := range repos {
		if pushed, ok := pushedTime(r); ok && !pushed.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// TopActivelyUsedRepos returns up to six repos ordered by most recent push.
// The input slice is left untouched.
func TopActivelyUsedRepos(repos []SanitizedRepo) []SanitizedRepo {
	type pushedRepo struct {
		repo   SanitizedRepo
		pushed time.Time
	}
	var candidates []pushedRepo
	for _, r := range repos {
		if pushed, ok := pushedTime(r); ok {
			candidates = append(candidates, pushedRepo{repo: r, pushed: pushed})
		}
	}
	slices.SortStableFunc(candidates, func(a, b pushedRepo) int {
		return b.pushed.Compare(a.pushed)
	})

	out := make([]SanitizedRepo, 0, min(len(candidates), topActiveRepos))
	for _, c := range candidates[:min(len(candidates), topActiveRepos)] {
		out = append(out, c.repo)
	}
	return out
}

// TotalStars sums stargazers over all repos.
func TotalStars(repos []SanitizedRepo) int {
	total := 0
	for _, r := range repos {
		total += r.Stars
	}
	return total
}

// BestRepo returns the repo with the most stars, preferring the earliest on
// ties, or nil for an empty list.
func BestRepo(repos []SanitizedRepo) *SanitizedRepo {
	if len(repos) == 0 {
		return nil
	}
	best := repos[0]
	for _, r := range repos[1:] {
		if r.Stars > best.Stars {
			best = r
		}
	}
	return &best
}
