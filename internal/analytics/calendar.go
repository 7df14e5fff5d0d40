package analytics

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// maxStreakWalk bounds the backward walk of CurrentStreak.
const maxStreakWalk = 1000

// ContributionPoint is one day of the contribution calendar.
type ContributionPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Contributions is the contribution calendar payload: daily points plus
// per-year totals keyed by year ("2023") and "lastYear".
type Contributions struct {
	Contributions []ContributionPoint `json:"contributions"`
	Total         map[string]int      `json:"total,omitempty"`
}

// Points returns the daily points, treating a nil calendar as empty.
func (c *Contributions) Points() []ContributionPoint {
	if c == nil {
		return nil
	}
	return c.Contributions
}

// ParseContributions reads a contribution calendar payload. Anything that is
// not an object with a "contributions" array yields an empty calendar;
// malformed entries are skipped and negative counts clamp to zero.
func ParseContributions(raw []byte) *Contributions {
	out := &Contributions{Contributions: []ContributionPoint{}}
	if !gjson.ValidBytes(raw) {
		return out
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return out
	}
	list := doc.Get("contributions")
	if !list.IsArray() {
		return out
	}

	list.ForEach(func(_, v gjson.Result) bool {
		date := v.Get("date")
		if date.Type != gjson.String {
			return true
		}
		out.Contributions = append(out.Contributions, ContributionPoint{
			Date:  date.String(),
			Count: max(int(v.Get("count").Int()), 0),
		})
		return true
	})

	if total := doc.Get("total"); total.IsObject() {
		out.Total = make(map[string]int)
		total.ForEach(func(k, v gjson.Result) bool {
			out.Total[k.String()] = int(v.Int())
			return true
		})
	}
	return out
}

type datedPoint struct {
	day   time.Time
	count int
}

// datedPoints parses point dates, dropping points whose date is unreadable.
func datedPoints(points []ContributionPoint) []datedPoint {
	out := make([]datedPoint, 0, len(points))
	for _, p := range points {
		if day, ok := parseDay(p.Date); ok {
			out = append(out, datedPoint{day: day, count: p.Count})
		}
	}
	return out
}

func sortedByDay(points []ContributionPoint) []datedPoint {
	dp := datedPoints(points)
	slices.SortStableFunc(dp, func(a, b datedPoint) int {
		return a.day.Compare(b.day)
	})
	return dp
}

// TotalContributions sums every point's count.
func TotalContributions(points []ContributionPoint) int {
	total := 0
	for _, p := range points {
		total += p.Count
	}
	return total
}

// CurrentYearContributions sums the points whose date string starts with
// now's year.
func CurrentYearContributions(points []ContributionPoint, now time.Time) int {
	year := strconv.Itoa(now.Year())
	total := 0
	for _, p := range points {
		if strings.HasPrefix(p.Date, year) {
			total += p.Count
		}
	}
	return total
}

// CurrentStreak counts consecutive contributing days ending today. A quiet
// today does not break the streak: counting then starts from yesterday.
func CurrentStreak(points []ContributionPoint, now time.Time) int {
	byDay := make(map[string]int, len(points))
	for _, p := range points {
		if day, ok := parseDay(p.Date); ok {
			byDay[day.Format(dayLayout)] = p.Count
		}
	}

	today := civilDay(now)
	streak := 0
	day := today
	for range maxStreakWalk {
		if byDay[day.Format(dayLayout)] > 0 {
			streak++
		} else if !day.Equal(today) {
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive contributing days.
// A zero-count day or a gap of more than one day ends a run.
func LongestStreak(points []ContributionPoint) int {
	longest, run := 0, 0
	var last time.Time
	haveLast := false
	for _, p := range sortedByDay(points) {
		if p.count <= 0 {
			run, haveLast = 0, false
			continue
		}
		if haveLast && daysBetween(last, p.day) <= 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		last, haveLast = p.day, true
	}
	return longest
}

// ActiveYears lists the numeric year keys of a calendar's totals in
// ascending order. The "lastYear" key and anything non-numeric are skipped.
func ActiveYears(total map[string]int) []string {
	var years []int
	for key := range total {
		if key == "lastYear" {
			continue
		}
		y, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	slices.Sort(years)

	out := make([]string, 0, len(years))
	for _, y := range years {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// FirstCommitInfo describes the earliest contributing day. Both fields are
// nil when no day has contributions.
type FirstCommitInfo struct {
	Date        *string
	CodingYears *string
}

// FirstCommit finds the earliest contributing day and how many (started)
// 365-day years have passed since it.
func FirstCommit(points []ContributionPoint, now time.Time) FirstCommitInfo {
	var first time.Time
	found := false
	for _, p := range datedPoints(points) {
		if p.count > 0 && (!found || p.day.Before(first)) {
			first, found = p.day, true
		}
	}
	if !found {
		return FirstCommitInfo{}
	}

	years := math.Ceil(now.Sub(first).Hours() / 24 / 365)
	return FirstCommitInfo{
		Date:        ptr(formatOrdinalDate(first)),
		CodingYears: ptr("Coding for " + strconv.Itoa(int(years)) + "+ years"),
	}
}

// YearOverYearChange compares the trailing 12 months with the 12 months
// before them.
func YearOverYearChange(points []ContributionPoint, now time.Time) *int {
	return windowChange(points, now, 12)
}

// QuarterOverQuarterChange compares the trailing 3 months with the 3 months
// before them.
func QuarterOverQuarterChange(points []ContributionPoint, now time.Time) *int {
	return windowChange(points, now, 3)
}

// HalfOverHalfChange compares the trailing 6 months with the 6 months
// before them.
func HalfOverHalfChange(points []ContributionPoint, now time.Time) *int {
	return windowChange(points, now, 6)
}

// windowChange returns the rounded percentage change between the window of
// the given number of months ending today and the equally long window right
// before it. It is nil when the earlier window has no contributions.
func windowChange(points []ContributionPoint, now time.Time, months int) *int {
	today := civilDay(now)
	recentStart := today.AddDate(0, -months, 0)
	prevStart := today.AddDate(0, -2*months, 0)
	prevEnd := recentStart.AddDate(0, 0, -1)

	var recent, prev int
	for _, p := range datedPoints(points) {
		switch {
		case !p.day.Before(recentStart) && !p.day.After(today):
			recent += p.count
		case !p.day.Before(prevStart) && !p.day.After(prevEnd):
			prev += p.count
		}
	}
	if prev == 0 {
		return nil
	}
	return ptr(int(roundHalfUp(float64(recent-prev) / float64(prev) * 100)))
}
