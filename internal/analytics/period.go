package analytics

import (
	"time"

	"github.com/rickar/cal/v2"
)

// WeekSplit is the share of contributions made on weekdays and weekends, in
// whole percent.
type WeekSplit struct {
	Weekday int `json:"weekday"`
	Weekend int `json:"weekend"`
}

// BestCommit is the single busiest day of a period.
type BestCommit struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PeriodMetrics summarizes the contributions of one time window.
type PeriodMetrics struct {
	RecentContributions     int         `json:"recentContributions"`
	AverageDailyCommits     float64     `json:"averageDailyCommits"`
	WeekendPercentage       int         `json:"weekendPercentage"`
	MostActiveDay           *string     `json:"mostActiveDay"`
	WeekdayWeekendBreakdown WeekSplit   `json:"weekdayWeekendBreakdown"`
	BestCommit              *BestCommit `json:"bestCommit"`
}

// ComputeMetrics summarizes an already filtered slice of points. Points with
// an unreadable date are ignored.
func ComputeMetrics(points []ContributionPoint) PeriodMetrics {
	var (
		total, weekend, weekday int
		activeDays              int
		best                    *datedPoint
	)
	byWeekday := make(map[time.Weekday]int)
	var weekdayOrder []time.Weekday

	dp := datedPoints(points)
	for i, p := range dp {
		total += p.count

		wd := p.day.Weekday()
		if _, seen := byWeekday[wd]; !seen {
			weekdayOrder = append(weekdayOrder, wd)
		}
		byWeekday[wd] += p.count

		if cal.IsWeekend(p.day) {
			weekend += p.count
		} else {
			weekday += p.count
		}

		if p.count > 0 {
			activeDays++
			if best == nil || p.count > best.count {
				best = &dp[i]
			}
		}
	}

	m := PeriodMetrics{RecentContributions: total}
	if total > 0 {
		m.WeekendPercentage = percentOf(weekend, total)
		m.WeekdayWeekendBreakdown = WeekSplit{
			Weekday: percentOf(weekday, total),
			Weekend: m.WeekendPercentage,
		}
	}
	if activeDays > 0 {
		m.AverageDailyCommits = roundHalfUp(float64(total)/float64(activeDays)*10) / 10
	}

	// Ties go to the weekday seen first.
	if len(weekdayOrder) > 0 {
		top := weekdayOrder[0]
		for _, wd := range weekdayOrder[1:] {
			if byWeekday[wd] > byWeekday[top] {
				top = wd
			}
		}
		m.MostActiveDay = ptr(top.String())
	}

	if best != nil {
		m.BestCommit = &BestCommit{
			Date:  formatOrdinalDate(best.day),
			Count: best.count,
		}
	}
	return m
}

// FilterSince keeps the points dated from start through now's date, both
// inclusive.
func FilterSince(points []ContributionPoint, start, now time.Time) []ContributionPoint {
	from, to := civilDay(start), civilDay(now)
	out := make([]ContributionPoint, 0, len(points))
	for _, p := range points {
		day, ok := parseDay(p.Date)
		if !ok || day.Before(from) || day.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}

const recentDays = 30

// RecentCalendar keeps the points of the last recentDays calendar days,
// today included.
func RecentCalendar(points []ContributionPoint, now time.Time) []ContributionPoint {
	return FilterSince(points, now.AddDate(0, 0, -(recentDays-1)), now)
}

func percentOf(part, total int) int {
	return int(roundHalfUp(float64(part) / float64(total) * 100))
}
