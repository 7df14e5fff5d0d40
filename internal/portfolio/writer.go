package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cryops/cryops/internal/analytics"
	"github.com/cryops/cryops/internal/llm"
	"github.com/cryops/cryops/internal/textutil"
	"golang.org/x/sync/errgroup"
)

const (
	maxInstructionsLen = 1000
	maxDescriptionLen  = 300
	maxHighlights      = 6
)

var errEmptyResponse = errors.New("empty response")

// Highlight is the portfolio blurb of one repository.
type Highlight struct {
	Repo  string `json:"repo"`
	Blurb string `json:"blurb"`
}

// Copy is the LLM-written text of a portfolio.
type Copy struct {
	Headline   string      `json:"headline"`
	About      string      `json:"about"`
	Highlights []Highlight `json:"highlights"`
}

// Writer drafts portfolio copy from a report with an LLM provider.
type Writer struct {
	provider llm.Provider
}

// NewWriter returns a Writer that uses the given LLM provider.
func NewWriter(provider llm.Provider) *Writer {
	return &Writer{provider: provider}
}

// Draft writes the hero text and the project highlights of a portfolio in
// parallel. instructions is free text from the author steering tone and
// focus; it may be empty.
func (w *Writer) Draft(ctx context.Context, report *analytics.Report, instructions string) (*Copy, error) {
	instructions = textutil.Truncate(strings.TrimSpace(instructions), maxInstructionsLen, "...")
	projects := featuredRepos(report)
	opts := &llm.CompleteOptions{JSON: true, MaxTokens: 1024}

	out := &Copy{}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("drafting portfolio headline", "user", report.Profile.Username)
		prompt := fmt.Sprintf(aboutPrompt,
			buildProfileText(report.Profile),
			buildStatsText(report),
			buildLanguagesText(report.LanguageDistribution),
			instructions,
		)
		raw, err := w.provider.Complete(gCtx, systemPrompt, prompt, opts)
		if err != nil {
			return fmt.Errorf("drafting headline: %w", err)
		}
		var hero struct {
			Headline string `json:"headline"`
			About    string `json:"about"`
		}
		if err := decodeJSON(raw, &hero); err != nil {
			return fmt.Errorf("parsing headline: %w", err)
		}
		out.Headline, out.About = strings.TrimSpace(hero.Headline), strings.TrimSpace(hero.About)
		return nil
	})

	g.Go(func() error {
		if len(projects) == 0 {
			slog.Warn("no repositories to highlight, skipping project blurbs")
			return nil
		}
		slog.Info("drafting project highlights", "repos", len(projects))
		prompt := fmt.Sprintf(highlightsPrompt, buildReposText(projects), instructions)
		raw, err := w.provider.Complete(gCtx, systemPrompt, prompt, opts)
		if err != nil {
			return fmt.Errorf("drafting highlights: %w", err)
		}
		var resp struct {
			Highlights []Highlight `json:"highlights"`
		}
		if err := decodeJSON(raw, &resp); err != nil {
			return fmt.Errorf("parsing highlights: %w", err)
		}
		out.Highlights = keepKnown(resp.Highlights, projects)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// featuredRepos picks the repos worth a blurb: pinned ones first, then the
// most recently pushed, without repeats.
func featuredRepos(report *analytics.Report) []analytics.SanitizedRepo {
	seen := make(map[string]bool)
	var out []analytics.SanitizedRepo
	add := func(r analytics.SanitizedRepo) {
		if len(out) < maxHighlights && !seen[r.Name] {
			seen[r.Name] = true
			out = append(out, r)
		}
	}
	for _, r := range report.SanitizedRepos {
		if r.IsPinned {
			add(r)
		}
	}
	for _, r := range report.TopActivelyUsedRepos {
		add(r)
	}
	return out
}

// keepKnown drops blurbs for repositories that were not asked about and
// orders the rest like the request.
func keepKnown(got []Highlight, asked []analytics.SanitizedRepo) []Highlight {
	byRepo := make(map[string]string, len(got))
	for _, h := range got {
		if blurb := strings.TrimSpace(h.Blurb); blurb != "" {
			byRepo[h.Repo] = blurb
		}
	}
	out := make([]Highlight, 0, len(asked))
	for _, r := range asked {
		if blurb, ok := byRepo[r.Name]; ok {
			out = append(out, Highlight{Repo: r.Name, Blurb: blurb})
		}
	}
	return out
}

// decodeJSON unmarshals an LLM answer into v. It accepts raw JSON and JSON
// wrapped in markdown code fences or preceded by prose.
func decodeJSON(raw string, v any) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return errEmptyResponse
	}

	// Only strip fences when the answer does not already start with JSON:
	// a fence may legitimately appear inside a string value.
	if text[0] != '{' {
		if idx := strings.Index(text, "```"); idx >= 0 {
			text = text[idx+3:]
			text = strings.TrimPrefix(text, "json")
			if end := strings.LastIndex(text, "```"); end >= 0 {
				text = text[:end]
			}
		} else if idx := strings.Index(text, "{"); idx >= 0 {
			text = text[idx:]
		}
		text = strings.TrimSpace(text)
	}

	if err := json.Unmarshal([]byte(text), v); err != nil {
		if err2 := json.Unmarshal([]byte(textutil.SanitizeJSON(text)), v); err2 != nil {
			return fmt.Errorf("invalid JSON from LLM: %w\nraw response (first 500 bytes): %s",
				err, textutil.Truncate(raw, 500, "..."))
		}
	}
	return nil
}

func buildProfileText(p analytics.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s (@%s)\n", p.Name, p.Username)
	for _, f := range []struct{ label, value string }{
		{"Bio", p.Bio},
		{"Location", p.Location},
		{"Company", p.Company},
		{"Website", p.Blog},
	} {
		if f.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
		}
	}
	fmt.Fprintf(&b, "Followers: %d, public repos: %d\n", p.Followers, p.PublicRepos)
	return b.String()
}

func buildStatsText(r *analytics.Report) string {
	d := r.Contributions
	var b strings.Builder
	fmt.Fprintf(&b, "Total contributions: %d (this year: %d)\n", d.Total, d.CurrentYear)
	fmt.Fprintf(&b, "Current streak: %s, longest streak: %s\n",
		textutil.Plural(d.CurrentStreak, "day", "days"), textutil.Plural(d.LongestStreak, "day", "days"))
	if d.CodingYears != nil {
		fmt.Fprintf(&b, "%s (first contribution %s)\n", *d.CodingYears, *d.FirstCommitDate)
	}
	if d.YearOverYearChangePercentage != nil {
		fmt.Fprintf(&b, "Year over year: %+d%%\n", *d.YearOverYearChangePercentage)
	}
	fmt.Fprintf(&b, "Pull requests: %d (%d closed), issues: %d (%d closed)\n",
		d.PullRequests.Total, d.PullRequests.Closed, d.Issues.Total, d.Issues.Closed)
	fmt.Fprintf(&b, "Stars across repos: %d\n", r.TotalStars)
	return b.String()
}

func buildLanguagesText(shares []analytics.LanguageShare) string {
	var parts []string
	for _, s := range shares {
		parts = append(parts, fmt.Sprintf("%s %d%%", s.Language, s.Percentage))
	}
	return strings.Join(parts, ", ")
}

func buildReposText(repos []analytics.SanitizedRepo) string {
	var b strings.Builder
	for _, r := range repos {
		fmt.Fprintf(&b, "- %s", r.Name)
		if r.Language != "" {
			fmt.Fprintf(&b, " [%s]", r.Language)
		}
		fmt.Fprintf(&b, " (%d stars, %d forks", r.Stars, r.Forks)
		if r.ActivityDuration != "" {
			fmt.Fprintf(&b, ", %s", strings.ToLower(r.ActivityDuration))
		}
		b.WriteString(")")
		if r.Description != "" {
			fmt.Fprintf(&b, ": %s", textutil.Truncate(r.Description, maxDescriptionLen, "..."))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
