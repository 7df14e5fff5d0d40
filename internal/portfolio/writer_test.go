package portfolio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/cryops/cryops/internal/analytics"
	"github.com/cryops/cryops/internal/llm"
)

type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	answer  func(prompt string) (string, error)
}

func (f *fakeProvider) Complete(_ context.Context, _, prompt string, opts *llm.CompleteOptions) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if opts == nil || !opts.JSON {
		return "", errors.New("expected JSON mode")
	}
	return f.answer(prompt)
}

func testReport() *analytics.Report {
	repos := []analytics.SanitizedRepo{
		{Name: "cli", Language: "Go", Stars: 7, Description: "a tool", IsPinned: true},
		{Name: "site", Language: "TypeScript", Stars: 1},
	}
	return &analytics.Report{
		Profile:              analytics.Profile{Username: "octo", Name: "Octo Cat", Bio: "builds things"},
		Contributions:        analytics.ContributionDetails{Total: 420, CurrentStreak: 3},
		SanitizedRepos:       repos,
		TopActivelyUsedRepos: []analytics.SanitizedRepo{repos[1], repos[0]},
		LanguageDistribution: []analytics.LanguageShare{{Language: "Go", Percentage: 50}},
		TotalStars:           8,
	}
}

func TestDraft(t *testing.T) {
	p := &fakeProvider{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "REPOSITORIES:") {
			return "```json\n{\"highlights\": [{\"repo\": \"site\", \"blurb\": \"My site.\"}, {\"repo\": \"cli\", \"blurb\": \"A CLI.\"}, {\"repo\": \"made-up\", \"blurb\": \"x\"}]}\n```", nil
		}
		return `{"headline": " Go tooling builder ", "about": "I build tools."}`, nil
	}}

	c, err := NewWriter(p).Draft(context.Background(), testReport(), "keep it casual")
	if err != nil {
		t.Fatalf("Draft() error: %v", err)
	}
	if c.Headline != "Go tooling builder" || c.About != "I build tools." {
		t.Errorf("hero = %q / %q", c.Headline, c.About)
	}
	want := []Highlight{{Repo: "cli", Blurb: "A CLI."}, {Repo: "site", Blurb: "My site."}}
	if len(c.Highlights) != len(want) {
		t.Fatalf("Highlights = %+v, want %+v", c.Highlights, want)
	}
	for i := range want {
		if c.Highlights[i] != want[i] {
			t.Errorf("Highlights[%d] = %+v, want %+v", i, c.Highlights[i], want[i])
		}
	}

	if len(p.prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(p.prompts))
	}
	for _, prompt := range p.prompts {
		if !strings.Contains(prompt, "keep it casual") {
			t.Errorf("prompt missing instructions:\n%s", prompt)
		}
	}
}

func TestDraft_NoRepos(t *testing.T) {
	p := &fakeProvider{answer: func(string) (string, error) {
		return `{"headline": "h", "about": "a"}`, nil
	}}
	report := testReport()
	report.SanitizedRepos, report.TopActivelyUsedRepos = nil, nil

	c, err := NewWriter(p).Draft(context.Background(), report, "")
	if err != nil {
		t.Fatalf("Draft() error: %v", err)
	}
	if len(c.Highlights) != 0 || len(p.prompts) != 1 {
		t.Errorf("Highlights = %v after %d prompts, want none after 1", c.Highlights, len(p.prompts))
	}
}

func TestDraft_ProviderError(t *testing.T) {
	p := &fakeProvider{answer: func(string) (string, error) {
		return "", errors.New("quota exceeded")
	}}
	_, err := NewWriter(p).Draft(context.Background(), testReport(), "")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Draft() error = %v, want provider error", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: `{"headline": "x"}`, want: "x"},
		{name: "fenced", raw: "```json\n{\"headline\": \"x\"}\n```", want: "x"},
		{name: "prose preamble", raw: "Sure! Here you go: {\"headline\": \"x\"}", want: "x"},
		{name: "fence inside value", raw: "{\"headline\": \"use ```go``` blocks\"}", want: "use ```go``` blocks"},
		{name: "raw newline", raw: "{\"headline\": \"a\nb\"}", want: "a\nb"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "not json", raw: "I cannot help with that.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				Headline string `json:"headline"`
			}
			err := decodeJSON(tt.raw, &got)
			if tt.wantErr {
				if err == nil {
					t.Errorf("decodeJSON(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeJSON(%q) error: %v", tt.raw, err)
			}
			if got.Headline != tt.want {
				t.Errorf("decodeJSON(%q) headline = %q, want %q", tt.raw, got.Headline, tt.want)
			}
		})
	}
}

func TestFeaturedRepos(t *testing.T) {
	got := featuredRepos(testReport())
	if len(got) != 2 || got[0].Name != "cli" || got[1].Name != "site" {
		t.Errorf("featuredRepos() = %+v, want pinned cli then site", got)
	}
}
