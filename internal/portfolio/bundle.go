package portfolio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/cryops/cryops/internal/analytics"
	"github.com/cryops/cryops/internal/textutil"
)

const (
	reportFile    = "github.json"
	portfolioFile = "PORTFOLIO.md"
)

// Bundle writes a user's report and rendered portfolio page to disk.
type Bundle struct {
	outputDir string
}

// NewBundle returns a Bundle that writes under outputDir.
func NewBundle(outputDir string) *Bundle {
	return &Bundle{outputDir: outputDir}
}

type pageData struct {
	Report     *analytics.Report
	Headline   string
	About      string
	Highlights []Highlight
	Projects   []analytics.SanitizedRepo
}

var pageFuncs = template.FuncMap{
	"change": func(p *int) string {
		if p == nil {
			return "n/a"
		}
		return fmt.Sprintf("%+d%%", *p)
	},
	"plural": textutil.Plural,
	"orNA": func(s *string) string {
		if s == nil {
			return "n/a"
		}
		return *s
	},
}

var pageTemplate = template.Must(template.New(portfolioFile).Funcs(pageFuncs).Parse(portfolioTemplate))

// Write stores <outputDir>/<username>/github.json and PORTFOLIO.md and
// returns their paths. c may be nil, in which case the page is built from
// the report alone.
func (b *Bundle) Write(username string, report *analytics.Report, c *Copy) ([]string, error) {
	dir := filepath.Join(b.outputDir, username)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	reportPath, err := writeFile(dir, reportFile, append(raw, '\n'))
	if err != nil {
		return nil, err
	}

	var page bytes.Buffer
	if err := pageTemplate.Execute(&page, newPageData(report, c)); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", portfolioFile, err)
	}
	pagePath, err := writeFile(dir, portfolioFile, page.Bytes())
	if err != nil {
		return nil, err
	}

	return []string{reportPath, pagePath}, nil
}

func newPageData(report *analytics.Report, c *Copy) pageData {
	data := pageData{Report: report}
	if c != nil {
		data.Headline, data.About, data.Highlights = c.Headline, c.About, c.Highlights
	}
	if data.Headline == "" {
		data.Headline = report.Profile.Name
		if n := report.Contributions.Total; n > 0 {
			data.Headline += " · " + strconv.Itoa(n) + " contributions"
		}
	}
	if data.About == "" {
		data.About = report.Profile.Bio
	}
	if len(data.Highlights) == 0 {
		data.Projects = featuredRepos(report)
	}
	return data
}

func writeFile(dir, name string, content []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	slog.Info("wrote portfolio file", "path", path)
	return path, nil
}

const portfolioTemplate = `# {{.Headline}}

{{with .Report.Profile}}[@{{.Username}}]({{.ProfileURL}}){{if .Location}} · {{.Location}}{{end}}{{if .Company}} · {{.Company}}{{end}}{{end}}
{{if .About}}
{{.About}}
{{end}}
## Contributions
{{with .Report.Contributions}}
| | |
|---|---|
| Total | {{.Total}} |
| This year | {{.CurrentYear}} |
| Current streak | {{plural .CurrentStreak "day" "days"}} |
| Longest streak | {{plural .LongestStreak "day" "days"}} |
| First contribution | {{orNA .FirstCommitDate}} |
| Experience | {{orNA .CodingYears}} |
| Year over year | {{change .YearOverYearChangePercentage}} |
| Half over half | {{change .HalfOverHalfChangePercentage}} |
| Quarter over quarter | {{change .QuarterOverQuarterChangePercentage}} |
| Pull requests | {{.PullRequests.Total}} ({{.PullRequests.Closed}} closed) |
| Issues | {{.Issues.Total}} ({{.Issues.Closed}} closed) |
{{with .Last1Year}}
Last 12 months: {{.RecentContributions}} contributions, {{.AverageDailyCommits}} per active day, {{.WeekendPercentage}}% on weekends{{if .MostActiveDay}}, busiest on {{.MostActiveDay}}s{{end}}{{if .BestCommit}}, best day {{.BestCommit.Date}} ({{.BestCommit.Count}}){{end}}.
{{end}}{{end}}
{{- if .Report.LanguageDistribution}}
## Languages
{{range .Report.LanguageDistribution}}
- {{.Language}} {{.Percentage}}%{{end}}
{{end}}
## Projects
{{if .Highlights}}{{range .Highlights}}
- **{{.Repo}}**: {{.Blurb}}{{end}}
{{else}}{{range .Projects}}
- **{{.Name}}**{{if .Language}} ({{.Language}}){{end}}{{if .Description}}: {{.Description}}{{end}}{{if .Stars}} · {{plural .Stars "star" "stars"}}{{end}}{{end}}
{{end}}
{{- with .Report.MostActiveRepoThisMonth}}
Currently working on **{{.Name}}**.
{{end}}`
