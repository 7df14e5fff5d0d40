package analytics

import "slices"

const defaultLanguageColor = "#cccccc"

var languageColors = map[string]string{
	"TypeScript":       "#3178c6",
	"JavaScript":       "#f1e05a",
	"Python":           "#3776ab",
	"Java":             "#ed8b00",
	"HTML":             "#e34c26",
	"CSS":              "#563d7c",
	"C++":              "#f34b7d",
	"C":                "#555555",
	"C#":               "#239120",
	"Go":               "#00add8",
	"Rust":             "#dea584",
	"PHP":              "#4f5d95",
	"Ruby":             "#701516",
	"Swift":            "#fa7343",
	"Kotlin":           "#a97bff",
	"Dart":             "#00b4ab",
	"Shell":            "#89e051",
	"PowerShell":       "#012456",
	"R":                "#198ce7",
	"Scala":            "#c22d40",
	"Perl":             "#39457e",
	"Lua":              "#000080",
	"Haskell":          "#5e5086",
	"Clojure":          "#db5855",
	"Elixir":           "#6e4a7e",
	"Erlang":           "#b83998",
	"OCaml":            "#3be133",
	"Julia":            "#a270ba",
	"MATLAB":           "#e16737",
	"Vue":              "#4fc08d",
	"React":            "#61dafb",
	"Angular":          "#dd0031",
	"Svelte":           "#ff3e00",
	"Jupyter Notebook": "#da5b0b",
	"Markdown":         "#083fa1",
	"YAML":             "#cb171e",
	"JSON":             "#292929",
	"Dockerfile":       "#384d54",
	"Makefile":         "#427819",
	"SQL":              "#e38c00",
	"GraphQL":          "#e10098",
	"Assembly":         "#6e4c13",
	"Vim":              "#199f4b",
	"Emacs":            "#7f5ab6",
	"TeX":              "#3d6117",
	"LaTeX":            "#008080",
}

// ColorFor returns the display color for a GitHub language name. Unknown or
// empty names get a neutral gray.
func ColorFor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return defaultLanguageColor
}

// LanguageShare is one entry of a language distribution.
type LanguageShare struct {
	Language   string `json:"language"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// LanguageDistribution counts repos per primary language and returns each
// language's share of the repos that have one, largest first. Languages with
// equal shares keep the order in which they first appear.
func LanguageDistribution(repos []SanitizedRepo) []LanguageShare {
	counts := make(map[string]int)
	var order []string
	withLanguage := 0
	for _, r := range repos {
		if r.Language == "" {
			continue
		}
		if _, seen := counts[r.Language]; !seen {
			order = append(order, r.Language)
		}
		counts[r.Language]++
		withLanguage++
	}

	shares := make([]LanguageShare, 0, len(order))
	if withLanguage == 0 {
		return shares
	}
	for _, lang := range order {
		shares = append(shares, LanguageShare{
			Language:   lang,
			Percentage: int(roundHalfUp(float64(counts[lang]) / float64(withLanguage) * 100)),
			Color:      ColorFor(lang),
		})
	}
	slices.SortStableFunc(shares, func(a, b LanguageShare) int {
		return b.Percentage - a.Percentage
	})
	return shares
}
