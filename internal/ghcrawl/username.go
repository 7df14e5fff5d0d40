package ghcrawl

import (
	"regexp"
	"strings"
)

const maxUsernameLen = 39

var (
	profileURLPattern = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/?#]+)/?$`)
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*$`)
)

// ExtractUsername returns the GitHub login in a profile URL such as
// "https://github.com/octocat" or "github.com/octocat/", or in a bare
// username. It reports false when input is neither.
func ExtractUsername(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if m := profileURLPattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	if !ValidUsername(s) {
		return "", false
	}
	return s, true
}

// ValidUsername reports whether s is a syntactically valid GitHub login:
// up to 39 alphanumerics with single hyphens between them.
func ValidUsername(s string) bool {
	return len(s) <= maxUsernameLen && usernamePattern.MatchString(s)
}
