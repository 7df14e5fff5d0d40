package analytics

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSanitizeRepos(t *testing.T) {
	raw := []RawRepo{
		{
			Owner:           RawOwner{Login: "octo"},
			Name:            "r",
			Language:        strPtr("Rust"),
			StargazersCount: 3,
			Forks:           1,
			CreatedAt:       "2022-01-01T00:00:00Z",
			UpdatedAt:       "2023-06-01T00:00:00Z",
			PushedAt:        strPtr("2023-06-01T00:00:00Z"),
		},
		{
			Owner:       RawOwner{Login: "octo"},
			Name:        "notes",
			Description: strPtr("scratch"),
		},
	}

	got := SanitizeRepos(raw, []string{"notes", "elsewhere"})
	want := []SanitizedRepo{
		{
			Author:           "octo",
			Name:             "r",
			Language:         "Rust",
			LanguageColor:    "#dea584",
			Stars:            3,
			Forks:            1,
			CreatedAt:        "2022-01-01T00:00:00Z",
			UpdatedAt:        "2023-06-01T00:00:00Z",
			PushedAt:         "2023-06-01T00:00:00Z",
			ActivityDuration: "Active 1 yr",
		},
		{
			Author:        "octo",
			Name:          "notes",
			Description:   "scratch",
			LanguageColor: "#cccccc",
			IsPinned:      true,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeRepos() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestSanitizeRepos_Deterministic(t *testing.T) {
	raw := []RawRepo{
		{Name: "a", Language: strPtr("Go"), CreatedAt: "2020-01-01T00:00:00Z", UpdatedAt: "2020-03-01T00:00:00Z"},
		{Name: "b", PushedAt: strPtr("2024-01-01T00:00:00Z")},
	}
	first := SanitizeRepos(raw, []string{"b"})
	second := SanitizeRepos(raw, []string{"b"})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("SanitizeRepos is not deterministic:\n%+v\n%+v", first, second)
	}
	if got := SanitizeRepos(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("SanitizeRepos(nil) = %v, want empty slice", got)
	}
}

func TestActivityDuration(t *testing.T) {
	tests := []struct {
		created, updated string
		want             string
	}{
		{"2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z", "Active 0 days"},
		{"2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z", "Active 1 day"},
		{"2024-01-01T00:00:00Z", "2024-01-07T00:00:00Z", "Active 6 days"},
		{"2024-01-01T00:00:00Z", "2024-01-08T00:00:00Z", "Active 1 week"},
		{"2024-01-01T00:00:00Z", "2024-01-15T00:00:00Z", "Active 2 weeks"},
		{"2024-01-01T00:00:00Z", "2024-01-31T00:00:00Z", "Active 1 month"},
		{"2024-01-01T00:00:00Z", "2024-12-01T00:00:00Z", "Active 11 months"},
		{"2022-01-01T00:00:00Z", "2023-06-01T00:00:00Z", "Active 1 yr"},
		{"2021-01-01T00:00:00Z", "2024-01-01T00:00:00Z", "Active 3 yrs"},
		{"2024-01-02T00:00:00Z", "2024-01-01T00:00:00Z", "Active 0 days"},
		{"", "2024-01-01T00:00:00Z", ""},
		{"2024-01-01T00:00:00Z", "yesterday", ""},
	}
	for _, tt := range tests {
		if got := ActivityDuration(tt.created, tt.updated); got != tt.want {
			t.Errorf("ActivityDuration(%q, %q) = %q, want %q", tt.created, tt.updated, got, tt.want)
		}
	}
}
