package analytics

// SearchItem is one hit of a GitHub issue search.
type SearchItem struct {
	State string `json:"state"`
}

// SearchResult is a GitHub issue/PR search response. A nil *SearchResult
// stands for a search that could not be fetched.
type SearchResult struct {
	TotalCount int          `json:"total_count"`
	Items      []SearchItem `json:"items"`
}

// Counts is a total/closed pair for issues or pull requests.
type Counts struct {
	Total  int `json:"total"`
	Closed int `json:"closed"`
}

// SummarizeSearch reports the search total and how many of the returned
// items are closed. A missing result counts as zero.
func SummarizeSearch(r *SearchResult) Counts {
	if r == nil {
		return Counts{}
	}
	c := Counts{Total: r.TotalCount}
	for _, item := range r.Items {
		if item.State == "closed" {
			c.Closed++
		}
	}
	return c
}
