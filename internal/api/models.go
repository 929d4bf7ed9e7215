package api

// Article is a single news item from the search or trending endpoints.
// Optional fields are empty when the backend omits them or sends null.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// SearchResult is the /search payload. len(Articles) may be smaller than
// TotalResults when the backend truncates.
type SearchResult struct {
	Articles     []Article `json:"articles"`
	TotalResults int       `json:"total_results"`
}

// TrendingResult is the /trending payload.
type TrendingResult struct {
	Articles []Article `json:"articles"`
}

// HistoryEntry is one previously searched topic. SearchedAt is kept as sent
// and parsed at render time.
type HistoryEntry struct {
	ID         int    `json:"id"`
	Topic      string `json:"topic"`
	SearchedAt string `json:"searched_at"`
}
