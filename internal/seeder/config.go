package seeder

import "time"

// Config holds configuration for the seed run
type Config struct {
	BaseURL       string        // Base URL of the service
	NumItems      int           // Number of items to seed
	NumCategories int           // Number of categories to spread items over
	MaxVotes      int           // Maximum votes cast per item
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	OutputFile    string        // Output file for seeded items
	LogFile       string        // Log file for run output
	Verbose       bool          // Enable verbose logging
}

// Item mirrors the wire shape returned by the toplist API
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Rank        int    `json:"rank"`
	VoteCount   int64  `json:"voteCount"`
	ImageURL    string `json:"imageUrl"`
}

// itemSpec is a to-be-created item plus the votes we intend to cast for it
type itemSpec struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Votes       int    `json:"votes"`
}

// Stats holds seed run statistics
type Stats struct {
	ItemsSeeded        int
	ItemsFailed        int
	VotesCast          int
	VotesFailed        int
	ReordersApplied    int
	CategoriesVerified int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
