package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// verifyResults checks the seeded data through the public API: rank
// contiguity per category, reorder round-trips, vote totals and the
// global top-voted ordering.
func verifyResults(ctx context.Context, config *Config, specs []itemSpec, items []Item, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	client := newHTTPClient(config.Timeout)

	categories, err := fetchCategories(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	for _, category := range categories {
		ranked, err := fetchCategoryItems(ctx, client, config.BaseURL, category)
		if err != nil {
			return fmt.Errorf("failed to fetch category %q: %w", category, err)
		}
		if err := verifyContiguousRanks(ranked); err != nil {
			return fmt.Errorf("category %q: %w", category, err)
		}

		if err := verifyReorder(ctx, client, config.BaseURL, category, ranked); err != nil {
			return fmt.Errorf("reorder of category %q: %w", category, err)
		}
		stats.ReordersApplied++
		stats.CategoriesVerified++
	}
	log.Printf("✅ Verified %d categories: contiguous ranks and reorder round-trips", stats.CategoriesVerified)

	if err := verifyVoteTotals(ctx, client, config.BaseURL, specs, items); err != nil {
		log.Printf("⚠️  Vote total warning: %v", err)
	} else {
		log.Println("✅ Vote totals match what was cast")
	}

	if err := verifyTopVoted(ctx, client, config.BaseURL); err != nil {
		return fmt.Errorf("top-voted check failed: %w", err)
	}
	log.Println("✅ Top-voted ordering verified")

	log.Println("✅ Result verification completed")
	return nil
}

// fetchCategories retrieves the distinct category names.
func fetchCategories(ctx context.Context, client *HTTPClient, baseURL string) ([]string, error) {
	resp, err := client.Get(ctx, baseURL+"/toplist/categories")
	if err != nil {
		return nil, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// fetchCategoryItems retrieves one category's items in rank order.
func fetchCategoryItems(ctx context.Context, client *HTTPClient, baseURL, category string) ([]Item, error) {
	resp, err := client.Get(ctx, baseURL+"/toplist/category/"+category)
	if err != nil {
		return nil, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// verifyContiguousRanks checks that ranks run 1..N with no gaps.
func verifyContiguousRanks(items []Item) error {
	for i, item := range items {
		if item.Rank != i+1 {
			return fmt.Errorf("rank gap: position %d holds rank %d", i+1, item.Rank)
		}
	}
	return nil
}

// verifyReorder submits the reversed ordering and checks the response
// reflects it exactly, then restores the original order.
func verifyReorder(ctx context.Context, client *HTTPClient, baseURL, category string, ranked []Item) error {
	if len(ranked) < 2 {
		return nil
	}

	original := make([]string, len(ranked))
	reversed := make([]string, len(ranked))
	for i, item := range ranked {
		original[i] = item.ID
		reversed[len(ranked)-1-i] = item.ID
	}

	applied, err := submitReorder(ctx, client, baseURL, category, reversed)
	if err != nil {
		return err
	}
	for i, id := range reversed {
		if applied[i].ID != id || applied[i].Rank != i+1 {
			return fmt.Errorf("position %d: expected id %s rank %d, got id %s rank %d",
				i+1, id, i+1, applied[i].ID, applied[i].Rank)
		}
	}

	// Put things back the way we found them.
	if _, err := submitReorder(ctx, client, baseURL, category, original); err != nil {
		return fmt.Errorf("failed to restore original order: %w", err)
	}
	return nil
}

// submitReorder PUTs an id ordering and decodes the resulting items.
func submitReorder(ctx context.Context, client *HTTPClient, baseURL, category string, ids []string) ([]Item, error) {
	resp, err := client.Put(ctx, baseURL+"/toplist/category/"+category+"/reorder", ids)
	if err != nil {
		return nil, err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode reordered items: %w", err)
	}
	return items, nil
}

// verifyVoteTotals compares each item's stored count against the votes
// this run cast for it.
func verifyVoteTotals(ctx context.Context, client *HTTPClient, baseURL string, specs []itemSpec, items []Item) error {
	for i := range items {
		if items[i].ID == "" {
			continue
		}
		resp, err := client.Get(ctx, baseURL+"/toplist/"+items[i].ID)
		if err != nil {
			return err
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return err
		}
		if resp.StatusCode != StatusOK {
			return fmt.Errorf("item %s: unexpected status %d", items[i].ID, resp.StatusCode)
		}
		var current Item
		if err := json.Unmarshal(body, &current); err != nil {
			return fmt.Errorf("item %s: failed to decode: %w", items[i].ID, err)
		}
		if current.VoteCount != int64(specs[i].Votes) {
			return fmt.Errorf("item %s: expected %d votes, found %d", items[i].ID, specs[i].Votes, current.VoteCount)
		}
	}
	return nil
}

// verifyTopVoted checks the global ranking comes back sorted by votes.
func verifyTopVoted(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/toplist/top-voted")
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return fmt.Errorf("failed to decode top-voted items: %w", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].VoteCount > items[i-1].VoteCount {
			return fmt.Errorf("not sorted: entry %d has more votes than entry %d", i, i-1)
		}
	}

	log.Printf("🏆 Top %d items by votes:", len(items))
	for i, item := range items {
		log.Printf("   %d. %s (%s) - %d votes", i+1, item.Title, item.Category, item.VoteCount)
	}
	return nil
}
