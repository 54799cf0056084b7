package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Retry behaviour for briefly contended categories.
const (
	createRetries    = 5
	createRetryDelay = 100 * time.Millisecond
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with an optional JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	return c.send(ctx, http.MethodPost, url, body)
}

// Put performs a PUT request with a JSON body
func (c *HTTPClient) Put(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	return c.send(ctx, http.MethodPut, url, body)
}

func (c *HTTPClient) send(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// seedItems creates the items concurrently using a worker pool and
// returns the created items in spec order.
func seedItems(ctx context.Context, config *Config, specs []itemSpec, stats *Stats) ([]Item, error) {
	log.Printf("📤 Seeding %d items with %d workers...", len(specs), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/toplist"

	var (
		seeded int64
		failed int64
	)

	items := make([]Item, len(specs))

	type job struct {
		index int
		spec  itemSpec
	}

	jobChan := make(chan job, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
					item, err := createSingleItem(ctx, client, url, j.spec)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to seed item %d: %v", j.index, err)
						}
						continue
					}
					items[j.index] = item
					atomic.AddInt64(&seeded, 1)
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for i, spec := range specs {
			select {
			case <-ctx.Done():
				return
			case jobChan <- job{index: i, spec: spec}:
			}
		}
	}()

	wg.Wait()

	stats.ItemsSeeded = int(atomic.LoadInt64(&seeded))
	stats.ItemsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("✅ Item seeding completed: %d seeded, %d failed", stats.ItemsSeeded, stats.ItemsFailed)

	if stats.ItemsSeeded == 0 {
		return nil, fmt.Errorf("no items were seeded")
	}
	return items, nil
}

// createSingleItem posts one item, retrying briefly when the category is
// contended and the service answers 409.
func createSingleItem(ctx context.Context, client *HTTPClient, url string, spec itemSpec) (Item, error) {
	var lastStatus int
	for attempt := 0; attempt < createRetries; attempt++ {
		resp, err := client.Post(ctx, url, spec)
		if err != nil {
			return Item{}, err
		}

		body, err := readResponseBody(resp)
		if err != nil {
			return Item{}, err
		}

		switch resp.StatusCode {
		case StatusCreated:
			var item Item
			if err := json.Unmarshal(body, &item); err != nil {
				return Item{}, fmt.Errorf("failed to decode created item: %w", err)
			}
			return item, nil
		case http.StatusConflict:
			lastStatus = resp.StatusCode
			select {
			case <-ctx.Done():
				return Item{}, ctx.Err()
			case <-time.After(createRetryDelay):
			}
		default:
			return Item{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}
	}
	return Item{}, fmt.Errorf("gave up after %d attempts, last status %d", createRetries, lastStatus)
}

// castVotes casts each item's planned votes concurrently. Votes bypass
// the per-category locks server-side, so workers never contend.
func castVotes(ctx context.Context, config *Config, specs []itemSpec, items []Item, stats *Stats) error {
	total := 0
	for i := range items {
		if items[i].ID != "" {
			total += specs[i].Votes
		}
	}
	log.Printf("📤 Casting %d votes with %d workers...", total, config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		cast   int64
		failed int64
	)

	var lastReport time.Time
	reportInterval := 1 * time.Second

	voteChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for id := range voteChan {
				select {
				case <-ctx.Done():
					return
				default:
					if err := castSingleVote(ctx, client, config.BaseURL, id); err != nil {
						atomic.AddInt64(&failed, 1)
					} else {
						atomic.AddInt64(&cast, 1)
					}

					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						done := atomic.LoadInt64(&cast) + atomic.LoadInt64(&failed)
						if config.Verbose {
							log.Printf("📊 Progress: %d/%d votes", done, total)
						} else {
							fmt.Printf("\r📤 Votes: %d/%d", done, total)
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(voteChan)
		for i := range items {
			if items[i].ID == "" {
				continue
			}
			for v := 0; v < specs[i].Votes; v++ {
				select {
				case <-ctx.Done():
					return
				case voteChan <- items[i].ID:
				}
			}
		}
	}()

	wg.Wait()

	if !config.Verbose {
		fmt.Println() // New line after progress indicator
	}

	stats.VotesCast = int(atomic.LoadInt64(&cast))
	stats.VotesFailed = int(atomic.LoadInt64(&failed))

	log.Printf("✅ Vote casting completed: %d cast, %d failed", stats.VotesCast, stats.VotesFailed)
	return nil
}

// castSingleVote posts one vote for the given item id.
func castSingleVote(ctx context.Context, client *HTTPClient, baseURL, id string) error {
	resp, err := client.Post(ctx, baseURL+"/toplist/"+id+"/vote", nil)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
