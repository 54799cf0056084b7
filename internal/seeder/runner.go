package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/toplist/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seed-and-verify flow.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting toplist seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("items", config.NumItems),
		logger.Int("categories", config.NumCategories),
		logger.Int("maxVotes", config.MaxVotes),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate item specs
	specs := generateSpecs(ctx, config)

	// Step 3: Seed items concurrently
	items, err := seedItems(ctx, config, specs, stats)
	if err != nil {
		return fmt.Errorf("item seeding failed: %w", err)
	}

	// Step 4: Cast votes concurrently
	if err := castVotes(ctx, config, specs, items, stats); err != nil {
		return fmt.Errorf("vote casting failed: %w", err)
	}

	// Step 5: Verify ranks, reorders and vote totals
	if err := verifyResults(ctx, config, specs, items, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 6: Save seeded items to file
	if err := saveItemsToFile(ctx, config, items); err != nil {
		logger.Get().Warn(ctx, "failed to save items to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveItemsToFile saves the seeded items to a JSON file.
func saveItemsToFile(ctx context.Context, config *Config, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("no items to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seeded_items_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("failed to write items: %w", err)
	}

	logger.Get().Info(ctx, "items saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, votesPerSecond float64

	if total := stats.ItemsSeeded + stats.ItemsFailed; total > 0 {
		successRate = float64(stats.ItemsSeeded) / float64(total) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		votesPerSecond = float64(stats.VotesCast) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("itemsSeeded", stats.ItemsSeeded),
		logger.Int("itemsFailed", stats.ItemsFailed),
		logger.Int("votesCast", stats.VotesCast),
		logger.Int("votesFailed", stats.VotesFailed),
		logger.Int("reordersApplied", stats.ReordersApplied),
		logger.Int("categoriesVerified", stats.CategoriesVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("seedSuccessRate", successRate),
		logger.Float64("votesPerSecond", votesPerSecond))
}
