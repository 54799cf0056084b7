package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/toplist/internal/seeder"
)

// Default configuration constants.
const (
	defaultNumItems      = 200
	defaultNumCategories = 5
	defaultMaxVotes      = 25
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultRunTimeout    = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numItems      = flag.Int("items", defaultNumItems, "Number of items to seed")
		numCategories = flag.Int("categories", defaultNumCategories, "Number of categories to spread items over")
		maxVotes      = flag.Int("votes", defaultMaxVotes, "Maximum votes cast per item")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile    = flag.String("output", "", "Output file for seeded items (default: seeded_items_TIMESTAMP.json)")
		logFile       = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeder.ShowHelp()
		return
	}

	// Setup logging
	if err := seeder.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &seeder.Config{
		BaseURL:       *baseURL,
		NumItems:      *numItems,
		NumCategories: *numCategories,
		MaxVotes:      *maxVotes,
		Workers:       *workers,
		Timeout:       *timeout,
		OutputFile:    *outputFile,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	// Run the seed flow
	if err := seeder.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
