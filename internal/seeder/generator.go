package seeder

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/okian/toplist/pkg/logger"
)

// Sample vocabulary for generated items.
var (
	categoryNames = []string{
		"Movies", "Books", "Games", "Albums", "Restaurants",
		"Cities", "Gadgets", "Podcasts", "Series", "Languages",
	}
	titleAdjectives = []string{
		"Silent", "Golden", "Hidden", "Broken", "Endless",
		"Crimson", "Electric", "Forgotten", "Midnight", "Rising",
	}
	titleNouns = []string{
		"Empire", "Horizon", "Garden", "Machine", "Voyage",
		"Harbor", "Signal", "Mirror", "Summit", "Echo",
	}
)

// getRandomInt returns a uniform random int in [0, n) using crypto/rand.
func getRandomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSpecs creates the specified number of item specs spread over
// the configured number of categories.
func generateSpecs(ctx context.Context, config *Config) []itemSpec {
	logger.Get().Info(ctx, "generating item specs",
		logger.Int("numItems", config.NumItems),
		logger.Int("numCategories", config.NumCategories))

	categories := make([]string, config.NumCategories)
	for i := range categories {
		if i < len(categoryNames) {
			categories[i] = categoryNames[i]
		} else {
			categories[i] = "Category-" + strconv.Itoa(i+1)
		}
	}

	specs := make([]itemSpec, config.NumItems)
	for i := range specs {
		specs[i] = generateSingleSpec(i, categories, config.MaxVotes)
	}

	logger.Get().Info(ctx, "generated item specs", logger.Int("count", len(specs)))
	return specs
}

// generateSingleSpec creates one item spec. Categories are assigned
// round-robin so every category ends up non-empty.
func generateSingleSpec(index int, categories []string, maxVotes int) itemSpec {
	adjective := titleAdjectives[getRandomInt(len(titleAdjectives))]
	noun := titleNouns[getRandomInt(len(titleNouns))]
	title := "The " + adjective + " " + noun + " #" + strconv.Itoa(index+1)

	votes := 0
	if maxVotes > 0 {
		votes = getRandomInt(maxVotes + 1)
	}

	return itemSpec{
		Title:       title,
		Description: "Seeded entry " + strconv.Itoa(index+1),
		Category:    categories[index%len(categories)],
		ImageURL:    "https://picsum.photos/seed/" + strconv.Itoa(index+1) + "/200",
		Votes:       votes,
	}
}
