package retriever

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// MaxTopK is the upper bound of the accepted top_k range.
	MaxTopK = 150

	defaultTopK = 5

	// neighbors at or beyond this distance are considered irrelevant and
	// discarded. Tuned for the embedding model in use; if the model changes,
	// this needs re-tuning (hence the env override).
	defaultDistanceThreshold = 1.8
)

type Config struct {
	DefaultTopK       int
	DistanceThreshold float32
}

// DefaultConfig returns the retrieval defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTopK:       defaultTopK,
		DistanceThreshold: defaultDistanceThreshold,
	}
}

// LoadConfig returns the retrieval configuration with optional env overrides.
func LoadConfig() (Config, error) {
	config := DefaultConfig()

	if topKStr := os.Getenv("RETRIEVAL_TOP_K"); topKStr != "" {
		val, err := strconv.Atoi(topKStr)
		if err != nil || val < 1 || val > MaxTopK {
			return Config{}, fmt.Errorf("RETRIEVAL_TOP_K must be an integer in [1, %d], got %q", MaxTopK, topKStr)
		}

		config.DefaultTopK = val
	}

	if thresholdStr := os.Getenv("RETRIEVAL_DISTANCE_THRESHOLD"); thresholdStr != "" {
		val, err := strconv.ParseFloat(thresholdStr, 32)
		if err != nil || val <= 0 {
			return Config{}, fmt.Errorf("RETRIEVAL_DISTANCE_THRESHOLD must be a positive number, got %q", thresholdStr)
		}

		config.DistanceThreshold = float32(val)
	}

	return config, nil
}
