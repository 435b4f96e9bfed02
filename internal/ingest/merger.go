package ingest

import (
	"errors"
	"fmt"

	"locinsight/internal/models"
)

// ErrUnknownMergeStrategy is returned for a strategy name other than index or scan.
var ErrUnknownMergeStrategy = errors.New("unknown merge strategy")

// MergeStrategy selects how metadata is matched to locations.
type MergeStrategy string

// Merge strategies. Both pick the first metadata record per ID in input order.
const (
	StrategyIndex MergeStrategy = "index"
	StrategyScan  MergeStrategy = "scan"
)

// ParseMergeStrategy converts a config value into a MergeStrategy.
// The empty string selects StrategyIndex.
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case "", StrategyIndex:
		return StrategyIndex, nil
	case StrategyScan:
		return StrategyScan, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMergeStrategy, s)
	}
}

// Merger joins locations with their metadata.
type Merger struct {
	strategy MergeStrategy
}

// NewMerger creates a merger using the given strategy.
func NewMerger(strategy MergeStrategy) *Merger {
	if strategy != StrategyScan {
		strategy = StrategyIndex
	}

	return &Merger{strategy: strategy}
}

// Strategy returns the strategy in use.
func (m *Merger) Strategy() MergeStrategy {
	return m.strategy
}

// Merge returns one record per location, in location order.
func (m *Merger) Merge(locations []models.Location, metadata []models.LocationMetadata) []models.MergedLocation {
	if m.strategy == StrategyScan {
		return mergeScan(locations, metadata)
	}

	return mergeIndexed(locations, metadata)
}

// Merge joins locations and metadata with the index strategy.
func Merge(locations []models.Location, metadata []models.LocationMetadata) []models.MergedLocation {
	return mergeIndexed(locations, metadata)
}

func mergeIndexed(locations []models.Location, metadata []models.LocationMetadata) []models.MergedLocation {
	first := make(map[string]int, len(metadata))
	for i, meta := range metadata {
		if _, seen := first[meta.ID]; !seen {
			first[meta.ID] = i
		}
	}

	merged := make([]models.MergedLocation, 0, len(locations))

	for _, loc := range locations {
		if idx, ok := first[loc.ID]; ok {
			merged = append(merged, models.NewMergedLocationWithMetadata(loc, metadata[idx]))
		} else {
			merged = append(merged, models.NewMergedLocation(loc))
		}
	}

	return merged
}

func mergeScan(locations []models.Location, metadata []models.LocationMetadata) []models.MergedLocation {
	merged := make([]models.MergedLocation, 0, len(locations))

	for _, loc := range locations {
		record := models.NewMergedLocation(loc)

		for _, meta := range metadata {
			if meta.ID == loc.ID {
				record = models.NewMergedLocationWithMetadata(loc, meta)
				break
			}
		}

		merged = append(merged, record)
	}

	return merged
}
