package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisResult holds the aggregate statistics of one category.
type AnalysisResult struct {
	Type          string  `json:"type"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  float64 `json:"totalReviews"`
}

// ReportSummary holds record counts for a report.
type ReportSummary struct {
	TotalLocations int `json:"totalLocations"`
	WithMetadata   int `json:"withMetadata"`
	Incomplete     int `json:"incomplete"`
	Categories     int `json:"categories"`
}

// AnalysisReport is the complete output of one analysis run.
type AnalysisReport struct {
	GeneratedAt  time.Time        `json:"generatedAt"`
	MostReviewed *MergedLocation  `json:"mostReviewed"`
	Analysis     []AnalysisResult `json:"analysis"`
	Incomplete   []MergedLocation `json:"incomplete"`
	Summary      ReportSummary    `json:"summary"`
	ID           uuid.UUID        `json:"id"`
}

// IsComplete returns true when every location had metadata.
func (r *AnalysisReport) IsComplete() bool {
	return len(r.Incomplete) == 0
}
