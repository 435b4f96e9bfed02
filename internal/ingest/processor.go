package ingest

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"locinsight/internal/analyzer"
	"locinsight/internal/logger"
	"locinsight/internal/models"
)

// Request carries the two raw input texts of one analysis run.
type Request struct {
	Locations string `json:"locations"`
	Metadata  string `json:"metadata"`
}

// Processor runs validation, merging and analysis as one step.
type Processor struct {
	validator *Validator
	merger    *Merger
	logger    *logger.Logger
	now       func() time.Time
}

// NewProcessor creates a new processor instance.
func NewProcessor(strategy MergeStrategy, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}

	return &Processor{
		validator: NewValidator(),
		merger:    NewMerger(strategy),
		logger:    log,
		now:       time.Now,
	}
}

// Process validates the request and builds a report from it.
// A rejected input is returned as a *ValidationFailure.
func (p *Processor) Process(req Request) (*models.AnalysisReport, error) {
	start := p.now()

	input, err := p.validator.Validate(req.Locations, req.Metadata)
	if err != nil {
		var failure *ValidationFailure
		if errors.As(err, &failure) {
			p.logger.Warn("input rejected",
				"field", string(failure.Field),
				"kind", string(failure.Kind),
				"index", failure.Index,
				"error", failure.Err,
			)
		}

		return nil, err
	}

	p.logger.Debug("input validated",
		"locations", len(input.Locations),
		"metadata", len(input.Metadata),
	)

	merged := p.merger.Merge(input.Locations, input.Metadata)
	p.logger.Debug("records merged", "strategy", string(p.merger.Strategy()), "records", len(merged))

	report := BuildReport(merged)
	report.GeneratedAt = start.UTC()

	p.logger.Info("analysis complete",
		"report_id", report.ID.String(),
		"categories", report.Summary.Categories,
		"incomplete", report.Summary.Incomplete,
		"duration", p.now().Sub(start),
	)

	return report, nil
}

// BuildReport runs the three analyzer passes over merged records.
func BuildReport(merged []models.MergedLocation) *models.AnalysisReport {
	report := &models.AnalysisReport{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Analysis:    analyzer.Analyze(merged),
		Incomplete:  analyzer.Incomplete(merged),
		Summary:     analyzer.Summarize(merged),
	}

	if best, ok := analyzer.MostReviewed(merged); ok {
		report.MostReviewed = &best
	}

	return report
}
