// Package analyzer computes category statistics and derived views over merged locations.
package analyzer

import (
	"math"

	"github.com/shopspring/decimal"

	"locinsight/internal/models"
)

// ratingPlaces is the number of decimal places kept in average ratings.
const ratingPlaces = 1

// categoryTotals keeps exact sums; float64 sums of valid values can overflow.
type categoryTotals struct {
	count        int
	totalRating  decimal.Decimal
	totalReviews decimal.Decimal
}

// Analyze groups records that have metadata by type. Results are in
// first-seen category order; records without metadata are skipped.
func Analyze(merged []models.MergedLocation) []models.AnalysisResult {
	var order []string

	totals := make(map[string]*categoryTotals)

	for _, rec := range merged {
		meta, ok := rec.Metadata()
		if !ok {
			continue
		}

		t, seen := totals[meta.Type]
		if !seen {
			t = &categoryTotals{}
			totals[meta.Type] = t
			order = append(order, meta.Type)
		}

		t.count++
		t.totalRating = t.totalRating.Add(decimal.NewFromFloat(meta.Rating))
		t.totalReviews = t.totalReviews.Add(decimal.NewFromFloat(meta.Reviews))
	}

	results := make([]models.AnalysisResult, 0, len(order))

	for _, category := range order {
		t := totals[category]
		results = append(results, models.AnalysisResult{
			Type:          category,
			Count:         t.count,
			AverageRating: AverageRating(t.totalRating, t.count),
			TotalReviews:  saturate(t.totalReviews),
		})
	}

	return results
}

// AverageRating divides total by count and rounds half away from zero to one
// decimal place. Each rating enters the total at its shortest decimal form, so
// a single 0.15 averages to 0.2. It returns 0 when count is zero.
func AverageRating(total decimal.Decimal, count int) float64 {
	if count == 0 {
		return 0
	}

	avg := total.Div(decimal.NewFromInt(int64(count)))

	return saturate(avg.Round(ratingPlaces))
}

// saturate converts d to float64, clamping values beyond the float64 range
// to ±math.MaxFloat64.
func saturate(d decimal.Decimal) float64 {
	f := d.InexactFloat64()
	if math.IsInf(f, 0) {
		return math.Copysign(math.MaxFloat64, f)
	}

	return f
}

// MostReviewed returns the record with the strictly greatest review count.
// Ties go to the earliest record. The bool is false when no record has metadata.
func MostReviewed(merged []models.MergedLocation) (models.MergedLocation, bool) {
	var (
		best    models.MergedLocation
		found   bool
		reviews float64
	)

	for _, rec := range merged {
		meta, ok := rec.Metadata()
		if !ok {
			continue
		}

		if !found || meta.Reviews > reviews {
			best = rec
			reviews = meta.Reviews
			found = true
		}
	}

	return best, found
}

// Incomplete returns the records without metadata, in their original order.
func Incomplete(merged []models.MergedLocation) []models.MergedLocation {
	missing := make([]models.MergedLocation, 0)

	for _, rec := range merged {
		if !rec.HasMetadata() {
			missing = append(missing, rec)
		}
	}

	return missing
}

// Summarize counts records and distinct categories.
func Summarize(merged []models.MergedLocation) models.ReportSummary {
	summary := models.ReportSummary{TotalLocations: len(merged)}
	categories := make(map[string]struct{})

	for _, rec := range merged {
		meta, ok := rec.Metadata()
		if !ok {
			summary.Incomplete++
			continue
		}

		summary.WithMetadata++
		categories[meta.Type] = struct{}{}
	}

	summary.Categories = len(categories)

	return summary
}
