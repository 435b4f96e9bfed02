package integration

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"locinsight/internal/formatter"
	"locinsight/internal/ingest"
	"locinsight/internal/logger"
	"locinsight/pkg/metadata"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()

	content, err := os.ReadFile(filepath.Join("..", "fixtures", name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}

	return string(content)
}

func TestAnalyzerFlow_SampleData(t *testing.T) {
	for _, strategy := range []ingest.MergeStrategy{ingest.StrategyIndex, ingest.StrategyScan} {
		t.Run(string(strategy), func(t *testing.T) {
			processor := ingest.NewProcessor(strategy, logger.Discard())

			report, err := processor.Process(ingest.Request{
				Locations: readFixture(t, "locations.json"),
				Metadata:  readFixture(t, "metadata.json"),
			})
			if err != nil {
				t.Fatalf("Process failed: %v", err)
			}

			// Categories in first-seen order; the duplicate loc-001 cafe entry is ignored.
			wantTypes := []string{"restaurant", "park", "museum"}
			if len(report.Analysis) != len(wantTypes) {
				t.Fatalf("Expected %d categories, got %+v", len(wantTypes), report.Analysis)
			}

			for i, want := range wantTypes {
				if report.Analysis[i].Type != want {
					t.Errorf("Analysis[%d].Type = %s, want %s", i, report.Analysis[i].Type, want)
				}
			}

			restaurant := report.Analysis[0]
			if restaurant.Count != 2 || restaurant.AverageRating != 4.2 || restaurant.TotalReviews != 415 {
				t.Errorf("Unexpected restaurant result: %+v", restaurant)
			}

			// loc-001 and loc-004 tie on reviews; the earlier one wins.
			if report.MostReviewed == nil || report.MostReviewed.ID != "loc-001" {
				t.Fatalf("MostReviewed = %+v, want loc-001", report.MostReviewed)
			}

			if meta, ok := report.MostReviewed.Metadata(); !ok || meta.Type != "restaurant" {
				t.Errorf("MostReviewed metadata = %+v, want first restaurant entry", meta)
			}

			if len(report.Incomplete) != 1 || report.Incomplete[0].ID != "loc-005" {
				t.Errorf("Incomplete = %+v, want [loc-005]", report.Incomplete)
			}
		})
	}
}

func TestAnalyzerFlow_EmptyMetadata(t *testing.T) {
	report, err := ingest.NewProcessor(ingest.StrategyIndex, nil).Process(ingest.Request{
		Locations: readFixture(t, "locations.json"),
		Metadata:  readFixture(t, "metadata_empty.json"),
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(report.Analysis) != 0 || report.MostReviewed != nil {
		t.Errorf("Expected no categories and no most reviewed, got %+v / %+v", report.Analysis, report.MostReviewed)
	}

	if len(report.Incomplete) != 5 {
		t.Errorf("Expected every location to be incomplete, got %d", len(report.Incomplete))
	}

	doc := formatter.RenderMarkdown(report)
	for _, want := range []string{"_No categories to report._", "_No location has metadata._", "| loc-005 |"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Markdown missing %q:\n%s", want, doc)
		}
	}
}

func TestAnalyzerFlow_RejectsBadShape(t *testing.T) {
	_, err := ingest.NewProcessor(ingest.StrategyIndex, nil).Process(ingest.Request{
		Locations: readFixture(t, "locations_bad.json"),
		Metadata:  readFixture(t, "metadata.json"),
	})

	var failure *ingest.ValidationFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Expected *ValidationFailure, got %v", err)
	}

	if failure.Field != ingest.FieldLocations || failure.Kind != ingest.ShapeFailure || failure.Index != 1 {
		t.Errorf("Unexpected failure: %+v", failure)
	}

	if !strings.HasSuffix(failure.Message, "(item 1: latitude must be a number)") {
		t.Errorf("Unexpected message: %s", failure.Message)
	}
}

func TestAnalyzerFlow_SignedReportRoundTrip(t *testing.T) {
	report, err := ingest.NewProcessor(ingest.StrategyIndex, nil).Process(ingest.Request{
		Locations: readFixture(t, "locations.json"),
		Metadata:  readFixture(t, "metadata.json"),
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	signed := metadata.Sign(formatter.RenderMarkdown(report), metadata.Metadata{
		ReportID:    report.ID.String(),
		GeneratedAt: report.GeneratedAt,
		Complete:    report.IsComplete(),
	})

	if ok, err := metadata.Verify(signed); !ok {
		t.Fatalf("Verify failed: %v", err)
	}

	_, clean := metadata.Extract(signed)
	if formatter.AlignTables(clean) != clean {
		t.Error("Rendered report should already be aligned")
	}
}
