package formatter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"locinsight/internal/models"
)

// RenderMarkdown renders a report as a Markdown document with aligned tables.
func RenderMarkdown(report *models.AnalysisReport) string {
	var sb strings.Builder

	sb.WriteString("# Location Analysis\n\n")

	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"Locations", strconv.Itoa(report.Summary.TotalLocations)},
		{"With metadata", strconv.Itoa(report.Summary.WithMetadata)},
		{"Incomplete", strconv.Itoa(report.Summary.Incomplete)},
		{"Categories", strconv.Itoa(report.Summary.Categories)},
	})

	sb.WriteString("\n## Categories\n\n")

	if len(report.Analysis) == 0 {
		sb.WriteString("_No categories to report._\n")
	} else {
		rows := make([][]string, 0, len(report.Analysis))
		for _, res := range report.Analysis {
			rows = append(rows, []string{
				escapeCell(res.Type),
				strconv.Itoa(res.Count),
				FormatRating(res.AverageRating),
				FormatNumber(res.TotalReviews),
			})
		}

		writeTable(&sb, []string{"Type", "Count", "Average Rating", "Total Reviews"}, rows)
	}

	sb.WriteString("\n## Most Reviewed Location\n\n")

	if report.MostReviewed == nil {
		sb.WriteString("_No location has metadata._\n")
	} else {
		rec := report.MostReviewed
		meta, _ := rec.Metadata()

		writeTable(&sb, []string{"Field", "Value"}, [][]string{
			{"ID", escapeCell(rec.ID)},
			{"Type", escapeCell(meta.Type)},
			{"Rating", FormatNumber(meta.Rating)},
			{"Reviews", FormatNumber(meta.Reviews)},
			{"Coordinates", FormatCoordinates(rec.Location)},
		})
	}

	sb.WriteString("\n## Locations with Incomplete Data\n\n")

	if len(report.Incomplete) == 0 {
		sb.WriteString("_All locations have metadata._\n")
	} else {
		rows := make([][]string, 0, len(report.Incomplete))
		for _, rec := range report.Incomplete {
			rows = append(rows, []string{
				escapeCell(rec.ID),
				FormatNumber(rec.Latitude),
				FormatNumber(rec.Longitude),
			})
		}

		writeTable(&sb, []string{"ID", "Latitude", "Longitude"}, rows)
	}

	return AlignTables(sb.String())
}

// RenderJSON renders a report as JSON.
func RenderJSON(report *models.AnalysisReport, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	return append(data, '\n'), nil
}

// FormatRating prints an average rating with one decimal place.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatNumber prints v in its shortest form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCoordinates prints "lat, lon".
func FormatCoordinates(loc models.Location) string {
	return FormatNumber(loc.Latitude) + ", " + FormatNumber(loc.Longitude)
}

// writeTable writes an unaligned pipe table; AlignTables pads it afterwards.
func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	writeRow(sb, header)

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}

	writeRow(sb, sep)

	for _, row := range rows {
		writeRow(sb, row)
	}
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}
