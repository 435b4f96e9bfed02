package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMergedLocation_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    MergedLocation
		expected string
	}{
		{
			name:     "Without metadata",
			input:    NewMergedLocation(Location{ID: "b", Latitude: 3, Longitude: 4.5}),
			expected: `{"id":"b","latitude":3,"longitude":4.5}`,
		},
		{
			name: "With metadata",
			input: NewMergedLocationWithMetadata(
				Location{ID: "a", Latitude: 1, Longitude: 2},
				LocationMetadata{ID: "a", Type: "park", Rating: 4.5, Reviews: 10},
			),
			expected: `{"id":"a","latitude":1,"longitude":2,"metadata":{"id":"a","type":"park","rating":4.5,"reviews":10}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			if string(data) != tt.expected {
				t.Errorf("Marshal() = %s, want %s", data, tt.expected)
			}

			var back MergedLocation
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if back != tt.input {
				t.Errorf("Unmarshal() = %+v, want %+v", back, tt.input)
			}
		})
	}
}

func TestMergedLocation_ZeroValueHasNoMetadata(t *testing.T) {
	var m MergedLocation

	if m.HasMetadata() {
		t.Error("Zero value should not have metadata")
	}

	if _, ok := m.Metadata(); ok {
		t.Error("Metadata() should report false on the zero value")
	}
}

func TestAnalysisReport_IsComplete(t *testing.T) {
	report := AnalysisReport{}
	if !report.IsComplete() {
		t.Error("Report without incomplete records should be complete")
	}

	report.Incomplete = []MergedLocation{NewMergedLocation(Location{ID: "x"})}
	if report.IsComplete() {
		t.Error("Report with incomplete records should not be complete")
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if !strings.Contains(string(data), `"mostReviewed":null`) {
		t.Errorf("Expected null mostReviewed in %s", data)
	}
}
