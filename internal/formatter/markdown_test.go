package formatter

import (
	"strings"
	"testing"
)

func TestAlignTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Header 1 | Header 2 |
| --- | --- |
| val 1 | val 2 |
`,
			expected: `
| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Col A | Col B |
| ---------------------- | ---------------------------------- |
| A | B |
`,
			expected: `
| Col A | Col B |
| ----- | ----- |
| A     | B     |
`,
		},
		{
			name: "Trim spaces in cells",
			input: `
|   Col A   |   Col B   |
| --- | --- |
|   val A   |   val B   |
`,
			expected: `
| Col A | Col B |
| ----- | ----- |
| val A | val B |
`,
		},
		{
			name: "Mixed content",
			input: `
# Title

| H1 | H2 |
| -- | -- |
| v1 | v2 |

Text after table.
`,
			expected: `
# Title

| H1  | H2  |
| --- | --- |
| v1  | v2  |

Text after table.
`,
		},
		{
			name: "Mixed CJK and ASCII",
			input: `
| Type | Reviews |
| --- | --- |
| 公園 | 12 |
| 博物館：香港 | 3 |
| cafe | 100 |
`,
			// 博(2) 物(2) 館(2) ：(2) 香(2) 港(2) = 12 columns wide
			expected: `
| Type         | Reviews |
| ------------ | ------- |
| 公園         | 12      |
| 博物館：香港 | 3       |
| cafe         | 100     |
`,
		},
		{
			name: "Alignment colons kept",
			input: `
| Name | Count |
| :--- | ---: |
| park | 1 |
`,
			expected: `
| Name | Count |
| :--- | ----: |
| park | 1     |
`,
		},
		{
			name: "Escaped pipe stays in cell",
			input: `
| ID | Type |
| --- | --- |
| a\|b | park |
`,
			expected: `
| ID   | Type |
| ---- | ---- |
| a\|b | park |
`,
		},
		{
			name: "Ragged rows padded",
			input: `
| A | B | C |
| --- | --- | --- |
| 1 |
`,
			expected: `
| A   | B   | C   |
| --- | --- | --- |
| 1   |     |     |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignTables(strings.TrimSpace(tt.input))

			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("AlignTables() = \n%v\nwant \n%v", got, tt.expected)
			}
		})
	}
}

func TestAlignTables_SingleRowUntouched(t *testing.T) {
	input := "|  lonely  |"
	if got := AlignTables(input); got != input {
		t.Errorf("AlignTables() = %q, want %q", got, input)
	}
}
