package domain

import (
	"encoding/json"
	"fmt"
)

// TestCase is an (input, expected output) pair owned by the challenge.
// Read-only input to the dispatcher.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	Description    string `json:"description,omitempty"`
}

type testCaseRecord struct {
	Input          *string `json:"input"`
	ExpectedOutput *string `json:"expected_output"`
	// Output is the legacy field name for the expected value.
	Output      *string `json:"output"`
	Description string  `json:"description"`
}

// UnmarshalJSON normalizes the canonical and legacy record shapes into
// one representation. Records carrying neither expected-output field,
// or no input field, are rejected rather than coerced.
func (t *TestCase) UnmarshalJSON(data []byte) error {
	var record testCaseRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("malformed test case record: %w", err)
	}
	if record.Input == nil {
		return fmt.Errorf("test case record is missing input")
	}
	expected := record.ExpectedOutput
	if expected == nil {
		expected = record.Output
	}
	if expected == nil {
		return fmt.Errorf("test case record is missing expected output")
	}
	t.Input = *record.Input
	t.ExpectedOutput = *expected
	t.Description = record.Description
	return nil
}

// ParseTestCases decodes a challenge's raw test case document. Records
// without a description get a positional label, 1-indexed.
func ParseTestCases(data []byte) ([]TestCase, error) {
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse test cases: %w", err)
	}
	for i := range cases {
		if cases[i].Description == "" {
			cases[i].Description = fmt.Sprintf("Test case %d", i+1)
		}
	}
	return cases, nil
}
