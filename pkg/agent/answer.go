package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedAnswer indicates the model's terminal output broke the
// answer contract: exactly one JSON object with a "summary" string and a
// "results_to_display" array, and no embedded newlines.
var ErrMalformedAnswer = errors.New("malformed final answer")

// fallbackAnswer is the degraded response returned once the retry or
// iteration budget is exhausted.
const fallbackAnswer = `{"summary": "I wasn't able to complete that request. Could you rephrase or try again?", "results_to_display": []}`

// validateAnswer checks a terminal model output against the answer
// contract. Violations are fed back to the model as corrections rather
// than surfaced to the user.
func validateAnswer(content string) error {
	if strings.ContainsAny(content, "\n\r") {
		return fmt.Errorf("%w: output contains newline characters", ErrMalformedAnswer)
	}

	dec := json.NewDecoder(strings.NewReader(content))
	var obj map[string]json.RawMessage
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("%w: not a JSON object: %v", ErrMalformedAnswer, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: more than one JSON object in output", ErrMalformedAnswer)
	}

	summaryRaw, ok := obj["summary"]
	if !ok {
		return fmt.Errorf("%w: missing \"summary\" key", ErrMalformedAnswer)
	}
	var summary string
	if err := json.Unmarshal(summaryRaw, &summary); err != nil {
		return fmt.Errorf("%w: \"summary\" is not a string", ErrMalformedAnswer)
	}

	resultsRaw, ok := obj["results_to_display"]
	if !ok {
		return fmt.Errorf("%w: missing \"results_to_display\" key", ErrMalformedAnswer)
	}
	var results []json.RawMessage
	if err := json.Unmarshal(resultsRaw, &results); err != nil {
		return fmt.Errorf("%w: \"results_to_display\" is not an array", ErrMalformedAnswer)
	}

	if len(obj) != 2 {
		return fmt.Errorf("%w: expected exactly the keys \"summary\" and \"results_to_display\"", ErrMalformedAnswer)
	}

	return nil
}
