// Copyright 2026 The Godot MCP Server Authors
// SPDX-License-Identifier: MIT

package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON means no brace-delimited span was present in the output at all.
var ErrNoJSON = errors.New("no JSON object found in output")

// ErrMalformedJSON means a brace-delimited span was found but did not parse.
var ErrMalformedJSON = errors.New("malformed JSON in output")

// Extract pulls the single JSON result object out of the engine's mixed
// stdout. Godot surrounds the bridge script's one JSON line with banner and
// diagnostic text, so extraction takes the span from the first '{' to the
// last '}'.
//
// Known limitation: the span is greedy, not brace-balanced, so a stray '}'
// in trailing log noise corrupts extraction. Existing integrations depend on
// this exact behaviour, so it is preserved rather than fixed.
func Extract(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: %s", ErrNoJSON, snippet(text))
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrMalformedJSON, err, snippet(text))
	}
	return result, nil
}

// snippet bounds raw output included in error messages.
func snippet(text string) string {
	const limit = 200
	text = strings.TrimSpace(text)
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
