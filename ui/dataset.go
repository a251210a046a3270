package ui

import (
	"fmt"
	"strconv"
	"strings"

	"statengine/domain/stats"
)

// ParseValues turns free-form numeric text (comma or newline separated)
// into a float slice. Blank tokens are skipped; anything else that fails
// to parse is the user's typo and is reported, not guessed at.
func ParseValues(raw string) ([]float64, error) {
	tokens := strings.Split(strings.ReplaceAll(raw, ",", "\n"), "\n")
	values := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", token)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseGroupLines parses the "Name: v1, v2, v3" per-line format used by
// the form textarea and the batch CLI. Groups with fewer than the minimum
// sample size are silently dropped, exactly like the interactive entry
// flow: they simply have not been filled in yet.
func ParseGroupLines(text string) ([]stats.Group, error) {
	var groups []stats.Group
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, rest, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("line %d: expected \"Name: v1, v2, ...\"", lineNo+1)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: group name is empty", lineNo+1)
		}
		values, err := ParseValues(rest)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
		}
		if len(values) < stats.MinGroupSize {
			continue
		}
		groups = append(groups, stats.Group{Name: name, Values: values})
	}
	return groups, nil
}
