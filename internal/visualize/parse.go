package visualize

import (
	"encoding/json"
	"errors"
	"strings"
)

const fence = "```"

// StripFences removes a leading ```json (or bare ```) fence and a trailing
// ``` fence, then trims whitespace.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, fence); ok {
		// Drop a language tag such as "json" on the opening line.
		if line, after, found := strings.Cut(rest, "\n"); found && !strings.ContainsAny(line, "{[") {
			rest = after
		} else if !found {
			rest = strings.TrimPrefix(rest, "json")
		}
		s = strings.TrimSpace(rest)
	}
	if rest, ok := strings.CutSuffix(s, fence); ok {
		s = strings.TrimSpace(rest)
	}
	return s
}

// Parse decodes provider output into a Blueprint. It fails only when the
// output is not a JSON object; see Blueprint.UnmarshalJSON for what is
// tolerated inside one.
func Parse(output string) (*Blueprint, error) {
	body := StripFences(output)
	if !strings.HasPrefix(body, "{") {
		return nil, errors.New("output is not a JSON object")
	}
	var bp Blueprint
	if err := json.Unmarshal([]byte(body), &bp); err != nil {
		return nil, err
	}
	bp.Sections = nonNil(bp.Sections)
	return &bp, nil
}
