package planner

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

const sampleLen = 400

var (
	errEmptyResponse = fmt.Errorf("%w: EMPTY_OR_UNREADABLE_RESPONSE", models.ErrGeneration)
	errNotObject     = fmt.Errorf("%w: NOT_OBJECT", models.ErrGeneration)
	errNotArray      = fmt.Errorf("%w: NOT_ARRAY", models.ErrGeneration)
)

// responseText joins the text parts of the first candidate that has any.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
			continue
		}
		var parts []string
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			parts = append(parts, part.Text)
		}
		if text := strings.TrimSpace(strings.Join(parts, "\n")); text != "" {
			return text
		}
	}
	return ""
}

// cleanJSONResponse strips markdown code fences around model output.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// extractJSON accepts the whole text when it is JSON, otherwise the span
// from the first '{' or '[' to the last '}' or ']'.
func extractJSON(raw string) ([]byte, error) {
	s := cleanJSONResponse(raw)
	if s == "" {
		return nil, errEmptyResponse
	}
	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	first := strings.IndexAny(s, "{[")
	last := strings.LastIndexAny(s, "}]")
	if first >= 0 && last > first {
		if slice := s[first : last+1]; json.Valid([]byte(slice)) {
			return []byte(slice), nil
		}
	}
	return nil, fmt.Errorf("%w: INVALID_JSON: %s", models.ErrGeneration, leadingSample(s))
}

// leadingSample returns at most sampleLen bytes of s, ending on a rune boundary.
func leadingSample(s string) string {
	if len(s) <= sampleLen {
		return s
	}
	cut := sampleLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// firstByte returns the first non-space byte of a JSON document.
func firstByte(data []byte) byte {
	for _, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return c
	}
	return 0
}
