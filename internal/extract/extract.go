// Package extract pulls a single JSON object out of free-form model output.
//
// Providers are asked to return "ONLY valid JSON" but routinely wrap the
// object in prose or markdown fences. Extraction strips fences and then takes
// the greedy span from the first "{" to the last "}". This deliberately does
// not handle stray braces in surrounding prose or unbalanced braces inside
// string literals; the greedy match is part of the extraction contract and
// must not be replaced with a stricter parser.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	// ErrNoJSON means no brace-delimited substring exists in the text.
	ErrNoJSON = eris.New("extract: no JSON object found")
	// ErrMalformedJSON means a brace-delimited substring exists but does not parse.
	ErrMalformedJSON = eris.New("extract: malformed JSON object")
)

// Object returns the first-brace-to-last-brace span of text as raw JSON.
func Object(text string) (json.RawMessage, error) {
	text = stripFences(strings.TrimSpace(text))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, eris.Wrap(ErrNoJSON, "extract: object")
	}

	candidate := []byte(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, eris.Wrap(ErrMalformedJSON, "extract: object")
	}
	return json.RawMessage(candidate), nil
}

// Into extracts the JSON object from text and decodes it into v.
func Into(text string, v any) error {
	raw, err := Object(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return eris.Wrap(ErrMalformedJSON, err.Error())
	}
	return nil
}

func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}
