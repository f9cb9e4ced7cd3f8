// Package llm - envelope.go decodes the response envelopes returned by
// responses-style endpoints. The same endpoint has been observed returning
// three shapes: a bare JSON string, an object carrying a list of typed output
// items (one of which is a message with text content), and an object with a
// top-level text field. All shape handling lives here; callers only see the
// extracted text.
package llm

import (
	"encoding/json"
	"strings"
)

// responseEnvelope is the closed set of recognized envelope fields. Unknown
// fields are ignored; unknown shapes fail extraction rather than being
// guessed at.
type responseEnvelope struct {
	Output     []outputItem    `json:"output"`
	OutputText string          `json:"output_text"`
	Text       json.RawMessage `json:"text"`
}

type outputItem struct {
	Type    string        `json:"type"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// DecodeEnvelope extracts the first usable text payload from a raw response
// body, whatever its shape. Returns false when no text can be found.
func DecodeEnvelope(raw []byte) (string, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "", false
	}

	// Shape 1: the whole body is a JSON-encoded string.
	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s, true
		}
		return "", false
	}

	var env responseEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return "", false
	}

	// Shape 2: typed output items; the message item carries the text.
	for _, item := range env.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type != "" && part.Type != "output_text" && part.Type != "text" {
				continue
			}
			if text := strings.TrimSpace(part.Text); text != "" {
				return text, true
			}
		}
	}

	// Shape 3: top-level text field. Some variants use output_text, others
	// use text; text may also be an object (a format descriptor), in which
	// case it is not a payload.
	if text := strings.TrimSpace(env.OutputText); text != "" {
		return text, true
	}
	if len(env.Text) > 0 {
		var text string
		if err := json.Unmarshal(env.Text, &text); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return text, true
			}
		}
	}

	return "", false
}
