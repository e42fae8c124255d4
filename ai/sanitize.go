package ai

import "strings"

// SanitizeJSONResponse prepares raw model output for JSON decoding.
// It strips markdown code fences and removes control characters that make
// otherwise well-formed JSON unparseable. Models occasionally wrap their
// answer in ```json fences or leak raw control bytes into string values.
func SanitizeJSONResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Drop C0/C1 control characters except tab and newline.
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n':
			return r
		case r < 0x20 || r == 0x7F || (r >= 0x80 && r <= 0x9F):
			return -1
		}
		return r
	}, strings.TrimSpace(text))
}
