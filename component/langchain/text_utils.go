package langchain

import "strings"

// maxPromptRunes bounds how much document text is sent to the extractor
// model. Documents beyond this are clipped, not rejected.
const maxPromptRunes = 6000

// clipText truncates text to at most limit runes, cutting at the last
// word boundary so the model never sees a half word.
func clipText(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	clipped := string(runes[:limit])
	if idx := strings.LastIndexAny(clipped, " \t\n"); idx > 0 {
		clipped = clipped[:idx]
	}
	return strings.TrimSpace(clipped)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
