package docindex

import "strings"

// FormatEntries formats search results for terminal display.
// Section entries show "Page › Title"; text is collapsed to a single line
// and truncated to excerptLen runes when excerptLen is positive.
func FormatEntries(entries []Entry, excerptLen int) string {
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		header := e.Title
		if e.Category == CategorySection && e.Title != e.Page {
			header = e.Page + " › " + e.Title
		}

		var b strings.Builder
		b.WriteString(header)
		b.WriteString("\n  ")
		b.WriteString(displayLocation(e.Location))

		if text := Excerpt(e.Text, excerptLen); text != "" {
			b.WriteString("\n  ")
			b.WriteString(text)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// Excerpt collapses whitespace in text and truncates it to n runes,
// appending an ellipsis when truncated. Non-positive n disables truncation.
func Excerpt(text string, n int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if n <= 0 {
		return collapsed
	}
	runes := []rune(collapsed)
	if len(runes) <= n {
		return collapsed
	}
	return string(runes[:n]) + "…"
}

func displayLocation(location string) string {
	if location == "" {
		return "/"
	}
	return location
}
