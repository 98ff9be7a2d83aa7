package render

import (
	"fmt"
	"strings"

	"moviepreview/internal/services"
)

// FoundLines returns the "Found" card as label/value pairs in display order
func FoundLines(result *services.PreviewResult) [][2]string {
	album := result.Album
	if album == "" {
		album = "Unknown"
	}
	return [][2]string{
		{"Song", result.Song},
		{"Artist", result.Artist},
		{"Album", album},
		{"Preview", result.PreviewURL},
		{"Debug", result.Debug},
	}
}

// FoundText renders a result the way the chat UI shows it
func FoundText(result *services.PreviewResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Found (%s)\n", result.Source)
	for _, line := range FoundLines(result) {
		fmt.Fprintf(&b, "%s: %s\n", line[0], line[1])
	}
	return b.String()
}

// NotFoundText is the multi-line form of NotFoundMessage
func NotFoundText() string {
	return "No preview found 😕\nTry:\n1) Movie + Song name\nExample: '" + NotFoundExample + "'\n"
}

// ProblemText renders an error response with its checklist
func ProblemText(resp ErrorResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", resp.Message)
	if len(resp.Checklist) > 0 {
		b.WriteString("\nChecklist:\n")
		for i, item := range resp.Checklist {
			fmt.Fprintf(&b, "%d) %s\n", i+1, item)
		}
	}
	return b.String()
}
