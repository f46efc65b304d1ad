package feed

import (
	"fmt"
	"os"
	"strings"

	"github.com/lysyi3m/rss-ripper/internal/parser"
)

// writeSidecar saves episode details in a plain-text file next to the
// downloaded audio file.
func writeSidecar(audioPath string, entry parser.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", orNA(entry.Title))
	fmt.Fprintf(&b, "Subtitle: %s\n", orNA(entry.Subtitle))
	fmt.Fprintf(&b, "Published Date: %s\n", orNA(entry.Published))
	fmt.Fprintf(&b, "Content: %s\n", orNA(entry.Summary))

	return os.WriteFile(audioPath+".txt", []byte(b.String()), 0644)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
