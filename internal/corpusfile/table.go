// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpusfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-atlas/internal/rank"
)

// FormatTable writes ranked papers as an aligned text table to w.
func FormatTable(ranked []rank.Ranked, w io.Writer) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Year", "Inf", "Cites", "Thread")
	fmt.Fprintln(w, strings.Repeat("-", 122))

	for i, r := range ranked {
		year := ""
		if r.Year != 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6.3f  %-6d  %s\n",
			i+1, truncate(r.Title, 60), formatAuthors(r.Authors), year, r.Influence, r.CitedByCount, r.Thread)
	}

	fmt.Fprintf(w, "\n%d papers\n", len(ranked))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
