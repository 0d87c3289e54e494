// Package diff renders line-oriented unified diffs of saved documents.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Unified compares before and after line by line. It returns an empty
// string when both are identical and truncates past 10,000 lines.
func Unified(before, after []byte, beforeLabel, afterLabel string) string {
	if string(before) == string(after) {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\n", beforeLabel)
	fmt.Fprintf(&out, "+++ %s\n", afterLabel)
	fmt.Fprintf(&out, "@@ -1,%d +1,%d @@\n", countLines(before), countLines(after))

	written := 3
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range splitLines(d.Text) {
			if written >= maxDiffLines {
				out.WriteString(truncateMessage + "\n")
				return out.String()
			}
			out.WriteString(prefix + line + "\n")
			written++
		}
	}
	return out.String()
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func countLines(data []byte) int {
	return len(splitLines(string(data)))
}
