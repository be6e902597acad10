package export

import (
	"strings"
	"unicode/utf8"
)

// tabSize is the tab stop used when expanding tabs before wrapping.
const tabSize = 8

// Wrap greedily packs line into sub-lines of at most width characters.
//
// Lines break only at whitespace. Indentation at the start of the line and
// spacing between words are kept; whitespace is dropped only where a break
// happens. Tabs expand to the next multiple of eight columns and other
// whitespace characters become spaces. A word longer than width is never
// split; it gets a sub-line of its own. A line with no words yields no
// sub-lines.
func Wrap(line string, width int) []string {
	chunks := splitChunks(normalizeSpace(line))

	var (
		lines   []string
		current []string
		n       int
	)
	flush := func() {
		// drop the whitespace the break happened at
		if len(current) > 0 && isBlank(current[len(current)-1]) {
			current = current[:len(current)-1]
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, ""))
		}
		current, n = nil, 0
	}

	for _, c := range chunks {
		cn := utf8.RuneCountInString(c)
		blank := isBlank(c)
		switch {
		case len(current) == 0 && blank && len(lines) > 0:
			// leading whitespace of a continuation line
		case n+cn <= width:
			current = append(current, c)
			n += cn
		case blank:
			flush()
		default:
			flush()
			current = append(current, c)
			n = cn
		}
	}
	flush()
	return lines
}

// normalizeSpace expands tabs and turns every other ASCII whitespace
// character into a space, keeping the column count of the line.
func normalizeSpace(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	col := 0
	for _, r := range line {
		switch r {
		case '\t':
			pad := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		case '\n', '\v', '\f', '\r':
			r = ' '
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// splitChunks cuts s into alternating runs of spaces and non-spaces.
func splitChunks(s string) []string {
	var chunks []string
	start := 0
	for i, r := range s {
		if i > start && (r == ' ') != (s[start] == ' ') {
			chunks = append(chunks, s[start:i])
			start = i
		}
	}
	if start < len(s) {
		chunks = append(chunks, s[start:])
	}
	return chunks
}

func isBlank(chunk string) bool {
	return chunk[0] == ' '
}
