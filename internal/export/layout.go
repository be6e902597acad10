package export

import "strings"

// WrapWidth is the column budget of a document row, in characters.
const WrapWidth = 85

// Row is one fixed-height line of the paginated document.
type Row struct {
	Text    string
	Heading bool
	Blank   bool
}

// Layout reflows plan into document rows.
//
// An empty line becomes one blank row. Any other line is word-wrapped; a line
// holding only whitespace wraps to nothing and produces no row. Whether a
// line is a heading is decided once from the whole raw line and applies to
// every row wrapped from it. An empty plan has no rows at all.
func Layout(plan string) []Row {
	if plan == "" {
		return nil
	}
	var rows []Row
	for _, line := range strings.Split(plan, "\n") {
		if line == "" {
			rows = append(rows, Row{Blank: true})
			continue
		}
		heading := strings.HasPrefix(strings.TrimSpace(line), "#")
		for _, sub := range Wrap(line, WrapWidth) {
			rows = append(rows, Row{Text: sub, Heading: heading})
		}
	}
	return rows
}
