package planner

import (
	"regexp"
	"strconv"
)

var dayHeading = regexp.MustCompile(`(?m)^\s*#{1,6}\s*Day\s+(\d+)\b`)

// CountDays returns the number of distinct "## Day N" headings in a plan.
// The count is informational; a short plan is never rejected.
func CountDays(text string) int {
	seen := make(map[int]struct{})
	for _, m := range dayHeading.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		seen[n] = struct{}{}
	}
	return len(seen)
}
