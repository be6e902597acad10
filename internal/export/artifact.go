// Package export turns a generated plan into downloadable artifacts.
package export

import (
	"fmt"
	"strings"
	"time"
)

// MIME labels of the two artifact kinds.
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
)

// Artifact is one downloadable byte representation of a plan.
type Artifact struct {
	FileName string
	MIMEType string
	Data     []byte
}

// Text returns the plan bytes unmodified.
func Text(plan string) Artifact {
	return Artifact{MIMEType: MIMEText, Data: []byte(plan)}
}

// FileName builds the deterministic download name for a plan, e.g.
// "Jane_Doe_diet_plan_2024-05-01.pdf".
func FileName(name string, date time.Time, ext string) string {
	return fmt.Sprintf("%s_diet_plan_%s.%s", strings.ReplaceAll(name, " ", "_"), date.Format(time.DateOnly), ext)
}
