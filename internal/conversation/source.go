package conversation

import (
	"fmt"
	"strings"

	"github.com/jask/arxivcs/internal/api"
)

const sourceLabelMax = 40

// SourceLabel is the short chip text for a source.
func SourceLabel(s api.Source) string {
	r := []rune(s.Title)
	if len(r) > sourceLabelMax {
		return string(r[:sourceLabelMax]) + "..."
	}
	return s.Title
}

// SourceDetail is the long form: "title by a, b (year)".
func SourceDetail(s api.Source) string {
	out := s.Title
	if len(s.Authors) > 0 {
		out += " by " + strings.Join(s.Authors, ", ")
	}
	if s.Year != "" {
		out += fmt.Sprintf(" (%s)", s.Year)
	}
	return out
}
