package usecase

import (
	"strings"
	"unicode"
)

// NormalizeSkills splits on any run of commas or whitespace and joins the
// tokens with a single comma. Applying it twice yields the same string.
func NormalizeSkills(skills string) string {
	tokens := strings.FieldsFunc(skills, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return strings.Join(tokens, ",")
}
