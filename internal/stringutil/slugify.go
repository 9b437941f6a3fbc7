package stringutil

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Slugify converts a project name into a file-name friendly slug.
// Letters of any script and digits are kept, everything else collapses into
// single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}
