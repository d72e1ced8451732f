// Package booking assembles submission-ready booking requests from templates.
package booking

import (
	"regexp"
	"strings"
)

// PlaceholderMaterialCode is returned when a description normalizes to nothing.
const PlaceholderMaterialCode = "UNKNOWN-EQUIPMENT"

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	invalidCodeRun = regexp.MustCompile(`[^A-Z0-9-]`)
)

// DeriveMaterialCode normalizes a free-text equipment description into a
// material code: uppercase, whitespace runs collapsed to single hyphens,
// every other character outside [A-Z0-9-] stripped. An empty result yields
// the fixed placeholder, never an empty string.
func DeriveMaterialCode(equipment string) string {
	code := strings.ToUpper(strings.TrimSpace(equipment))
	code = whitespaceRun.ReplaceAllString(code, "-")
	code = invalidCodeRun.ReplaceAllString(code, "")
	if code == "" {
		return PlaceholderMaterialCode
	}
	return code
}
