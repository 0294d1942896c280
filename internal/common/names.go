package common

import (
	"path/filepath"
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeModelName derives a model name from an input file name: the
// extension is dropped and every run of non-alphanumeric characters is
// collapsed to a single underscore.
func SanitizeModelName(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	name := nonAlnum.ReplaceAllString(base, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "model"
	}
	return name
}
