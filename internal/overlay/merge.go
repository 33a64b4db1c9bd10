package overlay

import (
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// EnvExampleName is the merged environment file at the project root
const EnvExampleName = ".env.example"

// Merge joins the base env file and the selected fragments. Every part is
// trimmed, empty parts are dropped, and the rest are separated by exactly
// one blank line. The result carries no trailing newline.
func Merge(base string, fragments []string) string {
	parts := make([]string, 0, len(fragments)+1)
	for _, part := range append([]string{base}, fragments...) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n\n")
}

// envKeys returns the sorted variable names declared in an env file
func envKeys(content string) ([]string, error) {
	vars, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
