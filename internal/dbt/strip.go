package dbt

import "strings"

// StripDirectives removes templating directives from a wrapped model so the
// bare SQL can be executed directly against Snowflake. Lines holding only a
// `{{ ... }}` or `{% ... %}` directive are dropped, as is the placeholder
// comment inside the incremental block.
func StripDirectives(model string) string {
	var kept []string

	inBlock := false
	for _, line := range strings.Split(model, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "{%") && strings.HasSuffix(trimmed, "%}"):
			// `{% if ... %}` opens a block, `{% endif %}` closes it
			inBlock = !strings.Contains(trimmed, "end")
		case strings.HasPrefix(trimmed, "{{") && strings.HasSuffix(trimmed, "}}"):
			// directive-only line, dropped
		case inBlock:
			// placeholder content inside a conditional block
		default:
			kept = append(kept, line)
		}
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
