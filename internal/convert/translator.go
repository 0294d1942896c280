package convert

import (
	"regexp"
	"strings"
)

// rule rewrites one Oracle construct to its Snowflake equivalent. Rules with
// a replaceFn compute the replacement from the captured arguments; all others
// expand a static template.
type rule struct {
	name      string
	pattern   *regexp.Regexp
	template  string
	replaceFn func(re *regexp.Regexp, match string) string
}

// Rules run in order and each later rule sees the output of the earlier
// ones. The order is load-bearing: the one-argument TO_DATE and TO_CHAR
// patterns must run after their two-argument forms, and SUBSTR three-argument
// before two-argument, or the narrower pattern would split the wider call.
var rules = []rule{
	{
		name:     "sysdate",
		pattern:  regexp.MustCompile(`(?i)\bSYSDATE\b`),
		template: "CURRENT_TIMESTAMP",
	},
	{
		name:     "nvl",
		pattern:  regexp.MustCompile(`(?i)\bNVL\s*\(([^,]+),\s*([^)]+)\)`),
		template: "COALESCE(${1}, ${2})",
	},
	{
		name:      "decode",
		pattern:   regexp.MustCompile(`(?is)\bDECODE\s*\((.*?)\)`),
		replaceFn: decodeToCase,
	},
	{
		name:     "to_date format",
		pattern:  regexp.MustCompile(`(?i)\bTO_DATE\s*\(([^,]+),\s*([^)]+)\)`),
		template: "TO_DATE(${1}, ${2})",
	},
	{
		name:     "to_date cast",
		pattern:  regexp.MustCompile(`(?i)\bTO_DATE\s*\(\s*([^,)]+)\)`),
		template: "${1}::DATE",
	},
	{
		name:     "to_char format",
		pattern:  regexp.MustCompile(`(?i)\bTO_CHAR\s*\(([^,]+),\s*([^)]+)\)`),
		template: "TO_VARCHAR(${1}, ${2})",
	},
	{
		name:     "to_char cast",
		pattern:  regexp.MustCompile(`(?i)\bTO_CHAR\s*\(\s*([^,)]+)\)`),
		template: "${1}::VARCHAR",
	},
	{
		name:     "to_number",
		pattern:  regexp.MustCompile(`(?i)\bTO_NUMBER\s*\(([^)]+)\)`),
		template: "TRY_TO_NUMBER(${1})",
	},
	{
		name:     "substr three-arg",
		pattern:  regexp.MustCompile(`(?i)\bSUBSTR\s*\(([^,]+),\s*([^,]+),\s*([^)]+)\)`),
		template: "SUBSTRING(${1}, ${2}, ${3})",
	},
	{
		name:     "substr two-arg",
		pattern:  regexp.MustCompile(`(?i)\bSUBSTR\s*\(([^,]+),\s*([^)]+)\)`),
		template: "SUBSTRING(${1}, ${2})",
	},
	{
		name:     "outer join marker",
		pattern:  regexp.MustCompile(`\(\+\)`),
		template: "",
	},
	{
		name:     "rownum limit",
		pattern:  regexp.MustCompile(`(?i)\bROWNUM\s*<=\s*(\d+)`),
		template: "LIMIT ${1}",
	},
}

// Translate rewrites Oracle-specific syntax in sql to its Snowflake
// equivalent. Every rule always runs; a rule whose pattern does not match
// leaves the text unchanged. The input is never mutated and the function is
// safe for concurrent use.
func Translate(sql string) string {
	out, _ := TranslateDetailed(sql)
	return out
}

// TranslateDetailed is Translate plus the names of the rules that matched,
// in application order.
func TranslateDetailed(sql string) (string, []string) {
	var applied []string

	for _, r := range rules {
		before := sql
		if r.replaceFn != nil {
			sql = r.pattern.ReplaceAllStringFunc(sql, func(match string) string {
				return r.replaceFn(r.pattern, match)
			})
		} else {
			sql = r.pattern.ReplaceAllString(sql, r.template)
		}
		if sql != before {
			applied = append(applied, r.name)
		}
	}

	return sql, applied
}

// decodeToCase expands DECODE(expr, search1, result1, ..., [default]) into a
// CASE expression. Arguments are split on commas, so nested calls with their
// own commas are left for the caller to restructure by hand; a call with
// fewer than three arguments is left untouched. A trailing unpaired argument
// becomes the ELSE branch.
func decodeToCase(re *regexp.Regexp, match string) string {
	sub := re.FindStringSubmatch(match)
	if sub == nil {
		return match
	}

	args := strings.Split(sub[1], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	if len(args) < 3 {
		return match
	}

	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(args[0])
	b.WriteString(" ")

	i := 1
	for ; i+1 < len(args); i += 2 {
		b.WriteString("WHEN ")
		b.WriteString(args[i])
		b.WriteString(" THEN ")
		b.WriteString(args[i+1])
		b.WriteString(" ")
	}

	if i < len(args) {
		b.WriteString("ELSE ")
		b.WriteString(args[i])
		b.WriteString(" ")
	}

	b.WriteString("END")
	return b.String()
}
