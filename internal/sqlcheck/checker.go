package sqlcheck

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultAllowed is the statement-type allowlist used when none is given.
var DefaultAllowed = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "WITH"}

// Result reports whether a script passed the DML gate and a message suitable
// for showing to the user either way.
type Result struct {
	Valid   bool
	Message string
}

// Checker gates SQL scripts on their statement types. It is a filter, not a
// parser: a statement is classified by its leading keyword after comments,
// and anything outside the allowlist rejects the whole script.
type Checker struct {
	allowed map[string]bool
}

// New creates a Checker with the given allowed statement keywords, falling
// back to DefaultAllowed when none are provided.
func New(allowed ...string) *Checker {
	if len(allowed) == 0 {
		allowed = DefaultAllowed
	}
	set := make(map[string]bool, len(allowed))
	for _, kw := range allowed {
		set[strings.ToUpper(kw)] = true
	}
	return &Checker{allowed: set}
}

// Check validates that sql is non-empty and that every statement's type is
// within the allowlist.
func (c *Checker) Check(sql string) Result {
	if strings.TrimSpace(sql) == "" {
		return Result{Valid: false, Message: "Empty or invalid SQL."}
	}

	statements := SplitStatements(sql)
	if len(statements) == 0 {
		return Result{Valid: false, Message: "Empty or invalid SQL."}
	}

	for _, stmt := range statements {
		stmtType := StatementType(stmt)
		if stmtType == "" {
			continue
		}
		if !c.allowed[stmtType] {
			return Result{
				Valid:   false,
				Message: fmt.Sprintf("Unsupported SQL statement type: %s. Only DML is allowed.", stmtType),
			}
		}
	}

	return Result{Valid: true, Message: "SQL syntax looks valid."}
}

// SplitStatements splits a script on semicolons outside quotes and comments.
// Statements that are blank after stripping comments are dropped.
func SplitStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	i := 0
	for i < len(sql) {
		ch := sql[i]

		switch {
		case ch == '\'' || ch == '"':
			quote := ch
			current.WriteByte(ch)
			i++
			for i < len(sql) {
				current.WriteByte(sql[i])
				if sql[i] == quote {
					// Doubled quote is an escaped literal quote
					if i+1 < len(sql) && sql[i+1] == quote {
						current.WriteByte(sql[i+1])
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
		case ch == '-' && i+1 < len(sql) && sql[i+1] == '-':
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
		case ch == '/' && i+1 < len(sql) && sql[i+1] == '*':
			i += 2
			for i+1 < len(sql) && !(sql[i] == '*' && sql[i+1] == '/') {
				i++
			}
			if i+1 < len(sql) {
				i += 2
			} else {
				i = len(sql)
			}
		case ch == ';':
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
			i++
		default:
			current.WriteByte(ch)
			i++
		}
	}

	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

// StatementType returns the uppercased leading keyword of a statement, or ""
// when there is none.
func StatementType(stmt string) string {
	stmt = strings.TrimSpace(stmt)

	var word strings.Builder
	for _, r := range stmt {
		if unicode.IsLetter(r) {
			word.WriteRune(r)
			continue
		}
		break
	}

	return strings.ToUpper(word.String())
}
