package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// mutatingKeywords are rejected anywhere in a statement, as whole words,
// outside string literals.
var mutatingKeywords = []string{
	"insert", "update", "delete", "merge", "upsert", "drop", "alter", "create",
	"truncate", "grant", "revoke", "comment", "copy", "vacuum", "reindex",
	"call", "do", "execute", "lock", "refresh", "cluster", "listen", "notify",
	"set", "reset", "into",
}

var mutatingRe = regexp.MustCompile(`\b(` + strings.Join(mutatingKeywords, "|") + `)\b`)

// IsReadOnlyStatement reports whether sql is a single SELECT (or WITH ... SELECT)
// statement that cannot modify the store. A trailing semicolon is allowed.
func IsReadOnlyStatement(sql string) bool {
	stripped := stripLiterals(sql)
	trimmed := strings.TrimSpace(stripped)
	if trimmed == "" {
		return false
	}

	// Single statement only.
	trimmed = strings.TrimSuffix(trimmed, ";")
	if strings.Contains(trimmed, ";") {
		return false
	}

	// Comments could hide a second statement from the checks above.
	if strings.Contains(trimmed, "--") || strings.Contains(trimmed, "/*") {
		return false
	}

	lower := strings.ToLower(trimmed)
	first := firstWord(lower)
	if first != "select" && first != "with" {
		return false
	}

	return !mutatingRe.MatchString(lower)
}

// stripLiterals blanks out the contents of single-quoted string literals so
// that keywords inside them (e.g. 'Mon YYYY') are not inspected. An
// unterminated literal yields "", which callers reject.
func stripLiterals(sql string) string {
	var b strings.Builder
	b.Grow(len(sql))
	in := false
	for i := 0; i < len(sql); i++ {
		if sql[i] != '\'' {
			if !in {
				b.WriteByte(sql[i])
			}
			continue
		}
		if !in {
			in = true
			b.WriteString("''")
			continue
		}
		// '' inside a literal is an escaped quote
		if i+1 < len(sql) && sql[i+1] == '\'' {
			i++
			continue
		}
		in = false
	}
	if in {
		return ""
	}
	return b.String()
}

func firstWord(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end < 0 {
		return s
	}
	return s[:end]
}
