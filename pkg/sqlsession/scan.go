package sqlsession

import (
	"regexp"
	"strings"
)

// literalEnd returns the index just past the quoted string, comment or
// dollar-quoted body starting at q[i]. It reports false when none starts there.
// An unterminated region runs to the end of q.
func literalEnd(q string, i int) (int, bool) {
	rest := q[i:]
	switch c := q[i]; {
	case c == '\'' || c == '"' || c == '`':
		if j := strings.IndexByte(rest[1:], c); j >= 0 {
			return i + j + 2, true
		}
		return len(q), true
	case strings.HasPrefix(rest, "--"):
		if j := strings.IndexByte(rest, '\n'); j >= 0 {
			return i + j + 1, true
		}
		return len(q), true
	case strings.HasPrefix(rest, "/*"):
		if j := strings.Index(rest[2:], "*/"); j >= 0 {
			return i + j + 4, true
		}
		return len(q), true
	case c == '$':
		tag, ok := dollarTag(rest)
		if !ok {
			return 0, false
		}
		if j := strings.Index(rest[len(tag):], tag); j >= 0 {
			return i + 2*len(tag) + j, true
		}
		return len(q), true
	}
	return 0, false
}

// dollarTag returns the opening "$$" or "$tag$" of a dollar-quoted body.
func dollarTag(s string) (string, bool) {
	j := 1
	if j < len(s) && isIdentStart(s[j]) {
		for j < len(s) && isIdentPart(s[j]) {
			j++
		}
	}
	if j < len(s) && s[j] == '$' {
		return s[:j+1], true
	}
	return "", false
}

func isComment(s string) bool {
	return strings.HasPrefix(s, "--") || strings.HasPrefix(s, "/*")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// splitStatements cuts query at top-level semicolons. Pieces holding only
// whitespace or comments are dropped.
func splitStatements(query string) []string {
	var (
		out   []string
		start int
		code  bool
	)
	for i := 0; i < len(query); {
		if end, ok := literalEnd(query, i); ok {
			if !isComment(query[i:]) {
				code = true
			}
			i = end
			continue
		}
		switch c := query[i]; {
		case c == ';':
			if code {
				out = append(out, strings.TrimSpace(query[start:i]))
			}
			start, code = i+1, false
		case !isSpace(c):
			code = true
		}
		i++
	}
	if code {
		out = append(out, strings.TrimSpace(query[start:]))
	}
	return out
}

var rowKeywords = map[string]bool{
	"SELECT":  true,
	"WITH":    true,
	"VALUES":  true,
	"TABLE":   true,
	"SHOW":    true,
	"EXPLAIN": true,
	"PRAGMA":  true,
}

var returningRe = regexp.MustCompile(`(?i)\bRETURNING\b`)

// returnsRows reports whether stmt produces a row set and must be run as a
// query rather than executed.
func returnsRows(stmt string) bool {
	return rowKeywords[leadingKeyword(stmt)] || returningRe.MatchString(stmt)
}

func leadingKeyword(stmt string) string {
	for i := 0; i < len(stmt); {
		if isComment(stmt[i:]) {
			i, _ = literalEnd(stmt, i)
			continue
		}
		if c := stmt[i]; isSpace(c) || c == '(' {
			i++
			continue
		}
		j := i
		for j < len(stmt) && isIdentPart(stmt[j]) {
			j++
		}
		return strings.ToUpper(stmt[i:j])
	}
	return ""
}
