// Package stringtest provides helpers for constructing multi-line test
// fixtures with explicit line endings and indentation, which keeps expected
// document output readable in table-driven tests.
package stringtest

import "strings"

// Input normalizes a raw multi-line string literal for use as test input:
// one leading and one trailing newline are removed, and the common leading
// whitespace of all non-blank lines is stripped.
//
// Example:
//
//	in := stringtest.Input(`
//	    {
//	      "name": "x",
//	    }`)
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	indent := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		prefix := leadingWhitespace(line)
		if first {
			indent = prefix
			first = false

			continue
		}

		indent = commonPrefix(indent, prefix)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		out[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(out, "\n")
}

// JoinLF joins multiple strings with LF line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"{",
//		`  "name": "x",`,
//		"}",
//	) // -> "{\n  \"name\": \"x\",\n}"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings. Use this to build
// input fixtures for documents written on Windows.
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// leadingWhitespace returns the run of spaces and tabs at the start of s.
func leadingWhitespace(s string) string {
	for i, r := range s {
		if r != ' ' && r != '\t' {
			return s[:i]
		}
	}

	return s
}

// commonPrefix returns the longest shared prefix of a and b.
func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}

	return a[:i]
}
