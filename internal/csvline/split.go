// Package csvline splits single lines of delimited text into fields.
//
// Quoting follows the usual CSV convention: a field may be wrapped in
// double quotes to carry the separator, and "" inside a quoted field is a
// literal quote. Parsing is lenient; an unterminated quote simply runs to
// the end of the line.
package csvline

import "strings"

const quote = '"'

// Split returns the fields of line separated by sep. The result always has
// one more element than the number of unquoted separators in line.
func Split(line string, sep rune) []string {
	fields := make([]string, 0, strings.Count(line, string(sep))+1)

	var (
		buf      strings.Builder
		inQuotes bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == quote && inQuotes && i+1 < len(runes) && runes[i+1] == quote:
			buf.WriteRune(quote)
			i++
		case r == quote:
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			fields = append(fields, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}

	return append(fields, buf.String())
}
