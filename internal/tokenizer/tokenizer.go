package tokenizer

import (
	"strings"
)

// FieldSeparator separates the header and marker tokens of an annotation line.
const FieldSeparator = "\t"

// Split breaks an annotation line into its header token and marker tokens.
// The final field is always discarded: well-formed lines end with a trailing tab,
// so it is empty. ok is false when the line has no separator at all.
func Split(line string) (header string, markers []string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, FieldSeparator)
	if len(fields) < 2 {
		return "", nil, false
	}

	markers = make([]string, 0, len(fields)-2) // Initialize as empty slice, not nil
	markers = append(markers, fields[1:len(fields)-1]...)
	return fields[0], markers, true
}

// Lines splits file content into lines, dropping a final empty line left by a
// trailing newline.
func Lines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// HeaderSegments splits a header token on '#'.
func HeaderSegments(header string) []string {
	return strings.Split(header, "#")
}
