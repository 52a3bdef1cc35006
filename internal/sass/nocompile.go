package sass

import (
	"regexp"
	"strings"
)

// Markers guarding example code that is shown but never compiled.
const (
	NoCompileStart = "// START_NO_COMPILE"
	NoCompileEnd   = "// END_NO_COMPILE"
)

// StripNoCompile removes every guarded region, including the indentation
// before the start marker and the newline after the end marker.
func StripNoCompile(code string) string {
	for {
		start := strings.Index(code, NoCompileStart)
		if start < 0 {
			return code
		}
		rel := strings.Index(code[start:], NoCompileEnd)
		if rel < 0 {
			return code
		}
		end := start + rel + len(NoCompileEnd)
		if end < len(code) && code[end] == '\r' {
			end++
		}
		if end < len(code) && code[end] == '\n' {
			end++
		}
		lineStart := start
		for lineStart > 0 && (code[lineStart-1] == ' ' || code[lineStart-1] == '\t') {
			lineStart--
		}
		code = code[:lineStart] + code[end:]
	}
}

var markerLine = regexp.MustCompile(`\s*// (START|END)_NO_COMPILE\r?\n`)

// StripNoCompileComments drops the marker lines and keeps the guarded code.
func StripNoCompileComments(code string) string {
	return markerLine.ReplaceAllString(code, "\n")
}
