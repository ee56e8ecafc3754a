package runtime

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// String is the Go-native reference model of the runtime's free
// String:: helpers the emitter dispatches string-instance methods to
// (spec.md §4.3, §4.4). ToUpperCase/ToLowerCase use x/text/cases for
// Unicode-correct casing rather than the reference's byte-wise
// ::toupper/::tolower, since this model exists to pin down the
// contract's behavior in Go, not to byte-match the C++ runtime.
var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

func ToUpperCase(s string) string { return upper.String(s) }

func ToLowerCase(s string) string { return lower.String(s) }

// Substring clamps start/end into range and returns "" rather than
// faulting when start >= end (spec.md §4.4, ported from
// runtime.cpp's String::substring).
func Substring(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}

func IndexOfString(s, search string) int {
	return strings.Index(s, search)
}

// ReplaceFirst replaces only the first occurrence of from, matching
// runtime.cpp's String::replace (not a global replace-all).
func ReplaceFirst(s, from, to string) string {
	pos := strings.Index(s, from)
	if pos == -1 {
		return s
	}
	return s[:pos] + to + s[pos+len(from):]
}

// Split ports runtime.cpp's String::split do-while loop rather than
// strings.Split: a delimiter landing exactly at the end of s drops the
// trailing empty segment it would otherwise produce, e.g. "a,b," over
// "," yields ["a","b"], not ["a","b",""].
func Split(s, delimiter string) []string {
	var tokens []string
	prev, pos := 0, 0
	for {
		if idx := strings.Index(s[prev:], delimiter); idx == -1 {
			pos = len(s)
		} else {
			pos = prev + idx
		}
		tokens = append(tokens, s[prev:pos])
		prev = pos + len(delimiter)
		if !(pos < len(s) && prev < len(s)) {
			break
		}
	}
	return tokens
}

func Trim(s string) string {
	return strings.Trim(s, " \t\n\r")
}

func StartsWith(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

func EndsWith(s, suffix string) bool {
	return strings.HasSuffix(s, suffix)
}

func Repeat(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}

func PadStart(s string, length int, pad string) string {
	if len(s) >= length || pad == "" {
		return s
	}
	var padding strings.Builder
	for padding.Len() < length-len(s) {
		padding.WriteString(pad)
	}
	return padding.String()[:length-len(s)] + s
}

func PadEnd(s string, length int, pad string) string {
	if len(s) >= length || pad == "" {
		return s
	}
	var padding strings.Builder
	for padding.Len() < length-len(s) {
		padding.WriteString(pad)
	}
	return s + padding.String()[:length-len(s)]
}
