package logic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DeleteChar removes the last character of the line
func DeleteChar(line string) string {
	if line == "" {
		return line
	}
	_, size := utf8.DecodeLastRuneInString(line)
	return line[:len(line)-size]
}

// DeleteWord removes trailing whitespace and then the word before it
func DeleteWord(line string) string {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	return strings.TrimRightFunc(line, func(r rune) bool { return !unicode.IsSpace(r) })
}

// InsertChar appends r to the line
func InsertChar(line string, r rune) string {
	return line + string(r)
}
