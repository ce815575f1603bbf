// Package form validates user input before it is submitted to the API.
//
// Every validator evaluates all fields and reports at most one message per
// field: the first rule that field fails.
package form

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Errors maps a field name to its validation message.
type Errors map[string]string

// Error implements error, listing fields in a stable order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Clear drops the message for a field once the user edits it.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// Err returns e as an error, or nil when there are no messages.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// check records msg for field unless that field already failed.
func (e Errors) check(field string, failed bool, msg string) {
	if !failed {
		return
	}
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

// spaces matches Unicode white space as browsers do; RE2's \s is ASCII only.
const spaces = `\s\p{Z}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`[^` + spaces + `]+@[^` + spaces + `]+\.[^` + spaces + `]+`)
	phonePattern = regexp.MustCompile(`^[\d` + spaces + `\-+()]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5,6}$`)
	nonDigits    = regexp.MustCompile(`\D`)
	whitespace   = regexp.MustCompile(`[` + spaces + `]`)
)

// length counts characters, not bytes.
func length(s string) int {
	return utf8.RuneCountInString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
