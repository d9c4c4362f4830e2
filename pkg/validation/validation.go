// Package validation holds the format rules applied to user supplied text.
// Every function is a pure predicate; callers decide which message to show.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 6
	MaxTitleLength    = 70
	MaxContentLength  = 1000
	MinTagLength      = 3
)

var (
	nameRegExp     = regexp.MustCompile(`^[A-Za-z0-9'-]+$`)
	usernameRegExp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailRegExp    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s.]+$`)
	titleRegExp    = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	tagRegExp      = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	digitRegExp    = regexp.MustCompile(`^[0-9]+$`)
)

// ValidName accepts letters, digits, apostrophes and hyphens.
func ValidName(name string) bool {
	return nameRegExp.MatchString(name)
}

// ValidUsername accepts letters, digits, underscores and hyphens.
func ValidUsername(username string) bool {
	return usernameRegExp.MatchString(username)
}

// ValidEmail checks the local@domain.tld shape only.
func ValidEmail(email string) bool {
	return emailRegExp.MatchString(email)
}

func ValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// ValidTitle accepts letters, digits and inner spaces, up to 70 characters.
func ValidTitle(title string) bool {
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return false
	}
	return titleRegExp.MatchString(title)
}

// ValidContentInput requires non blank text of at most 1000 characters.
func ValidContentInput(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return utf8.RuneCountInString(text) <= MaxContentLength
}

// ValidTagList requires at least one whitespace separated tag and every tag
// alphanumeric with 3 or more characters.
func ValidTagList(list string) bool {
	tags := strings.Fields(list)
	if len(tags) == 0 {
		return false
	}
	for _, tag := range tags {
		if len(tag) < MinTagLength || !tagRegExp.MatchString(tag) {
			return false
		}
	}
	return true
}

// ValidDigit reports whether s is a non-negative integer literal.
func ValidDigit(s string) bool {
	return digitRegExp.MatchString(s)
}
