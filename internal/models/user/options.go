package models

import "strings"

// WithName sets first and last name, trimmed.
func WithName(first, last string) UserOption {
	return func(u *User) {
		u.FirstName = strings.TrimSpace(first)
		u.LastName = strings.TrimSpace(last)
	}
}
