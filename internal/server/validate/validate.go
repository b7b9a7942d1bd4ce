// Package validate implements the field-level input rules applied to
// usernames and passwords before any repository call.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/cocreate/internal/common"
)

const (
	UsernameMinLen = 3
	UsernameMaxLen = 20
	PasswordMinLen = 8
	PasswordMaxLen = 80
)

// Rule sentinels. A FieldError unwraps to one of these.
var (
	ErrEmpty            = common.NewError(common.KindValidation, "empty")
	ErrLengthOutOfRange = common.NewError(common.KindValidation, "length out of range")
	ErrNotAlphanumeric  = common.NewError(common.KindValidation, "not alphanumeric")
	ErrMissingDigit     = common.NewError(common.KindValidation, "missing digit")
	ErrMissingLetter    = common.NewError(common.KindValidation, "missing letter")
)

// FieldError reports which rule a field broke, with a message meant for the
// end user.
type FieldError struct {
	Field string
	Rule  error
	msg   string
}

func (e *FieldError) Error() string { return e.msg }

func (e *FieldError) Unwrap() error { return e.Rule }

// Kind lets common.KindOf classify the error without unwrapping.
func (e *FieldError) Kind() common.Kind { return common.KindValidation }

func fieldError(field string, rule error, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Rule: rule, msg: fmt.Sprintf(format, args...)}
}

// Username checks that s is 3..20 ASCII letters or digits.
func Username(s string) error {
	if strings.TrimSpace(s) == "" {
		return fieldError("username", ErrEmpty, "Username cannot be empty.")
	}
	if n := utf8.RuneCountInString(s); n < UsernameMinLen || n > UsernameMaxLen {
		return fieldError("username", ErrLengthOutOfRange,
			"Username must be between %d and %d characters.", UsernameMinLen, UsernameMaxLen)
	}
	for _, r := range s {
		if !isASCIIAlnum(r) {
			return fieldError("username", ErrNotAlphanumeric, "Username can only contain letters and numbers.")
		}
	}
	return nil
}

// Password checks that s is 8..80 characters with at least one digit and
// one letter.
func Password(s string) error {
	if s == "" {
		return fieldError("password", ErrEmpty, "Password cannot be empty.")
	}
	n := utf8.RuneCountInString(s)
	if n < PasswordMinLen {
		return fieldError("password", ErrLengthOutOfRange,
			"Password must be at least %d characters long.", PasswordMinLen)
	}
	if n > PasswordMaxLen {
		return fieldError("password", ErrLengthOutOfRange,
			"Password must be at most %d characters long.", PasswordMaxLen)
	}

	var hasDigit, hasLetter bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit {
		return fieldError("password", ErrMissingDigit, "Password must contain at least one digit.")
	}
	if !hasLetter {
		return fieldError("password", ErrMissingLetter, "Password must contain at least one letter.")
	}
	return nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
