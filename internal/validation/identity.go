package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minNameLen = 2

// Entry selects which password threshold applies.
type Entry int

const (
	// EntryRegister is account registration.
	EntryRegister Entry = iota
	// EntrySelfService is account self-service such as a password change.
	EntrySelfService
)

// PasswordPolicy holds the minimum password lengths per entry point.
type PasswordPolicy struct {
	MinPasswordLenRegister    int
	MinPasswordLenSelfService int
}

// DefaultPasswordPolicy returns {register: 6, self-service: 8}.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinPasswordLenRegister: 6, MinPasswordLenSelfService: 8}
}

// MinLen returns the threshold for the given entry point.
func (p PasswordPolicy) MinLen(entry Entry) int {
	if entry == EntrySelfService {
		return p.MinPasswordLenSelfService
	}
	return p.MinPasswordLenRegister
}

// Email reports whether email looks like a deliverable address.
func Email(email string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(email))
}

// Password checks only the password length rule.
func Password(password string, policy PasswordPolicy, entry Entry) []string {
	min := policy.MinLen(entry)
	if utf8.RuneCountInString(password) < min {
		return []string{fmt.Sprintf("password must be at least %d characters long", min)}
	}
	return nil
}

// IdentityPayload checks a registration or profile payload.
func IdentityPayload(name, email, password string, policy PasswordPolicy, entry Entry) []string {
	var errs []string
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minNameLen {
		errs = append(errs, "name must be at least 2 characters long")
	}
	if !Email(email) {
		errs = append(errs, "please provide a valid email address")
	}
	errs = append(errs, Password(password, policy, entry)...)
	return errs
}
