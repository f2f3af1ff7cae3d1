// Package validation holds the pure payload checks shared by the HTTP layer
// and the election engine. Every rule is evaluated; callers receive all
// violations at once.
package validation

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minTitleLen       = 3
	minDescriptionLen = 10
	minOptions        = 2
)

// EventPayload checks an event-creation payload against now.
// It returns nil when the payload is valid.
func EventPayload(title, description string, options []string, startAt, endAt *time.Time, now time.Time) []string {
	var errs []string
	if runeLen(title) < minTitleLen {
		errs = append(errs, "title must be at least 3 characters long")
	}
	if runeLen(description) < minDescriptionLen {
		errs = append(errs, "description must be at least 10 characters long")
	}
	errs = append(errs, optionRules(options)...)
	if startAt != nil && startAt.Before(now) {
		errs = append(errs, "start date cannot be in the past")
	}
	if startAt != nil && endAt != nil && !endAt.After(*startAt) {
		errs = append(errs, "end date must be after start date")
	}
	return errs
}

// EventUpdate checks a merged event after a patch. The start-date rule only
// applies when the patch moves the start.
func EventUpdate(title, description string, options []string, startAt time.Time, endAt *time.Time, startChanged bool, now time.Time) []string {
	var errs []string
	if runeLen(title) < minTitleLen {
		errs = append(errs, "title must be at least 3 characters long")
	}
	if runeLen(description) < minDescriptionLen {
		errs = append(errs, "description must be at least 10 characters long")
	}
	errs = append(errs, optionRules(options)...)
	if startChanged && startAt.Before(now) {
		errs = append(errs, "start date cannot be in the past")
	}
	if endAt != nil && !endAt.After(startAt) {
		errs = append(errs, "end date must be after start date")
	}
	return errs
}

func optionRules(options []string) []string {
	var errs []string
	if len(options) < minOptions {
		errs = append(errs, "event must have at least 2 options")
	}
	for _, o := range options {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, "option names must not be empty")
			break
		}
	}
	return errs
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
