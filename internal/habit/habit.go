// Package habit defines the habit domain vocabulary: frequency tokens,
// field validation rules, and calendar-day date handling shared by the
// store, the analytics engine, and the CLI layer.
package habit

import (
	"errors"
	"strings"
)

// Frequency tokens accepted for a habit.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
	FrequencyCustom = "custom"
)

// Field limits, matching the storage schema.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 500
	MaxNoteLength        = 500
)

// Validation errors returned by the normalization helpers.
var (
	ErrNameEmpty          = errors.New("habit name cannot be empty")
	ErrNameTooLong        = errors.New("habit name cannot exceed 255 characters")
	ErrNameControlChars   = errors.New("habit name cannot contain newlines or tabs")
	ErrDescriptionTooLong = errors.New("habit description cannot exceed 500 characters")
	ErrNoteTooLong        = errors.New("tracking note cannot exceed 500 characters")
	ErrInvalidFrequency   = errors.New("frequency must be daily, weekly, or custom")
)

// NormalizeName trims and validates a habit name. Names are limited to 255
// characters and may not contain newline, carriage return, or tab characters.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameEmpty
	}
	if len(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	if strings.ContainsAny(name, "\n\r\t") {
		return "", ErrNameControlChars
	}
	return name, nil
}

// ParseFrequency normalizes a frequency token. An empty value defaults to
// daily.
func ParseFrequency(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return FrequencyDaily, nil
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return s, nil
	default:
		return "", ErrInvalidFrequency
	}
}

// NormalizeDescription trims and validates an optional habit description.
func NormalizeDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return s, nil
}

// NormalizeNote trims and validates an optional tracking note.
func NormalizeNote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > MaxNoteLength {
		return "", ErrNoteTooLong
	}
	return s, nil
}
