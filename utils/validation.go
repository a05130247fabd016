package utils

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateTaskTitle trims the title and rejects empty or oversized input.
// It returns the trimmed title for storage.
func ValidateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title must not be empty")
	}
	if utf8.RuneCountInString(title) > 255 {
		return "", errors.New("title must be at most 255 characters")
	}
	return title, nil
}
