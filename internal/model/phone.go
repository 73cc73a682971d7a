package model

import (
	"strings"

	"github.com/Leganyst/maid-marketplace/internal/apperr"
)

// NormalizePhone приводит номер к 10 цифрам (мобильный формат, без кода 91).
// Formatting characters are ignored; a leading 91 or 0 prefix is dropped.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	b := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= '0' && c <= '9' {
			b = append(b, c)
		}
	}
	digits := string(b)
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}
	if len(digits) != 10 || digits[0] < '6' {
		return "", apperr.Wrap(apperr.ErrInvalidArgument, "invalid phone number")
	}
	return digits, nil
}

// MaskPhone hides all but the last four digits, for logs.
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return strings.Repeat("*", len(phone))
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
