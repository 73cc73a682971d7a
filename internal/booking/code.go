package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// CodeGenerator produces a booking code for a booking created at now.
type CodeGenerator func(now time.Time) (string, error)

// RandomCode returns BK-YYYYMMDD-XXXXX with five upper-case hex digits.
// Uniqueness is enforced by the store; callers retry on collision.
func RandomCode(now time.Time) (string, error) {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("booking code: %w", err)
	}
	suffix := strings.ToUpper(hex.EncodeToString(b[:]))[:5]
	return "BK-" + now.UTC().Format("20060102") + "-" + suffix, nil
}
