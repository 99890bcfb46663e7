package utils

import "strings"

// NormalizePlate uppercases a plate and strips everything that is not a
// latin letter or digit, so "ab-12 345" and "AB12345" collide.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
