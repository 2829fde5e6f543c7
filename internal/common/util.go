package common

import "strings"

// WipeByteArray overwrites b with zeros. Passwords read from the terminal
// are wiped once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeID trims and uppercases a human-facing identifier (user id,
// referrer id). The backend issues ids in uppercase only.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
