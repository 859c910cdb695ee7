package common

import "strconv"

// WipeByteArray overwrites the contents of b with zeros. Passwords read from
// the terminal are wiped once the login request has been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ParseID parses a positive decimal identifier as used in route paths.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
