package board

import (
	"strings"
	"unicode/utf8"
)

const maxSessionTokenLength = 64

// NormalizeSessionToken turns a typed or URL-carried token into its canonical form.
func NormalizeSessionToken(raw string) (string, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return "", ErrInvalidSessionToken
	}
	if utf8.RuneCountInString(token) > maxSessionTokenLength {
		return "", ErrSessionTokenTooLong
	}
	return token, nil
}
