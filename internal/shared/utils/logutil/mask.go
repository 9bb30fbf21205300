package logutil

import "strings"

// MaskEmail redacts the local part of an email for log output.
// "user@example.com" becomes "u***@example.com".
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(email, "@")
	if !found {
		return "***"
	}
	if len(local) <= 1 {
		return local + "***@" + domain
	}
	return local[:1] + "***@" + domain
}
