package logutil

// TruncateForLog caps a string at maxLen characters for log output,
// appending "..." when cut. Used for tokens where only a prefix may
// appear in logs.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
