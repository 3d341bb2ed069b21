package logger

import "strings"

// maskedValue replaces secrets in log output.
const maskedValue = "***"

// sensitiveKeywords mark keys whose values are secrets.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sensitiveKeywords = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
}

// Mask hides a secret value while keeping whether it was set visible.
func Mask(value string) string {
	if value == "" {
		return ""
	}

	return maskedValue
}

// IsSensitiveKey reports whether a key names a secret value.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)

	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// MaskKV masks values of sensitive keys in a key-value list as passed to the *KV helpers.
// The input slice is not modified.
func MaskKV(kvs ...any) []any {
	masked := make([]any, len(kvs))
	copy(masked, kvs)

	for i := 0; i+1 < len(masked); i += 2 {
		key, ok := masked[i].(string)
		if !ok || !IsSensitiveKey(key) {
			continue
		}

		if s, isString := masked[i+1].(string); isString {
			masked[i+1] = Mask(s)
		} else {
			masked[i+1] = maskedValue
		}
	}

	return masked
}
