package phone

import "strings"

// US/Canada is the assumed domestic region for numbers submitted
// without a country code.
const defaultCountryCode = "1"

const (
	minInternationalDigits = 8
	maxInternationalDigits = 15
)

// Normalize converts arbitrary phone text into a canonical international
// form ("+" followed by country code and digits). The second return value
// is false when no canonical form could be derived; callers must not use
// the number as a lookup key in that case.
func Normalize(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	hasPlus := strings.HasPrefix(raw, "+")

	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}

	switch {
	case hasPlus:
		if len(digits) < minInternationalDigits || len(digits) > maxInternationalDigits {
			return "", false
		}
		return "+" + string(digits), true
	case len(digits) == 10:
		return "+" + defaultCountryCode + string(digits), true
	case len(digits) == 11 && digits[0] == defaultCountryCode[0]:
		return "+" + string(digits), true
	default:
		return "", false
	}
}
