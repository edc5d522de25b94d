package construct

import (
	"math"
	"math/bits"
	"strings"
)

// ParseInt parses YAML 1.1 integer text. Underscores are ignored; 0x, 0b
// and 0o prefixes select hex, binary and octal, a bare leading zero
// selects octal, and colons select base 60. Any form may be signed.
func ParseInt(s string) (int64, bool) {
	neg, mag, ok := parseInteger(s)
	if !ok {
		return 0, false
	}
	if neg {
		if mag > 1<<63 {
			return 0, false
		}
		return -int64(mag), true
	}
	if mag > math.MaxInt64 {
		return 0, false
	}
	return int64(mag), true
}

// ParseUint is ParseInt for non-negative values up to MaxUint64.
func ParseUint(s string) (uint64, bool) {
	neg, mag, ok := parseInteger(s)
	if !ok || (neg && mag != 0) {
		return 0, false
	}
	return mag, true
}

func parseIntValue(s string) (any, bool) {
	if i, ok := ParseInt(s); ok {
		return i, true
	}
	if u, ok := ParseUint(s); ok {
		return u, true
	}
	return nil, false
}

func parseInteger(s string) (neg bool, mag uint64, ok bool) {
	s = strings.ReplaceAll(s, "_", "")
	if s == "0" {
		return false, 0, true
	}
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	switch {
	case strings.HasPrefix(s, "0x"):
		mag, ok = parseRadix(s[2:], 16)
	case strings.HasPrefix(s, "0b"):
		mag, ok = parseRadix(s[2:], 2)
	case strings.HasPrefix(s, "0o"):
		mag, ok = parseRadix(s[2:], 8)
	case strings.HasPrefix(s, "0"):
		mag, ok = parseRadix(s[1:], 8)
		if s == "0" {
			mag, ok = 0, true
		}
	case strings.Contains(s, ":"):
		mag, ok = parseSexagesimal(s)
	default:
		mag, ok = parseRadix(s, 10)
	}
	return neg, mag, ok
}

func parseRadix(s string, base uint64) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		d, ok := digitVal(s[i])
		if !ok || d >= base {
			return 0, false
		}
		hi, lo := bits.Mul64(v, base)
		if hi != 0 {
			return 0, false
		}
		v, hi = bits.Add64(lo, d, 0)
		if hi != 0 {
			return 0, false
		}
	}
	return v, true
}

// parseSexagesimal reads base 60 digit groups, most significant first,
// such as 190:20:30.
func parseSexagesimal(s string) (uint64, bool) {
	var v uint64
	for _, part := range strings.Split(s, ":") {
		d, ok := parseRadix(part, 10)
		if !ok {
			return 0, false
		}
		hi, lo := bits.Mul64(v, 60)
		if hi != 0 {
			return 0, false
		}
		v, hi = bits.Add64(lo, d, 0)
		if hi != 0 {
			return 0, false
		}
	}
	return v, true
}

func digitVal(c byte) (uint64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}
