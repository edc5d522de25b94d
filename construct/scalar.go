package construct

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"

	"github.com/grafana/regexp"
)

var decimalFloat = regexp.MustCompile(`^[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?$`)

// ParseFloat parses YAML 1.1 float text: .inf and .nan spellings, base 60
// with a fractional last group, and decimal notation. Underscores are
// ignored. Spellings strconv accepts but YAML does not, such as "inf" or
// hex floats, are rejected.
func ParseFloat(s string) (float64, bool) {
	switch s {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	s = strings.ReplaceAll(s, "_", "")
	if strings.Contains(s, ":") {
		return parseSexagesimalFloat(s)
	}
	if !decimalFloat.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseSexagesimalFloat(s string) (float64, bool) {
	sign := 1.0
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	var v float64
	scale := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		p := parts[i]
		if p == "" || !decimalFloat.MatchString(p) || strings.ContainsAny(p, "+-eE") {
			return 0, false
		}
		if i < len(parts)-1 && strings.Contains(p, ".") {
			return 0, false
		}
		d, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		v += d * scale
		scale *= 60
	}
	return sign * v, true
}

// ParseBool accepts true, yes and on, or false, no and off, in any case.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	}
	return false, false
}

// ParseNull reports whether s is a null spelling.
func ParseNull(s string) bool {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return true
	}
	return false
}

// ParseBinary decodes base64, skipping characters outside the base64
// alphabet such as line breaks and spaces.
func ParseBinary(s string) ([]byte, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			b.WriteByte(c)
		}
	}
	d, err := base64.RawStdEncoding.DecodeString(b.String())
	if err != nil {
		return nil, false
	}
	return d, true
}
