package values

import (
	"math"
	"strconv"
	"strings"
)

// stringToNumber implements ECMA-262 §9.3.1 (StringNumericLiteral grammar)
// at the precision this VM needs: surrounding whitespace is trimmed, empty
// string is 0, decimal/hex literals and Infinity are recognized, anything
// else is NaN.
func stringToNumber(s string) float64 {
	t := strings.TrimFunc(s, isStringWhitespace)
	if t == "" {
		return 0
	}

	neg := false
	switch {
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	case strings.HasPrefix(t, "-"):
		neg = true
		t = t[1:]
	}

	if t == "Infinity" {
		if neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	if len(t) > 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
		u, err := strconv.ParseUint(t[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		f := float64(u)
		if neg {
			return -f
		}
		return f
	}

	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return math.NaN()
	}
	if neg {
		return -f
	}
	return f
}

func isStringWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x00A0, 0xFEFF:
		return true
	}
	return false
}

// formatShortest renders a finite, non-zero float64 the way ECMA-262
// §9.8.1 wants: the shortest decimal string that round-trips, switching to
// exponential notation outside the [1e-6, 1e21) range.
func formatShortest(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e21 {
		return toExponential(f)
	}
	if abs < 1e-6 {
		return toExponential(f)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func toExponential(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	// Go pads the exponent to at least two digits ("1e-07"); ECMA wants it
	// without a leading zero ("1e-7"). Go always writes the sign, so the
	// first exponent digit sits at i+2.
	if i := strings.IndexByte(s, 'e'); i >= 0 && i+3 < len(s) && s[i+2] == '0' {
		s = s[:i+2] + s[i+3:]
	}
	return s
}

// Compare implements the AS3 relational-operator comparison algorithm
// (ECMA-262 §11.8.5): strings compare lexicographically by Go string
// order (UTF-8 bytes, i.e. code point order, which differs from UTF-16
// code-unit order for characters above U+FFFF) when both operands are
// strings, otherwise both sides coerce to
// Number and compare numerically. Returns -1, 0, 1, or reports undefined
// when either side is NaN (per the spec's "undefined" comparison result).
func Compare(host Host, a, b *Value) (result int, undefined bool) {
	if a.IsString() && b.IsString() {
		as := a.Data.(string)
		bs := b.Data.(string)
		switch {
		case as == bs:
			return 0, false
		case as < bs:
			return -1, false
		default:
			return 1, false
		}
	}

	an := a.ToNumber(host)
	bn := b.ToNumber(host)
	if math.IsNaN(an) || math.IsNaN(bn) {
		return 0, true
	}
	switch {
	case an == bn:
		return 0, false
	case an < bn:
		return -1, false
	default:
		return 1, false
	}
}
