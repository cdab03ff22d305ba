package ir

import (
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the wire form of timestamps: second precision with optional
// microseconds, always followed by a literal Z.
const TimeLayout = "2006-01-02T15:04:05"

// FormatTime renders t in UTC wire form. Times carrying a non-zero offset
// are rejected rather than converted.
func FormatTime(t time.Time) (string, error) {
	if _, off := t.Zone(); off != 0 {
		return "", fmt.Errorf("%w: timestamp %s is not UTC", ErrType, t.Format(time.RFC3339))
	}
	buf := make([]byte, 0, len(TimeLayout)+8)
	buf = t.AppendFormat(buf, TimeLayout)
	if us := t.Nanosecond() / 1000; us != 0 {
		buf = append(buf, '.')
		buf = appendPadded(buf, us, 6)
	}
	buf = append(buf, 'Z')
	return string(buf), nil
}

func appendPadded(buf []byte, v, width int) []byte {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		buf = append(buf, '0')
	}
	return append(buf, s...)
}

// ScalarText returns the text form of a leaf node: integers and strings as
// is, booleans as true/false, floats in shortest decimal form, times via
// FormatTime. Null renders as the empty string.
func ScalarText(y *Node) (string, error) {
	switch y.Type {
	case StringType, LiteralType:
		return y.String, nil
	case IntType:
		return strconv.FormatInt(y.Int, 10), nil
	case FloatType:
		return strconv.FormatFloat(y.Float, 'f', -1, 64), nil
	case BoolType:
		if y.Bool {
			return "true", nil
		}
		return "false", nil
	case TimeType:
		return FormatTime(y.Time)
	case NullType:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s is not a scalar", ErrType, y.Type)
	}
}
