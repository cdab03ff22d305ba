package parse

import (
	"strconv"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/profile"
)

// Coerce returns the value of attribute name. Integer identifier attributes
// whose value is an optionally signed run of decimal digits that fits in an
// int64 become IntType; everything else stays a string.
func Coerce(p *profile.Profile, name, value string) *ir.Node {
	return coerceAt(&ir.Node{}, p, name, value)
}

func coerceAt(n *ir.Node, p *profile.Profile, name, value string) *ir.Node {
	if p.IsIntAttr(name) {
		if i, ok := parseInt(value); ok {
			return ir.FromIntAt(n, i)
		}
	}
	return ir.FromStringAt(n, value)
}

func parseInt(v string) (int64, bool) {
	digits := v
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}
