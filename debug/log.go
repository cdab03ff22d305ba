package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
)

// Size formats a byte count for log lines.
type Size int

func (s Size) String() string {
	return humanize.IBytes(uint64(s))
}

// Logf writes to stderr. Trees and plain maps or slices are rendered as
// JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			d, err := ir.ToJSON(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw *ir.Node] %#v", x)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
