package debug

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
)

type debug struct {
	Parse  bool
	Encode bool
	Body   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("OSMXML_DEBUG_PARSE")
	d.Encode = boolEnv("OSMXML_DEBUG_ENCODE")
	d.Body = boolEnv("OSMXML_DEBUG_BODY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// SizeEnv reads a byte size such as "50MiB" or "1000000" from the
// environment variable v. Unset or unparsable values yield def.
func SizeEnv(v string, def int64) int64 {
	x := os.Getenv(v)
	if x == "" {
		return def
	}
	n, err := humanize.ParseBytes(x)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignoring %s=%q: %v\n", v, x, err)
		return def
	}
	return int64(n)
}

func Parse() bool {
	return d.Parse
}
func Encode() bool {
	return d.Encode
}
func Body() bool {
	return d.Body
}
