package parse

import (
	"github.com/Harvester57/openstreetmap-ng/osmxml/debug"
	"github.com/Harvester57/openstreetmap-ng/osmxml/profile"
)

// DefaultMaxSize bounds the input of Parse when no MaxSize option is given.
// OSMXML_PARSE_MAX_SIZE overrides it, e.g. "32MiB".
var DefaultMaxSize = debug.SizeEnv("OSMXML_PARSE_MAX_SIZE", 50<<20)

type parseOpts struct {
	profile *profile.Profile
	maxSize int64
}

type ParseOption func(*parseOpts)

// WithProfile replaces the default sequence, list and integer registries.
func WithProfile(p *profile.Profile) ParseOption {
	return func(o *parseOpts) { o.profile = p }
}

func MaxSize(n int64) ParseOption {
	return func(o *parseOpts) { o.maxSize = n }
}

func NoLimit() ParseOption {
	return func(o *parseOpts) { o.maxSize = 0 }
}
