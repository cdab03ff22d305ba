package profile

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML profile from path. Keys left out of the file keep their
// default registries; a [sequences] table replaces the default sequences.
func Load(path string) (*Profile, error) {
	var raw Spec
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return fromMeta(raw, meta)
}

// Decode is Load for a TOML document held in memory.
func Decode(data string) (*Profile, error) {
	var raw Spec
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return fromMeta(raw, meta)
}

func fromMeta(raw Spec, meta toml.MetaData) (*Profile, error) {
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrProfile, strings.Join(keys, ", "))
	}
	s := DefaultSpec()
	if meta.IsDefined("sequences") {
		s.Sequences = raw.Sequences
	}
	if meta.IsDefined("lists") {
		s.Lists = raw.Lists
	}
	if meta.IsDefined("integer_attributes") {
		s.IntAttrs = raw.IntAttrs
	}
	return Compile(s)
}

// Encode renders p as TOML.
func (p *Profile) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p.Spec())
}
