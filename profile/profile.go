// Package profile holds the statically declared registries that steer the
// XML codec: which containers keep their children in document order, which
// tags always parse as lists, and which attributes are integer identifiers.
//
// Profiles are built once and then shared read-only between requests.
package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var ErrProfile = errors.New("bad profile")

// Profile is a compiled set of codec registries.
type Profile struct {
	sequences map[string]map[string]struct{}
	lists     map[string]struct{}
	intAttrs  map[string]struct{}
}

// Spec is the declarative form of a Profile, as written in TOML:
//
//	lists = ["tag", "nd", "member"]
//	integer_attributes = ["id", "ref", "version"]
//
//	[sequences]
//	osmChange = ["create", "modify", "delete"]
//	create = ["node", "way", "relation"]
type Spec struct {
	Sequences map[string][]string `toml:"sequences"`
	Lists     []string            `toml:"lists"`
	IntAttrs  []string            `toml:"integer_attributes"`
}

var elementTypes = []string{"node", "way", "relation"}

// DefaultSpec returns the registries of the OSM API 0.6 document catalogue.
func DefaultSpec() Spec {
	return Spec{
		Sequences: map[string][]string{
			"osmChange":  {"create", "modify", "delete"},
			"create":     elementTypes,
			"modify":     elementTypes,
			"delete":     elementTypes,
			"osm":        {"bounds", "node", "way", "relation"},
			"diffResult": elementTypes,
		},
		Lists: []string{
			"member", "tag", "nd",
			"trk", "trkseg", "trkpt",
			"preference", "note", "comment", "gpx_file",
		},
		IntAttrs: []string{
			"id", "ref", "uid", "changeset", "version",
			"changes_count", "comments_count", "num_changes",
		},
	}
}

var defaultProfile = MustCompile(DefaultSpec())

// Default returns the shared default profile.
func Default() *Profile {
	return defaultProfile
}

// Compile validates s and builds the lookup sets.
func Compile(s Spec) (*Profile, error) {
	p := &Profile{
		sequences: make(map[string]map[string]struct{}, len(s.Sequences)),
		lists:     make(map[string]struct{}, len(s.Lists)),
		intAttrs:  make(map[string]struct{}, len(s.IntAttrs)),
	}
	for container, children := range s.Sequences {
		if err := checkName(container); err != nil {
			return nil, fmt.Errorf("sequences: %w", err)
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("%w: sequence container %q has no child tags", ErrProfile, container)
		}
		set := make(map[string]struct{}, len(children))
		for _, c := range children {
			if err := checkName(c); err != nil {
				return nil, fmt.Errorf("sequences.%s: %w", container, err)
			}
			set[c] = struct{}{}
		}
		p.sequences[container] = set
	}
	for _, l := range s.Lists {
		if err := checkName(l); err != nil {
			return nil, fmt.Errorf("lists: %w", err)
		}
		p.lists[l] = struct{}{}
	}
	for _, a := range s.IntAttrs {
		if err := checkName(a); err != nil {
			return nil, fmt.Errorf("integer_attributes: %w", err)
		}
		p.intAttrs[a] = struct{}{}
	}
	return p, nil
}

func MustCompile(s Spec) *Profile {
	p, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return p
}

func checkName(n string) error {
	if n == "" || strings.ContainsAny(n, " \t\r\n<>&\"'=/") || strings.HasPrefix(n, "@") {
		return fmt.Errorf("%w: invalid tag or attribute name %q", ErrProfile, n)
	}
	return nil
}

// IsSequence reports whether child, appearing under container, makes the
// container keep its children in document order.
func (p *Profile) IsSequence(container, child string) bool {
	set, ok := p.sequences[container]
	if !ok {
		return false
	}
	_, ok = set[child]
	return ok
}

// ForceList reports whether tag always parses as a list.
func (p *Profile) ForceList(tag string) bool {
	_, ok := p.lists[tag]
	return ok
}

// IsIntAttr reports whether attribute name holds an integer identifier.
func (p *Profile) IsIntAttr(name string) bool {
	_, ok := p.intAttrs[name]
	return ok
}

// Spec returns the declarative form of p with every list sorted.
func (p *Profile) Spec() Spec {
	s := Spec{
		Sequences: make(map[string][]string, len(p.sequences)),
		Lists:     slices.Sorted(maps.Keys(p.lists)),
		IntAttrs:  slices.Sorted(maps.Keys(p.intAttrs)),
	}
	for c, set := range p.sequences {
		s.Sequences[c] = slices.Sorted(maps.Keys(set))
	}
	return s
}
