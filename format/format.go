package format

import (
	"errors"
	"fmt"
	"strings"
)

type Format int

const (
	XMLFormat Format = iota
	JSONFormat
	RSSFormat
	GPXFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"x":    XMLFormat,
		"xml":  XMLFormat,
		"j":    JSONFormat,
		"json": JSONFormat,
		"rss":  RSSFormat,
		"gpx":  GPXFormat,
	}[v]
	if ok {
		return f, nil
	}
	names := make([]string, 0, 4)
	for _, f := range AllFormats() {
		names = append(names, f.String())
	}
	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrBadFormat, v, strings.Join(names, ", "))
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case XMLFormat:
		return []byte("xml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case RSSFormat:
		return []byte("rss"), nil
	case GPXFormat:
		return []byte("gpx"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsXML() bool  { return f == XMLFormat }
func (f Format) IsJSON() bool { return f == JSONFormat }
func (f Format) IsRSS() bool  { return f == RSSFormat }
func (f Format) IsGPX() bool  { return f == GPXFormat }

// IsMarkup reports whether documents in f are written by the XML encoder.
// RSS and GPX are XML vocabularies.
func (f Format) IsMarkup() bool { return f != JSONFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case XMLFormat:
		return ".xml"
	case JSONFormat:
		return ".json"
	case RSSFormat:
		return ".rss"
	case GPXFormat:
		return ".gpx"
	default:
		return ""
	}
}

// ContentType returns the media type of responses in f.
func (f Format) ContentType() string {
	switch f {
	case JSONFormat:
		return "application/json; charset=utf-8"
	case RSSFormat:
		return "application/rss+xml; charset=utf-8"
	case GPXFormat:
		return "application/gpx+xml; charset=utf-8"
	default:
		return "application/xml; charset=utf-8"
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{XMLFormat, JSONFormat, RSSFormat, GPXFormat}
}
