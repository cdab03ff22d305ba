package format

import "strings"

var modernPrefixes = []string{"/api/web/", "/api/partial/", "/api/0.7/"}

// IsModernAPI reports whether path is served by an endpoint that always
// speaks JSON. Everything outside /api/ is modern too.
func IsModernAPI(path string) bool {
	for _, p := range modernPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return !strings.HasPrefix(path, "/api/")
}

// Detect picks the response format for a request path.
//
// Legacy API paths default to XML and honour a trailing .json, .xml, .rss or
// .gpx extension. Paths ending in /feed are RSS.
func Detect(path string) Format {
	modern := IsModernAPI(path)
	f := XMLFormat
	if modern {
		f = JSONFormat
	}
	if strings.HasSuffix(path, "/feed") {
		f = RSSFormat
	}
	if modern {
		return f
	}
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return f
	}
	switch path[i+1:] {
	case "json":
		return JSONFormat
	case "xml":
		return XMLFormat
	case "rss":
		return RSSFormat
	case "gpx":
		return GPXFormat
	}
	return f
}
