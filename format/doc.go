// Package format names the output representations a response can take and
// carries the per-request choice on a context.Context.
//
// # Usage
//
//	f := format.Detect(r.URL.Path)
//	ctx := format.NewContext(r.Context(), f)
//	...
//	if format.FromContext(ctx).IsJSON() { ... }
//
// The binding is request-scoped: nothing in this package holds mutable
// process state.
//
// # Related Packages
//
//   - github.com/Harvester57/openstreetmap-ng/osmxml/xattr - key naming per format
//   - github.com/Harvester57/openstreetmap-ng/osmxml/api - sets the format per request
package format
