package format

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying f.
func NewContext(ctx context.Context, f Format) context.Context {
	return context.WithValue(ctx, ctxKey{}, f)
}

// FromContext returns the format bound to ctx, or XMLFormat when none is.
func FromContext(ctx context.Context) Format {
	f, ok := Lookup(ctx)
	if !ok {
		return XMLFormat
	}
	return f
}

// Lookup is FromContext reporting whether a format was bound.
func Lookup(ctx context.Context) (Format, bool) {
	f, ok := ctx.Value(ctxKey{}).(Format)
	return f, ok
}
