package api

import (
	"errors"
	"net/http"

	"github.com/Harvester57/openstreetmap-ng/osmxml/encode"
	"github.com/Harvester57/openstreetmap-ng/osmxml/format"
	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/osmchange"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"
	"github.com/Harvester57/openstreetmap-ng/osmxml/xattr"
)

// APIVersion is written into every response envelope.
const APIVersion = "0.6"

// FormatMiddleware binds the response format detected from the request path
// to the request context.
func FormatMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := format.Detect(r.URL.Path)
		next.ServeHTTP(w, r.WithContext(format.NewContext(r.Context(), f)))
	})
}

// Envelope prepends the version and generator fields to content, a mapping
// or an ordered sequence.
func (a *API) Envelope(p xattr.Projector, content *ir.Node) *ir.Node {
	head := []ir.KeyVal{
		{Key: p.Attr("version"), Val: ir.FromString(APIVersion)},
		{Key: p.Attr("generator"), Val: ir.FromString(a.Spec.Generator)},
	}
	if content == nil {
		return ir.FromKeyVals(head)
	}
	kvs := append(head, content.KeyVals()...)
	if content.Type == ir.SequenceType {
		return ir.FromPairs(kvs)
	}
	return ir.FromKeyVals(kvs)
}

// Render writes content in the format bound to the request. Markup formats
// wrap it in a root element named root; JSON writes it as is.
func (a *API) Render(w http.ResponseWriter, r *http.Request, status int, root string, content *ir.Node) {
	f := format.FromContext(r.Context())
	doc := content
	if f.IsMarkup() {
		doc = ir.NewDocument(root, content)
	}
	d, err := encode.Unparse(doc, encode.EncodeFormat(f))
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(d); err != nil {
		a.Spec.Log.Debug("write response", "path", r.URL.Path, "error", err)
	}
}

// StatusOf maps an error from the codec, the upload decoder or the store to
// an HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrBodyTooLarge), errors.Is(err, parse.ErrInputTooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, osmchange.ErrCreateBadID), errors.Is(err, osmchange.ErrBadVersion):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrDecompress),
		errors.Is(err, parse.ErrMalformed),
		errors.Is(err, osmchange.ErrDiff),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrGone):
		return http.StatusGone
	}
	return http.StatusInternalServerError
}

// WriteError writes err as a plain text response. Server faults are logged
// and their details withheld.
func (a *API) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		a.Spec.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	} else {
		a.Spec.Log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	http.Error(w, msg, status)
}
