package api

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/Harvester57/openstreetmap-ng/osmxml/ir"
	"github.com/Harvester57/openstreetmap-ng/osmxml/osmchange"
	"github.com/Harvester57/openstreetmap-ng/osmxml/parse"
	"github.com/Harvester57/openstreetmap-ng/osmxml/xattr"
)

func (a *API) handleGetElement(w http.ResponseWriter, r *http.Request) {
	t, err := elementType(r)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	idStr := r.PathValue("id")
	id, err := pathID(strings.TrimSuffix(idStr, path.Ext(idStr)))
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	e, err := a.Spec.Store.Element(r.Context(), t, id)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	p := xattr.For(r.Context())
	a.Render(w, r, http.StatusOK, "osm", a.Envelope(p, osmchange.EncodeElements(p, []osmchange.Element{*e})))
}

func (a *API) handleCreateElement(w http.ResponseWriter, r *http.Request) {
	t, err := elementType(r)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	doc, err := a.parseBody(r)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	data := osmchange.FirstElement(doc, t)
	if data == nil || data.Type != ir.ObjectType {
		a.WriteError(w, r, &osmchange.Error{
			Err:    osmchange.ErrBadXML,
			Detail: fmt.Sprintf("XML doesn't contain an osm/%s element.", t),
		})
		return
	}
	// ids are allocated by the store
	data.Set("@id", ir.FromInt(-1))
	data.Set("@version", ir.FromInt(0))
	e, err := osmchange.DecodeElement(string(t), data)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	refs, err := a.Spec.Store.Upload(r.Context(), e.Changeset, []osmchange.Change{
		{Action: osmchange.Create, Elements: []osmchange.Element{e}},
	})
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	id := refs[0].Elements[0].ID
	a.Spec.Log.Info("created element", "type", t, "id", id, "changeset", e.Changeset)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, strconv.FormatInt(id, 10))
}

func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	changeset, err := pathID(r.PathValue("id"))
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	doc, err := a.parseBody(r)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	changes, err := osmchange.Decode(doc, osmchange.WithChangeset(changeset))
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	refs, err := a.Spec.Store.Upload(r.Context(), changeset, changes)
	if err != nil {
		a.WriteError(w, r, err)
		return
	}
	a.Spec.Log.Info("uploaded diff", "changeset", changeset, "changes", len(changes), "refs", len(refs))
	a.Render(w, r, http.StatusOK, "diffResult", a.Envelope(xattr.For(r.Context()), osmchange.EncodeDiffResult(refs)))
}

func (a *API) parseBody(r *http.Request) (*ir.Node, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	return parse.Parse(body, parse.WithProfile(a.Spec.Profile), parse.MaxSize(a.Spec.MaxBodySize))
}

func elementType(r *http.Request) (osmchange.ElementType, error) {
	t, err := osmchange.ParseElementType(r.PathValue("type"))
	if err != nil {
		return "", fmt.Errorf("%w: unknown element type %q", ErrNotFound, r.PathValue("type"))
	}
	return t, nil
}

func pathID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrBadRequest, s)
	}
	return id, nil
}
