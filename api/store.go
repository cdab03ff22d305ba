package api

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Harvester57/openstreetmap-ng/osmxml/osmchange"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrGone       = errors.New("gone")
)

// Store is the element storage behind the handlers.
type Store interface {
	// Element returns the latest version of an element.
	Element(ctx context.Context, t osmchange.ElementType, id int64) (*osmchange.Element, error)
	// Upload applies changes atomically and reports the stored versions
	// per uploaded reference, in upload order.
	Upload(ctx context.Context, changeset int64, changes []osmchange.Change) ([]osmchange.AssignedRef, error)
}

type elementKey struct {
	t  osmchange.ElementType
	id int64
}

// MemStore keeps every element version in memory. It does not track
// references between elements, so deletes never fail as in use.
type MemStore struct {
	// Now stamps stored versions; defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	elems map[elementKey][]osmchange.Element
	next  map[osmchange.ElementType]int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		Now:   time.Now,
		elems: make(map[elementKey][]osmchange.Element),
		next:  make(map[osmchange.ElementType]int64),
	}
}

func (s *MemStore) Element(_ context.Context, t osmchange.ElementType, id int64) (*osmchange.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := s.elems[elementKey{t, id}]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, t, id)
	}
	e := versions[len(versions)-1]
	if !e.Visible {
		return nil, fmt.Errorf("%w: %s %d has been deleted", ErrGone, t, id)
	}
	return &e, nil
}

// upload is the state of one Upload call, committed only on success.
type upload struct {
	s            *MemStore
	staged       map[elementKey][]osmchange.Element
	placeholders map[elementKey]int64
	next         map[osmchange.ElementType]int64
}

func (s *MemStore) Upload(ctx context.Context, changeset int64, changes []osmchange.Change) ([]osmchange.AssignedRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &upload{
		s:            s,
		staged:       make(map[elementKey][]osmchange.Element),
		placeholders: make(map[elementKey]int64),
		next:         maps.Clone(s.next),
	}
	now := s.Now().UTC()

	var refs []osmchange.AssignedRef
	refIndex := make(map[elementKey]int)
	for _, ch := range changes {
		for _, e := range ch.Elements {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			old := elementKey{e.Type, e.ID}
			e.Changeset = changeset
			e.Timestamp = now
			if err := u.resolveRefs(&e); err != nil {
				return nil, err
			}
			if err := u.apply(ch.Action, &e); err != nil {
				return nil, err
			}
			k := elementKey{e.Type, e.ID}
			u.staged[k] = append(u.staged[k], e)
			if i, ok := refIndex[old]; ok {
				refs[i].Elements = append(refs[i].Elements, e)
				continue
			}
			refIndex[old] = len(refs)
			refs = append(refs, osmchange.AssignedRef{Type: e.Type, OldID: old.id, Elements: []osmchange.Element{e}})
		}
	}

	for k, versions := range u.staged {
		s.elems[k] = append(s.elems[k], versions...)
	}
	s.next = u.next
	return refs, nil
}

func (u *upload) apply(action osmchange.Action, e *osmchange.Element) error {
	if action == osmchange.Create {
		u.next[e.Type]++
		id := u.next[e.Type]
		u.placeholders[elementKey{e.Type, e.ID}] = id
		e.ID = id
		e.Version = 1
		return nil
	}
	id, err := u.resolve(e.Type, e.ID)
	if err != nil {
		return err
	}
	e.ID = id
	prev, ok := u.latest(elementKey{e.Type, id})
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, e.Type, id)
	}
	if prev.Version != e.Version-1 {
		return fmt.Errorf("%w: version mismatch: provided %d, server had %d of %s %d",
			ErrConflict, e.Version-1, prev.Version, e.Type, id)
	}
	if !prev.Visible {
		return fmt.Errorf("%w: %s %d has already been deleted", ErrGone, e.Type, id)
	}
	if action == osmchange.Delete {
		e.Tags, e.Point, e.Nodes, e.Members = nil, nil, nil, nil
	}
	return nil
}

func (u *upload) resolveRefs(e *osmchange.Element) error {
	e.Nodes = slices.Clone(e.Nodes)
	e.Members = slices.Clone(e.Members)
	for i, ref := range e.Nodes {
		id, err := u.resolve(osmchange.Node, ref)
		if err != nil {
			return err
		}
		e.Nodes[i] = id
	}
	for i, m := range e.Members {
		id, err := u.resolve(m.Type, m.Ref)
		if err != nil {
			return err
		}
		e.Members[i].Ref = id
	}
	return nil
}

// resolve maps a placeholder id created earlier in the upload to its
// assigned id.
func (u *upload) resolve(t osmchange.ElementType, id int64) (int64, error) {
	if id > 0 {
		return id, nil
	}
	assigned, ok := u.placeholders[elementKey{t, id}]
	if !ok {
		return 0, fmt.Errorf("%w: placeholder %s %d was not created in this upload", ErrNotFound, t, id)
	}
	return assigned, nil
}

func (u *upload) latest(k elementKey) (osmchange.Element, bool) {
	if v := u.staged[k]; len(v) > 0 {
		return v[len(v)-1], true
	}
	if v := u.s.elems[k]; len(v) > 0 {
		return v[len(v)-1], true
	}
	return osmchange.Element{}, false
}
