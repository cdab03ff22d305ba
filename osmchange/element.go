package osmchange

import (
	"fmt"
	"time"
)

type ElementType string

const (
	Node     ElementType = "node"
	Way      ElementType = "way"
	Relation ElementType = "relation"
)

// ElementTypes lists the element types in response order.
var ElementTypes = []ElementType{Node, Way, Relation}

func ParseElementType(s string) (ElementType, error) {
	switch ElementType(s) {
	case Node, Way, Relation:
		return ElementType(s), nil
	}
	return "", fmt.Errorf("%w: unknown element type %q", ErrBadXML, s)
}

type Action string

const (
	Create Action = "create"
	Modify Action = "modify"
	Delete Action = "delete"
)

type Tag struct {
	Key   string
	Value string
}

type Member struct {
	Type ElementType
	Ref  int64
	Role string
}

type Point struct {
	Lon float64
	Lat float64
}

// Element is one version of a node, way or relation.
//
// Version is the version the element has once stored: decoding an upload
// adds one to the version the client sent.
type Element struct {
	Type      ElementType
	ID        int64
	Version   int64
	Changeset int64
	Visible   bool
	Timestamp time.Time

	// UserID and User are written only when User is set.
	UserID int64
	User   string

	Tags []Tag
	// Point is set for visible nodes only.
	Point   *Point
	Nodes   []int64
	Members []Member

	DeleteIfUnused bool
}

// Action returns the osmChange action that produced e.
func (e *Element) Action() Action {
	switch {
	case e.Version == 1:
		return Create
	case e.Visible:
		return Modify
	default:
		return Delete
	}
}

// Change is one action block of an osmChange upload.
type Change struct {
	Action   Action
	IfUnused bool
	Elements []Element
}

// Elements flattens changes in upload order.
func Elements(changes []Change) []Element {
	n := 0
	for i := range changes {
		n += len(changes[i].Elements)
	}
	res := make([]Element, 0, n)
	for i := range changes {
		res = append(res, changes[i].Elements...)
	}
	return res
}
