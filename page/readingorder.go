package page

import (
	"sort"
)

// RefKind distinguishes reading order elements
type RefKind int

const (
	// RefRegion is a plain reference to a region
	RefRegion RefKind = iota
	// RefOrdered is a group whose children are ordered by index
	RefOrdered
	// RefUnordered is a group whose children have no defined order
	RefUnordered
)

// RegionRef is an element of the reading order tree, either a reference to
// a region or a group of further elements which may itself reference a
// region
type RegionRef struct {
	ID string
	// Region is the id of the referenced region, empty for plain groups
	Region  string
	Kind    RefKind
	Index   int
	Caption string
	// Children of a group, ordered groups keep them sorted by Index
	Children []*RegionRef
}

// ReadingOrder is the reading order tree of a page with an index from region
// id to the element referencing it
type ReadingOrder struct {
	Root *RegionRef

	refs    map[string]*RegionRef
	parents map[*RegionRef]*RegionRef
}

// NewReadingOrder indexes the reading order tree rooted at root, which may
// be nil for a page without reading order
func NewReadingOrder(root *RegionRef) *ReadingOrder {
	ro := &ReadingOrder{Root: root}
	ro.Reindex()
	return ro
}

// Reindex rebuilds the region index after the tree was modified directly
func (ro *ReadingOrder) Reindex() {

	ro.refs = make(map[string]*RegionRef)
	ro.parents = make(map[*RegionRef]*RegionRef)

	if ro.Root != nil {
		ro.index(ro.Root, nil)
	}
}

func (ro *ReadingOrder) index(e, parent *RegionRef) {

	if parent != nil {
		ro.parents[e] = parent
	}

	if e.Region != "" {
		ro.refs[e.Region] = e
	}

	if e.Kind == RefOrdered {
		sort.SliceStable(e.Children, func(i, j int) bool {
			return e.Children[i].Index < e.Children[j].Index
		})
	}

	for _, c := range e.Children {
		ro.index(c, e)
	}
}

// Lookup returns the element referencing the region
func (ro *ReadingOrder) Lookup(regionID string) (*RegionRef, bool) {
	e, ok := ro.refs[regionID]
	return e, ok
}

// Len returns the number of referenced regions
func (ro *ReadingOrder) Len() int {
	return len(ro.refs)
}

// Retarget points the reference of oldID at newID.  When newID is already
// referenced the old entry is merged into it instead: a plain reference is
// removed, a group keeps its children but loses its region reference.  It
// reports whether oldID was referenced.
func (ro *ReadingOrder) Retarget(oldID, newID string) bool {

	e, ok := ro.refs[oldID]

	if !ok {
		return false
	}

	delete(ro.refs, oldID)

	if existing, ok := ro.refs[newID]; ok && existing != e {
		if e.Kind == RefRegion {
			ro.detach(e)
		} else {
			e.Region = ""
		}

		return true
	}

	e.Region = newID
	ro.refs[newID] = e

	return true
}

// Remove drops the reference to the region, keeping the children of a group
// element.  It reports whether the region was referenced.
func (ro *ReadingOrder) Remove(regionID string) bool {

	e, ok := ro.refs[regionID]

	if !ok {
		return false
	}

	delete(ro.refs, regionID)

	if e.Kind == RefRegion {
		ro.detach(e)
	} else {
		e.Region = ""
	}

	return true
}

// Append adds a plain reference to the region at the end of the root group,
// creating an ordered root group when the page has no reading order yet
func (ro *ReadingOrder) Append(regionID string) {

	if _, ok := ro.refs[regionID]; ok {
		return
	}

	if ro.Root == nil {
		ro.Root = &RegionRef{ID: "ro_root", Kind: RefOrdered}
	}

	index := 0

	for _, c := range ro.Root.Children {
		if c.Index >= index {
			index = c.Index + 1
		}
	}

	e := &RegionRef{ID: "ro_" + regionID, Region: regionID, Kind: RefRegion, Index: index}
	ro.Root.Children = append(ro.Root.Children, e)
	ro.parents[e] = ro.Root
	ro.refs[regionID] = e
}

// detach removes a plain reference element from its group
func (ro *ReadingOrder) detach(e *RegionRef) {

	parent, ok := ro.parents[e]

	if !ok {
		return
	}

	for i, c := range parent.Children {
		if c == e {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}

	delete(ro.parents, e)
}

// Positions returns the position of every referenced region in a depth first
// traversal of the tree
func (ro *ReadingOrder) Positions() map[string]int {

	pos := make(map[string]int, len(ro.refs))

	var visit func(e *RegionRef)
	visit = func(e *RegionRef) {
		if e.Region != "" {
			if _, ok := pos[e.Region]; !ok {
				pos[e.Region] = len(pos)
			}
		}

		for _, c := range e.Children {
			visit(c)
		}
	}

	if ro.Root != nil {
		visit(ro.Root)
	}

	return pos
}
