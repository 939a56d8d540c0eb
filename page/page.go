// Package page models the layout tree of a PAGE-XML document: regions with
// their text lines, the page border and the reading order.  Regions are held
// in an arena indexed by id and link to each other by id only.
package page

import (
	"errors"
	"fmt"
	"sort"

	"github.com/swdee/go-pageseg/geometry"
)

var (
	// ErrDuplicateID is returned when adding a region whose id is taken
	ErrDuplicateID = errors.New("duplicate region id")
	// ErrNotFound is returned when a region id is not part of the page
	ErrNotFound = errors.New("region not found")
)

// Metadata is the document metadata passed through on serialization
type Metadata struct {
	Creator    string
	Created    string
	LastChange string
}

// Page is the layout tree of a single page
type Page struct {
	// ID is the pcGtsId of the document
	ID            string
	Metadata      Metadata
	ImageFilename string
	Width         int
	Height        int
	// Border is the page border outline, nil when the page has none
	Border       geometry.Polygon
	ReadingOrder *ReadingOrder

	regions map[string]*Region
	// top holds the ids of top level regions in document order
	top []string
}

// New returns an empty page for an image of the given size
func New(imageFilename string, width, height int) *Page {
	return &Page{
		ImageFilename: imageFilename,
		Width:         width,
		Height:        height,
		ReadingOrder:  NewReadingOrder(nil),
		regions:       make(map[string]*Region),
	}
}

// Frame returns the outline top level regions must fit in, being the
// Border or else the full image canvas
func (p *Page) Frame() geometry.Polygon {

	if len(p.Border) >= 3 {
		return p.Border
	}

	return geometry.PageFrame(p.Width, p.Height)
}

// Region returns the region with the given id
func (p *Page) Region(id string) (*Region, bool) {
	r, ok := p.regions[id]
	return r, ok
}

// Len returns the number of regions on the page at any depth
func (p *Page) Len() int {
	return len(p.regions)
}

// AddRegion inserts the region into the page, nested inside the region
// parentID or at top level when parentID is empty
func (p *Page) AddRegion(r *Region, parentID string) error {

	if _, ok := p.regions[r.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}

	if parentID == "" {
		p.top = append(p.top, r.ID)
	} else {
		parent, ok := p.regions[parentID]

		if !ok {
			return fmt.Errorf("%w: parent %s", ErrNotFound, parentID)
		}

		parent.children = append(parent.children, r.ID)
	}

	r.parent = parentID
	p.regions[r.ID] = r

	return nil
}

// RemoveRegion removes the region and everything nested in it from the page
// and returns it.  Reading order references are left to the caller.
func (p *Page) RemoveRegion(id string) (*Region, error) {

	r, ok := p.regions[id]

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if r.parent == "" {
		p.top = removeID(p.top, id)
	} else if parent, ok := p.regions[r.parent]; ok {
		parent.children = removeID(parent.children, id)
	}

	p.drop(r)
	r.parent = ""

	return r, nil
}

// drop deletes the region and its descendants from the arena
func (p *Page) drop(r *Region) {

	for _, c := range r.children {
		if child, ok := p.regions[c]; ok {
			p.drop(child)
		}
	}

	delete(p.regions, r.ID)
}

func removeID(ids []string, id string) []string {

	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}

	return ids
}

// Regions returns the top level regions in document order
func (p *Page) Regions() []*Region {
	return p.lookup(p.top)
}

// Children returns the regions nested directly in r in document order
func (p *Page) Children(r *Region) []*Region {
	return p.lookup(r.children)
}

func (p *Page) lookup(ids []string) []*Region {

	out := make([]*Region, 0, len(ids))

	for _, id := range ids {
		if r, ok := p.regions[id]; ok {
			out = append(out, r)
		}
	}

	return out
}

// walk visits regions depth first in document order down to depth levels,
// where a depth of 0 means unlimited
func (p *Page) walk(ids []string, level, depth int, fn func(*Region)) {

	if depth > 0 && level > depth {
		return
	}

	for _, r := range p.lookup(ids) {
		fn(r)
		p.walk(r.children, level+1, depth, fn)
	}
}

// AllRegions returns the regions of the given categories, all categories
// when none are given, down to depth nesting levels (0 for unlimited, 1 for
// top level only).  Regions referenced by the reading order come first in
// reading order, followed by the rest in document order.
func (p *Page) AllRegions(categories []Category, depth int) []*Region {

	wanted := func(c Category) bool {
		if len(categories) == 0 {
			return true
		}
		for _, w := range categories {
			if w == c {
				return true
			}
		}
		return false
	}

	var out []*Region

	p.walk(p.top, 1, depth, func(r *Region) {
		if wanted(r.Category) {
			out = append(out, r)
		}
	})

	if p.ReadingOrder == nil {
		return out
	}

	pos := p.ReadingOrder.Positions()

	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := pos[out[i].ID]
		pj, jok := pos[out[j].ID]

		switch {
		case iok && jok:
			return pi < pj
		case iok != jok:
			return iok
		}

		return false
	})

	return out
}

// Lines returns every text line of the page's text regions in the order of
// AllRegions
func (p *Page) Lines() []*Line {

	var out []*Line

	for _, r := range p.AllRegions([]Category{CategoryText}, 0) {
		out = append(out, r.Lines...)
	}

	return out
}
