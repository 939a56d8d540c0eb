package page

import (
	"strings"

	"github.com/swdee/go-pageseg/geometry"
)

// Word is a word of a text line
type Word struct {
	ID     string
	Coords geometry.Polygon
	Text   string
}

// Line is a text line, owned by exactly one text region
type Line struct {
	ID string
	// Custom holds the free text annotation, such as "subtype: ADDRESS_RCPT"
	Custom string
	Coords geometry.Polygon
	// Baseline is passed through unchanged
	Baseline geometry.Polygon
	Conf     *float64
	Text     string
	Words    []*Word
}

// Region is a node of the layout tree.  Nested regions are referenced by id,
// the Page owns all regions.
type Region struct {
	ID       string
	Category Category
	// Type is the predefined type attribute of the category, if any
	Type string
	// Custom holds free text refinements such as "subtype:address-rcpt"
	Custom string
	Coords geometry.Polygon
	Conf   *float64
	Lines  []*Line
	// Text is the aggregated text content of the region
	Text string

	parent   string
	children []string
}

// NewRegion returns a region of the given category refined by subtype, as
// resolved by Category.TypeFor
func NewRegion(id string, cat Category, subtype string, coords geometry.Polygon) *Region {

	typ, custom := cat.TypeFor(subtype)

	return &Region{
		ID:       id,
		Category: cat,
		Type:     typ,
		Custom:   custom,
		Coords:   coords,
	}
}

// Parent returns the id of the enclosing region, or "" for top level regions
func (r *Region) Parent() string {
	return r.parent
}

// ChildIDs returns the ids of the nested regions in document order
func (r *Region) ChildIDs() []string {
	return append([]string(nil), r.children...)
}

// SetConf sets the confidence of the region outline
func (r *Region) SetConf(conf float64) {
	r.Conf = &conf
}

// Line returns the line with the given id
func (r *Region) Line(id string) (*Line, bool) {

	for _, l := range r.Lines {
		if l.ID == id {
			return l, true
		}
	}

	return nil, false
}

// AddLine appends a line to the region
func (r *Region) AddLine(l *Line) {
	r.Lines = append(r.Lines, l)
}

// RemoveLine detaches the line with the given id and returns it
func (r *Region) RemoveLine(id string) (*Line, bool) {

	for i, l := range r.Lines {
		if l.ID == id {
			r.Lines = append(r.Lines[:i], r.Lines[i+1:]...)
			return l, true
		}
	}

	return nil, false
}

// AggregateText sets the region text to the newline joined text of its
// lines, skipping lines without text
func (r *Region) AggregateText() {

	var parts []string

	for _, l := range r.Lines {
		if l.Text != "" {
			parts = append(parts, l.Text)
		}
	}

	r.Text = strings.Join(parts, "\n")
}

// Clone returns a deep copy of the region without its tree links
func (r *Region) Clone() *Region {

	out := *r
	out.Coords = r.Coords.Clone()
	out.parent = ""
	out.children = nil
	out.Lines = make([]*Line, len(r.Lines))

	for i, l := range r.Lines {
		out.Lines[i] = l.Clone()
	}

	if r.Conf != nil {
		c := *r.Conf
		out.Conf = &c
	}

	return &out
}

// Clone returns a deep copy of the line
func (l *Line) Clone() *Line {

	out := *l
	out.Coords = l.Coords.Clone()
	out.Baseline = l.Baseline.Clone()
	out.Words = make([]*Word, len(l.Words))

	for i, w := range l.Words {
		wc := *w
		wc.Coords = w.Coords.Clone()
		out.Words[i] = &wc
	}

	if l.Conf != nil {
		c := *l.Conf
		out.Conf = &c
	}

	return &out
}
