package page

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/swdee/go-pageseg/geometry"
)

// Namespace is the PAGE-XML schema version written by Write
const Namespace = "http://schema.primaresearch.org/PAGE/gts/pagecontent/2019-07-15"

type xmlPcGts struct {
	XMLName  xml.Name    `xml:"PcGts"`
	Xmlns    string      `xml:"xmlns,attr"`
	ID       string      `xml:"pcGtsId,attr,omitempty"`
	Metadata xmlMetadata `xml:"Metadata"`
	Page     xmlPage     `xml:"Page"`
}

type xmlMetadata struct {
	Creator    string `xml:"Creator"`
	Created    string `xml:"Created"`
	LastChange string `xml:"LastChange"`
}

type xmlPage struct {
	ImageFilename string           `xml:"imageFilename,attr"`
	ImageWidth    int              `xml:"imageWidth,attr"`
	ImageHeight   int              `xml:"imageHeight,attr"`
	Border        *xmlBorder       `xml:"Border"`
	ReadingOrder  *xmlReadingOrder `xml:"ReadingOrder"`
	Regions       []xmlRegion      `xml:",any"`
}

type xmlBorder struct {
	Coords xmlCoords `xml:"Coords"`
}

type xmlCoords struct {
	Points string   `xml:"points,attr"`
	Conf   *float64 `xml:"conf,attr,omitempty"`
}

type xmlPoints struct {
	Points string `xml:"points,attr"`
}

type xmlTextEquiv struct {
	Unicode string `xml:"Unicode"`
}

type xmlRegion struct {
	XMLName   xml.Name
	ID        string        `xml:"id,attr"`
	Type      string        `xml:"type,attr,omitempty"`
	Custom    string        `xml:"custom,attr,omitempty"`
	Coords    xmlCoords     `xml:"Coords"`
	Regions   []xmlRegion   `xml:",any"`
	Lines     []xmlLine     `xml:"TextLine"`
	TextEquiv *xmlTextEquiv `xml:"TextEquiv"`
}

type xmlLine struct {
	ID        string        `xml:"id,attr"`
	Custom    string        `xml:"custom,attr,omitempty"`
	Coords    xmlCoords     `xml:"Coords"`
	Baseline  *xmlPoints    `xml:"Baseline"`
	Words     []xmlWord     `xml:"Word"`
	TextEquiv *xmlTextEquiv `xml:"TextEquiv"`
}

type xmlWord struct {
	ID        string        `xml:"id,attr"`
	Coords    xmlCoords     `xml:"Coords"`
	TextEquiv *xmlTextEquiv `xml:"TextEquiv"`
}

type xmlReadingOrder struct {
	Groups []xmlGroup `xml:",any"`
}

type xmlGroup struct {
	XMLName   xml.Name
	ID        string     `xml:"id,attr,omitempty"`
	Index     *int       `xml:"index,attr,omitempty"`
	RegionRef string     `xml:"regionRef,attr,omitempty"`
	Caption   string     `xml:"caption,attr,omitempty"`
	Children  []xmlGroup `xml:",any"`
}

// ReadFile parses the PAGE-XML file at path
func ReadFile(path string) (*Page, error) {

	f, err := os.Open(path)

	if err != nil {
		return nil, fmt.Errorf("error opening PAGE file: %w", err)
	}

	defer f.Close()

	return Read(f)
}

// Read parses a PAGE-XML document.  Elements outside the modelled subset are
// dropped.
func Read(r io.Reader) (*Page, error) {

	var doc xmlPcGts

	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding PAGE-XML: %w", err)
	}

	p := New(doc.Page.ImageFilename, doc.Page.ImageWidth, doc.Page.ImageHeight)
	p.ID = doc.ID
	p.Metadata = Metadata(doc.Metadata)

	if doc.Page.Border != nil {
		border, err := geometry.ParsePoints(doc.Page.Border.Coords.Points)

		if err != nil {
			return nil, fmt.Errorf("error parsing Border: %w", err)
		}

		p.Border = border
	}

	if err := p.readRegions(doc.Page.Regions, ""); err != nil {
		return nil, err
	}

	if doc.Page.ReadingOrder != nil {
		for _, g := range doc.Page.ReadingOrder.Groups {
			if root := readGroup(g); root != nil {
				p.ReadingOrder = NewReadingOrder(root)
				break
			}
		}
	}

	return p, nil
}

func (p *Page) readRegions(elems []xmlRegion, parentID string) error {

	for _, x := range elems {
		cat, err := ParseCategory(x.XMLName.Local)

		if err != nil {
			// AlternativeImage, PrintSpace and other unmodelled elements
			continue
		}

		coords, err := geometry.ParsePoints(x.Coords.Points)

		if err != nil {
			return fmt.Errorf("error parsing Coords of region %s: %w", x.ID, err)
		}

		r := &Region{
			ID:       x.ID,
			Category: cat,
			Type:     x.Type,
			Custom:   x.Custom,
			Coords:   coords,
			Conf:     x.Coords.Conf,
		}

		if x.TextEquiv != nil {
			r.Text = x.TextEquiv.Unicode
		}

		for _, xl := range x.Lines {
			l, err := readLine(xl)

			if err != nil {
				return fmt.Errorf("error in region %s: %w", x.ID, err)
			}

			r.Lines = append(r.Lines, l)
		}

		if err := p.AddRegion(r, parentID); err != nil {
			return err
		}

		if err := p.readRegions(x.Regions, r.ID); err != nil {
			return err
		}
	}

	return nil
}

func readLine(x xmlLine) (*Line, error) {

	coords, err := geometry.ParsePoints(x.Coords.Points)

	if err != nil {
		return nil, fmt.Errorf("error parsing Coords of line %s: %w", x.ID, err)
	}

	l := &Line{
		ID:     x.ID,
		Custom: x.Custom,
		Coords: coords,
		Conf:   x.Coords.Conf,
	}

	if x.Baseline != nil {
		if l.Baseline, err = geometry.ParsePoints(x.Baseline.Points); err != nil {
			return nil, fmt.Errorf("error parsing Baseline of line %s: %w", x.ID, err)
		}
	}

	if x.TextEquiv != nil {
		l.Text = x.TextEquiv.Unicode
	}

	for _, xw := range x.Words {
		wc, err := geometry.ParsePoints(xw.Coords.Points)

		if err != nil {
			return nil, fmt.Errorf("error parsing Coords of word %s: %w", xw.ID, err)
		}

		w := &Word{ID: xw.ID, Coords: wc}

		if xw.TextEquiv != nil {
			w.Text = xw.TextEquiv.Unicode
		}

		l.Words = append(l.Words, w)
	}

	return l, nil
}

func readGroup(x xmlGroup) *RegionRef {

	e := &RegionRef{
		ID:      x.ID,
		Region:  x.RegionRef,
		Caption: x.Caption,
	}

	if x.Index != nil {
		e.Index = *x.Index
	}

	switch strings.TrimSuffix(x.XMLName.Local, "Indexed") {
	case "RegionRef":
		e.Kind = RefRegion
	case "OrderedGroup":
		e.Kind = RefOrdered
	case "UnorderedGroup":
		e.Kind = RefUnordered
	default:
		return nil
	}

	for _, c := range x.Children {
		if child := readGroup(c); child != nil {
			e.Children = append(e.Children, child)
		}
	}

	return e
}

// WriteFile serializes the page as PAGE-XML to path
func (p *Page) WriteFile(path string) error {

	f, err := os.Create(path)

	if err != nil {
		return fmt.Errorf("error creating PAGE file: %w", err)
	}

	if err := p.Write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Write serializes the page as PAGE-XML
func (p *Page) Write(w io.Writer) error {

	doc := xmlPcGts{
		Xmlns:    Namespace,
		ID:       p.ID,
		Metadata: xmlMetadata(p.Metadata),
		Page: xmlPage{
			ImageFilename: p.ImageFilename,
			ImageWidth:    p.Width,
			ImageHeight:   p.Height,
			Regions:       p.writeRegions(p.Regions()),
		},
	}

	if len(p.Border) > 0 {
		doc.Page.Border = &xmlBorder{Coords: xmlCoords{Points: p.Border.String()}}
	}

	if p.ReadingOrder != nil && p.ReadingOrder.Root != nil {
		doc.Page.ReadingOrder = &xmlReadingOrder{
			Groups: []xmlGroup{writeGroup(p.ReadingOrder.Root, false)},
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding PAGE-XML: %w", err)
	}

	return enc.Flush()
}

func (p *Page) writeRegions(regions []*Region) []xmlRegion {

	out := make([]xmlRegion, 0, len(regions))

	for _, r := range regions {
		x := xmlRegion{
			XMLName: xml.Name{Local: r.Category.Element()},
			ID:      r.ID,
			Type:    r.Type,
			Custom:  r.Custom,
			Coords:  xmlCoords{Points: r.Coords.String(), Conf: r.Conf},
			Regions: p.writeRegions(p.Children(r)),
		}

		for _, l := range r.Lines {
			x.Lines = append(x.Lines, writeLine(l))
		}

		if r.Text != "" {
			x.TextEquiv = &xmlTextEquiv{Unicode: r.Text}
		}

		out = append(out, x)
	}

	return out
}

func writeLine(l *Line) xmlLine {

	x := xmlLine{
		ID:     l.ID,
		Custom: l.Custom,
		Coords: xmlCoords{Points: l.Coords.String(), Conf: l.Conf},
	}

	if len(l.Baseline) > 0 {
		x.Baseline = &xmlPoints{Points: l.Baseline.String()}
	}

	for _, w := range l.Words {
		xw := xmlWord{ID: w.ID, Coords: xmlCoords{Points: w.Coords.String()}}

		if w.Text != "" {
			xw.TextEquiv = &xmlTextEquiv{Unicode: w.Text}
		}

		x.Words = append(x.Words, xw)
	}

	if l.Text != "" {
		x.TextEquiv = &xmlTextEquiv{Unicode: l.Text}
	}

	return x
}

// writeGroup converts a reading order element, using the indexed element
// names for children of ordered groups
func writeGroup(e *RegionRef, indexed bool) xmlGroup {

	var name string

	switch e.Kind {
	case RefOrdered:
		name = "OrderedGroup"
	case RefUnordered:
		name = "UnorderedGroup"
	default:
		name = "RegionRef"
	}

	x := xmlGroup{
		ID:        e.ID,
		RegionRef: e.Region,
		Caption:   e.Caption,
	}

	if indexed {
		name += "Indexed"
		index := e.Index
		x.Index = &index
	}

	x.XMLName = xml.Name{Local: name}

	for _, c := range e.Children {
		x.Children = append(x.Children, writeGroup(c, e.Kind == RefOrdered))
	}

	return x
}
