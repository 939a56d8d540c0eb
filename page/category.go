package page

import (
	"fmt"
)

// Category is the kind of a layout region.  The set is closed, each value
// maps to one PAGE-XML region element.
type Category int

const (
	CategoryText Category = iota
	CategoryImage
	CategoryLineDrawing
	CategoryGraphic
	CategoryTable
	CategoryChart
	CategoryMap
	CategorySeparator
	CategoryMaths
	CategoryChem
	CategoryMusic
	CategoryAdvert
	CategoryNoise
	CategoryUnknown
	CategoryCustom
)

// Categories lists every region category in PAGE-XML schema order
var Categories = []Category{
	CategoryText, CategoryImage, CategoryLineDrawing, CategoryGraphic,
	CategoryTable, CategoryChart, CategoryMap, CategorySeparator,
	CategoryMaths, CategoryChem, CategoryMusic, CategoryAdvert,
	CategoryNoise, CategoryUnknown, CategoryCustom,
}

// String returns the category name as used in class dictionaries, such as
// "Text" or "Table"
func (c Category) String() string {

	switch c {
	case CategoryText:
		return "Text"
	case CategoryImage:
		return "Image"
	case CategoryLineDrawing:
		return "LineDrawing"
	case CategoryGraphic:
		return "Graphic"
	case CategoryTable:
		return "Table"
	case CategoryChart:
		return "Chart"
	case CategoryMap:
		return "Map"
	case CategorySeparator:
		return "Separator"
	case CategoryMaths:
		return "Maths"
	case CategoryChem:
		return "Chem"
	case CategoryMusic:
		return "Music"
	case CategoryAdvert:
		return "Advert"
	case CategoryNoise:
		return "Noise"
	case CategoryUnknown:
		return "Unknown"
	case CategoryCustom:
		return "Custom"
	}

	return fmt.Sprintf("Category(%d)", int(c))
}

// Element returns the PAGE-XML element name of the category
func (c Category) Element() string {
	return c.String() + "Region"
}

// ParseCategory returns the category for a name as produced by String.  The
// PAGE-XML element name, such as "TextRegion", is accepted as well.
func ParseCategory(name string) (Category, error) {

	for _, c := range Categories {
		if name == c.String() || name == c.Element() {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown region category %q", name)
}

// SimpleTypes returns the predefined values of the type attribute for the
// category, or nil when the category has no type attribute
func (c Category) SimpleTypes() []string {

	switch c {
	case CategoryText:
		return []string{"paragraph", "heading", "caption", "header", "footer",
			"page-number", "drop-capital", "credit", "floating",
			"signature-mark", "catch-word", "marginalia", "footnote",
			"footnote-continued", "endnote", "TOC-entry", "list-label", "other"}
	case CategoryGraphic:
		return []string{"logo", "letterhead", "decoration", "frame",
			"handwritten-annotation", "stamp", "signature", "barcode",
			"paper-grow", "punch-hole", "other"}
	case CategoryChart:
		return []string{"bar", "line", "pie", "scatter", "surface", "other"}
	}

	return nil
}

// HasType reports whether regions of this category carry a type attribute
func (c Category) HasType() bool {
	return c.SimpleTypes() != nil
}

// TypeFor splits a class subtype into the type attribute and custom string
// for a region of this category.  Predefined types are used as is, anything
// else becomes type "other" with custom "subtype:<name>", or custom only for
// categories without a type attribute.
func (c Category) TypeFor(subtype string) (typ, custom string) {

	if subtype == "" {
		return "", ""
	}

	for _, t := range c.SimpleTypes() {
		if t == subtype {
			return t, ""
		}
	}

	if c.HasType() {
		return "other", "subtype:" + subtype
	}

	return "", "subtype:" + subtype
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name as accepted by ParseCategory
func (c *Category) UnmarshalText(text []byte) error {

	cat, err := ParseCategory(string(text))

	if err != nil {
		return err
	}

	*c = cat
	return nil
}
