package project

import (
	"errors"
	"fmt"

	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
)

// Level is the hierarchy level whose segments are shrunk onto their
// constituents
type Level string

const (
	// LevelPage sets the page border from the top level regions
	LevelPage Level = "page"
	// LevelTable shrinks table regions onto their nested text regions
	LevelTable Level = "table"
	// LevelRegion shrinks text regions onto their lines
	LevelRegion Level = "region"
	// LevelLine shrinks text lines onto their words
	LevelLine Level = "line"
)

// Params defines the struct containing the hull projection parameters
type Params struct {
	// Level is the hierarchy level to operate on
	Level Level `yaml:"level"`
	// Padding is the distance in pixels the joined hull is grown by
	Padding float64 `yaml:"padding"`
	// Scale sets the width of the bridges joining constituents, being
	// max(1, Scale/5) pixels
	Scale float64 `yaml:"scale"`
}

// DefaultParams returns an instance of Params operating on the page level
// with no padding and a bridge scale of 20
func DefaultParams() Params {
	return Params{
		Level:   LevelPage,
		Padding: 0,
		Scale:   20,
	}
}

// Projector replaces segment outlines with the joined hull of their
// constituent segments
type Projector struct {
	// Params are the projection parameters
	Params Params
	log    pageseg.Logger
}

// New returns a Projector logging to log, which may be nil
func New(params Params, log pageseg.Logger) (*Projector, error) {

	switch params.Level {
	case LevelPage, LevelTable, LevelRegion, LevelLine:
	default:
		return nil, fmt.Errorf("%w: unknown level of operation %q", pageseg.ErrConfig, params.Level)
	}

	return &Projector{
		Params: params,
		log:    pageseg.OrNop(log),
	}, nil
}

// Process shrinks every segment of the configured level on the page and
// returns how many were updated.  Segments without constituents are left
// alone, as are segments whose hull turns out unusable.
func (p *Projector) Process(pg *page.Page) (int, error) {

	updated := 0

	update := func(id string, constituents []geometry.Polygon, outline geometry.Polygon, set func(geometry.Polygon)) error {

		if len(constituents) == 0 {
			return nil
		}

		hull, err := p.Hull(constituents, outline)

		if err != nil {
			if errors.Is(err, geometry.ErrInvalidPolygon) || errors.Is(err, geometry.ErrEmptyClip) ||
				errors.Is(err, geometry.ErrDisconnected) {
				p.log.Infof("Ignoring extant segment %q: %v", id, err)
				return nil
			}
			return fmt.Errorf("error projecting segment %s: %w", id, err)
		}

		p.log.Debugf("Using new coordinates from %d constituents for segment %q", len(constituents), id)
		set(hull)
		updated++

		return nil
	}

	var err error

	switch p.Params.Level {
	case LevelPage:
		var polys []geometry.Polygon

		for _, r := range pg.Regions() {
			polys = append(polys, r.Coords)
		}

		// the border may only shrink the page canvas
		err = update(pg.ID, polys, geometry.PageFrame(pg.Width, pg.Height), func(hull geometry.Polygon) {
			pg.Border = hull
		})

	case LevelTable:
		for _, table := range pg.AllRegions([]page.Category{page.CategoryTable}, 0) {
			var polys []geometry.Polygon

			for _, c := range pg.Children(table) {
				if c.Category == page.CategoryText {
					polys = append(polys, c.Coords)
				}
			}

			table := table
			if err = update(table.ID, polys, table.Coords, func(hull geometry.Polygon) {
				table.Coords = hull
			}); err != nil {
				break
			}
		}

	case LevelRegion:
		for _, region := range pg.AllRegions([]page.Category{page.CategoryText}, 0) {
			var polys []geometry.Polygon

			for _, l := range region.Lines {
				polys = append(polys, l.Coords)
			}

			region := region
			if err = update(region.ID, polys, region.Coords, func(hull geometry.Polygon) {
				region.Coords = hull
			}); err != nil {
				break
			}
		}

	case LevelLine:
		for _, line := range pg.Lines() {
			var polys []geometry.Polygon

			for _, w := range line.Words {
				polys = append(polys, w.Coords)
			}

			line := line
			if err = update(line.ID, polys, line.Coords, func(hull geometry.Polygon) {
				line.Coords = hull
			}); err != nil {
				break
			}
		}
	}

	return updated, err
}

// Hull joins the constituent outlines into one polygon, grows it by the
// padding and clips it to outline
func (p *Projector) Hull(constituents []geometry.Polygon, outline geometry.Polygon) (geometry.Polygon, error) {

	valid := make([]geometry.Polygon, 0, len(constituents))

	for _, c := range constituents {
		valid = append(valid, geometry.MakeValid(c))
	}

	joined, err := geometry.Join(valid, p.Params.Scale)

	if err != nil {
		return nil, err
	}

	if p.Params.Padding != 0 {
		grown := geometry.Buffer(joined, p.Params.Padding)

		if len(grown) != 1 {
			return nil, geometry.ErrDisconnected
		}

		joined = grown[0]
	}

	return geometry.ClipToParent(joined, outline)
}
