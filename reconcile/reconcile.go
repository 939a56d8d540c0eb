package reconcile

import (
	"errors"
	"fmt"

	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
	"github.com/swdee/go-pageseg/postprocess"
	"github.com/swdee/go-pageseg/postprocess/result"
)

var (
	// ErrBackgroundClass is returned when a detector reports an instance of
	// the background class
	ErrBackgroundClass = errors.New("detected region for background class")
	// ErrUnknownClass is returned for instance class ids without a category
	ErrUnknownClass = errors.New("unknown instance class")
	// ErrConfig is returned for inconsistent parameters
	ErrConfig = pageseg.ErrConfig
)

// Frame holds the raster context of a page the instances were detected on
type Frame struct {
	// Transform maps page coordinates to image pixel coordinates
	Transform geometry.Transform
	// Components is the connected component map of the binarized page
	// image, shared read only by all instances of the page
	Components *postprocess.Components
}

// Summary counts the outcome of reconciling the instances of one page
type Summary struct {
	Instances  int
	Suppressed int
	Demoted    int
	// Skipped instances had no usable outline
	Skipped int
	// Rejected candidates had no annotated lines
	Rejected int
	// Merged is the number of existing regions merged into new ones
	Merged int
	// Regions are the ids of the committed regions
	Regions []string
}

func (s Summary) String() string {
	return fmt.Sprintf("%d instances, %d suppressed, %d demoted, %d skipped, %d rejected, %d regions added, %d merged",
		s.Instances, s.Suppressed, s.Demoted, s.Skipped, s.Rejected, len(s.Regions), s.Merged)
}

// Reconciler inserts detector instances into a page as new regions, merging
// the existing regions they cover
type Reconciler struct {
	// Params are the reconciliation parameters
	Params Params
	log    pageseg.Logger
}

// New returns a Reconciler logging to log, which may be nil
func New(params Params, log pageseg.Logger) (*Reconciler, error) {

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Reconciler{
		Params: params,
		log:    pageseg.OrNop(log),
	}, nil
}

// plan is the set of changes a candidate makes to the page, applied only
// once the candidate has been accepted
type plan struct {
	region    *page.Region
	merged    []*page.Region
	annotated bool
}

// Process reconciles the detector instances with the regions of the page.
// Instances are suppressed, demoted and traced into region outlines, then
// every existing region subsumed by a candidate hands its lines over and is
// removed.  A candidate is only added to the page when at least one of its
// lines carries a target annotation.  Changes are committed per instance, so
// on error the page holds the results of the preceding instances only.
func (r *Reconciler) Process(pg *page.Page, frame Frame, instances []postprocess.Instance) (Summary, error) {

	sum := Summary{Instances: len(instances)}

	for i, inst := range instances {
		if inst.Class == 0 {
			return sum, fmt.Errorf("%w: instance %d", ErrBackgroundClass, i)
		}

		if inst.Class < 0 || inst.Class >= len(r.Params.Categories) {
			return sum, fmt.Errorf("%w: instance %d has class %d", ErrUnknownClass, i, inst.Class)
		}
	}

	worse := postprocess.Suppress(instances, r.Params.SuppressThreshold)

	// best score of each unique class among surviving instances
	best := make(map[int]float32)

	for i, inst := range instances {
		if worse[i] || !r.Params.unique(inst.Class) {
			continue
		}

		if inst.Probability > best[inst.Class] {
			best[inst.Class] = inst.Probability
		}
	}

	if len(best) == 0 {
		r.log.Warnf("Detected no instance of a unique class on page %q", pg.ID)
	}

	// existing regions are fixed at the start of the pass
	existing := pg.AllRegions(r.Params.RegionCategories, r.Params.Depth)
	ids := result.NewIDGenerator(r.Params.RegionPrefix + "%02d")
	parent := pg.Frame()

	for i, inst := range instances {

		if worse[i] {
			r.log.Debugf("Ignoring instance %d for class %d overlapping better neighbour", i, inst.Class)
			sum.Suppressed++
			continue
		}

		id := ids.GetNext()
		class := inst.Class

		if r.Params.unique(class) && inst.Probability < best[class] {
			r.log.Debugf("Degrading instance %d for class %d with non-maximum score to class %d",
				i, class, r.Params.FallbackClass)
			class = r.Params.FallbackClass
			sum.Demoted++
		}

		name := r.Params.Categories[class]
		scale := postprocess.KernelScale(inst.Mask.Count())

		outline, err := r.outline(inst, frame, parent)

		if err != nil {
			if errors.Is(err, geometry.ErrEmptyClip) || errors.Is(err, geometry.ErrInvalidPolygon) ||
				errors.Is(err, postprocess.ErrEmptyMask) {
				r.log.Warnf("Ignoring extant region for class %s: %v", name, err)
				sum.Skipped++
				continue
			}

			return sum, fmt.Errorf("error tracing instance %d: %w", i, err)
		}

		region := page.NewRegion(id, page.CategoryText, name, outline)
		region.SetConf(float64(inst.Probability))

		r.log.Infof("Detected %s region %q on page %q", name, id, pg.ID)

		p := r.plan(pg, region, existing, frame.Transform, float64(scale))

		if !p.annotated {
			r.log.Infof("Ignoring %s region %q without any annotated lines", name, id)
			sum.Rejected++
			continue
		}

		if err := commit(pg, p); err != nil {
			return sum, fmt.Errorf("error adding region %s: %w", id, err)
		}

		sum.Merged += len(p.merged)
		sum.Regions = append(sum.Regions, id)
	}

	r.log.Infof("Page %q: %s", pg.ID, sum)

	return sum, nil
}

// outline traces the instance mask and returns the outline in page
// coordinates clipped to parent
func (r *Reconciler) outline(inst postprocess.Instance, frame Frame, parent geometry.Polygon) (geometry.Polygon, error) {

	poly, err := postprocess.MaskToPolygon(inst.Mask, frame.Components, r.log)

	if err != nil {
		return nil, err
	}

	return geometry.ClipToParent(frame.Transform.CoordsFor(poly), parent)
}

// plan collects the existing regions subsumed by the candidate region and
// moves copies of their lines into it, growing its outline over lines that
// stick out.  Outlines are compared and grown in image coordinates, the
// space scale is measured in.  Existing regions merged by an earlier
// candidate are no longer on the page and are passed over.  The page is not
// modified.
func (r *Reconciler) plan(pg *page.Page, region *page.Region, existing []*page.Region,
	transform geometry.Transform, scale float64) plan {

	p := plan{region: region}
	outline := transform.CoordsOf(region.Coords)
	grown := false

	for _, e := range existing {

		if _, ok := pg.Region(e.ID); !ok {
			continue
		}

		rel := classify(transform.CoordsOf(e.Coords), outline, scale, r.Params.OverlapThreshold)

		switch rel {
		case Subsumed:
		case Crossing, Overlapping:
			r.log.Debugf("Ignoring %s region %q for %q", rel, e.ID, region.ID)
			continue
		default:
			continue
		}

		r.log.Debugf("Removing redundant region %q in favour of %q", e.ID, region.ID)

		for _, l := range e.Lines {
			if r.Params.Annotated(l.Custom) {
				p.annotated = true
			}

			moved := l.Clone()
			moved.ID = fmt.Sprintf("%s_line%02d", region.ID, len(region.Lines))

			r.log.Debugf("Stealing text line %q as %q", l.ID, moved.ID)

			region.AddLine(moved)

			var ok bool

			if outline, ok = grow(outline, transform.CoordsOf(moved.Coords)); ok {
				grown = true
			}
		}

		region.AggregateText()
		p.merged = append(p.merged, e)
	}

	if grown {
		region.Coords = transform.CoordsFor(outline)
	}

	return p
}

// grow extends outline to cover line when the line is not already inside,
// falling back to the convex hull when the union is not connected.  It
// reports whether the outline changed.
func grow(outline, line geometry.Polygon) (geometry.Polygon, bool) {

	line = geometry.MakeValid(line)

	if !line.IsValid() || geometry.Within(line, outline, 0) {
		return outline, false
	}

	union := geometry.Union(outline, line)

	switch len(union) {
	case 0:
		return outline, false
	case 1:
		return union[0], true
	}

	return geometry.ConvexHull(union...), true
}

// commit applies the plan to the page.  All preconditions are checked
// before the first change.
func commit(pg *page.Page, p plan) error {

	if _, ok := pg.Region(p.region.ID); ok {
		return fmt.Errorf("%w: %s", page.ErrDuplicateID, p.region.ID)
	}

	for _, m := range p.merged {
		if _, ok := pg.Region(m.ID); !ok {
			return fmt.Errorf("%w: %s", page.ErrNotFound, m.ID)
		}
	}

	for _, m := range p.merged {
		var nested []string

		// a region nested in another merged region is already gone
		if _, ok := pg.Region(m.ID); ok {
			nested = descendants(pg, m)

			if _, err := pg.RemoveRegion(m.ID); err != nil {
				return err
			}
		}

		if pg.ReadingOrder == nil {
			continue
		}

		pg.ReadingOrder.Retarget(m.ID, p.region.ID)

		for _, id := range nested {
			pg.ReadingOrder.Remove(id)
		}
	}

	return pg.AddRegion(p.region, "")
}

// descendants returns the ids of all regions nested in r
func descendants(pg *page.Page, r *page.Region) []string {

	var out []string

	for _, c := range pg.Children(r) {
		out = append(out, c.ID)
		out = append(out, descendants(pg, c)...)
	}

	return out
}
