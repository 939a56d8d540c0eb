package reconcile

import (
	"fmt"
	"strings"

	"github.com/swdee/go-pageseg/page"
)

// Params defines the struct containing the parameters used when reconciling
// detector instances with the regions of a page
type Params struct {
	// Categories are the subtype names of the detector classes indexed by
	// class id, entry 0 being the background class
	Categories []string `yaml:"categories"`
	// UniqueClasses are the class ids of which only the best scoring
	// instance per page keeps its class
	UniqueClasses []int `yaml:"unique_classes"`
	// FallbackClass is the class id lower scoring instances of a unique
	// class are demoted to
	FallbackClass int `yaml:"fallback_class"`
	// SuppressThreshold is the mask Intersection Over Union (IoU) above which
	// the lower confidence of two instances is suppressed
	SuppressThreshold float64 `yaml:"suppress_threshold"`
	// OverlapThreshold is the fraction of an existing region's area that
	// must be covered by a candidate for the region to be merged into it
	OverlapThreshold float64 `yaml:"overlap_threshold"`
	// AnnotationPrefix is the prefix of the custom attribute of text lines
	// annotated with the target class
	AnnotationPrefix string `yaml:"annotation_prefix"`
	// AnnotationNone is the annotation value of lines explicitly marked as
	// not belonging to any target class
	AnnotationNone string `yaml:"annotation_none"`
	// RegionPrefix is the prefix of the ids of new regions, followed by a
	// two digit sequence number
	RegionPrefix string `yaml:"region_prefix"`
	// RegionCategories are the categories of existing regions candidates are
	// reconciled with
	RegionCategories []page.Category `yaml:"region_categories"`
	// Depth is the nesting depth existing regions are searched to, 0 for
	// unlimited
	Depth int `yaml:"depth"`
}

// AddressDefaultParams returns an instance of Params configured with default
// values for the address layout model featuring:
// - Classes: background, address-rcpt, address-sndr, address-contact
// - Unique Classes: address-rcpt, address-sndr
// - Fallback Class: address-contact
// - Suppress Threshold: 0.5
// - Overlap Threshold: 0.8
func AddressDefaultParams() Params {
	return Params{
		Categories:        []string{"", "address-rcpt", "address-sndr", "address-contact"},
		UniqueClasses:     []int{1, 2},
		FallbackClass:     3,
		SuppressThreshold: 0.5,
		OverlapThreshold:  0.8,
		AnnotationPrefix:  "subtype: ADDRESS_",
		AnnotationNone:    "ADDRESS_NONE",
		RegionPrefix:      "addressregion",
		RegionCategories:  []page.Category{page.CategoryText},
		Depth:             2,
	}
}

// Validate checks the class ids and thresholds are consistent
func (p Params) Validate() error {

	if len(p.Categories) < 2 {
		return fmt.Errorf("%w: at least one class besides background is required", ErrConfig)
	}

	for _, c := range append([]int{p.FallbackClass}, p.UniqueClasses...) {
		if c <= 0 || c >= len(p.Categories) {
			return fmt.Errorf("%w: class %d out of range 1..%d", ErrConfig, c, len(p.Categories)-1)
		}
	}

	if p.SuppressThreshold <= 0 || p.SuppressThreshold > 1 {
		return fmt.Errorf("%w: suppress threshold %v not in (0,1]", ErrConfig, p.SuppressThreshold)
	}

	if p.OverlapThreshold <= 0 || p.OverlapThreshold > 1 {
		return fmt.Errorf("%w: overlap threshold %v not in (0,1]", ErrConfig, p.OverlapThreshold)
	}

	if p.RegionPrefix == "" {
		return fmt.Errorf("%w: region prefix is empty", ErrConfig)
	}

	return nil
}

// Annotated reports whether a text line custom attribute carries one of the
// target annotations.  Lines marked with AnnotationNone are not annotated.
func (p Params) Annotated(custom string) bool {

	if !strings.HasPrefix(custom, p.AnnotationPrefix) {
		return false
	}

	return p.AnnotationNone == "" || !strings.Contains(custom, p.AnnotationNone)
}

func (p Params) unique(class int) bool {

	for _, c := range p.UniqueClasses {
		if c == class {
			return true
		}
	}

	return false
}
