package detect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/postprocess"
	"github.com/swdee/go-pageseg/preprocess"
	"gocv.io/x/gocv"
	"gopkg.in/yaml.v3"
)

// ErrNoManifest is returned when the instance directory has no manifest for
// a page
var ErrNoManifest = errors.New("no instance manifest for page")

// manifest lists the instances an external model produced for one page
type manifest struct {
	// InputWidth and InputHeight are the letterboxed model input size the
	// masks and boxes refer to, zero when they are aligned to the page
	InputWidth  int            `yaml:"input_width"`
	InputHeight int            `yaml:"input_height"`
	Instances   []manifestItem `yaml:"instances"`
}

type manifestItem struct {
	Class int     `yaml:"class"`
	Score float32 `yaml:"score"`
	// Box is left, top, right, bottom
	Box [4]int `yaml:"box"`
	// Mask is the path of the mask PNG, relative to the manifest
	Mask string `yaml:"mask"`
}

// InstanceDir is a Detector reading the instances of each page from a
// directory holding a <page id>.yaml manifest and mask images per page
type InstanceDir struct {
	// Dir is the directory holding the manifests
	Dir string
	// MinConfidence is the score below which instances are dropped
	MinConfidence float32
	log           pageseg.Logger
}

// NewInstanceDir returns an InstanceDir reading from dir
func NewInstanceDir(dir string, minConfidence float32, log pageseg.Logger) (*InstanceDir, error) {

	info, err := os.Stat(dir)

	if err != nil {
		return nil, fmt.Errorf("%w: instance directory: %v", pageseg.ErrConfig, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", pageseg.ErrConfig, dir)
	}

	return &InstanceDir{
		Dir:           dir,
		MinConfidence: minConfidence,
		log:           pageseg.OrNop(log),
	}, nil
}

// Detect loads the instances listed in the manifest of the input's page
func (d *InstanceDir) Detect(ctx context.Context, input *preprocess.Input) ([]postprocess.Instance, error) {

	path := filepath.Join(d.Dir, input.PageID+".yaml")
	data, err := os.ReadFile(path)

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, input.PageID)
		}
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	var m manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error decoding manifest %s: %w", path, err)
	}

	var resizer *preprocess.Resizer

	if m.InputWidth > 0 && m.InputHeight > 0 {
		resizer = preprocess.NewResizer(input.Width, input.Height, m.InputWidth, m.InputHeight)
		defer resizer.Close()
	}

	out := make([]postprocess.Instance, 0, len(m.Instances))

	for i, item := range m.Instances {

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if item.Score < d.MinConfidence {
			d.log.Debugf("Dropping instance %d of class %d with score %.3f", i, item.Class, item.Score)
			continue
		}

		inst, err := d.load(item, input, resizer)

		if err != nil {
			return nil, fmt.Errorf("instance %d of page %s: %w", i, input.PageID, err)
		}

		out = append(out, inst)
	}

	d.log.Debugf("Loaded %d of %d instances from %s", len(out), len(m.Instances), path)

	return out, nil
}

func (d *InstanceDir) load(item manifestItem, input *preprocess.Input, resizer *preprocess.Resizer) (postprocess.Instance, error) {

	path := item.Mask

	if !filepath.IsAbs(path) {
		path = filepath.Join(d.Dir, path)
	}

	img := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer img.Close()

	if img.Empty() {
		return postprocess.Instance{}, fmt.Errorf("error reading mask image %s", path)
	}

	mask, err := postprocess.MaskFromMat(img)

	if err != nil {
		return postprocess.Instance{}, err
	}

	box := postprocess.BoxRect{
		Left:   item.Box[0],
		Top:    item.Box[1],
		Right:  item.Box[2],
		Bottom: item.Box[3],
	}

	if resizer != nil {
		if mask, err = resizer.ReverseMask(mask); err != nil {
			return postprocess.Instance{}, err
		}

		box = resizer.ReverseBox(box)
	}

	if mask.Width != input.Width || mask.Height != input.Height {
		return postprocess.Instance{}, fmt.Errorf("mask size %dx%d does not match page %dx%d",
			mask.Width, mask.Height, input.Width, input.Height)
	}

	return postprocess.Instance{
		Class:       item.Class,
		Box:         box,
		Probability: item.Score,
		Mask:        mask,
	}, nil
}

// Close releases the detector, it holds no resources
func (d *InstanceDir) Close() error {
	return nil
}
