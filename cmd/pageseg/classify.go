package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/detect"
	"github.com/swdee/go-pageseg/postprocess"
	"github.com/swdee/go-pageseg/preprocess"
	"github.com/swdee/go-pageseg/reconcile"
	"github.com/swdee/go-pageseg/render"
	"gocv.io/x/gocv"
)

// maskAlpha is the opacity of instance masks in rendered pages
const maskAlpha = 0.4

func (a *app) classifyCmd() *cobra.Command {

	var outDir, renderDir string

	cmd := &cobra.Command{
		Use:   "classify <page.xml>...",
		Short: "Add detected address regions to PAGE-XML files",
		Long: "Runs the layout detector over each page and reconciles the " +
			"detected instances with the existing text regions, merging " +
			"regions and lines that belong to a new address region.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			pool, err := pageseg.NewPool(a.cfg.Workers, func(i int) (detect.Detector, error) {
				det, err := detect.NewInstanceDir(a.cfg.Detector.Instances,
					a.cfg.Detector.MinConfidence, a.log.WithField("detector", i))

				if err != nil {
					return nil, err
				}

				return det, nil
			})

			if err != nil {
				return fmt.Errorf("error creating detector pool: %w", err)
			}

			defer pool.Close()

			return a.runPages(cmd.Context(), args, func(ctx context.Context, i int) error {
				det := pool.Get()
				defer pool.Return(det)

				return a.classify(ctx, det, args[i], outDir, renderDir)
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, the input files are overwritten when empty")
	cmd.Flags().StringVar(&renderDir, "render", "", "directory to write rendered layout images to")

	return cmd
}

// classify processes a single PAGE file
func (a *app) classify(ctx context.Context, det detect.Detector, path, outDir, renderDir string) error {

	f, err := a.loadPage(path)

	if err != nil {
		return err
	}

	if err := f.loadImage(); err != nil {
		return err
	}

	defer f.Close()

	params := a.cfg.Reconcile
	marks := make([]preprocess.LineMark, 0)

	for _, l := range f.page.Lines() {
		marks = append(marks, preprocess.LineMark{
			Polygon:   f.transform.CoordsOf(l.Coords),
			Annotated: params.Annotated(l.Custom),
		})
	}

	input, err := preprocess.NewInput(f.page.ID, f.image, marks)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	comps, err := preprocess.PageComponents(f.image)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	instances, err := det.Detect(ctx, input)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	rec, err := reconcile.New(params, f.log)

	if err != nil {
		return err
	}

	frame := reconcile.Frame{Transform: f.transform, Components: comps}

	if _, err := rec.Process(f.page, frame, instances); err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	if renderDir != "" {
		if err := a.render(f, instances, renderDir); err != nil {
			return err
		}
	}

	return f.save(outDir)
}

// render draws the detected instances and the resulting layout over the page
// image
func (a *app) render(f *pageFile, instances []postprocess.Instance, dir string) error {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating render directory: %w", err)
	}

	img := gocv.NewMat()
	defer img.Close()

	switch f.image.Channels() {
	case 1:
		gocv.CvtColor(f.image, &img, gocv.ColorGrayToBGR)
	case 4:
		gocv.CvtColor(f.image, &img, gocv.ColorBGRAToBGR)
	default:
		f.image.CopyTo(&img)
	}

	font := render.PageFont(img.Cols(), img.Rows())

	if err := render.InstanceMasks(&img, instances, maskAlpha); err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	render.Layout(&img, f.page, f.transform, font, font.Outline)

	return render.ToFile(filepath.Join(dir, f.page.ID+".png"), img)
}
