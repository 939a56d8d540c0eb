package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/swdee/go-pageseg/preprocess"
	"github.com/swdee/go-pageseg/render"
	"gocv.io/x/gocv"
)

// letterboxColor pads letterboxed detector inputs
var letterboxColor = color.RGBA{R: 0, G: 0, B: 0, A: 0}

func (a *app) inputCmd() *cobra.Command {

	var outDir string

	cmd := &cobra.Command{
		Use:   "input <page.xml>...",
		Short: "Export the detector input rasters of pages",
		Long: "Writes the page image with the text line channel as alpha to " +
			"<id>.png, and the annotated line mask to <id>.annotation.png, " +
			"letterboxed to detector.input_width x detector.input_height " +
			"when set.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("error creating output directory: %w", err)
			}

			return a.runPages(cmd.Context(), args, func(ctx context.Context, i int) error {
				return a.input(args[i], outDir)
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")

	return cmd
}

// input exports the detector input of a single PAGE file
func (a *app) input(path, outDir string) error {

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

	in, err := preprocess.NewInput(f.page.ID, f.image, marks)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	img, annot, err := in.Mats()

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	defer img.Close()
	defer annot.Close()

	out, outAnnot := img, annot
	w, h := a.cfg.Detector.InputWidth, a.cfg.Detector.InputHeight

	if w > 0 && h > 0 {
		resizer := preprocess.NewResizer(in.Width, in.Height, w, h)
		defer resizer.Close()

		boxed := gocv.NewMatWithSize(h, w, img.Type())
		defer boxed.Close()
		resizer.LetterBoxResize(img, &boxed, letterboxColor)

		boxedAnnot := gocv.NewMatWithSize(h, w, annot.Type())
		defer boxedAnnot.Close()
		resizer.LetterBoxResize(annot, &boxedAnnot, letterboxColor)

		f.log.Debugf("Letterboxed input %dx%d to %dx%d, scale %.3f",
			in.Width, in.Height, w, h, resizer.ScaleFactor())

		out, outAnnot = boxed, boxedAnnot
	}

	if err := render.ToFile(filepath.Join(outDir, f.page.ID+".png"), out); err != nil {
		return err
	}

	return render.ToFile(filepath.Join(outDir, f.page.ID+".annotation.png"), outAnnot)
}
