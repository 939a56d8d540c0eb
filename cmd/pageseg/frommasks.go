package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/swdee/go-pageseg/detect"
	"github.com/swdee/go-pageseg/reconcile"
	"gocv.io/x/gocv"
)

func (a *app) fromMasksCmd() *cobra.Command {

	var outDir string

	cmd := &cobra.Command{
		Use:   "from-masks <page.xml> <segmentation.png> [<page.xml> <segmentation.png>]...",
		Short: "Import regions from colour coded segmentation images",
		Long: "Traces the outline of every colour of the segmentation image " +
			"listed in detector.colors and adds it to the page as a new " +
			"region of the mapped class.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected pairs of page and segmentation image files, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {

			paths := make([]string, 0, len(args)/2)

			for i := 0; i < len(args); i += 2 {
				paths = append(paths, args[i])
			}

			return a.runPages(cmd.Context(), paths, func(ctx context.Context, i int) error {
				return a.fromMasks(args[2*i], args[2*i+1], outDir)
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, the input file is overwritten when empty")

	return cmd
}

// fromMasks imports the segments of a colour coded image into a PAGE file
func (a *app) fromMasks(path, maskPath, outDir string) error {

	f, err := a.loadPage(path)

	if err != nil {
		return err
	}

	cm, err := detect.NewColorMask(a.cfg.Detector.Colors, f.log)

	if err != nil {
		return err
	}

	img := gocv.IMRead(maskPath, gocv.IMReadUnchanged)
	defer img.Close()

	if img.Empty() {
		return fmt.Errorf("error reading segmentation image %s", maskPath)
	}

	segments, err := cm.Segments(img)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	// segmentation images share the page image size unless the page says
	// otherwise
	if f.page.Width > 0 && f.page.Height > 0 &&
		(img.Cols() != f.page.Width || img.Rows() != f.page.Height) {
		f.transform = f.transform.Scale(
			float64(img.Cols())/float64(f.page.Width),
			float64(img.Rows())/float64(f.page.Height))
	}

	for i := range segments {
		segments[i].Polygon = f.transform.CoordsFor(segments[i].Polygon).Round()
	}

	n, err := reconcile.ImportRegions(f.page, segments, f.log)

	if err != nil {
		return fmt.Errorf("page %s: %w", f.page.ID, err)
	}

	f.log.Infof("Imported %d regions", n)

	return f.save(outDir)
}
