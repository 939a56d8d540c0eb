package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
	"gocv.io/x/gocv"
	"golang.org/x/sync/errgroup"
)

// ErrPagesFailed is returned when the run completed but some pages could not
// be processed
var ErrPagesFailed = errors.New("pages failed")

// runPages calls fn for each of the named pages with at most cfg.Workers in
// flight.  A page failing is logged and skipped so the remaining pages are
// still processed and saved, only a configuration error aborts the run.
func (a *app) runPages(ctx context.Context, paths []string, fn func(ctx context.Context, i int) error) error {

	var failed atomic.Int32

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)

	for i := range paths {
		i := i

		g.Go(func() error {
			err := fn(ctx, i)

			if err == nil {
				return nil
			}

			if errors.Is(err, pageseg.ErrConfig) {
				return err
			}

			a.log.WithError(err).WithField("file", paths[i]).Error("Skipping page")
			failed.Add(1)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, n, len(paths))
	}

	return nil
}

// pageFile is a loaded PAGE-XML document with its page image
type pageFile struct {
	path string
	page *page.Page
	// image is empty until loadImage is called
	image gocv.Mat
	// transform maps page coordinates onto the image
	transform geometry.Transform
	log       *logrus.Entry
}

func (a *app) loadPage(path string) (*pageFile, error) {

	pg, err := page.ReadFile(path)

	if err != nil {
		return nil, err
	}

	if pg.ID == "" {
		pg.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &pageFile{
		path:      path,
		page:      pg,
		transform: geometry.Identity(),
		log:       a.log.WithField("page", pg.ID),
	}, nil
}

// loadImage reads the page image, resolved relative to the PAGE file, and
// derives the page to image transform from the declared page size
func (f *pageFile) loadImage() error {

	name := f.page.ImageFilename

	if name == "" {
		return fmt.Errorf("page %s has no image", f.page.ID)
	}

	if !filepath.IsAbs(name) {
		name = filepath.Join(filepath.Dir(f.path), name)
	}

	img := gocv.IMRead(name, gocv.IMReadUnchanged)

	if img.Empty() {
		img.Close()
		return fmt.Errorf("error reading page image %s", name)
	}

	f.image = img

	if f.page.Width > 0 && f.page.Height > 0 &&
		(img.Cols() != f.page.Width || img.Rows() != f.page.Height) {
		f.transform = geometry.Identity().Scale(
			float64(img.Cols())/float64(f.page.Width),
			float64(img.Rows())/float64(f.page.Height))
		f.log.Debugf("Scaling page %dx%d onto image %dx%d",
			f.page.Width, f.page.Height, img.Cols(), img.Rows())
	}

	return nil
}

// Close frees the page image
func (f *pageFile) Close() error {
	return f.image.Close()
}

// save writes the page into dir under its original file name, or over the
// input file when dir is empty
func (f *pageFile) save(dir string) error {

	out := f.path

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}

		out = filepath.Join(dir, filepath.Base(f.path))
	}

	if err := f.page.WriteFile(out); err != nil {
		return err
	}

	f.log.Debugf("Wrote %s", out)

	return nil
}
