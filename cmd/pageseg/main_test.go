package main

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/geometry"
	"github.com/swdee/go-pageseg/page"
	"gocv.io/x/gocv"
)

func TestSetupOverrides(t *testing.T) {

	a := &app{logLevel: "debug", workers: 3}
	require.NoError(t, a.setup())

	require.Equal(t, logrus.DebugLevel, a.log.GetLevel())
	require.Equal(t, 3, a.cfg.Workers)

	a = &app{logLevel: "loud"}
	require.Error(t, a.setup())
}

func TestFromMasksArgs(t *testing.T) {

	cmd := (&app{}).fromMasksCmd()

	require.NoError(t, cmd.Args(cmd, []string{"a.xml", "a.png"}))
	require.Error(t, cmd.Args(cmd, []string{"a.xml"}))
	require.Error(t, cmd.Args(cmd, nil))
}

func TestLoadAndSavePage(t *testing.T) {

	dir := t.TempDir()
	in := filepath.Join(dir, "scan_0001.xml")

	pg := page.New("scan_0001.png", 100, 80)
	require.NoError(t, pg.AddRegion(page.NewRegion("r1", page.CategoryText, "", geometry.Rect(10, 10, 50, 30)), ""))
	require.NoError(t, pg.WriteFile(in))

	a := &app{}
	require.NoError(t, a.setup())

	f, err := a.loadPage(in)
	require.NoError(t, err)

	// documents without a pcGtsId are named after their file
	require.Equal(t, "scan_0001", f.page.ID)

	out := filepath.Join(dir, "out")
	require.NoError(t, f.save(out))

	_, err = os.Stat(filepath.Join(out, "scan_0001.xml"))
	require.NoError(t, err)

	_, ok := f.page.Region("r1")
	require.True(t, ok)
}

// writePage writes a PAGE file with a white page image named after id
func writePage(t *testing.T, dir, id string) string {
	t.Helper()

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()
	require.True(t, gocv.IMWrite(filepath.Join(dir, id+".png"), img))

	pg := page.New(id+".png", 100, 100)
	require.NoError(t, pg.AddRegion(page.NewRegion(id+"_r1", page.CategoryText, "", geometry.Rect(10, 10, 50, 30)), ""))

	path := filepath.Join(dir, id+".xml")
	require.NoError(t, pg.WriteFile(path))

	return path
}

func TestClassifyContinuesAfterPageError(t *testing.T) {

	dir := t.TempDir()
	instances := filepath.Join(dir, "instances")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(instances, 0o755))

	mask := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8UC1)
	defer mask.Close()
	gocv.Rectangle(&mask, image.Rect(10, 10, 50, 30), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
	require.True(t, gocv.IMWrite(filepath.Join(instances, "mask.png"), mask))

	// page a reports the background class, page b has no instances
	require.NoError(t, os.WriteFile(filepath.Join(instances, "a.yaml"), []byte(`
instances:
  - class: 0
    score: 0.9
    box: [10, 10, 50, 30]
    mask: mask.png
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(instances, "b.yaml"), []byte("instances: []\n"), 0o644))

	pageA := writePage(t, dir, "a")
	pageB := writePage(t, dir, "b")

	a := &app{workers: 1}
	require.NoError(t, a.setup())
	a.cfg.Detector.Instances = instances

	cmd := a.classifyCmd()
	cmd.SetContext(context.Background())
	require.NoError(t, cmd.Flags().Set("out", out))

	err := cmd.RunE(cmd, []string{pageA, pageB})
	require.ErrorIs(t, err, ErrPagesFailed)

	_, err = os.Stat(filepath.Join(out, "a.xml"))
	require.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(out, "b.xml"))
	require.NoError(t, err)
}

func TestClassifyConfigErrorAborts(t *testing.T) {

	dir := t.TempDir()

	a := &app{}
	require.NoError(t, a.setup())
	a.cfg.Detector.Instances = filepath.Join(dir, "missing")

	cmd := a.classifyCmd()
	cmd.SetContext(context.Background())

	err := cmd.RunE(cmd, []string{writePage(t, dir, "a")})
	require.ErrorIs(t, err, pageseg.ErrConfig)
}
