package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/page"
	"github.com/swdee/go-pageseg/project"
	"github.com/swdee/go-pageseg/reconcile"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestParseDefaults(t *testing.T) {

	c, err := Parse("")
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, c.LogLevel)
	require.Equal(t, 1, c.Workers)
	require.Equal(t, reconcile.AddressDefaultParams(), c.Reconcile)
	require.Equal(t, project.LevelPage, c.Project.Level)
}

func TestParse(t *testing.T) {

	dir := t.TempDir()
	t.Setenv("PAGESEG_INSTANCES", "/data/instances")

	writeFile(t, dir, "labels.txt", "# address model\n\nrcpt\nsndr\ncontact\n")

	path := writeFile(t, dir, "pageseg.yaml", `log_level: debug
workers: 4
labels: labels.txt
detector:
  instances: ${PAGESEG_INSTANCES}
  min_confidence: 0.3
  colors:
    "#FF0000": TextRegion:paragraph
reconcile:
  overlap_threshold: 0.7
  region_categories: [Text, TableRegion]
project:
  level: region
  padding: 3
`)

	c, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, logrus.DebugLevel, c.LogLevel)
	require.Equal(t, 4, c.Workers)
	require.Equal(t, "/data/instances", c.Detector.Instances)
	require.InDelta(t, 0.3, c.Detector.MinConfidence, 1e-6)
	require.Equal(t, "TextRegion:paragraph", c.Detector.Colors["#FF0000"])

	require.Equal(t, []string{"", "rcpt", "sndr", "contact"}, c.Reconcile.Categories)
	require.InDelta(t, 0.7, c.Reconcile.OverlapThreshold, 1e-9)
	require.InDelta(t, 0.5, c.Reconcile.SuppressThreshold, 1e-9, "unset keys keep their default")
	require.Equal(t, []page.Category{page.CategoryText, page.CategoryTable}, c.Reconcile.RegionCategories)

	require.Equal(t, project.LevelRegion, c.Project.Level)
	require.InDelta(t, 3, c.Project.Padding, 1e-9)
	require.InDelta(t, 20, c.Project.Scale, 1e-9)
}

func TestParseErrors(t *testing.T) {

	dir := t.TempDir()

	tests := map[string]string{
		"unknown field": "colour: red\n",
		"bad level":     "log_level: loud\n",
		"bad category":  "reconcile:\n  region_categories: [Paragraph]\n",
		"bad threshold": "reconcile:\n  suppress_threshold: 2\n",
		"no labels":     "labels: missing.txt\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "c.yaml", content)

			_, err := Parse(path)
			require.ErrorIs(t, err, pageseg.ErrConfig)
		})
	}

	_, err := Parse(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, pageseg.ErrConfig)
}
