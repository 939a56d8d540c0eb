package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/swdee/go-pageseg"
	"github.com/swdee/go-pageseg/project"
	"github.com/swdee/go-pageseg/reconcile"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration of the pageseg tools
type Config struct {
	// LogLevel is a logrus level name
	LogLevel logrus.Level
	// Workers is the number of pages processed concurrently
	Workers int

	Detector  Detector
	Reconcile reconcile.Params
	Project   project.Params
}

// Detector selects and configures the source of layout instances
type Detector struct {
	// Instances is the directory of per page instance manifests
	Instances string `yaml:"instances"`
	// MinConfidence drops instances scoring below it
	MinConfidence float32 `yaml:"min_confidence"`
	// Colors maps segmentation image colours to region classes
	Colors map[string]string `yaml:"colors"`
	// InputWidth and InputHeight are the detector input size the exported
	// input raster is letterboxed to, zero for the page size
	InputWidth  int `yaml:"input_width"`
	InputHeight int `yaml:"input_height"`
}

type configFile struct {
	LogLevel string `yaml:"log_level"`
	Workers  int    `yaml:"workers"`
	// Labels is a labels file naming the detector classes, overriding
	// reconcile.categories
	Labels string `yaml:"labels"`

	Detector  Detector         `yaml:"detector"`
	Reconcile reconcile.Params `yaml:"reconcile"`
	Project   project.Params   `yaml:"project"`
}

// Default returns the configuration used without a config file
func Default() *Config {
	return &Config{
		LogLevel:  logrus.InfoLevel,
		Workers:   1,
		Detector:  Detector{MinConfidence: 0.5},
		Reconcile: reconcile.AddressDefaultParams(),
		Project:   project.DefaultParams(),
	}
}

// Parse reads the YAML config file at path over the defaults.  Environment
// variables in the file are expanded.  An empty path returns the defaults.
func Parse(path string) (*Config, error) {

	c := Default()

	if path == "" {
		return c, nil
	}

	file, err := parseFile(path)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", pageseg.ErrConfig, err)
	}

	if file.LogLevel != "" {
		level, err := logrus.ParseLevel(file.LogLevel)

		if err != nil {
			return nil, fmt.Errorf("%w: %v", pageseg.ErrConfig, err)
		}

		c.LogLevel = level
	}

	if file.Workers > 0 {
		c.Workers = file.Workers
	}

	c.Detector = file.Detector
	c.Reconcile = file.Reconcile
	c.Project = file.Project

	if file.Labels != "" {
		labels := file.Labels

		if !filepath.IsAbs(labels) {
			labels = filepath.Join(filepath.Dir(path), labels)
		}

		names, err := pageseg.LoadLabels(labels)

		if err != nil {
			return nil, fmt.Errorf("%w: %v", pageseg.ErrConfig, err)
		}

		c.Reconcile.Categories = names
	}

	if err := c.Reconcile.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func parseFile(path string) (*configFile, error) {

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	defaults := Default()

	config := configFile{
		Detector:  defaults.Detector,
		Reconcile: defaults.Reconcile,
		Project:   defaults.Project,
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
