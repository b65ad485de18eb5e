package apisheet

import (
	"errors"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/layout"
)

// Config is the optional YAML configuration file. Unset fields leave the
// corresponding option untouched.
type Config struct {
	MaxDepth       *int     `yaml:"max_depth,omitempty"`
	Language       string   `yaml:"language,omitempty"`
	RequiredLabel  string   `yaml:"required_label,omitempty"`
	OptionalLabel  string   `yaml:"optional_label,omitempty"`
	Composites     string   `yaml:"composites,omitempty"`
	DetectCycles   *bool    `yaml:"detect_cycles,omitempty"`
	SeparatorRows  *int     `yaml:"separator_rows,omitempty"`
	MinColumnWidth *float64 `yaml:"min_column_width,omitempty"`
	Format         string   `yaml:"format,omitempty"`
	Pretty         *bool    `yaml:"pretty,omitempty"`
	// Timestamp adds the generation time to the index sheet.
	Timestamp *bool `yaml:"timestamp,omitempty"`
}

// LoadConfig reads a Config from a file path.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Apply copies the set fields of c onto opts.
func (c *Config) Apply(opts *Options) {
	if c.MaxDepth != nil {
		opts.MaxDepth = *c.MaxDepth
	}
	if c.Language != "" {
		opts.Language = c.Language
	}
	if c.RequiredLabel != "" {
		opts.RequiredLabel = c.RequiredLabel
	}
	if c.OptionalLabel != "" {
		opts.OptionalLabel = c.OptionalLabel
	}
	if c.Composites != "" {
		opts.Composites = layout.CompositePolicy(c.Composites)
	}
	if c.DetectCycles != nil {
		v := *c.DetectCycles
		opts.DetectCycles = &v
	}
	if c.SeparatorRows != nil {
		opts.SeparatorRows = *c.SeparatorRows
	}
	if c.MinColumnWidth != nil {
		opts.MinColumnWidth = *c.MinColumnWidth
	}
	if c.Format != "" {
		opts.Format = Format(c.Format)
	}
	if c.Pretty != nil {
		opts.Pretty = *c.Pretty
	}
	if c.Timestamp != nil {
		if *c.Timestamp {
			opts.Clock = time.Now
		} else {
			opts.Clock = nil
		}
	}
}

// Validate checks the configuration by applying it to the defaults.
func (c *Config) Validate() error {
	opts := DefaultOptions()
	c.Apply(&opts)
	return opts.Validate()
}
