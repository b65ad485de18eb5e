// Package apisheet renders OpenAPI and Swagger documents as spreadsheet
// workbooks: an index sheet linking to one sheet per operation.
package apisheet

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/layout"
)

// Format represents the output format.
type Format string

const (
	// FormatXLSX writes an Excel workbook.
	FormatXLSX Format = "xlsx"
	// FormatJSON writes the composed workbook content as JSON.
	FormatJSON Format = "json"
)

// Defaults used by DefaultOptions.
const (
	DefaultMaxDepth       = 10
	DefaultSeparatorRows  = 1
	DefaultMinColumnWidth = 15
)

// Options configures generation.
type Options struct {
	// MaxDepth bounds schema flattening; must be at least 1.
	MaxDepth int
	// Language selects the label set as a BCP 47 tag ("en", "ko", ...).
	// Unsupported languages fall back to English.
	Language string
	// RequiredLabel and OptionalLabel override the required-flag texts.
	RequiredLabel string
	OptionalLabel string
	// Composites selects how multi-branch composites are flattened.
	Composites layout.CompositePolicy
	// DetectCycles stops flattening at a schema already on the current
	// path. If nil, defaults to false.
	DetectCycles *bool
	// SeparatorRows is the number of blank rows after each page part.
	SeparatorRows int
	// MinColumnWidth is the lower bound of auto-fitted column widths.
	MinColumnWidth float64
	// Format specifies the output format.
	Format Format
	// Pretty indents JSON output.
	Pretty bool
	// Clock, when set, stamps the index with the generation time.
	Clock func() time.Time
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		MaxDepth:       DefaultMaxDepth,
		Language:       "en",
		Composites:     layout.CompositeExpand,
		SeparatorRows:  DefaultSeparatorRows,
		MinColumnWidth: DefaultMinColumnWidth,
		Format:         FormatXLSX,
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidOptions.
func (o Options) Validate() error {
	switch {
	case o.MaxDepth < 1:
		return fmt.Errorf("%w: max depth must be at least 1, got %d", ErrInvalidOptions, o.MaxDepth)
	case o.SeparatorRows < 0:
		return fmt.Errorf("%w: separator rows must not be negative, got %d", ErrInvalidOptions, o.SeparatorRows)
	case o.MinColumnWidth < 0:
		return fmt.Errorf("%w: minimum column width must not be negative, got %g", ErrInvalidOptions, o.MinColumnWidth)
	case o.Composites != "" && !o.Composites.Valid():
		return fmt.Errorf("%w: composites must be %q or %q, got %q", ErrInvalidOptions, layout.CompositeExpand, layout.CompositeSkip, o.Composites)
	}
	switch o.Format {
	case "", FormatXLSX, FormatJSON:
	default:
		return fmt.Errorf("%w: format must be %q or %q, got %q", ErrInvalidOptions, FormatXLSX, FormatJSON, o.Format)
	}
	if _, err := parseLanguage(o.Language); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// ShouldDetectCycles returns whether flattening stops at cycles.
func (o Options) ShouldDetectCycles() bool {
	if o.DetectCycles != nil {
		return *o.DetectCycles
	}
	return false
}

// EffectiveFormat returns the output format, defaulting to xlsx.
func (o Options) EffectiveFormat() Format {
	if o.Format == "" {
		return FormatXLSX
	}
	return o.Format
}

// EffectiveLabels returns the label set for Language with the
// required-flag overrides applied.
func (o Options) EffectiveLabels() layout.Labels {
	l := LabelsFor(o.Language)
	if o.RequiredLabel != "" {
		l.Yes = o.RequiredLabel
	}
	if o.OptionalLabel != "" {
		l.No = o.OptionalLabel
	}
	return l
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) flattener() layout.Flattener {
	return layout.Flattener{
		MaxDepth:     o.MaxDepth,
		Composites:   o.Composites,
		DetectCycles: o.ShouldDetectCycles(),
	}
}
