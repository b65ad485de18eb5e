// Package source reads OpenAPI 3.x and Swagger 2.0 documents into the
// models consumed by the layout package.
package source

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oastools/parser"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// Options configures Load.
type Options struct {
	// Logger receives parser and projection messages. Nil discards them.
	Logger *slog.Logger
	// SourceName names the document in diagnostics. Empty means "input".
	SourceName string
}

// DiagnosticsError reports a document that could not be parsed or failed
// structural validation.
type DiagnosticsError struct {
	Source      string
	Diagnostics []string
}

func (e *DiagnosticsError) Error() string {
	switch len(e.Diagnostics) {
	case 0:
		return fmt.Sprintf("%s: malformed document", e.Source)
	case 1:
		return fmt.Sprintf("%s: malformed document: %s", e.Source, e.Diagnostics[0])
	default:
		return fmt.Sprintf("%s: malformed document: %s (and %d more)", e.Source, e.Diagnostics[0], len(e.Diagnostics)-1)
	}
}

// LoadFile reads and loads the document at path.
func LoadFile(path string, opts Options) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if opts.SourceName == "" {
		opts.SourceName = filepath.Base(path)
	}
	return Load(data, opts)
}

// Load parses data and projects it onto the document model. The parser
// does not resolve references; local references are resolved during the
// projection so that recursive schemas stay finite.
func Load(data []byte, opts Options) (*models.Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	name := opts.SourceName
	if name == "" {
		name = "input"
	}

	res, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithResolveRefs(false),
		parser.WithValidateStructure(true),
		parser.WithLogger(parser.NewSlogAdapter(logger)),
		parser.WithSourceName(name),
	)
	if err != nil {
		return nil, &DiagnosticsError{Source: name, Diagnostics: []string{err.Error()}}
	}
	if len(res.Errors) > 0 {
		diags := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			diags = append(diags, e.Error())
		}
		return nil, &DiagnosticsError{Source: name, Diagnostics: diags}
	}

	order, err := NewKeyOrder(data)
	if err != nil {
		return nil, &DiagnosticsError{Source: name, Diagnostics: []string{err.Error()}}
	}

	var (
		doc      *models.Document
		warnings []string
	)
	if d, ok := res.OAS3Document(); ok {
		doc, warnings = projectOAS3(d, order)
	} else if d, ok := res.OAS2Document(); ok {
		doc, warnings = projectOAS2(d, order)
	} else {
		return nil, &DiagnosticsError{Source: name, Diagnostics: []string{errUnsupported(res.Version).Error()}}
	}

	doc.SourceVersion = res.Version
	for _, w := range res.Warnings {
		doc.Warnings = append(doc.Warnings, strings.TrimPrefix(w, "Warning: "))
	}
	doc.Warnings = append(doc.Warnings, warnings...)
	for _, w := range doc.Warnings {
		logger.Warn("document warning", slog.String("source", name), slog.String("warning", w))
	}
	logger.Debug("document projected",
		slog.String("source", name),
		slog.String("version", doc.SourceVersion),
		slog.Int("operations", len(doc.Operations)))
	return doc, nil
}

func errUnsupported(version string) error {
	if version == "" {
		return errors.New("unrecognized document version")
	}
	return fmt.Errorf("unsupported document version %q", version)
}
