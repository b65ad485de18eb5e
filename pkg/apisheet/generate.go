package apisheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/layout"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/source"
)

// Generate reads the API description at inputPath and writes its workbook
// to outputPath. Nothing is written when loading or composing fails.
func Generate(ctx context.Context, inputPath, outputPath string, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	out, err := build(ctx, data, filepath.Base(inputPath), filepath.Base(outputPath), opts)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := out.SaveAs(outputPath); err != nil {
		return NewOutputError("", "save", err)
	}
	opts.logger().Info("workbook saved", slog.String("path", outputPath), slog.String("format", string(opts.EffectiveFormat())))
	return nil
}

// GenerateBytes renders the API description in data and writes the
// workbook to w.
func GenerateBytes(ctx context.Context, data []byte, w io.Writer, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	out, err := build(ctx, data, "input", "workbook."+string(opts.EffectiveFormat()), opts)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := out.Write(w); err != nil {
		return NewOutputError("", "save", err)
	}
	return nil
}

// Render composes the API description in data in memory and returns the
// workbook content, whatever the configured format.
func Render(ctx context.Context, data []byte, sourceName string, opts Options) (*models.WorkbookData, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	doc, err := load(data, sourceName, opts)
	if err != nil {
		return nil, err
	}
	book := sheet.NewMemoryBook(sourceName)
	if err := Compose(ctx, doc, book, opts); err != nil {
		return nil, err
	}
	return book.Data(), nil
}

// build loads data and composes it into a new output book.
func build(ctx context.Context, data []byte, sourceName, bookName string, opts Options) (output, error) {
	doc, err := load(data, sourceName, opts)
	if err != nil {
		return nil, err
	}
	out := newOutput(opts, bookName)
	if err := Compose(ctx, doc, out, opts); err != nil {
		out.Close()
		return nil, err
	}
	return out, nil
}

func load(data []byte, sourceName string, opts Options) (*models.Document, error) {
	logger := opts.logger()
	doc, err := source.Load(data, source.Options{Logger: logger, SourceName: sourceName})
	if err != nil {
		var diag *source.DiagnosticsError
		if errors.As(err, &diag) {
			return nil, &InputError{Source: diag.Source, Diagnostics: diag.Diagnostics}
		}
		return nil, err
	}
	logger.Info("document loaded",
		slog.String("source", sourceName),
		slog.String("version", doc.SourceVersion),
		slog.Int("operations", len(doc.Operations)),
		slog.Int("warnings", len(doc.Warnings)))
	return doc, nil
}

// Compose writes the index sheet and one sheet per operation of doc to
// book, then auto-fits the columns and activates the index. The context is
// checked between operations; a page is never left half composed.
func Compose(ctx context.Context, doc *models.Document, book sheet.Book, opts Options) error {
	logger := opts.logger()
	labels := opts.EffectiveLabels()

	namer := layout.NewSheetNamer()
	indexName := namer.Reserve(labels.IndexSheet)
	index := layout.IndexPage{Labels: labels, Clock: opts.Clock}.Begin(book.AddSheet(indexName), doc)

	page := layout.OperationPage{
		Labels:        labels,
		Flattener:     opts.flattener(),
		SeparatorRows: opts.SeparatorRows,
		Home:          index.Anchor(),
	}
	for i := range doc.Operations {
		if err := ctx.Err(); err != nil {
			return err
		}
		op := &doc.Operations[i]
		name := namer.Name(op)
		end := page.Compose(book.AddSheet(name), op)
		index.AddLink(op, name)
		logger.Debug("sheet composed", slog.String("sheet", name), slog.Int("rows", end-1))
	}
	index.Close()

	book.AutoFit(opts.MinColumnWidth)
	book.SetActive(indexName)
	if err := book.Err(); err != nil {
		return NewOutputError("", "compose", err)
	}
	return nil
}
