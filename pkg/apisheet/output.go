package apisheet

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/sheet"
)

// output is a composed book that can be serialized.
type output interface {
	sheet.Book
	Write(w io.Writer) error
	SaveAs(path string) error
	Close() error
}

func newOutput(opts Options, bookName string) output {
	if opts.EffectiveFormat() == FormatJSON {
		return &jsonBook{MemoryBook: sheet.NewMemoryBook(bookName), pretty: opts.Pretty}
	}
	return sheet.NewExcelBook()
}

// jsonBook serializes the recorded workbook as JSON.
type jsonBook struct {
	*sheet.MemoryBook
	pretty bool
}

func (b *jsonBook) Write(w io.Writer) error {
	data, err := ToJSON(b.Data(), b.pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (b *jsonBook) SaveAs(path string) error {
	data, err := ToJSON(b.Data(), b.pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (b *jsonBook) Close() error { return nil }

// ToJSON serializes a composed workbook.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single composed sheet.
func SheetToJSON(s *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(s, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return json.Marshal(v)
}
