package layout

import (
	"fmt"
	"strings"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// MaxSheetNameLength is the longest sheet name a workbook accepts, in runes.
const MaxSheetNameLength = 31

// invalidSheetChars cannot appear in a sheet name.
const invalidSheetChars = `[]:*?/\`

// SheetNamer hands out unique sheet names. Names compare case-insensitively.
type SheetNamer struct {
	used map[string]bool
}

// NewSheetNamer returns a namer that treats reserved as already taken.
func NewSheetNamer(reserved ...string) *SheetNamer {
	n := &SheetNamer{used: make(map[string]bool)}
	for _, r := range reserved {
		n.used[strings.ToLower(r)] = true
	}
	return n
}

// OperationName returns the base sheet name of op: its operation id, or
// "METHOD path" when it has none.
func OperationName(op *models.Operation) string {
	if op.OperationID != "" {
		return op.OperationID
	}
	return Upper(string(op.Method)) + " " + op.Path
}

// Name returns a unique, valid sheet name for op and reserves it.
func (n *SheetNamer) Name(op *models.Operation) string {
	return n.Reserve(OperationName(op))
}

// Reserve sanitizes base, makes it unique by appending " (2)", " (3)", ...
// and reserves the result.
func (n *SheetNamer) Reserve(base string) string {
	base = SanitizeSheetName(base)
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		name = truncateRunes(base, MaxSheetNameLength-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}

// SanitizeSheetName replaces characters a sheet name cannot hold with '_',
// trims surrounding apostrophes and spaces, and truncates to
// MaxSheetNameLength runes. An empty result becomes "Sheet".
func SanitizeSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetChars, r) || r < ' ' {
			return '_'
		}
		return r
	}, s)
	s = strings.Trim(s, "' ")
	s = truncateRunes(s, MaxSheetNameLength)
	if s == "" {
		return "Sheet"
	}
	return s
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), "' ")
}
