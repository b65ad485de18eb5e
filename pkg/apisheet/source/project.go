package source

import (
	"strconv"
	"strings"

	"github.com/erraggy/oastools/parser"

	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

// canonicalMethods lists the path item operation keys in the order used
// when a key's declared position is unknown.
var canonicalMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace", "query"}

// pathOperations returns the operations of a path item keyed by method.
func pathOperations(item *parser.PathItem) map[string]*parser.Operation {
	all := map[string]*parser.Operation{
		"get":     item.Get,
		"put":     item.Put,
		"post":    item.Post,
		"delete":  item.Delete,
		"options": item.Options,
		"head":    item.Head,
		"patch":   item.Patch,
		"trace":   item.Trace,
		"query":   item.Query,
	}
	for k, op := range all {
		if op == nil {
			delete(all, k)
		}
	}
	return all
}

// declaredMethods returns the methods of ops in the order their keys appear
// at ptr; methods the document does not position follow in canonical order.
func declaredMethods(order *KeyOrder, ptr string, ops map[string]*parser.Operation) []string {
	out := make([]string, 0, len(ops))
	seen := make(map[string]bool, len(ops))
	for _, k := range order.Keys(ptr) {
		if ops[k] != nil && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	for _, k := range canonicalMethods {
		if ops[k] != nil && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	return out
}

// mergeParameters overlays operation-level parameters on path-level ones.
// A parameter with the same name and location replaces the path-level one
// in place; others are appended in declared order.
func mergeParameters(pathLevel, opLevel []models.Parameter) []models.Parameter {
	out := make([]models.Parameter, 0, len(pathLevel)+len(opLevel))
	out = append(out, pathLevel...)
	for _, p := range opLevel {
		replaced := false
		for i := range out {
			if out[i].Name == p.Name && strings.EqualFold(out[i].In, p.In) {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out
}

// responseCodes returns the status code keys of rs, "default" included,
// ordered as declared at ptr.
func responseCodes(order *KeyOrder, ptr string, rs *parser.Responses) []string {
	if rs == nil {
		return nil
	}
	keys := make([]string, 0, len(rs.Codes)+1)
	for k, r := range rs.Codes {
		if r != nil {
			keys = append(keys, k)
		}
	}
	if rs.Default != nil {
		keys = append(keys, "default")
	}
	return order.Sort(ptr, keys)
}

func responseFor(rs *parser.Responses, code string) *parser.Response {
	if code == "default" {
		return rs.Default
	}
	return rs.Codes[code]
}

// componentName extracts NAME from a local reference "#<prefix>/NAME".
func componentName(ref, prefix string) (string, bool) {
	name, ok := strings.CutPrefix(ref, "#"+prefix+"/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return UnescapePointer(name), true
}

func info(i *parser.Info) (title, version, description string) {
	if i == nil {
		return "", "", ""
	}
	return i.Title, i.Version, i.Description
}

func pointerIndex(ptr string, i int) string {
	return ptr + "/" + strconv.Itoa(i)
}

// upperASCII upper-cases a method key; method keys are plain ASCII.
func upperASCII(s string) string {
	return strings.ToUpper(s)
}
