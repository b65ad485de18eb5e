package source

import (
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// KeyOrder records the declared key order of every mapping in a document,
// indexed by JSON pointer ("" is the root, "/paths/~1pets" the /pets path
// item). Decoded documents hold their mappings in Go maps, so this is how
// the declared order of paths, properties and responses is recovered.
type KeyOrder struct {
	keys map[string][]string
}

// NewKeyOrder indexes a YAML or JSON document.
func NewKeyOrder(data []byte) (*KeyOrder, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	o := &KeyOrder{keys: make(map[string][]string)}
	o.walk(&root, "", 0)
	return o, nil
}

// maxAliasDepth bounds alias expansion while indexing.
const maxAliasDepth = 32

func (o *KeyOrder) walk(node *yaml.Node, path string, aliases int) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			o.walk(node.Content[0], path, aliases)
		}
	case yaml.MappingNode:
		if _, seen := o.keys[path]; seen {
			return
		}
		keys := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			keys = append(keys, key)
			o.walk(node.Content[i+1], path+"/"+EscapePointer(key), aliases)
		}
		o.keys[path] = keys
	case yaml.SequenceNode:
		for i, child := range node.Content {
			o.walk(child, path+"/"+strconv.Itoa(i), aliases)
		}
	case yaml.AliasNode:
		if aliases < maxAliasDepth {
			o.walk(node.Alias, path, aliases+1)
		}
	}
}

// Keys returns the declared keys of the mapping at pointer, or nil.
func (o *KeyOrder) Keys(pointer string) []string {
	if o == nil {
		return nil
	}
	return o.keys[pointer]
}

// Sort orders keys (typically the keys of a decoded map) by their declared
// position in the mapping at pointer. Keys the mapping does not declare
// follow in lexical order.
func (o *KeyOrder) Sort(pointer string, keys []string) []string {
	declared := o.Keys(pointer)
	pos := make(map[string]int, len(declared))
	for i, k := range declared {
		pos[k] = i
	}
	out := slices.Clone(keys)
	slices.SortStableFunc(out, func(a, b string) int {
		pa, okA := pos[a]
		pb, okB := pos[b]
		switch {
		case okA && okB:
			return pa - pb
		case okA:
			return -1
		case okB:
			return 1
		}
		return strings.Compare(a, b)
	})
	return out
}

// SortedKeys returns the keys of m ordered as declared at pointer.
func SortedKeys[V any](o *KeyOrder, pointer string, m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return o.Sort(pointer, keys)
}

// EscapePointer escapes one JSON pointer reference token.
func EscapePointer(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

// UnescapePointer reverses EscapePointer.
func UnescapePointer(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

// Pointer joins unescaped tokens into a JSON pointer.
func Pointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapePointer(t))
	}
	return b.String()
}
