package structcodec

import (
	"reflect"
	"strings"
	"sync"
)

// field is one visible entry of a record type: its tree entry name and the
// index path that reaches it through any embedded structs.
type field struct {
	name  string
	index []int
}

type fieldCacheKey struct {
	typ    reflect.Type
	tagKey string
}

var fieldCache sync.Map // fieldCacheKey -> []field

// fields resolves the visible fields of a struct type under the codec's tag
// key. Results are cached per type; the walk is breadth-first so shallower
// fields shadow deeper promoted ones, and the first declaration wins on
// same-level name conflicts.
func (c *Codec[S]) fields(t reflect.Type) []field {
	key := fieldCacheKey{typ: t, tagKey: c.tagKey}
	if cached, ok := fieldCache.Load(key); ok {
		return cached.([]field)
	}

	type level struct {
		typ   reflect.Type
		index []int
	}
	current := []level{{typ: t}}
	visited := map[reflect.Type]bool{}
	byName := map[string]bool{}
	var out []field

	for len(current) > 0 {
		var next []level
		for _, lvl := range current {
			if visited[lvl.typ] {
				continue
			}
			visited[lvl.typ] = true

			for i := 0; i < lvl.typ.NumField(); i++ {
				sf := lvl.typ.Field(i)
				tag := sf.Tag.Get(c.tagKey)
				if tag == "-" {
					continue
				}
				if sf.PkgPath != "" {
					continue
				}

				name := tagName(tag)
				index := append(append([]int(nil), lvl.index...), i)

				if sf.Anonymous && name == "" {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if ft.Kind() == reflect.Struct {
						next = append(next, level{typ: ft, index: index})
						continue
					}
				}

				if name == "" {
					name = sf.Name
				}
				if byName[name] {
					continue
				}
				byName[name] = true
				out = append(out, field{name: name, index: index})
			}
		}
		current = next
	}

	fieldCache.Store(key, out)
	return out
}

// tagName extracts the name portion of a struct tag, ignoring options such
// as omitempty.
func tagName(tag string) string {
	if tag == "" {
		return ""
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		return tag[:i]
	}
	return tag
}
