package variant

// Merge layers a partial tree over a base tree and returns the combined
// result. When both sides hold an object, entries merge per key: keys absent
// from partial keep the base value, keys present in partial overwrite or, if
// both entry values are objects, merge recursively. Any other pairing
// (arrays in particular) is replaced wholesale by the partial side; there is
// no element-wise array merge.
//
// A key that is present in partial with a null value replaces the base entry
// with null. Absence, not null, is what preserves a base entry.
//
// The result shares no nodes with either input; both stay usable.
func Merge[S Scalar[S]](base, partial *Value[S]) *Value[S] {
	return mergeValue(base, partial, 0)
}

func mergeValue[S Scalar[S]](base, partial *Value[S], depth int) *Value[S] {
	checkDepth(depth)
	if base.Kind() != KindObject || partial.Kind() != KindObject {
		return partial.clone(depth)
	}
	out := make(map[string]*Value[S], len(base.obj)+len(partial.obj))
	for name, entry := range base.obj {
		if _, shadowed := partial.obj[name]; shadowed {
			continue
		}
		out[name] = entry.clone(depth + 1)
	}
	for name, entry := range partial.obj {
		if ours, ok := base.obj[name]; ok && ours.IsObject() && entry.IsObject() {
			out[name] = mergeValue(ours, entry, depth+1)
			continue
		}
		out[name] = entry.clone(depth + 1)
	}
	return &Value[S]{kind: KindObject, obj: out}
}
