package variant

// Clone returns a deep copy of the tree. No array or object node in the
// result shares ownership with the source: every composite descendant is
// freshly allocated, and scalar leaves are cloned through the vocabulary.
// Nil receivers clone to a fresh null node.
func (v *Value[S]) Clone() *Value[S] {
	return v.clone(0)
}

func (v *Value[S]) clone(depth int) *Value[S] {
	checkDepth(depth)
	switch v.Kind() {
	case KindScalar:
		return &Value[S]{kind: KindScalar, scalar: v.scalar.Clone()}
	case KindArray:
		arr := make([]*Value[S], 0, len(v.arr))
		for _, elem := range v.arr {
			arr = append(arr, elem.clone(depth+1))
		}
		return &Value[S]{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]*Value[S], len(v.obj))
		for name, entry := range v.obj {
			obj[name] = entry.clone(depth+1)
		}
		return &Value[S]{kind: KindObject, obj: obj}
	default:
		return &Value[S]{}
	}
}

// Equal reports structural equality: kinds must match and, recursively, all
// scalar payloads, array elements and object entries must be equal. Object
// entry order is not significant. Nil receivers and arguments compare as
// null nodes.
func (v *Value[S]) Equal(other *Value[S]) bool {
	return v.equal(other, 0)
}

func (v *Value[S]) equal(other *Value[S], depth int) bool {
	checkDepth(depth)
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindScalar:
		return v.scalar.Equal(other.scalar)
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i, elem := range v.arr {
			if !elem.equal(other.arr[i], depth+1) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for name, entry := range v.obj {
			theirs, ok := other.obj[name]
			if !ok || !entry.equal(theirs, depth+1) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
