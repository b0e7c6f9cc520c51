package store

import "github.com/basic-lang/basic/value"

// indexFromExpression converts a DIM-expression-style index list (the
// comma-separated sequence "1,2,3" as an evaluated ExpressionValue,
// meaning numbers at even positions and comma separators at odd ones)
// into the array's flat backing-slice index. It reports ok=false on a dimension-count mismatch, a non-numeric
// subscript, a missing separator, or an out-of-range subscript.
func (a *Array) indexFromExpression(val value.ExpressionValue) (int, bool) {
	if len(val) != len(a.Dimensions)*2-1 {
		return 0, false
	}
	index := 0
	for i, dim := range a.Dimensions {
		v := val[2*i]
		if v.Kind != value.KindNumber {
			return 0, false
		}
		if i > 0 && val[2*i-1].Kind != value.KindSeparator {
			return 0, false
		}
		n := int(v.Num)
		if n < 0 || n >= dim {
			return 0, false
		}
		index = index*dim + n
	}
	return index, true
}

// ArrayCreate redimensions arrays[idx] from a DIM expression's evaluated
// dimension list (same even/odd layout as indexFromExpression, but here
// each number is a maximum subscript and the stored dimension size is
// one more than that). It reports ok=false if the value count is even
// (malformed) or any size entry isn't numeric.
func (t *SymbolTable) ArrayCreate(idx int, dims value.ExpressionValue) bool {
	if len(dims)%2 == 0 {
		return false
	}
	sizes := make([]int, 0, (len(dims)+1)/2)
	for i := 0; i < len(dims); i += 2 {
		if dims[i].Kind != value.KindNumber {
			return false
		}
		if i > 0 && dims[i-1].Kind != value.KindSeparator {
			return false
		}
		sizes = append(sizes, int(dims[i].Num)+1)
	}
	t.Create(idx, sizes)
	return true
}

// ArrayGet returns the element index selects.
func (t *SymbolTable) ArrayGet(idx int, index value.ExpressionValue) (value.Value, bool) {
	a := &t.Arrays[idx]
	i, ok := a.indexFromExpression(index)
	if !ok {
		return value.Value{}, false
	}
	return a.Values[i], true
}

// ArraySet stores val at the element index selects, refusing a
// type-mismatched value.
func (t *SymbolTable) ArraySet(idx int, index value.ExpressionValue, val value.Value) bool {
	a := &t.Arrays[idx]
	i, ok := a.indexFromExpression(index)
	if !ok {
		return false
	}
	if !value.SameType(a.Values[i], val) {
		return false
	}
	a.Values[i] = val
	return true
}
