package facet

import "github.com/matst80/center-finder/pkg/types"

type valueSet map[string]struct{}

type activeDimension struct {
	dim      Dimension
	resolved valueSet
}

func makeValueSet(values []string) valueSet {
	ret := make(valueSet, len(values))
	for _, v := range values {
		ret[v] = struct{}{}
	}
	return ret
}

func (v valueSet) intersects(values []string) bool {
	for _, value := range values {
		if _, ok := v[value]; ok {
			return true
		}
	}
	return false
}

// activeDimensions resolves the selection once for every constrained dimension.
// A dimension keeps its constraint even when nothing resolves.
func activeDimensions(dims []Dimension, sel Selection) []activeDimension {
	ret := make([]activeDimension, 0, len(dims))
	for _, d := range dims {
		if !sel.IsActive(d.Id()) {
			continue
		}
		ret = append(ret, activeDimension{
			dim:      d,
			resolved: makeValueSet(d.Resolve(sel.Values(d.Id()))),
		})
	}
	return ret
}

func matches(item types.Item, active []activeDimension) bool {
	for _, a := range active {
		if !a.resolved.intersects(a.dim.Values(item)) {
			return false
		}
	}
	return true
}

// Filter returns the items passing every constrained dimension, in input
// order. Within a dimension any selected value is enough.
func Filter[T types.Item](items []T, dims []Dimension, sel Selection) []T {
	active := activeDimensions(dims, sel)
	ret := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, active) {
			ret = append(ret, item)
		}
	}
	return ret
}

// Matches evaluates a single item against the selection.
func Matches(item types.Item, dims []Dimension, sel Selection) bool {
	return matches(item, activeDimensions(dims, sel))
}
