package facet

import "github.com/matst80/center-finder/pkg/types"

// Explorer owns a selection over a fixed collection and recomputes the
// filtered result after every transition.
type Explorer[T types.Item] struct {
	items     []T
	dims      []Dimension
	options   OptionSet
	selection Selection
	result    []T
}

func NewExplorer[T types.Item](items []T, options OptionSet, sel Selection, dims ...Dimension) *Explorer[T] {
	if sel == nil {
		sel = NewSelection()
	} else {
		sel = sel.Clone()
	}
	e := &Explorer[T]{
		items:     items,
		dims:      dims,
		options:   options,
		selection: sel,
	}
	e.recompute()
	return e
}

func (e *Explorer[T]) recompute() {
	e.result = Filter(e.items, e.dims, e.selection)
}

func (e *Explorer[T]) Toggle(dim types.DimensionId, value string) []T {
	e.selection.Toggle(dim, value)
	e.recompute()
	return e.result
}

func (e *Explorer[T]) ClearAll() []T {
	e.selection.ClearAll()
	e.recompute()
	return e.result
}

func (e *Explorer[T]) Result() []T {
	return e.result
}

func (e *Explorer[T]) Selection() Selection {
	return e.selection.Clone()
}

func (e *Explorer[T]) Options() OptionSet {
	return e.options
}
