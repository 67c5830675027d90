package index

import (
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/types"
)

type Counts map[types.DimensionId]map[string]int

type Result[T types.Item] struct {
	Items  []T
	Total  int
	Counts Counts
}

// Collection is one explorable list with its dimensions, options and index.
type Collection[T types.Item] struct {
	Name    string
	items   []T
	dims    []facet.Dimension
	options facet.OptionSet
	index   *FacetIndex
	bySlug  map[string]T
}

func NewCollection[T types.Item](name string, items []T, options facet.OptionSet, dims ...facet.Dimension) *Collection[T] {
	c := &Collection[T]{
		Name:    name,
		items:   items,
		dims:    dims,
		options: options,
		index:   NewFacetIndex(items, dims...),
		bySlug:  make(map[string]T, len(items)),
	}
	for _, item := range items {
		if _, found := c.bySlug[item.GetSlug()]; !found {
			c.bySlug[item.GetSlug()] = item
		}
	}
	return c
}

func (c *Collection[T]) Items() []T {
	return c.items
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) Dimensions() []facet.Dimension {
	return c.dims
}

func (c *Collection[T]) DimensionIds() []types.DimensionId {
	ret := make([]types.DimensionId, 0, len(c.dims))
	for _, d := range c.dims {
		ret = append(ret, d.Id())
	}
	return ret
}

func (c *Collection[T]) HasDimension(id types.DimensionId) bool {
	for _, d := range c.dims {
		if d.Id() == id {
			return true
		}
	}
	return false
}

func (c *Collection[T]) Options() facet.OptionSet {
	return c.options
}

func (c *Collection[T]) Index() *FacetIndex {
	return c.index
}

func (c *Collection[T]) Get(slug string) (T, bool) {
	item, ok := c.bySlug[slug]
	return item, ok
}

// Query applies the selection and the case insensitive free text, keeping
// collection order, and counts every option over the matched items.
func (c *Collection[T]) Query(sel facet.Selection, text string) Result[T] {
	matched := c.index.Match(sel)
	text = strings.ToLower(strings.TrimSpace(text))
	if text != "" {
		kept := roaring.New()
		for _, pos := range Positions(matched) {
			if strings.Contains(c.items[pos].SearchText(), text) {
				kept.Add(uint32(pos))
			}
		}
		matched = kept
	}

	positions := Positions(matched)
	items := make([]T, 0, len(positions))
	for _, pos := range positions {
		items = append(items, c.items[pos])
	}

	counts := make(Counts, len(c.options))
	for dim, options := range c.options {
		counts[dim] = c.index.Counts(dim, options, matched)
	}
	return Result[T]{Items: items, Total: len(items), Counts: counts}
}

func (c *Collection[T]) Explorer(sel facet.Selection) *facet.Explorer[T] {
	return facet.NewExplorer(c.items, c.options, sel, c.dims...)
}
