package index

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/types"
)

type valueBitmaps map[string]*roaring.Bitmap

func (v valueBitmaps) add(value string, pos uint32) {
	bm, ok := v[value]
	if !ok {
		bm = roaring.New()
		v[value] = bm
	}
	bm.Add(pos)
}

func (v valueBitmaps) union(values []string) *roaring.Bitmap {
	ret := roaring.New()
	for _, value := range values {
		if bm, ok := v[value]; ok {
			ret.Or(bm)
		}
	}
	return ret
}

// FacetIndex keeps one bitmap of item positions per dimension value.
type FacetIndex struct {
	size   int
	all    *roaring.Bitmap
	dims   []facet.Dimension
	values map[types.DimensionId]valueBitmaps
}

func NewFacetIndex[T types.Item](items []T, dims ...facet.Dimension) *FacetIndex {
	idx := &FacetIndex{
		size:   len(items),
		all:    roaring.New(),
		dims:   dims,
		values: make(map[types.DimensionId]valueBitmaps, len(dims)),
	}
	idx.all.AddRange(0, uint64(len(items)))
	for _, d := range dims {
		bitmaps := make(valueBitmaps)
		for pos, item := range items {
			for _, value := range d.Values(item) {
				bitmaps.add(value, uint32(pos))
			}
		}
		idx.values[d.Id()] = bitmaps
	}
	return idx
}

func (f *FacetIndex) Size() int {
	return f.size
}

func (f *FacetIndex) All() *roaring.Bitmap {
	return f.all.Clone()
}

// Match returns the positions passing every constrained dimension. A
// dimension whose selection resolves to nothing matches no position.
func (f *FacetIndex) Match(sel facet.Selection) *roaring.Bitmap {
	result := f.all.Clone()
	for _, d := range f.dims {
		if !sel.IsActive(d.Id()) {
			continue
		}
		result.And(f.values[d.Id()].union(d.Resolve(sel.Values(d.Id()))))
		if result.IsEmpty() {
			break
		}
	}
	return result
}

// Counts returns, per option slug, how many of the matched positions carry it.
func (f *FacetIndex) Counts(dim types.DimensionId, options types.Tags, matched *roaring.Bitmap) map[string]int {
	ret := make(map[string]int, len(options))
	d, bitmaps := f.dimension(dim)
	if d == nil {
		return ret
	}
	for _, option := range options {
		bm := bitmaps.union(d.Resolve([]string{option.Slug}))
		ret[option.Slug] = int(bm.AndCardinality(matched))
	}
	return ret
}

func (f *FacetIndex) dimension(dim types.DimensionId) (facet.Dimension, valueBitmaps) {
	for _, d := range f.dims {
		if d.Id() == dim {
			return d, f.values[dim]
		}
	}
	return nil, nil
}

// Positions expands a bitmap into ascending item positions.
func Positions(bm *roaring.Bitmap) []int {
	ret := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		ret = append(ret, int(it.Next()))
	}
	return ret
}
