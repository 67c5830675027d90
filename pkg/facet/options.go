package facet

import (
	"maps"
	"slices"
	"strings"

	"github.com/matst80/center-finder/pkg/types"
)

// OptionSet holds the values worth presenting as controls, per dimension.
type OptionSet map[types.DimensionId]types.Tags

func tagSlug(t types.Tag) string { return t.Slug }

// BuildOptions derives the option list of every requested dimension from the
// full, unfiltered collection. Options are unique by slug, first seen wins.
func BuildOptions[T types.Item](items []T, dims ...types.DimensionId) OptionSet {
	ret := make(OptionSet, len(dims))
	for _, dim := range dims {
		set := NewKeyedSet(tagSlug)
		for _, item := range items {
			for _, tag := range item.GetTags(dim) {
				if tag.IsValid() {
					set.Add(tag)
				}
			}
		}
		tags := types.Tags(set.Values())
		SortTags(tags)
		ret[dim] = tags
	}
	return ret
}

// SortTags orders tags by display name (case insensitive), then name, then slug.
func SortTags(tags types.Tags) {
	slices.SortStableFunc(tags, func(a, b types.Tag) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// Merge copies the dimensions of other into a new set, other wins on conflicts.
func (o OptionSet) Merge(other OptionSet) OptionSet {
	ret := make(OptionSet, len(o)+len(other))
	maps.Copy(ret, o)
	maps.Copy(ret, other)
	return ret
}

func (o OptionSet) Dimensions() []types.DimensionId {
	ret := slices.Collect(maps.Keys(o))
	slices.Sort(ret)
	return ret
}
