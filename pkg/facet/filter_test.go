package facet

import (
	"testing"

	"github.com/matst80/center-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func area(slug, name string) types.Tag {
	return types.Tag{Slug: slug, Name: name}
}

func program(slug string, areas ...string) *types.Program {
	p := &types.Program{Slug: slug, Title: slug}
	for _, a := range areas {
		p.ProgramAreas = append(p.ProgramAreas, area(a, a))
	}
	return p
}

func slugs[T types.Item](items []T) []string {
	ret := make([]string, 0, len(items))
	for _, item := range items {
		ret = append(ret, item.GetSlug())
	}
	return ret
}

var areas = []Dimension{Field(types.DimensionProgramArea)}

func TestFilter_Scenario(t *testing.T) {
	items := []*types.Program{
		program("p1", "fitness"),
		program("p2", "aquatics"),
		program("p3", "fitness", "aquatics"),
	}

	sel := NewSelection()
	sel.Toggle(types.DimensionProgramArea, "fitness")
	assert.Equal(t, []string{"p1", "p3"}, slugs(Filter(items, areas, sel)))

	sel.Toggle(types.DimensionProgramArea, "aquatics")
	assert.Equal(t, []string{"p1", "p2", "p3"}, slugs(Filter(items, areas, sel)))

	sel.ClearAll()
	assert.Equal(t, []string{"p1", "p2", "p3"}, slugs(Filter(items, areas, sel)))
	assert.True(t, sel.IsEmpty())
}

func TestFilter_OrWithinDimension(t *testing.T) {
	sel := SelectionFrom(map[types.DimensionId][]string{
		types.DimensionProgramArea: {"a", "b"},
	})
	tests := []struct {
		name     string
		item     *types.Program
		expected bool
	}{
		{"only a", program("x", "a"), true},
		{"only b", program("x", "b"), true},
		{"neither", program("x", "c"), false},
		{"both", program("x", "a", "b"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.item, areas, sel))
		})
	}
}

func TestFilter_AndAcrossDimensions(t *testing.T) {
	items := []*types.Program{
		{Slug: "a", ProgramAreas: types.Tags{area("fitness", "Fitness")}, OfferingType: []string{"class"}},
		{Slug: "b", ProgramAreas: types.Tags{area("fitness", "Fitness")}, OfferingType: []string{"camp"}},
		{Slug: "c", ProgramAreas: types.Tags{area("aquatics", "Aquatics")}, OfferingType: []string{"class"}},
		{Slug: "d"},
	}
	dims := []Dimension{Field(types.DimensionProgramArea), Field(types.DimensionOfferingType)}

	s1 := SelectionFrom(map[types.DimensionId][]string{types.DimensionProgramArea: {"fitness"}})
	s2 := SelectionFrom(map[types.DimensionId][]string{types.DimensionOfferingType: {"class"}})
	both := SelectionFrom(map[types.DimensionId][]string{
		types.DimensionProgramArea:  {"fitness"},
		types.DimensionOfferingType: {"class"},
	})

	chained := Filter(Filter(items, dims, s1), dims, s2)
	reversed := Filter(Filter(items, dims, s2), dims, s1)
	combined := Filter(items, dims, both)

	assert.Equal(t, []string{"a"}, slugs(combined))
	assert.Equal(t, slugs(combined), slugs(chained))
	assert.Equal(t, slugs(combined), slugs(reversed))
}

func TestFilter_EmptySelectionReturnsAllInOrder(t *testing.T) {
	items := []*types.Program{program("z"), program("a", "x"), program("m")}
	result := Filter(items, areas, NewSelection())
	assert.Equal(t, []string{"z", "a", "m"}, slugs(result))

	assert.Equal(t, []string{"z", "a", "m"}, slugs(Filter(items, nil, NewSelection())))
}

func TestFilter_DoesNotMutateInputs(t *testing.T) {
	items := []*types.Program{program("p1", "fitness"), program("p2", "aquatics")}
	sel := SelectionFrom(map[types.DimensionId][]string{types.DimensionProgramArea: {"aquatics"}})
	before := sel.Clone()

	result := Filter(items, areas, sel)
	require.Len(t, result, 1)

	assert.Equal(t, []string{"p1", "p2"}, slugs(items))
	assert.True(t, before.Equal(sel))
}

func TestFilter_IgnoresUnconfiguredDimensions(t *testing.T) {
	items := []*types.Program{program("p1", "fitness")}
	sel := SelectionFrom(map[types.DimensionId][]string{types.DimensionAmenities: {"pool"}})
	assert.Len(t, Filter(items, areas, sel), 1)
}

func TestFilter_JoinedValuesTranslateSlugsToNames(t *testing.T) {
	programs := []*types.Program{
		{Slug: "swim", Title: "Swim", Centers: []types.Link{{Slug: "north", Title: "North"}}, ProgramAreas: types.Tags{area("aquatics", "Aquatics")}},
		{Slug: "yoga", Title: "Yoga", Centers: []types.Link{{Slug: "south", Title: "South"}}, ProgramAreas: types.Tags{area("fitness", "Fitness & Wellness")}},
	}
	centers := []*types.Center{
		{Slug: "north", Title: "North"},
		{Slug: "south", Title: "South"},
		{Slug: "east", Title: "East"},
	}
	join := DeriveJoin(programs, types.DimensionCenter, types.DimensionProgramArea)
	lookup := NewLookup(BuildOptions(programs, types.DimensionProgramArea)[types.DimensionProgramArea])
	dims := []Dimension{NewJoinedValues(types.DimensionProgramArea, join, lookup)}

	sel := SelectionFrom(map[types.DimensionId][]string{types.DimensionProgramArea: {"fitness"}})
	assert.Equal(t, []string{"south"}, slugs(Filter(centers, dims, sel)))

	sel.Toggle(types.DimensionProgramArea, "aquatics")
	assert.Equal(t, []string{"north", "south"}, slugs(Filter(centers, dims, sel)))
}

func TestFilter_UnresolvableSelectionNeverMatches(t *testing.T) {
	programs := []*types.Program{
		{Slug: "swim", Centers: []types.Link{{Slug: "north"}}, ProgramAreas: types.Tags{area("aquatics", "Aquatics")}},
	}
	centers := []*types.Center{{Slug: "north"}}
	join := DeriveJoin(programs, types.DimensionCenter, types.DimensionProgramArea)
	dims := []Dimension{NewJoinedValues(types.DimensionProgramArea, join, NewLookup(nil))}

	sel := SelectionFrom(map[types.DimensionId][]string{types.DimensionProgramArea: {"aquatics"}})
	assert.Empty(t, Filter(centers, dims, sel))
}

func TestFilter_JoinedChildren(t *testing.T) {
	programs := []*types.Program{
		{Slug: "swim", Title: "Swim", Centers: []types.Link{{Slug: "north"}, {Slug: "south"}}},
		{Slug: "yoga", Title: "Yoga", Centers: []types.Link{{Slug: "south"}}},
	}
	centers := []*types.Center{{Slug: "north"}, {Slug: "south"}, {Slug: "west"}}
	join := DeriveJoin(programs, types.DimensionCenter, types.DimensionProgramArea)
	dims := []Dimension{NewJoinedChildren(types.DimensionProgram, join)}

	sel := SelectionFrom(map[types.DimensionId][]string{types.DimensionProgram: {"yoga"}})
	assert.Equal(t, []string{"south"}, slugs(Filter(centers, dims, sel)))
}
