package facet

import (
	"testing"

	"github.com/matst80/center-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveJoin_Deduplicates(t *testing.T) {
	children := []*types.Program{
		{
			Slug:         "swim",
			Title:        "Swim",
			Centers:      []types.Link{{Slug: "north"}, {Slug: "north"}},
			ProgramAreas: types.Tags{area("aquatics", "Aquatics"), area("fitness", "Fitness")},
		},
		{
			Slug:         "aqua-fit",
			Title:        "Aqua Fit",
			Centers:      []types.Link{{Slug: "north"}},
			ProgramAreas: types.Tags{area("fitness", "Fitness")},
		},
		{
			Slug:         "swim",
			Title:        "Swim (copy)",
			Centers:      []types.Link{{Slug: "north"}},
			ProgramAreas: types.Tags{area("aquatics", "Aquatics")},
		},
	}

	join := DeriveJoin(children, types.DimensionCenter, types.DimensionProgramArea)
	entry := join.Get("north")
	require.NotNil(t, entry)
	assert.Equal(t, types.Tags{{Slug: "swim", Name: "Swim"}, {Slug: "aqua-fit", Name: "Aqua Fit"}}, entry.Children)
	assert.Equal(t, []string{"Aquatics", "Fitness"}, entry.Values)
}

func TestDeriveJoin_ChildWithoutParentsIsDropped(t *testing.T) {
	children := []*types.Program{
		{Slug: "orphan", Title: "Orphan", ProgramAreas: types.Tags{area("arts", "Arts")}},
	}
	join := DeriveJoin(children, types.DimensionCenter, types.DimensionProgramArea)
	assert.Empty(t, join)
}

func TestDeriveJoin_UnknownParentStillGetsEntry(t *testing.T) {
	children := []*types.Program{
		{Slug: "trip", Title: "Trip", Centers: []types.Link{{Slug: "does-not-exist"}, {Slug: ""}}},
	}
	join := DeriveJoin(children, types.DimensionCenter, types.DimensionProgramArea)
	assert.Len(t, join, 1)
	assert.Equal(t, []string{"trip"}, join.Get("does-not-exist").Children.Slugs())
	assert.Empty(t, join.Get("does-not-exist").Values)
}

func TestJoin_GetUnknown(t *testing.T) {
	var join Join
	entry := join.Get("anything")
	assert.Empty(t, entry.Children)
	assert.Empty(t, entry.Values)
}
