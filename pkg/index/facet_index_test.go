package index

import (
	"testing"

	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestFacetIndex_MatchEqualsFilter(t *testing.T) {
	view := NewView(testSnapshot())
	programs := view.Programs
	centers := view.Centers

	programSelections := []map[types.DimensionId][]string{
		{},
		{types.DimensionProgramArea: {"aquatics"}},
		{types.DimensionProgramArea: {"aquatics", "arts"}},
		{types.DimensionProgramArea: {"aquatics"}, types.DimensionAudience: {"adults"}},
		{types.DimensionOfferingType: {"Class"}, types.DimensionCenter: {"north"}},
		{types.DimensionSkillLevel: {"Expert"}},
		{types.DimensionMembership: {"nope"}},
	}
	for _, values := range programSelections {
		sel := facet.SelectionFrom(values)
		expected := facet.Filter(programs.Items(), programs.Dimensions(), sel)
		assert.Equal(t, slugsOf(expected), slugsOf(programs.Query(sel, "").Items), "%v", values)
	}

	centerSelections := []map[types.DimensionId][]string{
		{types.DimensionAmenities: {"pool"}},
		{types.DimensionProgramArea: {"fitness"}},
		{types.DimensionProgramArea: {"arts"}, types.DimensionAmenities: {"pool", "gym"}},
		{types.DimensionProgram: {"lap", "paint"}},
		{types.DimensionProgramArea: {"unknown"}},
	}
	for _, values := range centerSelections {
		sel := facet.SelectionFrom(values)
		expected := facet.Filter(centers.Items(), centers.Dimensions(), sel)
		assert.Equal(t, slugsOf(expected), slugsOf(centers.Query(sel, "").Items), "%v", values)
	}
}

func TestFacetIndex_Counts(t *testing.T) {
	programs := NewView(testSnapshot()).Programs
	sel := facet.SelectionFrom(map[types.DimensionId][]string{types.DimensionAudience: {"adults"}})

	res := programs.Query(sel, "")
	assert.Equal(t, []string{"lap", "paint"}, slugsOf(res.Items))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, map[string]int{"aquatics": 1, "arts": 1, "fitness": 1}, res.Counts[types.DimensionProgramArea])
	assert.Equal(t, 1, res.Counts[types.DimensionCenter]["north"])
	assert.Equal(t, 2, res.Counts[types.DimensionCenter]["south"]+res.Counts[types.DimensionCenter]["north"])
}

func TestFacetIndex_CountsTranslateJoinedValues(t *testing.T) {
	centers := NewView(testSnapshot()).Centers
	res := centers.Query(facet.NewSelection(), "")

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Counts[types.DimensionProgramArea]["aquatics"])
	assert.Equal(t, 1, res.Counts[types.DimensionProgramArea]["fitness"])
	assert.Equal(t, 1, res.Counts[types.DimensionProgramArea]["arts"])
	assert.Equal(t, 0, res.Counts[types.DimensionProgram]["orphan"])
	assert.Equal(t, 2, res.Counts[types.DimensionProgram]["swim"])
}

func TestFacetIndex_UnknownDimensionCounts(t *testing.T) {
	programs := NewView(testSnapshot()).Programs
	counts := programs.Index().Counts(types.DimensionAmenities, types.Tags{tag("pool", "Pool")}, programs.Index().All())
	assert.Empty(t, counts)
}

func TestPositions(t *testing.T) {
	programs := NewView(testSnapshot()).Programs
	assert.Equal(t, []int{0, 1, 2, 3}, Positions(programs.Index().All()))
	assert.Equal(t, 4, programs.Index().Size())
}

func TestCollection_QueryText(t *testing.T) {
	programs := NewView(testSnapshot()).Programs

	res := programs.Query(facet.NewSelection(), "  SWIM ")
	assert.Equal(t, []string{"swim", "lap"}, slugsOf(res.Items))

	sel := facet.SelectionFrom(map[types.DimensionId][]string{types.DimensionOfferingType: {"Class"}})
	res = programs.Query(sel, "swim")
	assert.Equal(t, []string{"swim"}, slugsOf(res.Items))
	assert.Equal(t, 1, res.Counts[types.DimensionProgramArea]["aquatics"])
	assert.Equal(t, 0, res.Counts[types.DimensionProgramArea]["arts"])
}

func TestCollection_Get(t *testing.T) {
	programs := NewView(testSnapshot()).Programs
	p, ok := programs.Get("paint")
	assert.True(t, ok)
	assert.Equal(t, "Painting", p.Title)

	_, ok = programs.Get("nope")
	assert.False(t, ok)
	assert.True(t, programs.HasDimension(types.DimensionSkillLevel))
	assert.False(t, programs.HasDimension(types.DimensionAmenities))
}

func TestCollection_Explorer(t *testing.T) {
	centers := NewView(testSnapshot()).Centers
	explorer := centers.Explorer(nil)
	assert.Len(t, explorer.Result(), 3)

	assert.Equal(t, []string{"north", "south"}, slugsOf(explorer.Toggle(types.DimensionAmenities, "pool")))
	assert.Equal(t, []string{"south"}, slugsOf(explorer.Toggle(types.DimensionProgramArea, "fitness")))
	assert.Len(t, explorer.ClearAll(), 3)
}
