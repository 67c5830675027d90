package index

import (
	"testing"
	"time"

	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewView_Options(t *testing.T) {
	view := NewView(testSnapshot())

	programOptions := view.Programs.Options()
	assert.Equal(t, []string{"Class", "Drop-in"}, programOptions[types.DimensionOfferingType].Slugs())
	assert.Equal(t, []string{"gone", "north", "south"}, programOptions[types.DimensionCenter].Slugs())
	assert.Equal(t, []string{"Advanced", "Beginner"}, programOptions[types.DimensionSkillLevel].Slugs())
	assert.Empty(t, programOptions[types.DimensionMembership])

	centerOptions := view.Centers.Options()
	assert.Equal(t, []string{"gym", "pool", "studio"}, centerOptions[types.DimensionAmenities].Slugs())
	assert.Equal(t, []string{"aquatics", "arts", "fitness"}, centerOptions[types.DimensionProgramArea].Slugs())
	assert.Equal(t, []string{"swim", "lap", "orphan", "paint"}, centerOptions[types.DimensionProgram].Slugs())

	membershipOptions := view.Memberships.Options()
	assert.Equal(t, []string{"adults", "seniors", "youth"}, membershipOptions[types.DimensionAudience].Slugs())
	assert.Equal(t, []string{"aquatics", "arts", "fitness", "nature"}, membershipOptions[types.DimensionProgramArea].Slugs())
	assert.Equal(t, []string{"east", "north", "south"}, membershipOptions[types.DimensionCenter].Slugs())
}

func TestNewView_Empty(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, 0, view.Programs.Len())
	res := view.Centers.Query(facet.NewSelection(), "")
	assert.Empty(t, res.Items)
	assert.Equal(t, map[string]int{"programs": 0, "centers": 0, "memberships": 0, "events": 0}, view.Counts())
	assert.Empty(t, view.UpcomingEvents(time.Now(), 0))
}

func TestView_MembershipsFilterIsOrWithinProgramArea(t *testing.T) {
	memberships := NewView(testSnapshot()).Memberships

	sel := facet.SelectionFrom(map[types.DimensionId][]string{types.DimensionProgramArea: {"arts", "fitness"}})
	assert.Equal(t, []string{"family", "senior", "teen"}, slugsOf(memberships.Query(sel, "").Items))

	sel.Toggle(types.DimensionAudience, "youth")
	assert.Equal(t, []string{"family", "teen"}, slugsOf(memberships.Query(sel, "").Items))
}

func TestView_CenterDetail(t *testing.T) {
	view := NewView(testSnapshot())

	detail, ok := view.CenterDetail("north")
	require.True(t, ok)
	assert.Equal(t, "North Center", detail.Center.Title)
	assert.Equal(t, []string{"swim", "paint"}, slugsOf(detail.Programs))
	assert.Equal(t, []string{"Aquatics", "Arts"}, detail.ProgramAreas)
	assert.Equal(t, []string{"teen", "family"}, slugsOf(detail.Memberships))

	detail, ok = view.CenterDetail("east")
	require.True(t, ok)
	assert.Empty(t, detail.Programs)
	assert.Empty(t, detail.ProgramAreas)

	_, ok = view.CenterDetail("gone")
	assert.False(t, ok)
}

func TestView_ProgramDetail(t *testing.T) {
	view := NewView(testSnapshot())

	detail, ok := view.ProgramDetail("swim")
	require.True(t, ok)
	assert.Equal(t, []string{"north", "south"}, slugsOf(detail.Centers))
	assert.Equal(t, []string{"lap"}, slugsOf(detail.RelatedPrograms))

	detail, ok = view.ProgramDetail("orphan")
	require.True(t, ok)
	assert.Empty(t, detail.Centers)

	_, ok = view.ProgramDetail("nope")
	assert.False(t, ok)
}

func TestView_MembershipsAtCenter(t *testing.T) {
	view := NewView(testSnapshot())

	center, memberships, ok := view.MembershipsAtCenter("east")
	require.True(t, ok)
	assert.Equal(t, "east", center.Slug)
	assert.Equal(t, []string{"senior"}, slugsOf(memberships))

	_, memberships, _ = view.MembershipsAtCenter("north")
	assert.Equal(t, []string{"teen", "family"}, slugsOf(memberships))

	_, _, ok = view.MembershipsAtCenter("west")
	assert.False(t, ok)
}

func TestView_MembershipsAtCenterOrderedByTierThenTitle(t *testing.T) {
	west := link("west", "West Center")
	view := NewView(&types.Snapshot{
		Centers: []*types.Center{{Slug: "west", Title: "West Center"}},
		Memberships: []*types.Membership{
			{Slug: "zeta", Title: "Zeta", Pricing: types.Pricing{Tier: "Silver"}, Centers: []types.Link{west}},
			{Slug: "beta", Title: "Beta", Pricing: types.Pricing{Tier: "Gold"}, Centers: []types.Link{west}},
			{Slug: "alpha", Title: "Alpha", Pricing: types.Pricing{Tier: "Silver"}, Centers: []types.Link{west}},
			{Slug: "plain", Title: "Plain", Centers: []types.Link{west}},
		},
	})
	_, memberships, ok := view.MembershipsAtCenter("west")
	require.True(t, ok)
	assert.Equal(t, []string{"plain", "beta", "alpha", "zeta"}, slugsOf(memberships))
	assert.Equal(t, []string{"zeta", "beta", "alpha", "plain"}, slugsOf(view.Memberships.Items()))
}

func TestView_EventsOrderedByStart(t *testing.T) {
	view := NewView(testSnapshot())

	assert.Equal(t, []string{"cleanup", "gala", "swim-meet", "open-house"}, slugsOf(view.Events.Items()))
	options := view.Events.Options()
	assert.Equal(t, []string{"Fundraiser", "Social", "Tournament"}, options[types.DimensionEventType].Slugs())
	assert.Equal(t, []string{"east", "gone", "north", "south"}, options[types.DimensionCenter].Slugs())

	sel := facet.SelectionFrom(map[types.DimensionId][]string{
		types.DimensionEventType: {"Social", "Tournament"},
		types.DimensionCenter:    {"south"},
	})
	assert.Equal(t, []string{"swim-meet", "open-house"}, slugsOf(view.Events.Query(sel, "").Items))
}

func TestView_EventDetail(t *testing.T) {
	view := NewView(testSnapshot())

	detail, ok := view.EventDetail("gala")
	require.True(t, ok)
	assert.Equal(t, "Spring Gala", detail.Event.Title)
	assert.Equal(t, []string{"north"}, slugsOf(detail.Centers))
	assert.Equal(t, []string{"cleanup"}, slugsOf(detail.RelatedEvents))

	detail, ok = view.EventDetail("open-house")
	require.True(t, ok)
	assert.Equal(t, []string{"south"}, slugsOf(detail.Centers))

	_, ok = view.EventDetail("nope")
	assert.False(t, ok)
}

func TestView_UpcomingEvents(t *testing.T) {
	view := NewView(testSnapshot())

	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"gala", "swim-meet"}, slugsOf(view.UpcomingEvents(now, 0)))
	assert.Equal(t, []string{"gala"}, slugsOf(view.UpcomingEvents(now, 1)))
	assert.Empty(t, view.UpcomingEvents(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0))
}
