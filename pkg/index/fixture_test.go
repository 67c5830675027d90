package index

import (
	"time"

	"github.com/matst80/center-finder/pkg/types"
)

func tag(slug, name string) types.Tag {
	return types.Tag{Slug: slug, Name: name}
}

func link(slug, title string) types.Link {
	return types.Link{Slug: slug, Title: title}
}

var (
	aquatics = tag("aquatics", "Aquatics")
	fitness  = tag("fitness", "Fitness")
	arts     = tag("arts", "Arts")
	youth    = tag("youth", "Youth")
	adults   = tag("adults", "Adults")
	north    = link("north", "North Center")
	south    = link("south", "South Center")
	east     = link("east", "East Center")
)

func testSnapshot() *types.Snapshot {
	return &types.Snapshot{
		Programs: []*types.Program{
			{Slug: "swim", Title: "Junior Swim", Summary: "Learn to swim", OfferingType: []string{"Class"}, SkillLevel: []string{"Beginner"},
				ProgramAreas: types.Tags{aquatics}, Audience: types.Tags{youth}, Centers: []types.Link{north, south},
				RelatedPrograms: []types.Link{link("lap", "Lap Swim"), link("missing", "Missing")}},
			{Slug: "lap", Title: "Lap Swim", Summary: "Open lanes", OfferingType: []string{"Drop-in"},
				ProgramAreas: types.Tags{aquatics, fitness}, Audience: types.Tags{adults}, Centers: []types.Link{south}},
			{Slug: "paint", Title: "Painting", Summary: "Watercolor basics", OfferingType: []string{"Class"}, SkillLevel: []string{"Advanced"},
				ProgramAreas: types.Tags{arts}, Audience: types.Tags{adults, youth}, Centers: []types.Link{north}},
			{Slug: "orphan", Title: "Orphan Program", ProgramAreas: types.Tags{fitness}, Centers: []types.Link{link("gone", "Gone")}},
		},
		Centers: []*types.Center{
			{Slug: "north", Title: "North Center", Address: "1 North Rd", Amenities: types.Tags{tag("pool", "Pool"), tag("studio", "Studio")}},
			{Slug: "south", Title: "South Center", Address: "2 South Rd", Amenities: types.Tags{tag("pool", "Pool")}},
			{Slug: "east", Title: "East Center", Address: "3 East Rd", Amenities: types.Tags{tag("gym", "Gym")}},
		},
		Memberships: []*types.Membership{
			{Slug: "family", Title: "Family", Pricing: types.Pricing{Tier: "Gold"}, Audience: types.Tags{youth, adults}, ProgramAreas: types.Tags{aquatics, arts}, Centers: []types.Link{north, south}},
			{Slug: "senior", Title: "Senior", Audience: types.Tags{adults}, ProgramAreas: types.Tags{fitness}, Centers: []types.Link{east}},
			{Slug: "teen", Title: "Teen", Pricing: types.Pricing{Tier: "Bronze"}, Audience: types.Tags{youth}, ProgramAreas: types.Tags{fitness, aquatics}, Centers: []types.Link{north}},
		},
		Events: []*types.Event{
			{Slug: "gala", Title: "Spring Gala", EventType: []string{"Fundraiser"}, Start: at(2025, 3, 7), End: at(2025, 3, 8),
				Centers: []types.Link{north}, Audience: types.Tags{adults}, RelatedEvents: []types.Link{link("cleanup", "Park Cleanup"), link("gala", "Spring Gala")}},
			{Slug: "open-house", Title: "Open House", EventType: []string{"Social"}, Centers: []types.Link{south, link("gone", "Gone")}},
			{Slug: "cleanup", Title: "Park Cleanup", EventType: []string{"Social"}, Start: at(2025, 1, 12),
				Centers: []types.Link{east}, ProgramAreas: types.Tags{tag("nature", "Nature")}, Audience: types.Tags{youth}},
			{Slug: "swim-meet", Title: "Swim Meet", EventType: []string{"Tournament"}, Start: at(2025, 6, 1),
				Centers: []types.Link{north, south}, ProgramAreas: types.Tags{aquatics}, Audience: types.Tags{youth}},
		},
		Audiences:    types.Tags{youth, adults, tag("seniors", "Seniors")},
		ProgramAreas: types.Tags{aquatics, fitness, arts, tag("nature", "Nature")},
		LoadedAt:     time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func at(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
	return &t
}

func slugsOf[T types.Item](items []T) []string {
	ret := make([]string, 0, len(items))
	for _, item := range items {
		ret = append(ret, item.GetSlug())
	}
	return ret
}
