package index

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/types"
)

const (
	ProgramsCollection    = "programs"
	CentersCollection     = "centers"
	MembershipsCollection = "memberships"
	EventsCollection      = "events"
)

var (
	ProgramDimensions = []types.DimensionId{
		types.DimensionOfferingType,
		types.DimensionCenter,
		types.DimensionProgramArea,
		types.DimensionSkillLevel,
		types.DimensionMembership,
		types.DimensionAudience,
	}
	MembershipDimensions = []types.DimensionId{
		types.DimensionAudience,
		types.DimensionProgramArea,
		types.DimensionCenter,
	}
	EventDimensions = []types.DimensionId{
		types.DimensionEventType,
		types.DimensionCenter,
		types.DimensionProgramArea,
		types.DimensionAudience,
		types.DimensionSession,
	}
)

func fields(ids []types.DimensionId) []facet.Dimension {
	ret := make([]facet.Dimension, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, facet.Field(id))
	}
	return ret
}

func sortedCopy(tags types.Tags) types.Tags {
	ret := make(types.Tags, 0, len(tags))
	for _, t := range tags {
		if t.IsValid() {
			ret = append(ret, t)
		}
	}
	facet.SortTags(ret)
	return ret
}

// View is an immutable, fully derived read model of one snapshot.
type View struct {
	Programs     *Collection[*types.Program]
	Centers      *Collection[*types.Center]
	Memberships  *Collection[*types.Membership]
	Events       *Collection[*types.Event]
	CenterJoin   facet.Join
	ProgramAreas *facet.Lookup
	Audiences    types.Tags
	LoadedAt     time.Time
}

func NewView(s *types.Snapshot) *View {
	if s == nil {
		s = &types.Snapshot{}
	}
	programOptions := facet.BuildOptions(s.Programs, ProgramDimensions...)
	programs := NewCollection(ProgramsCollection, s.Programs, programOptions, fields(ProgramDimensions)...)

	// program areas seen on programs come first, the taxonomy only fills gaps
	lookup := facet.NewLookup(append(append(types.Tags{}, programOptions[types.DimensionProgramArea]...), s.ProgramAreas...))
	join := facet.DeriveJoin(s.Programs, types.DimensionCenter, types.DimensionProgramArea)

	centerOptions := facet.BuildOptions(s.Centers, types.DimensionAmenities).Merge(facet.OptionSet{
		types.DimensionProgramArea: programOptions[types.DimensionProgramArea],
		types.DimensionProgram:     facet.BuildOptions(s.Programs, types.DimensionProgram)[types.DimensionProgram],
	})
	centers := NewCollection(CentersCollection, s.Centers, centerOptions,
		facet.Field(types.DimensionAmenities),
		facet.NewJoinedValues(types.DimensionProgramArea, join, lookup),
		facet.NewJoinedChildren(types.DimensionProgram, join),
	)

	membershipOptions := facet.BuildOptions(s.Memberships, MembershipDimensions...)
	taxonomies := facet.OptionSet{}
	if len(s.Audiences) > 0 {
		taxonomies[types.DimensionAudience] = sortedCopy(s.Audiences)
	}
	if len(s.ProgramAreas) > 0 {
		taxonomies[types.DimensionProgramArea] = sortedCopy(s.ProgramAreas)
	}
	memberships := NewCollection(MembershipsCollection, s.Memberships, membershipOptions.Merge(taxonomies), fields(MembershipDimensions)...)

	events := byStart(s.Events)
	eventCollection := NewCollection(EventsCollection, events, facet.BuildOptions(events, EventDimensions...), fields(EventDimensions)...)

	return &View{
		Programs:     programs,
		Centers:      centers,
		Memberships:  memberships,
		Events:       eventCollection,
		CenterJoin:   join,
		ProgramAreas: lookup,
		Audiences:    s.Audiences,
		LoadedAt:     s.LoadedAt,
	}
}

func (v *View) Counts() map[string]int {
	return map[string]int{
		ProgramsCollection:    v.Programs.Len(),
		CentersCollection:     v.Centers.Len(),
		MembershipsCollection: v.Memberships.Len(),
		EventsCollection:      v.Events.Len(),
	}
}

// byStart orders events by start time, undated events last.
func byStart(events []*types.Event) []*types.Event {
	ret := slices.Clone(events)
	slices.SortStableFunc(ret, func(a, b *types.Event) int {
		switch {
		case a.Start == nil && b.Start == nil:
			return 0
		case a.Start == nil:
			return 1
		case b.Start == nil:
			return -1
		}
		return a.Start.Compare(*b.Start)
	})
	return ret
}

type CenterDetail struct {
	Center       *types.Center       `json:"center"`
	Programs     []*types.Program    `json:"programs"`
	ProgramAreas []string            `json:"programAreas"`
	Memberships  []*types.Membership `json:"memberships"`
}

func (v *View) CenterDetail(slug string) (*CenterDetail, bool) {
	center, ok := v.Centers.Get(slug)
	if !ok {
		return nil, false
	}
	entry := v.CenterJoin.Get(slug)
	programs := make([]*types.Program, 0, len(entry.Children))
	for _, child := range entry.Children {
		if p, found := v.Programs.Get(child.Slug); found {
			programs = append(programs, p)
		}
	}
	_, memberships, _ := v.MembershipsAtCenter(slug)
	return &CenterDetail{
		Center:       center,
		Programs:     programs,
		ProgramAreas: entry.Values,
		Memberships:  memberships,
	}, true
}

type ProgramDetail struct {
	Program         *types.Program   `json:"program"`
	Centers         []*types.Center  `json:"centers"`
	RelatedPrograms []*types.Program `json:"relatedPrograms"`
}

func (v *View) ProgramDetail(slug string) (*ProgramDetail, bool) {
	program, ok := v.Programs.Get(slug)
	if !ok {
		return nil, false
	}
	ret := &ProgramDetail{
		Program:         program,
		Centers:         make([]*types.Center, 0, len(program.Centers)),
		RelatedPrograms: make([]*types.Program, 0, len(program.RelatedPrograms)),
	}
	for _, link := range program.Centers {
		if c, found := v.Centers.Get(link.Slug); found {
			ret.Centers = append(ret.Centers, c)
		}
	}
	for _, link := range program.RelatedPrograms {
		if p, found := v.Programs.Get(link.Slug); found && p.Slug != slug {
			ret.RelatedPrograms = append(ret.RelatedPrograms, p)
		}
	}
	return ret, true
}

// MembershipsAtCenter lists the memberships honoured at a center ordered by
// pricing tier, then title. Memberships without a tier come first.
func (v *View) MembershipsAtCenter(slug string) (*types.Center, []*types.Membership, bool) {
	center, ok := v.Centers.Get(slug)
	if !ok {
		return nil, nil, false
	}
	sel := facet.NewSelection()
	sel.Toggle(types.DimensionCenter, slug)
	memberships := slices.Clone(facet.Filter(v.Memberships.Items(), v.Memberships.Dimensions(), sel))
	slices.SortStableFunc(memberships, func(a, b *types.Membership) int {
		return cmp.Or(
			strings.Compare(a.Pricing.Tier, b.Pricing.Tier),
			strings.Compare(a.Title, b.Title),
		)
	})
	return center, memberships, true
}

type EventDetail struct {
	Event         *types.Event    `json:"event"`
	Centers       []*types.Center `json:"centers"`
	RelatedEvents []*types.Event  `json:"relatedEvents"`
}

func (v *View) EventDetail(slug string) (*EventDetail, bool) {
	event, ok := v.Events.Get(slug)
	if !ok {
		return nil, false
	}
	ret := &EventDetail{
		Event:         event,
		Centers:       make([]*types.Center, 0, len(event.Centers)),
		RelatedEvents: make([]*types.Event, 0, len(event.RelatedEvents)),
	}
	for _, link := range event.Centers {
		if c, found := v.Centers.Get(link.Slug); found {
			ret.Centers = append(ret.Centers, c)
		}
	}
	for _, link := range event.RelatedEvents {
		if e, found := v.Events.Get(link.Slug); found && e.Slug != slug {
			ret.RelatedEvents = append(ret.RelatedEvents, e)
		}
	}
	return ret, true
}

// UpcomingEvents lists events still running at now in start order, at most
// limit of them. A limit of zero or less lists all.
func (v *View) UpcomingEvents(now time.Time, limit int) []*types.Event {
	ret := make([]*types.Event, 0)
	for _, e := range v.Events.Items() {
		if limit > 0 && len(ret) >= limit {
			break
		}
		if e.EndsAfter(now) {
			ret = append(ret, e)
		}
	}
	return ret
}
