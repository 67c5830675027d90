package facet

import "github.com/matst80/center-finder/pkg/types"

// Dimension is one filterable axis of a collection.
type Dimension interface {
	Id() types.DimensionId
	// Values returns the values of item in the space selections are compared in.
	Values(item types.Item) []string
	// Resolve maps selected option slugs into that space. Selections that
	// cannot be resolved are left out and can never match.
	Resolve(selected []string) []string
}

// FieldDimension matches on tag slugs stored directly on the item.
type FieldDimension types.DimensionId

func Field(id types.DimensionId) FieldDimension {
	return FieldDimension(id)
}

func (d FieldDimension) Id() types.DimensionId {
	return types.DimensionId(d)
}

func (d FieldDimension) Values(item types.Item) []string {
	return item.GetTags(d.Id()).Slugs()
}

func (d FieldDimension) Resolve(selected []string) []string {
	return selected
}

// JoinedValues matches on tag names propagated through a derived join keyed
// by the item slug. Selected slugs are translated to names first.
type JoinedValues struct {
	id     types.DimensionId
	join   Join
	lookup *Lookup
}

func NewJoinedValues(id types.DimensionId, join Join, lookup *Lookup) *JoinedValues {
	return &JoinedValues{id: id, join: join, lookup: lookup}
}

func (d *JoinedValues) Id() types.DimensionId {
	return d.id
}

func (d *JoinedValues) Values(item types.Item) []string {
	return d.join.Get(item.GetSlug()).Values
}

func (d *JoinedValues) Resolve(selected []string) []string {
	return d.lookup.Names(selected)
}

// JoinedChildren matches on the slugs of the children linking to the item.
type JoinedChildren struct {
	id   types.DimensionId
	join Join
}

func NewJoinedChildren(id types.DimensionId, join Join) *JoinedChildren {
	return &JoinedChildren{id: id, join: join}
}

func (d *JoinedChildren) Id() types.DimensionId {
	return d.id
}

func (d *JoinedChildren) Values(item types.Item) []string {
	return d.join.Get(item.GetSlug()).Children.Slugs()
}

func (d *JoinedChildren) Resolve(selected []string) []string {
	return selected
}
