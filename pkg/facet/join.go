package facet

import "github.com/matst80/center-finder/pkg/types"

// JoinEntry is what a parent accumulates from the children linking to it.
type JoinEntry struct {
	Children types.Tags `json:"children"`
	Values   []string   `json:"values"`
}

// Join is a materialized parent slug -> JoinEntry view over a child collection.
type Join map[string]*JoinEntry

var emptyEntry = &JoinEntry{}

type joinBuilder struct {
	children *KeyedSet[types.Tag]
	values   *KeyedSet[string]
}

// DeriveJoin inverts the child -> parent relation found in the link dimension
// of every child. Each parent collects the linking children (unique by slug)
// and the names of the children's propagate tags (unique by value).
// Parents are not required to exist in any collection.
func DeriveJoin[T types.Item](children []T, link types.DimensionId, propagate types.DimensionId) Join {
	builders := make(map[string]*joinBuilder)
	order := make([]string, 0)
	for _, child := range children {
		parents := child.GetTags(link)
		if len(parents) == 0 {
			continue
		}
		values := make([]string, 0)
		for _, t := range child.GetTags(propagate) {
			if t.Name != "" {
				values = append(values, t.Name)
			}
		}
		self := types.Tag{Slug: child.GetSlug(), Name: child.GetTitle()}
		for _, parent := range parents {
			if parent.Slug == "" {
				continue
			}
			b, ok := builders[parent.Slug]
			if !ok {
				b = &joinBuilder{
					children: NewKeyedSet(tagSlug),
					values:   NewKeyedSet(identity),
				}
				builders[parent.Slug] = b
				order = append(order, parent.Slug)
			}
			b.children.Add(self)
			b.values.Add(values...)
		}
	}

	ret := make(Join, len(builders))
	for _, slug := range order {
		b := builders[slug]
		ret[slug] = &JoinEntry{
			Children: b.children.Values(),
			Values:   b.values.Values(),
		}
	}
	return ret
}

// Get never returns nil, unknown parents get an empty entry.
func (j Join) Get(slug string) *JoinEntry {
	if e, ok := j[slug]; ok {
		return e
	}
	return emptyEntry
}
