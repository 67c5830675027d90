package facet

import (
	"maps"
	"slices"

	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"github.com/matst80/center-finder/pkg/types"
)

// Selection is the set of chosen values per dimension. An empty or missing
// set leaves the dimension unconstrained.
type Selection map[types.DimensionId]map[string]struct{}

func NewSelection() Selection {
	return make(Selection)
}

// SelectionFrom builds a selection from decoded request values, blank values are skipped.
func SelectionFrom(values map[types.DimensionId][]string) Selection {
	s := NewSelection()
	for dim, vs := range values {
		for _, v := range vs {
			if v == "" {
				continue
			}
			set, ok := s[dim]
			if !ok {
				set = make(map[string]struct{})
				s[dim] = set
			}
			set[v] = struct{}{}
		}
	}
	return s
}

// Toggle adds value when absent and removes it when present. It reports
// whether the value is selected afterwards. A nil selection is allocated
// on first use.
func (s *Selection) Toggle(dim types.DimensionId, value string) bool {
	if *s == nil {
		*s = NewSelection()
	}
	set, ok := (*s)[dim]
	if !ok {
		set = make(map[string]struct{})
		(*s)[dim] = set
	}
	if _, selected := set[value]; selected {
		delete(set, value)
		if len(set) == 0 {
			delete(*s, dim)
		}
		return false
	}
	set[value] = struct{}{}
	return true
}

func (s Selection) ClearAll() {
	clear(s)
}

func (s Selection) Has(dim types.DimensionId, value string) bool {
	_, ok := s[dim][value]
	return ok
}

func (s Selection) IsActive(dim types.DimensionId) bool {
	return len(s[dim]) > 0
}

func (s Selection) IsEmpty() bool {
	for _, set := range s {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Values returns the selected values of dim in sorted order.
func (s Selection) Values(dim types.DimensionId) []string {
	ret := slices.Collect(maps.Keys(s[dim]))
	slices.Sort(ret)
	return ret
}

func (s Selection) Dimensions() []types.DimensionId {
	ret := make([]types.DimensionId, 0, len(s))
	for dim, set := range s {
		if len(set) > 0 {
			ret = append(ret, dim)
		}
	}
	slices.Sort(ret)
	return ret
}

func (s Selection) Clone() Selection {
	ret := make(Selection, len(s))
	for dim, set := range s {
		if len(set) > 0 {
			ret[dim] = maps.Clone(set)
		}
	}
	return ret
}

func (s Selection) Equal(other Selection) bool {
	dims := s.Dimensions()
	if !slices.Equal(dims, other.Dimensions()) {
		return false
	}
	for _, dim := range dims {
		if !maps.Equal(s[dim], other[dim]) {
			return false
		}
	}
	return true
}

func (s Selection) toMap() map[types.DimensionId][]string {
	ret := make(map[types.DimensionId][]string, len(s))
	for _, dim := range s.Dimensions() {
		ret[dim] = s.Values(dim)
	}
	return ret
}

func (s Selection) MarshalJSON() ([]byte, error) {
	return jsoncompat.Marshal(s.toMap())
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	values := map[types.DimensionId][]string{}
	if err := jsoncompat.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = SelectionFrom(values)
	return nil
}
