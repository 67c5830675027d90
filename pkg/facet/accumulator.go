package facet

// KeyedSet collects values keyed by an identity function. The first value
// added for a key wins, later values with the same key are ignored.
type KeyedSet[V any] struct {
	key    func(V) string
	index  map[string]int
	values []V
}

func NewKeyedSet[V any](key func(V) string) *KeyedSet[V] {
	return &KeyedSet[V]{
		key:   key,
		index: make(map[string]int),
	}
}

// Add returns the number of values that were new.
func (s *KeyedSet[V]) Add(values ...V) int {
	added := 0
	for _, v := range values {
		k := s.key(v)
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = len(s.values)
		s.values = append(s.values, v)
		added++
	}
	return added
}

func (s *KeyedSet[V]) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

func (s *KeyedSet[V]) Get(key string) (V, bool) {
	if i, ok := s.index[key]; ok {
		return s.values[i], true
	}
	var zero V
	return zero, false
}

func (s *KeyedSet[V]) Len() int {
	return len(s.values)
}

// Values returns a copy in insertion order.
func (s *KeyedSet[V]) Values() []V {
	ret := make([]V, len(s.values))
	copy(ret, s.values)
	return ret
}

func (s *KeyedSet[V]) Keys() []string {
	ret := make([]string, 0, len(s.values))
	for _, v := range s.values {
		ret = append(ret, s.key(v))
	}
	return ret
}

func identity(s string) string { return s }

// UniqueStrings keeps the first occurrence of every value.
func UniqueStrings(values []string) []string {
	set := NewKeyedSet(identity)
	set.Add(values...)
	return set.Values()
}
