package facet

import "github.com/matst80/center-finder/pkg/types"

// Lookup translates between option slugs and display names. It is built once
// per collection load; the first pairing seen for a slug or name wins.
type Lookup struct {
	names map[string]string
	slugs map[string]string
}

func NewLookup(tags types.Tags) *Lookup {
	l := &Lookup{
		names: make(map[string]string, len(tags)),
		slugs: make(map[string]string, len(tags)),
	}
	for _, t := range tags {
		if !t.IsValid() {
			continue
		}
		if _, ok := l.names[t.Slug]; !ok {
			l.names[t.Slug] = t.Name
		}
		if _, ok := l.slugs[t.Name]; !ok {
			l.slugs[t.Name] = t.Slug
		}
	}
	return l
}

func (l *Lookup) Name(slug string) (string, bool) {
	if l == nil {
		return "", false
	}
	name, ok := l.names[slug]
	return name, ok
}

func (l *Lookup) Slug(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	slug, ok := l.slugs[name]
	return slug, ok
}

// Names translates slugs to names, dropping slugs without a known name.
func (l *Lookup) Names(slugs []string) []string {
	ret := make([]string, 0, len(slugs))
	for _, s := range slugs {
		if name, ok := l.Name(s); ok {
			ret = append(ret, name)
		}
	}
	return ret
}

func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}
