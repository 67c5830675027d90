package types

import "strings"

// Tag is one value of a taxonomy, identified by its slug.
type Tag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

func (t Tag) IsValid() bool {
	return t.Slug != "" && t.Name != ""
}

type Tags []Tag

func (t Tags) Slugs() []string {
	ret := make([]string, 0, len(t))
	for _, tag := range t {
		ret = append(ret, tag.Slug)
	}
	return ret
}

func (t Tags) Names() []string {
	ret := make([]string, 0, len(t))
	for _, tag := range t {
		ret = append(ret, tag.Name)
	}
	return ret
}

func (t Tags) HasSlug(slug string) bool {
	for _, tag := range t {
		if tag.Slug == slug {
			return true
		}
	}
	return false
}

// EnumTags exposes plain select values as tags where slug and name are the value itself.
func EnumTags(values []string) Tags {
	if len(values) == 0 {
		return nil
	}
	ret := make(Tags, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		ret = append(ret, Tag{Slug: v, Name: v})
	}
	return ret
}

// Link points at another record by slug.
type Link struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func (l Link) Tag() Tag {
	return Tag{Slug: l.Slug, Name: l.Title}
}

func LinkTags(links []Link) Tags {
	if len(links) == 0 {
		return nil
	}
	ret := make(Tags, 0, len(links))
	for _, l := range links {
		ret = append(ret, l.Tag())
	}
	return ret
}
