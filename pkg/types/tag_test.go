package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumTags_SkipsBlankValues(t *testing.T) {
	tags := EnumTags([]string{"class", " ", "camp "})
	assert.Equal(t, Tags{{Slug: "class", Name: "class"}, {Slug: "camp", Name: "camp"}}, tags)
	assert.Nil(t, EnumTags(nil))
}

func TestProgram_GetTags(t *testing.T) {
	p := &Program{
		Slug:         "swim-basics",
		Title:        "Swim Basics",
		OfferingType: []string{"class"},
		Centers:      []Link{{Slug: "north", Title: "North Center"}},
		ProgramAreas: Tags{{Slug: "aquatics", Name: "Aquatics"}},
	}

	assert.Equal(t, []string{"class"}, p.GetTags(DimensionOfferingType).Slugs())
	assert.Equal(t, Tags{{Slug: "north", Name: "North Center"}}, p.GetTags(DimensionCenter))
	assert.Equal(t, []string{"Aquatics"}, p.GetTags(DimensionProgramArea).Names())
	assert.Equal(t, Tags{{Slug: "swim-basics", Name: "Swim Basics"}}, p.GetTags(DimensionProgram))
	assert.Nil(t, p.GetTags(DimensionAmenities))
	assert.Nil(t, p.GetTags(DimensionSkillLevel))
}

func TestCenter_GetTagsAbsentFields(t *testing.T) {
	c := &Center{Slug: "north"}
	assert.Nil(t, c.GetTags(DimensionAmenities))
	assert.Nil(t, c.GetTags(DimensionProgramArea))
}

func TestTag_IsValid(t *testing.T) {
	assert.True(t, Tag{Slug: "a", Name: "A"}.IsValid())
	assert.False(t, Tag{Slug: "a"}.IsValid())
	assert.False(t, Tag{Name: "A"}.IsValid())
}
