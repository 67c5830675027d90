package types

type DimensionId string

const (
	DimensionAmenities    DimensionId = "amenities"
	DimensionProgramArea  DimensionId = "programArea"
	DimensionAudience     DimensionId = "audience"
	DimensionCenter       DimensionId = "center"
	DimensionMembership   DimensionId = "membership"
	DimensionOfferingType DimensionId = "offeringType"
	DimensionSkillLevel   DimensionId = "skillLevel"
	DimensionProgram      DimensionId = "program"
	DimensionSession      DimensionId = "session"
	DimensionEventType    DimensionId = "eventType"
)

// Item is the capability every content record exposes to the facet engine.
// GetTags returns nil for dimensions the record does not carry.
type Item interface {
	GetSlug() string
	GetTitle() string
	GetTags(dim DimensionId) Tags
	SearchText() string
}
