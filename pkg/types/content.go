package types

import (
	"fmt"
	"strings"
	"time"
)

type Image struct {
	Url     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type Attachment struct {
	Label string `json:"label"`
	Url   string `json:"url"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type ExternalSchedule struct {
	System        string   `json:"system,omitempty"`
	ActivityCode  string   `json:"activityCode,omitempty"`
	SectionCodes  []string `json:"sectionCodes,omitempty"`
	DeepLink      string   `json:"deepLink,omitempty"`
	NextStartDate string   `json:"nextStartDate,omitempty"`
}

type Program struct {
	Slug                   string            `json:"slug"`
	Title                  string            `json:"title"`
	Summary                string            `json:"summary"`
	LongDescription        string            `json:"longDescription,omitempty"`
	Hero                   *Image            `json:"heroImage,omitempty"`
	OfferingType           []string          `json:"offeringType"`
	SkillLevel             []string          `json:"skillLevel"`
	AgeRange               *AgeRange         `json:"ageRange,omitempty"`
	Duration               string            `json:"duration,omitempty"`
	PriceFrom              *float64          `json:"priceFrom,omitempty"`
	MembershipRequirements Tags              `json:"membershipRequirements"`
	Audience               Tags              `json:"audience"`
	ProgramAreas           Tags              `json:"programAreas"`
	Sessions               Tags              `json:"sessions,omitempty"`
	Centers                []Link            `json:"centers"`
	RelatedPrograms        []Link            `json:"relatedPrograms,omitempty"`
	WhatToBring            []string          `json:"whatToBring,omitempty"`
	Benefits               []string          `json:"benefits,omitempty"`
	Instructors            []string          `json:"instructors,omitempty"`
	RegistrationSystem     []string          `json:"registrationSystem,omitempty"`
	ExternalSchedule       *ExternalSchedule `json:"externalSchedule,omitempty"`
	Attachments            []Attachment      `json:"attachments,omitempty"`
}

func (p *Program) GetSlug() string  { return p.Slug }
func (p *Program) GetTitle() string { return p.Title }

func (p *Program) GetTags(dim DimensionId) Tags {
	switch dim {
	case DimensionOfferingType:
		return EnumTags(p.OfferingType)
	case DimensionSkillLevel:
		return EnumTags(p.SkillLevel)
	case DimensionMembership:
		return p.MembershipRequirements
	case DimensionAudience:
		return p.Audience
	case DimensionProgramArea:
		return p.ProgramAreas
	case DimensionSession:
		return p.Sessions
	case DimensionCenter:
		return LinkTags(p.Centers)
	case DimensionProgram:
		return Tags{{Slug: p.Slug, Name: p.Title}}
	}
	return nil
}

func (p *Program) SearchText() string {
	return strings.ToLower(p.Title + " " + p.Summary)
}

type MapLocation struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom,omitempty"`
}

type Contact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type Center struct {
	Slug      string       `json:"slug"`
	Title     string       `json:"title"`
	Summary   string       `json:"summary,omitempty"`
	Address   string       `json:"address,omitempty"`
	Hero      *Image       `json:"heroImage,omitempty"`
	Map       *MapLocation `json:"map,omitempty"`
	Contact   Contact      `json:"contact"`
	Amenities Tags         `json:"amenities"`
	Gallery   []Image      `json:"gallery,omitempty"`
}

func (c *Center) GetSlug() string  { return c.Slug }
func (c *Center) GetTitle() string { return c.Title }

func (c *Center) GetTags(dim DimensionId) Tags {
	switch dim {
	case DimensionAmenities:
		return c.Amenities
	case DimensionCenter:
		return Tags{{Slug: c.Slug, Name: c.Title}}
	}
	return nil
}

func (c *Center) SearchText() string {
	return strings.ToLower(c.Title + " " + c.Address)
}

type Pricing struct {
	Tier       string   `json:"tier,omitempty"`
	Monthly    *float64 `json:"monthly,omitempty"`
	Annual     *float64 `json:"annual,omitempty"`
	JoiningFee *float64 `json:"joiningFee,omitempty"`
}

type Membership struct {
	Slug          string       `json:"slug"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary,omitempty"`
	Hero          *Image       `json:"heroImage,omitempty"`
	Pricing       Pricing      `json:"pricing"`
	Audience      Tags         `json:"audience"`
	ProgramAreas  Tags         `json:"programAreas"`
	Benefits      []string     `json:"benefits,omitempty"`
	Eligibility   []string     `json:"eligibility,omitempty"`
	JoinRenewLink string       `json:"joinRenewLink,omitempty"`
	Centers       []Link       `json:"centers,omitempty"`
	Attachments   []Attachment `json:"attachments,omitempty"`
}

func (m *Membership) GetSlug() string  { return m.Slug }
func (m *Membership) GetTitle() string { return m.Title }

func (m *Membership) GetTags(dim DimensionId) Tags {
	switch dim {
	case DimensionAudience:
		return m.Audience
	case DimensionProgramArea:
		return m.ProgramAreas
	case DimensionCenter:
		return LinkTags(m.Centers)
	}
	return nil
}

func (m *Membership) SearchText() string {
	return strings.ToLower(m.Title + " " + m.Summary)
}

type Event struct {
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Path             string     `json:"path,omitempty"`
	Summary          string     `json:"summary,omitempty"`
	LongDescription  string     `json:"longDescription,omitempty"`
	Hero             *Image     `json:"heroImage,omitempty"`
	Start            *time.Time `json:"startDateTime,omitempty"`
	End              *time.Time `json:"endDateTime,omitempty"`
	Cost             string     `json:"cost,omitempty"`
	RegistrationLink string     `json:"registrationLink,omitempty"`
	EventType        []string   `json:"eventType"`
	LocationOverride string     `json:"locationOverride,omitempty"`
	Centers          []Link     `json:"centers"`
	ProgramAreas     Tags       `json:"programAreas"`
	Audience         Tags       `json:"audience"`
	Sessions         Tags       `json:"sessions,omitempty"`
	Contact          Contact    `json:"contact"`
	RelatedEvents    []Link     `json:"relatedEvents,omitempty"`
}

func (e *Event) GetSlug() string  { return e.Slug }
func (e *Event) GetTitle() string { return e.Title }

func (e *Event) GetTags(dim DimensionId) Tags {
	switch dim {
	case DimensionEventType:
		return EnumTags(e.EventType)
	case DimensionCenter:
		return LinkTags(e.Centers)
	case DimensionProgramArea:
		return e.ProgramAreas
	case DimensionAudience:
		return e.Audience
	case DimensionSession:
		return e.Sessions
	}
	return nil
}

func (e *Event) SearchText() string {
	return strings.ToLower(e.Title + " " + e.Summary + " " + e.LocationOverride)
}

// EventPath is the dated page path of an event, /events/yyyy/mm/slug.
// Events without a start have no dated page.
func EventPath(slug string, start *time.Time) string {
	if start == nil || slug == "" {
		return ""
	}
	return fmt.Sprintf("/events/%04d/%02d/%s", start.Year(), int(start.Month()), slug)
}

// EndsAfter reports whether the event is still running at t. An event
// without an end is treated as ending when it starts.
func (e *Event) EndsAfter(t time.Time) bool {
	switch {
	case e.End != nil:
		return !e.End.Before(t)
	case e.Start != nil:
		return !e.Start.Before(t)
	}
	return false
}

// Snapshot is one consistent load of every collection the site explores.
type Snapshot struct {
	Programs     []*Program    `json:"programs"`
	Centers      []*Center     `json:"centers"`
	Memberships  []*Membership `json:"memberships"`
	Events       []*Event      `json:"events"`
	Audiences    Tags          `json:"audiences,omitempty"`
	ProgramAreas Tags          `json:"programAreas,omitempty"`
	LoadedAt     time.Time     `json:"loadedAt"`
}
