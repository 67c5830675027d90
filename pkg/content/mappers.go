package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/matst80/center-finder/pkg/types"
	"github.com/tidwall/gjson"
)

// splitLines turns a multi-line text field into trimmed non-empty lines.
func splitLines(v gjson.Result) []string {
	if v.Type != gjson.String {
		return nil
	}
	ret := make([]string, 0)
	for _, line := range strings.Split(v.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ret = append(ret, line)
		}
	}
	return ret
}

func number(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

// stringList accepts both a list of strings and a single string.
func stringList(v gjson.Result) []string {
	if v.IsArray() {
		ret := make([]string, 0)
		for _, s := range v.Array() {
			if s.Type == gjson.String && strings.TrimSpace(s.String()) != "" {
				ret = append(ret, strings.TrimSpace(s.String()))
			}
		}
		return ret
	}
	if v.Type == gjson.String && strings.TrimSpace(v.String()) != "" {
		return []string{strings.TrimSpace(v.String())}
	}
	return nil
}

func mapTags(connection gjson.Result) types.Tags {
	ret := make(types.Tags, 0)
	connection.Get("nodes").ForEach(func(_, n gjson.Result) bool {
		tag := types.Tag{Slug: n.Get("slug").String(), Name: n.Get("name").String()}
		if tag.IsValid() {
			ret = append(ret, tag)
		}
		return true
	})
	return ret
}

func mapLinks(connection gjson.Result) []types.Link {
	ret := make([]types.Link, 0)
	connection.Get("nodes").ForEach(func(_, n gjson.Result) bool {
		link := types.Link{Slug: n.Get("slug").String(), Title: n.Get("title").String()}
		if link.Slug != "" && link.Title != "" {
			ret = append(ret, link)
		}
		return true
	})
	return ret
}

// connectionNames reads either a taxonomy connection or a plain list of values.
func connectionNames(v gjson.Result) []string {
	if v.Get("nodes").Exists() {
		return mapTags(v).Names()
	}
	return stringList(v)
}

func mapImage(node gjson.Result) *types.Image {
	if !node.Exists() || node.Get("sourceUrl").String() == "" {
		return nil
	}
	return &types.Image{
		Url:    node.Get("sourceUrl").String(),
		Alt:    node.Get("altText").String(),
		Width:  int(node.Get("mediaDetails.width").Int()),
		Height: int(node.Get("mediaDetails.height").Int()),
	}
}

const maxAttachments = 5

func mapAttachments(group gjson.Result) []types.Attachment {
	ret := make([]types.Attachment, 0)
	for i := 1; i <= maxAttachments; i++ {
		key := fmt.Sprintf("attachment%d", i)
		g := group.Get(key)
		label := g.Get(key + "Label").String()
		url := g.Get(key + "File.node.mediaItemUrl").String()
		if label != "" && url != "" {
			ret = append(ret, types.Attachment{Label: label, Url: url})
		}
	}
	return ret
}

func mapGallery(group gjson.Result) []types.Image {
	ret := make([]types.Image, 0)
	for i := 1; i <= 4; i++ {
		key := fmt.Sprintf("image%d", i)
		g := group.Get(key)
		if img := mapImage(g.Get(key + "Image.node")); img != nil {
			img.Caption = g.Get(key + "Cta").String()
			ret = append(ret, *img)
		}
	}
	return ret
}

func MapProgram(node gjson.Result) *types.Program {
	f := node.Get("programFields")
	p := &types.Program{
		Slug:                   node.Get("slug").String(),
		Title:                  node.Get("title").String(),
		Summary:                f.Get("summary").String(),
		LongDescription:        f.Get("longDescription").String(),
		Hero:                   mapImage(node.Get("featuredImage.node")),
		OfferingType:           stringList(f.Get("offeringType")),
		SkillLevel:             stringList(f.Get("skillLevel")),
		Duration:               f.Get("duration").String(),
		PriceFrom:              number(f.Get("priceFrom")),
		MembershipRequirements: mapTags(f.Get("membershipRequirements")),
		Audience:               mapTags(f.Get("audience")),
		ProgramAreas:           mapTags(f.Get("programArea")),
		Sessions:               mapTags(f.Get("session")),
		Centers:                mapLinks(f.Get("center")),
		RelatedPrograms:        mapLinks(f.Get("relatedPrograms")),
		WhatToBring:            splitLines(f.Get("whatToBring")),
		Benefits:               splitLines(f.Get("benefits")),
		Instructors:            splitLines(f.Get("instructors")),
		RegistrationSystem:     connectionNames(f.Get("registrationSystem")),
		Attachments:            mapAttachments(f.Get("attachments")),
	}
	if age := f.Get("ageRange"); age.IsObject() {
		p.AgeRange = &types.AgeRange{Min: int(age.Get("min").Int()), Max: int(age.Get("max").Int())}
	}
	if sched := f.Get("externalSchedule"); sched.IsObject() {
		p.ExternalSchedule = &types.ExternalSchedule{
			ActivityCode:  sched.Get("activityCode").String(),
			SectionCodes:  stringList(sched.Get("sectionCodes")),
			DeepLink:      sched.Get("deepLink").String(),
			NextStartDate: sched.Get("nextStartDate").String(),
		}
		if len(p.RegistrationSystem) > 0 {
			p.ExternalSchedule.System = p.RegistrationSystem[0]
		}
	}
	return p
}

func MapCenter(node gjson.Result) *types.Center {
	f := node.Get("centersFields")
	c := &types.Center{
		Slug:    node.Get("slug").String(),
		Title:   node.Get("title").String(),
		Summary: f.Get("summary").String(),
		Address: f.Get("address").String(),
		Hero:    mapImage(node.Get("featuredImage.node")),
		Contact: types.Contact{
			Phone: f.Get("contactInfo.contactPhone").String(),
			Email: f.Get("contactInfo.contactEmail").String(),
		},
		Amenities: mapTags(f.Get("amenities")),
		Gallery:   mapGallery(f.Get("imagesforcarousel")),
	}
	if m := f.Get("map"); m.Get("lat").Type == gjson.Number && m.Get("lng").Type == gjson.Number {
		c.Map = &types.MapLocation{
			Lat:  m.Get("lat").Float(),
			Lng:  m.Get("lng").Float(),
			Zoom: int(m.Get("zoom").Int()),
		}
	}
	return c
}

func MapMembership(node gjson.Result) *types.Membership {
	f := node.Get("membershipFields")
	pricing := f.Get("pricingTable")
	return &types.Membership{
		Slug:    node.Get("slug").String(),
		Title:   node.Get("title").String(),
		Summary: f.Get("summary").String(),
		Hero:    mapImage(node.Get("featuredImage.node")),
		Pricing: types.Pricing{
			Tier:       pricing.Get("tier").String(),
			Monthly:    number(pricing.Get("monthly")),
			Annual:     number(pricing.Get("annual")),
			JoiningFee: number(pricing.Get("joiningFee")),
		},
		Audience:      mapTags(f.Get("audience")),
		ProgramAreas:  mapTags(f.Get("programArea")),
		Benefits:      splitLines(f.Get("benefits")),
		Eligibility:   splitLines(f.Get("eligibility")),
		JoinRenewLink: f.Get("joinRenewLink").String(),
		Centers:       mapLinks(f.Get("centers")),
		Attachments:   mapAttachments(f.Get("attachments")),
	}
}

// centerLinks accepts a center connection, a single center or a list of centers.
func centerLinks(v gjson.Result) []types.Link {
	var nodes []gjson.Result
	switch {
	case v.IsArray():
		nodes = v.Array()
	case v.Get("nodes").IsArray():
		nodes = v.Get("nodes").Array()
	case v.IsObject():
		nodes = []gjson.Result{v}
	}
	ret := make([]types.Link, 0, len(nodes))
	for _, n := range nodes {
		title := n.Get("title").String()
		if title == "" {
			title = n.Get("name").String()
		}
		if slug := n.Get("slug").String(); slug != "" && title != "" {
			ret = append(ret, types.Link{Slug: slug, Title: title})
		}
	}
	return ret
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"20060102",
}

func dateTime(v gjson.Result) *time.Time {
	raw := strings.TrimSpace(v.String())
	if raw == "" {
		return nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func MapEvent(node gjson.Result) *types.Event {
	f := node.Get("eventFields")
	e := &types.Event{
		Slug:             node.Get("slug").String(),
		Title:            node.Get("title").String(),
		Summary:          f.Get("summary").String(),
		LongDescription:  f.Get("longDescription").String(),
		Hero:             mapImage(node.Get("featuredImage.node")),
		Start:            dateTime(f.Get("startDateTime")),
		End:              dateTime(f.Get("endDateTime")),
		Cost:             f.Get("cost").String(),
		RegistrationLink: f.Get("registrationLink").String(),
		EventType:        stringList(f.Get("eventType")),
		LocationOverride: f.Get("locationOverride").String(),
		Centers:          centerLinks(f.Get("center")),
		ProgramAreas:     mapTags(f.Get("programArea")),
		Audience:         mapTags(f.Get("audience")),
		Sessions:         mapTags(f.Get("session")),
		Contact: types.Contact{
			Name:  f.Get("contactName").String(),
			Phone: f.Get("contactPhone").String(),
			Email: f.Get("contactEmail").String(),
		},
		RelatedEvents: mapLinks(f.Get("relatedEvents")),
	}
	e.Path = types.EventPath(e.Slug, e.Start)
	return e
}

// mapNodes maps every node of a connection, dropping nodes without a slug.
func mapNodes[T types.Item](connection gjson.Result, mapper func(gjson.Result) T) []T {
	ret := make([]T, 0)
	connection.Get("nodes").ForEach(func(_, n gjson.Result) bool {
		if !n.IsObject() {
			return true
		}
		item := mapper(n)
		if item.GetSlug() != "" {
			ret = append(ret, item)
		}
		return true
	})
	return ret
}
