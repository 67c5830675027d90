package server

import (
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/index"
	"github.com/matst80/center-finder/pkg/types"
)

type ExploreResponse struct {
	Collection string          `json:"collection"`
	Items      any             `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	Options    facet.OptionSet `json:"options"`
	Counts     index.Counts    `json:"counts"`
	Selection  facet.Selection `json:"selection"`
}

// paginate compares page counts before multiplying so huge page numbers
// cannot overflow into a negative offset.
func paginate[T any](items []T, page, size int) []T {
	if size <= 0 || page < 0 || page >= (len(items)+size-1)/size {
		return []T{}
	}
	start := page * size
	end := min(start+size, len(items))
	return items[start:end]
}

func explore[T types.Item](c *index.Collection[T], sel facet.Selection, req *ExploreRequest) *ExploreResponse {
	res := c.Query(sel, req.Query)
	return &ExploreResponse{
		Collection: c.Name,
		Items:      paginate(res.Items, req.Page, req.PageSize),
		Total:      res.Total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Options:    c.Options(),
		Counts:     res.Counts,
		Selection:  sel,
	}
}

// collectionRef erases the item type of a collection for the handlers.
type collectionRef struct {
	name string
	dims []types.DimensionId
	run  func(sel facet.Selection, req *ExploreRequest) *ExploreResponse
	get  func(slug string) (any, bool)
}

func bind[T types.Item](c *index.Collection[T], get func(slug string) (any, bool)) *collectionRef {
	return &collectionRef{
		name: c.Name,
		dims: c.DimensionIds(),
		run: func(sel facet.Selection, req *ExploreRequest) *ExploreResponse {
			return explore(c, sel, req)
		},
		get: get,
	}
}

func resolveCollection(view *index.View, name string) (*collectionRef, bool) {
	switch name {
	case index.ProgramsCollection:
		return bind(view.Programs, func(slug string) (any, bool) {
			return view.ProgramDetail(slug)
		}), true
	case index.CentersCollection:
		return bind(view.Centers, func(slug string) (any, bool) {
			return view.CenterDetail(slug)
		}), true
	case index.MembershipsCollection:
		return bind(view.Memberships, func(slug string) (any, bool) {
			return view.Memberships.Get(slug)
		}), true
	case index.EventsCollection:
		return bind(view.Events, func(slug string) (any, bool) {
			return view.EventDetail(slug)
		}), true
	}
	return nil, false
}
