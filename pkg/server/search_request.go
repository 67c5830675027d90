package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/gorilla/schema"
	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/types"
)

var ErrUnknownDimension = errors.New("unknown dimension")

const (
	defaultPageSize = 48
	maxPageSize     = 500
	valueSeparator  = "||"
)

type ExploreRequest struct {
	Query    string                         `json:"query" schema:"q"`
	Page     int                            `json:"page" schema:"page"`
	PageSize int                            `json:"pageSize" schema:"size"`
	Filters  map[types.DimensionId][]string `json:"filters" schema:"-"`
}

func (e *ExploreRequest) Selection() facet.Selection {
	return facet.SelectionFrom(e.Filters)
}

func (e *ExploreRequest) normalize() {
	if e.Page < 0 {
		e.Page = 0
	}
	if e.PageSize <= 0 {
		e.PageSize = defaultPageSize
	}
	if e.PageSize > maxPageSize {
		e.PageSize = maxPageSize
	}
}

func (e *ExploreRequest) addFilter(dim types.DimensionId, raw string) {
	if e.Filters == nil {
		e.Filters = make(map[types.DimensionId][]string)
	}
	e.Filters[dim] = append(e.Filters[dim], strings.Split(raw, valueSeparator)...)
}

// GetExploreRequest reads filters from the query string on GET and from a
// JSON body otherwise. Filters on dimensions outside dims are rejected.
func GetExploreRequest(r *http.Request, dims []types.DimensionId) (*ExploreRequest, error) {
	req := &ExploreRequest{}
	var err error
	if r.Method == http.MethodGet {
		err = exploreRequestFromQuery(r.URL.Query(), dims, req)
	} else {
		err = exploreRequestFromBody(r.Body, req)
	}
	if err != nil {
		return nil, err
	}
	for dim := range req.Filters {
		if !slices.Contains(dims, dim) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
		}
	}
	req.normalize()
	return req, nil
}

// decodeOptionalBody accepts an empty body as the zero value.
func decodeOptionalBody(body io.Reader, out any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return jsoncompat.Unmarshal(data, out)
}

func exploreRequestFromBody(body io.Reader, req *ExploreRequest) error {
	return decodeOptionalBody(body, req)
}

// exploreRequestFromQuery accepts both ?str=<dimension>:a||b and ?<dimension>=a||b.
func exploreRequestFromQuery(query url.Values, dims []types.DimensionId, req *ExploreRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(req, query); err != nil {
		return err
	}

	for _, v := range query["str"] {
		id, values, found := strings.Cut(v, ":")
		if !found || id == "" {
			continue
		}
		req.addFilter(types.DimensionId(id), values)
	}
	for _, dim := range dims {
		for _, v := range query[string(dim)] {
			req.addFilter(dim, v)
		}
	}
	return nil
}

type ToggleRequest struct {
	Dimension types.DimensionId `json:"dimension"`
	Value     string            `json:"value"`
}

func GetToggleRequest(r *http.Request, dims []types.DimensionId) (*ToggleRequest, error) {
	req := &ToggleRequest{}
	if err := jsoncompat.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, err
	}
	if !slices.Contains(dims, req.Dimension) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, req.Dimension)
	}
	if strings.TrimSpace(req.Value) == "" {
		return nil, fmt.Errorf("value is required")
	}
	return req, nil
}
