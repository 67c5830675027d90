package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/matst80/center-finder/pkg/common"
	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"github.com/matst80/center-finder/pkg/eligibility"
	"github.com/matst80/center-finder/pkg/facet"
	"github.com/matst80/center-finder/pkg/index"
	"github.com/matst80/center-finder/pkg/messaging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exploreQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centerfinder_explore_total",
		Help: "Explore queries per collection",
	}, []string{"collection"})
	exploreDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "centerfinder_explore_duration_seconds",
		Help:    "Time spent evaluating explore queries",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"collection"})
	selectionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "centerfinder_selection_toggles_total",
		Help: "Session selection toggles per collection",
	}, []string{"collection"})
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, index.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnknownDimension),
		errors.Is(err, eligibility.ErrUnknownIncomeRange),
		errors.Is(err, eligibility.ErrUnknownHouseholdSize):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail writes the error response, only server side failures are reported back for logging.
func fail(w http.ResponseWriter, status int, err error) error {
	_ = common.ErrorResponse(w, status, err)
	if status >= http.StatusInternalServerError {
		return err
	}
	return nil
}

// collection writes the error response itself when it returns a nil ref.
func (ws *WebServer) collection(w http.ResponseWriter, name string) (*collectionRef, error) {
	view, err := ws.Catalog.View()
	if err != nil {
		return nil, fail(w, errorStatus(err), err)
	}
	ref, ok := resolveCollection(view, name)
	if !ok {
		return nil, fail(w, http.StatusNotFound, fmt.Errorf("unknown collection %s", name))
	}
	return ref, nil
}

func (ws *WebServer) run(ref *collectionRef, sel facet.Selection, req *ExploreRequest) *ExploreResponse {
	start := time.Now()
	defer func() {
		exploreDuration.WithLabelValues(ref.name).Observe(time.Since(start).Seconds())
	}()
	exploreQueries.WithLabelValues(ref.name).Inc()
	return ref.run(sel, req)
}

func (ws *WebServer) Explore(name string) func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		ref, err := ws.collection(w, name)
		if ref == nil {
			return err
		}
		req, err := GetExploreRequest(r, ref.dims)
		if err != nil {
			return fail(w, http.StatusBadRequest, err)
		}
		if r.Method == http.MethodGet {
			publicHeaders(w, "60")
		}
		return enc.Encode(ws.run(ref, req.Selection(), req))
	}
}

func (ws *WebServer) Detail(name string) func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		ref, err := ws.collection(w, name)
		if ref == nil {
			return err
		}
		slug := r.PathValue("slug")
		item, ok := ref.get(slug)
		if !ok {
			return fail(w, http.StatusNotFound, fmt.Errorf("%s %q not found", name, slug))
		}
		publicHeaders(w, "60")
		return enc.Encode(item)
	}
}

// pageRequest reads free text and paging for the session backed endpoints.
func pageRequest(r *http.Request) (*ExploreRequest, error) {
	req := &ExploreRequest{}
	if err := exploreRequestFromQuery(r.URL.Query(), nil, req); err != nil {
		return nil, err
	}
	req.Filters = nil
	req.normalize()
	return req, nil
}

func (ws *WebServer) GetSelection(name string) func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		ref, err := ws.collection(w, name)
		if ref == nil {
			return err
		}
		req, err := pageRequest(r)
		if err != nil {
			return fail(w, http.StatusBadRequest, err)
		}
		sel, err := ws.Selections.Get(r.Context(), sessionId, name)
		if err != nil {
			return fail(w, http.StatusInternalServerError, err)
		}
		privateHeaders(w)
		return enc.Encode(ws.run(ref, sel, req))
	}
}

func (ws *WebServer) ToggleSelection(name string) func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		ref, err := ws.collection(w, name)
		if ref == nil {
			return err
		}
		req, err := pageRequest(r)
		if err != nil {
			return fail(w, http.StatusBadRequest, err)
		}
		toggle, err := GetToggleRequest(r, ref.dims)
		if err != nil {
			return fail(w, http.StatusBadRequest, err)
		}
		unlock := ws.locks.lock(sessionId, name)
		defer unlock()
		sel, err := ws.Selections.Get(r.Context(), sessionId, name)
		if err != nil {
			return fail(w, http.StatusInternalServerError, err)
		}
		sel.Toggle(toggle.Dimension, toggle.Value)
		if err = ws.Selections.Set(r.Context(), sessionId, name, sel); err != nil {
			return fail(w, http.StatusInternalServerError, err)
		}
		selectionToggles.WithLabelValues(name).Inc()
		privateHeaders(w)
		return enc.Encode(ws.run(ref, sel, req))
	}
}

func (ws *WebServer) ClearSelection(name string) func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		ref, err := ws.collection(w, name)
		if ref == nil {
			return err
		}
		req, err := pageRequest(r)
		if err != nil {
			return fail(w, http.StatusBadRequest, err)
		}
		unlock := ws.locks.lock(sessionId, name)
		defer unlock()
		if err = ws.Selections.Delete(r.Context(), sessionId, name); err != nil {
			return fail(w, http.StatusInternalServerError, err)
		}
		privateHeaders(w)
		return enc.Encode(ws.run(ref, facet.NewSelection(), req))
	}
}

type centerMemberships struct {
	Center      any `json:"center"`
	Memberships any `json:"memberships"`
}

func (ws *WebServer) MembershipsAtCenter(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	view, err := ws.Catalog.View()
	if err != nil {
		return fail(w, errorStatus(err), err)
	}
	slug := r.PathValue("center")
	center, memberships, ok := view.MembershipsAtCenter(slug)
	if !ok {
		return fail(w, http.StatusNotFound, fmt.Errorf("center %q not found", slug))
	}
	publicHeaders(w, "60")
	return enc.Encode(centerMemberships{Center: center, Memberships: memberships})
}

const defaultUpcomingEvents = 6

// UpcomingEvents lists events that have not ended yet, limit defaults to 6.
func (ws *WebServer) UpcomingEvents(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	view, err := ws.Catalog.View()
	if err != nil {
		return fail(w, errorStatus(err), err)
	}
	limit := defaultUpcomingEvents
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return fail(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
		}
	}
	publicHeaders(w, "60")
	return enc.Encode(view.UpcomingEvents(time.Now(), limit))
}

func (ws *WebServer) Eligibility(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	query := r.URL.Query()
	estimate, err := ws.Estimator.Estimate(query.Get("income"), query.Get("size"))
	if err != nil {
		return fail(w, errorStatus(err), err)
	}
	return enc.Encode(estimate)
}

type eligibilityOptions struct {
	Income        []eligibility.Option `json:"income"`
	HouseholdSize []eligibility.Option `json:"householdSize"`
}

func (ws *WebServer) EligibilityOptions(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	income, household := eligibility.Options()
	publicHeaders(w, "3600")
	return enc.Encode(eligibilityOptions{Income: income, HouseholdSize: household})
}

func (ws *WebServer) Reload(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	if err := ws.Catalog.Refresh(r.Context()); err != nil {
		return fail(w, http.StatusBadGateway, err)
	}
	return enc.Encode(ws.Catalog.Status())
}

// ContentChanged is the CMS webhook. With a broker every replica reloads,
// without one only this instance does.
func (ws *WebServer) ContentChanged(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	event := messaging.ContentChanged{}
	if err := decodeOptionalBody(r.Body, &event); err != nil {
		return fail(w, http.StatusBadRequest, err)
	}
	event.Origin = "webhook"
	event.At = time.Now()

	if ws.Notifier != nil {
		err := ws.Notifier.NotifyContentChanged(r.Context(), event)
		if err == nil {
			w.WriteHeader(http.StatusAccepted)
			return enc.Encode(map[string]string{"status": "queued"})
		}
		ws.Logger.Warnf("Failed to publish content change, reloading directly: %v", err)
	}
	return ws.Reload(w, r, sessionId, enc)
}

func (ws *WebServer) Status(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
	return enc.Encode(ws.Catalog.Status())
}
