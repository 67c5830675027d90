package server

import (
	"context"
	"net/http"
	"time"

	"github.com/matst80/center-finder/pkg/common"
	"github.com/matst80/center-finder/pkg/eligibility"
	"github.com/matst80/center-finder/pkg/index"
	"github.com/matst80/center-finder/pkg/messaging"
	"go.uber.org/zap"
)

type ContentNotifier interface {
	NotifyContentChanged(ctx context.Context, event messaging.ContentChanged) error
}

type WebServer struct {
	Catalog    *index.Catalog
	Selections SelectionStore
	Estimator  *eligibility.Estimator
	Notifier   ContentNotifier
	Logger     *zap.SugaredLogger
	locks      sessionLocks
}

func NewWebServer(catalog *index.Catalog, selections SelectionStore, estimator *eligibility.Estimator, logger *zap.SugaredLogger) *WebServer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if estimator == nil {
		estimator = eligibility.NewEstimator("")
	}
	if selections == nil {
		selections = NewMemorySelectionStore(24 * time.Hour)
	}
	return &WebServer{
		Catalog:    catalog,
		Selections: selections,
		Estimator:  estimator,
		Logger:     logger,
	}
}

var collections = []string{
	index.ProgramsCollection,
	index.CentersCollection,
	index.MembershipsCollection,
	index.EventsCollection,
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()
	for _, name := range collections {
		srv.HandleFunc("GET /"+name, common.JsonHandler(ws.Logger, ws.Explore(name)))
		srv.HandleFunc("POST /"+name, common.JsonHandler(ws.Logger, ws.Explore(name)))
		srv.HandleFunc("GET /"+name+"/{slug}", common.JsonHandler(ws.Logger, ws.Detail(name)))
		srv.HandleFunc("OPTIONS /"+name, common.RespondToOptions)
		srv.HandleFunc("OPTIONS /"+name+"/", common.RespondToOptions)

		// session selections live outside the collection path so every slug stays reachable
		srv.HandleFunc("GET /selection/"+name, common.JsonHandler(ws.Logger, ws.GetSelection(name)))
		srv.HandleFunc("POST /selection/"+name+"/toggle", common.JsonHandler(ws.Logger, ws.ToggleSelection(name)))
		srv.HandleFunc("DELETE /selection/"+name, common.JsonHandler(ws.Logger, ws.ClearSelection(name)))
	}
	srv.HandleFunc("OPTIONS /selection/", common.RespondToOptions)
	srv.HandleFunc("GET /memberships/center/{center}", common.JsonHandler(ws.Logger, ws.MembershipsAtCenter))
	srv.HandleFunc("GET /upcoming-events", common.JsonHandler(ws.Logger, ws.UpcomingEvents))
	srv.HandleFunc("GET /eligibility", common.JsonHandler(ws.Logger, ws.Eligibility))
	srv.HandleFunc("GET /eligibility/options", common.JsonHandler(ws.Logger, ws.EligibilityOptions))
	return srv
}

func (ws *WebServer) AdminHandler() *http.ServeMux {
	srv := http.NewServeMux()
	srv.HandleFunc("POST /reload", common.JsonHandler(ws.Logger, ws.Reload))
	srv.HandleFunc("POST /content-changed", common.JsonHandler(ws.Logger, ws.ContentChanged))
	srv.HandleFunc("GET /status", common.JsonHandler(ws.Logger, ws.Status))
	return srv
}

// Handler mounts the client api under /api/ and the admin api under /admin/.
func (ws *WebServer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", ws.ClientHandler()))
	mux.Handle("/admin/", http.StripPrefix("/admin", ws.AdminHandler()))
	return mux
}
