package common

import (
	"net/http"

	"github.com/matst80/center-finder/pkg/common/jsoncompat"
	"go.uber.org/zap"
)

// JsonHandler resolves the session, sets JSON headers and logs handler errors.
// Handlers that fail before writing should write the error response themselves.
func JsonHandler(logger *zap.SugaredLogger, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(w, r)
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		CorsHeaders(w, r)

		if err := fn(w, r, sessionId, jsoncompat.NewEncoder(w)); err != nil {
			logger.Warnf("Error handling request %s %s: %v", r.Method, r.URL.Path, err)
		}
	}
}

func CorsHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}

// ErrorResponse writes a JSON error body with the given status.
func ErrorResponse(w http.ResponseWriter, status int, err error) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return jsoncompat.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
