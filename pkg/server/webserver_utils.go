package server

import "net/http"

func publicHeaders(w http.ResponseWriter, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime+", stale-while-revalidate="+cacheTime)
	w.Header().Set("Age", "0")
}

func privateHeaders(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "private, no-store")
}
