package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// failure builds the error payload. detail is only attached when exposed.
func failure(msg string, detail error, expose bool) FailureResponse {
	resp := FailureResponse{Success: false, Message: msg}
	if expose && detail != nil {
		resp.Error = detail.Error()
	}
	return resp
}

func notFound(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusNotFound, NotFoundResponse{Error: msg, Path: r.URL.Path})
}
