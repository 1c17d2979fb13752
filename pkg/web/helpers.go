package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// RespondJSON writes payload as JSON with the given status. A nil payload writes the status only.
func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		RespondStatus(w, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// RespondStatus writes a bodiless response.
func RespondStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// RespondList writes items with 200, or 204 without a body when there are none.
func RespondList[T any](w http.ResponseWriter, logger *slog.Logger, items []T) {
	if len(items) == 0 {
		RespondStatus(w, http.StatusNoContent)
		return
	}
	RespondJSON(w, logger, http.StatusOK, items)
}

// ParseID extracts the integer ID from the request path. On failure it responds with 400 and returns false.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil {
		logger.WarnContext(r.Context(), "Invalid ID", "ID", pathValueID)
		RespondStatus(w, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
