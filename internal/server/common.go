package server

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"contentfilter/internal/codec"
	"contentfilter/internal/filter"
	"contentfilter/internal/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 10 << 20

// JSON sends a JSON response.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ParseJSON decodes the request body into v.
func ParseJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

// Fail maps a domain error onto an HTTP status.
func Fail(w http.ResponseWriter, err error) {
	Error(w, errorStatus(err), err.Error())
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, filter.ErrUnknownMode), errors.Is(err, filter.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, filter.ErrEmptyItem),
		errors.Is(err, codec.ErrUnknownFormat),
		errors.Is(err, validation.ErrItemEmpty),
		errors.Is(err, validation.ErrItemTooLong),
		errors.Is(err, validation.ErrItemControlChar),
		errors.Is(err, validation.ErrItemMarker):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
