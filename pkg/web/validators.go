package web

import (
	"cmp"
	"log/slog"
	"net/http"
	"strconv"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator[T cmp.Ordered] func(valueToTest T) bool

func newComparisonValidator[T cmp.Ordered](valueInClosure T, compareFn func(argValue, closedValue T) bool) ParamValidator[T] {
	return func(argValue T) bool {
		return compareFn(argValue, valueInClosure)
	}
}

// gte returns a ParamValidator that checks if the argument is greater than or equal to the value captured in the closure.
func gte[T cmp.Ordered](valToCompareAgainst T) ParamValidator[T] {
	return newComparisonValidator(valToCompareAgainst, func(argValue, closedValue T) bool {
		return argValue >= closedValue
	})
}

// ParseValidateFloatGte reads a required float query parameter that must be >= value.
// On failure it responds with 400 and returns false.
func ParseValidateFloatGte(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, value float64) (float64, bool) {
	return parseValidateFloat(r, w, logger, key, gte(value))
}

func parseValidateFloat(r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, pValidator ParamValidator[float64]) (float64, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		logger.WarnContext(r.Context(), "Missing url parameter", "param", key)
		RespondStatus(w, http.StatusBadRequest)
		return 0, false
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil || !pValidator(floatValue) {
		logger.WarnContext(r.Context(), "Invalid url parameter", "param", key, "value", value)
		RespondStatus(w, http.StatusBadRequest)
		return 0, false
	}
	return floatValue, true
}
