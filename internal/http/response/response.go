package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobboard/internal/common"
)

type errorBody struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Reason  string            `json:"reason,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps the typed error taxonomy onto HTTP statuses. Unknown errors
// become opaque 500s so internals never leak.
func Error(w http.ResponseWriter, err error) {
	var typed *common.Error
	if !errors.As(err, &typed) {
		typed = common.NewError(common.CodeInternal, "internal error", err)
	}
	body := errorBody{Code: typed.Code, Message: typed.Message, Reason: typed.Reason, Fields: typed.Fields}
	if typed.Code == common.CodeInternal {
		body.Message = "internal error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(typed.Code))
	_ = json.NewEncoder(w).Encode(envelope{Error: &body})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusUnprocessableEntity
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
