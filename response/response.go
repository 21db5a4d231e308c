package response

import (
	"encoding/json"
	"net/http"

	"github.com/aamoria/wellness-api/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusOK, payload)
}

// Error writes err using the status and code of its *apierr.Error, or 500.
func Error(w http.ResponseWriter, err error) {
	apiErr := apierr.From(err)
	if apiErr == nil {
		apiErr = apierr.New(http.StatusInternalServerError, apierr.CodeInternal, nil)
	}
	msg := apiErr.Error()
	if apiErr.Status >= http.StatusInternalServerError {
		msg = http.StatusText(apiErr.Status)
	}
	JSON(w, apiErr.Status, ErrorEnvelope{Error: APIError{Message: msg, Code: apiErr.Code}})
}

func Status(w http.ResponseWriter, status int, code, msg string) {
	JSON(w, status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}
