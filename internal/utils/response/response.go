package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/inventory-client/internal/errors"
)

// ErrorResponse matches the upstream API error body, so clients read the
// same "message" field whichever side produced it.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// interface {} == any
func WriteJson(w http.ResponseWriter, statusCode int, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data) //struct to json
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	WriteJson(w, statusCode, data)
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse *ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Code == errors.ErrCodeValidation {
			errorResponse.Details = strings.Split(appErr.Message, "; ")
		}

		if appErr.Detail != "" {
			errorResponse.Details = append(errorResponse.Details, appErr.Detail)
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occured",
		}

	}

	WriteJson(w, statusCode, errorResponse)
}
