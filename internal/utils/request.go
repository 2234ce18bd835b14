package utils

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/utils/response"
)

// ParseBody decodes the JSON body into dest and writes a 400 on failure.
// Validation is left to the repository so every entry point shares it.
func ParseBody(r *http.Request, w http.ResponseWriter, dest any) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	return true

}

// ParseID reads a positive integer path value.
func ParseID(r *http.Request, name string) (int64, error) {

	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError(fmt.Sprintf("invalid %s", name))
	}

	return id, nil

}
