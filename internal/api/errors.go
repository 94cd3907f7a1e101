package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"wishlist-service/internal/apperr"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// HTTPErrorHandler converts every uncaught error into the standard
// envelope, mirroring the status into the body. Errors outside the taxonomy
// become a generic 500 and get logged with their stack unless running under
// test.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var appErr *apperr.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	default:
		if os.Getenv("ENV") != "test" {
			logger.Error().Stack().Err(err).Msg("Unhandled error")
		}
	}

	if writeErr := c.JSON(status, errorEnvelope{Error: errorBody{Message: message, Status: status}}); writeErr != nil {
		logger.Error().Err(writeErr).Msg("Error writing error response")
	}
}
