package middleware

import (
	"net/http"

	"fashionTrends/pkg/logger"

	jsonres "fashionTrends/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler; anything that escapes a handler
// lands here.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	} else {
		logger.Error("Unhandled error", err)
	}

	_ = c.JSON(code, jsonres.Error(http.StatusText(code), message, nil))
}
