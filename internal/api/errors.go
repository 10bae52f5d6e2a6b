package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"valo-editor/internal/imgerr"
)

// statusFor maps an error to the response status. Image errors are client
// errors except filesystem failures.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}

	if errors.Is(err, imgerr.ErrIO) {
		return http.StatusInternalServerError
	}
	if imgerr.IsClientError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// handleError writes every failure as a plain-text detail message.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	msg := err.Error()

	var he *echo.HTTPError
	switch {
	case code == http.StatusRequestEntityTooLarge:
		msg = http.StatusText(code)
	case errors.As(err, &he):
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	entry := s.logger.WithError(err).WithField("status", code)
	if code >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, msg)
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to write error response")
	}
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", imgerr.ErrInvalidInput, err)
}
