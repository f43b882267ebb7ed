package http

import (
	"errors"
	"log/slog"
	"net/http"

	"errands/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CodeInsufficientBalance is returned in the error body when a debit exceeds the balance.
const CodeInsufficientBalance = 1004

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorHandler renders every failure as Error. Domain errors are mapped by kind; anything
// unclassified is logged and reported without detail.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := describeError(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", err)
		}
	}
}

func describeError(err error) (int, Error) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, Error{Code: he.Code, Message: msg}
	}

	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound, Error{Code: http.StatusNotFound, Message: err.Error()}
	case errs.KindValidation:
		return http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()}
	case errs.KindForbidden:
		return http.StatusForbidden, Error{Code: http.StatusForbidden, Message: err.Error()}
	case errs.KindInvalidState:
		return http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()}
	case errs.KindInsufficientFunds:
		return http.StatusBadRequest, Error{Code: CodeInsufficientBalance, Message: err.Error()}
	default:
		return http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		}
	}
}
