package server

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

// HttpError is the JSON body of every failed request
type HttpError struct {
	StatusCode  int                    `json:"status_code"`
	Code        string                 `json:"code,omitempty"`
	Message     string                 `json:"message"`
	Context     map[string]interface{} `json:"context,omitempty"`
	Suggestions []string               `json:"suggestions,omitempty"`
	Problems    []string               `json:"problems,omitempty"`
	RequestID   string                 `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HttpError {
	return &HttpError{StatusCode: http.StatusBadRequest, Message: message}
}

// statusFor maps an error code to the HTTP status it is reported with
func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ManifestErrorCode, errors.ConfigurationErrorCode:
		return http.StatusBadRequest
	case errors.UnresolvableTypeErrorCode:
		return http.StatusNotFound
	case errors.InvalidIdentifierErrorCode, errors.UnsupportedMemberErrorCode:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// toHttpError converts any handler error into its response body
func toHttpError(err error) *HttpError {
	var httpErr *HttpError
	if stderrors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		return &HttpError{StatusCode: echoErr.Code, Message: fmt.Sprint(echoErr.Message)}
	}

	var qwErr errors.QuickWrapError
	if stderrors.As(err, &qwErr) {
		result := &HttpError{
			StatusCode:  statusFor(qwErr.ErrorCode()),
			Code:        qwErr.ErrorCode().String(),
			Message:     err.Error(),
			Suggestions: qwErr.Suggestions(),
		}
		if context := qwErr.Context(); len(context) > 0 {
			result.Context = context
		}
		for cause := err; cause != nil; cause = stderrors.Unwrap(cause) {
			if multi, ok := cause.(interface{ WrappedErrors() []error }); ok {
				for _, member := range multi.WrappedErrors() {
					result.Problems = append(result.Problems, member.Error())
				}
				break
			}
		}
		return result
	}

	return &HttpError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
}

// errorHandler writes errors as HttpError JSON
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	httpErr := toHttpError(err)
	httpErr.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.StatusCode)
	} else {
		err = c.JSON(httpErr.StatusCode, httpErr)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
