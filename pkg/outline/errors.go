package outline

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

const (
	validationCode = "OUTLINE_VALIDATION_FAILED"
	networkCode    = "OUTLINE_UPSTREAM_UNREACHABLE"
	notFoundCode   = "OUTLINE_PAGE_NOT_FOUND"
	parseCode      = "OUTLINE_PARSE_FAILED"
)

func validationError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(validationCode).
		WithCode(http.StatusBadRequest)
}

func networkError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryExternal, "Failed to reach Wikipedia").
		WithTextCode(networkCode).
		WithCode(http.StatusBadGateway)
}

func notFoundError(err error, country string) error {
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "Country page not found: "+country).
		WithTextCode(notFoundCode).
		WithCode(http.StatusNotFound)
}

func parseError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, "Failed to parse Wikipedia page").
		WithTextCode(parseCode).
		WithCode(http.StatusInternalServerError)
}

func IsValidationError(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}

func IsNetworkError(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryExternal)
}

func IsNotFoundError(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

// IsParseError reports whether err came from parsing the page. Other internal
// errors share the category, so the text code decides.
func IsParseError(err error) bool {
	var outlineErr *goerrors.Error
	return errors.As(err, &outlineErr) && outlineErr.TextCode == parseCode
}

// StatusCode maps an error returned by GetOutline to its HTTP status.
// Anything outside the outline taxonomy is an internal failure.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidationError(err):
		return http.StatusBadRequest
	case IsNotFoundError(err):
		return http.StatusNotFound
	case IsNetworkError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Detail returns the short human readable message for err.
func Detail(err error) string {
	var outlineErr *goerrors.Error
	if errors.As(err, &outlineErr) && outlineErr.Message != "" {
		return outlineErr.Message
	}
	return http.StatusText(StatusCode(err))
}
