package dispatch

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"

	"github.com/evert/drive-actions-mcp/internal/export"
)

// Kind categorizes a failure so the host can decide how to react without
// parsing message text.
type Kind string

const (
	KindInvalidRequest    Kind = "invalid-request"
	KindNotFound          Kind = "not-found"
	KindForbidden         Kind = "forbidden"
	KindUnsupportedFormat Kind = "unsupported-format"
	KindTransient         Kind = "transient"
	KindUnknown           Kind = "unknown"
)

// Failure describes why an action failed. HTTPStatus carries the underlying
// Drive API status code when the failure originated there, zero otherwise.
type Failure struct {
	Kind       Kind
	Message    string
	HTTPStatus int
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func invalidRequest(format string, args ...any) *Failure {
	return &Failure{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Classify converts an error from a Drive API call into a Failure.
// Transport errors and API status codes are mapped onto the failure
// taxonomy; nothing is retried.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}

	var ufe *export.UnsupportedFormatError
	if errors.As(err, &ufe) {
		return &Failure{Kind: KindUnsupportedFormat, Message: ufe.Error()}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400:
			return &Failure{
				Kind:       KindInvalidRequest,
				Message:    fmt.Sprintf("bad request — check that all parameters are valid. Detail: %s", apiErr.Message),
				HTTPStatus: apiErr.Code,
			}
		case 401, 403:
			return &Failure{
				Kind:       KindForbidden,
				Message:    fmt.Sprintf("permission denied — verify the credentials grant access to this file. Detail: %s", apiErr.Message),
				HTTPStatus: apiErr.Code,
			}
		case 404:
			return &Failure{
				Kind:       KindNotFound,
				Message:    "file not found — verify the file_id is correct and the user has access to it",
				HTTPStatus: apiErr.Code,
			}
		case 429:
			return &Failure{
				Kind:       KindTransient,
				Message:    "rate limit exceeded for the Drive API — the caller may retry later",
				HTTPStatus: apiErr.Code,
			}
		case 500, 502, 503:
			return &Failure{
				Kind:       KindTransient,
				Message:    fmt.Sprintf("Drive API server error (%d) — the caller may retry later. Detail: %s", apiErr.Code, apiErr.Message),
				HTTPStatus: apiErr.Code,
			}
		default:
			return &Failure{
				Kind:       KindUnknown,
				Message:    fmt.Sprintf("Drive API error (%d): %s", apiErr.Code, apiErr.Message),
				HTTPStatus: apiErr.Code,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Failure{Kind: KindTransient, Message: err.Error()}
	}

	return &Failure{Kind: KindUnknown, Message: err.Error()}
}
