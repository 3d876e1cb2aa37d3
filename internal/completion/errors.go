package completion

import (
	"errors"
	"fmt"
	"net/url"
)

// maxErrorBody limits how much of a failed response body is kept in a RequestError.
const maxErrorBody = 512

var errEmptyBody = errors.New("response body is empty")

// RequestError reports a failed completion call: a non-2xx status, an empty
// body, or a transport failure. Callers do not need to tell them apart.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		msg := fmt.Sprintf("unexpected code %s (%s %s)", e.Status, e.Method, e.URL)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	cause := e.Err
	// url.Error already names the method and URL.
	var urlErr *url.Error
	if errors.As(cause, &urlErr) {
		cause = urlErr.Err
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, cause)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsRequestError reports whether err is, or wraps, a RequestError.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}
