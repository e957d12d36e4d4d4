package request

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/loykin/restcli/internal/util"
)

// Method is the closed set of HTTP methods restcli can send.
type Method int

const (
	MethodGet Method = iota + 1
	MethodPost
)

var methodNames = map[Method]string{
	MethodGet:  http.MethodGet,
	MethodPost: http.MethodPost,
}

// String returns the HTTP verb, e.g. "GET".
func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod accepts the CLI spelling ("get", "post") in any case.
func ParseMethod(s string) (Method, error) {
	switch util.TrimAndLower(s) {
	case "get":
		return MethodGet, nil
	case "post":
		return MethodPost, nil
	default:
		return 0, &InputError{Field: "method", Err: fmt.Errorf("%w: %q (valid: get, post)", ErrUnsupportedMethod, s)}
	}
}

var (
	// ErrInvalidData is returned when --data is not valid JSON.
	ErrInvalidData = errors.New("request data is not valid JSON")
	// ErrUnsupportedMethod is returned for anything other than get/post.
	ErrUnsupportedMethod = errors.New("unsupported method")
)

// InputError reports a problem with user input found before any network call.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// TransportError wraps network level failures: DNS, refused connections,
// TLS errors, timeouts. No response exists when it is returned.
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Response is the status and raw body returned by the server.
type Response struct {
	StatusCode int
	Body       []byte
}
