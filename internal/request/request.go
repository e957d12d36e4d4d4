package request

import (
	"bytes"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Request is a single prepared call. It is immutable once built by New.
type Request struct {
	method Method
	url    string
	body   []byte
}

// New builds a Request by appending endpoint to baseURL verbatim.
// rawData, when non-empty, must be valid JSON; it is compacted and kept as the
// body. GET requests validate the data but never send it.
func New(method Method, baseURL, endpoint, rawData string) (*Request, error) {
	if _, ok := methodNames[method]; !ok {
		return nil, &InputError{Field: "method", Err: ErrUnsupportedMethod}
	}
	r := &Request{method: method, url: baseURL + endpoint}
	if rawData == "" {
		return r, nil
	}
	if !gjson.Valid(rawData) {
		return nil, &InputError{Field: "data", Err: ErrInvalidData}
	}
	r.body = pretty.Ugly([]byte(rawData))
	return r, nil
}

func (r *Request) Method() Method { return r.method }

func (r *Request) URL() string { return r.url }

// Body returns a copy of the compacted JSON body, or nil.
func (r *Request) Body() []byte {
	if r.body == nil {
		return nil
	}
	return bytes.Clone(r.body)
}

// HasBody reports whether --data was supplied.
func (r *Request) HasBody() bool { return r.body != nil }
