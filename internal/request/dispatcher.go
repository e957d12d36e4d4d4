package request

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/loykin/restcli/internal/common"
	"github.com/loykin/restcli/internal/constants"
)

type handler func(r *resty.Request, req *Request) (*resty.Response, error)

// handlers holds one entry per Method; adding a verb means adding a row.
var handlers = map[Method]handler{
	MethodGet: func(r *resty.Request, req *Request) (*resty.Response, error) {
		return r.Get(req.url)
	},
	MethodPost: func(r *resty.Request, req *Request) (*resty.Response, error) {
		r.SetHeader("Content-Type", constants.JSONContentType)
		if req.body != nil {
			r.SetBody(req.body)
		}
		return r.Post(req.url)
	},
}

// Dispatcher sends prepared requests. It makes exactly one attempt per call.
type Dispatcher struct {
	client *resty.Client
	logger *common.Logger
}

// NewDispatcher wraps client. A nil client gets a default resty client.
func NewDispatcher(client *resty.Client) *Dispatcher {
	if client == nil {
		client = resty.New()
	}
	return &Dispatcher{client: client}
}

// WithLogger returns a copy of d that logs through logger.
func (d *Dispatcher) WithLogger(logger *common.Logger) *Dispatcher {
	return &Dispatcher{client: d.client, logger: logger}
}

func (d *Dispatcher) log() *common.Logger {
	if d.logger != nil {
		return d.logger
	}
	return common.GetLogger()
}

// Dispatch builds the request from CLI input and sends it.
func (d *Dispatcher) Dispatch(ctx context.Context, method Method, baseURL, endpoint, rawData string) (*Response, error) {
	req, err := New(method, baseURL, endpoint, rawData)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, req)
}

// Do performs req. Errors below HTTP are returned as *TransportError; any
// HTTP status, including failures, comes back as a Response.
func (d *Dispatcher) Do(ctx context.Context, req *Request) (*Response, error) {
	h, ok := handlers[req.method]
	if !ok {
		return nil, &InputError{Field: "method", Err: fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.method)}
	}
	logger := d.log().WithComponent("dispatcher").WithRequest(req.method.String(), req.url)
	id := uuid.NewString()
	if req.body != nil && req.method == MethodPost {
		logger.Debug("sending request", constants.RequestIDKey, id, "body", logger.Mask(string(req.body)))
	} else {
		logger.Debug("sending request", constants.RequestIDKey, id)
	}

	resp, err := h(d.client.R().SetContext(ctx), req)
	if err != nil {
		logger.Error("HTTP request failed", constants.RequestIDKey, id, "error", err)
		return nil, &TransportError{Method: req.method, URL: req.url, Err: err}
	}

	out := &Response{StatusCode: resp.StatusCode(), Body: resp.Body()}
	logger.Debug("received HTTP response", constants.RequestIDKey, id,
		common.StatusCodeKey, out.StatusCode, "response_size", len(out.Body), "duration", resp.Time())
	return out, nil
}
