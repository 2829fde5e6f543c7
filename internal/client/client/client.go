package client

import (
	"context"
	"encoding/json"
)

// Doer sends one request and returns the raw body or an *Error.
// HTTPClient and AuthClient both implement it.
type Doer interface {
	Do(ctx context.Context, r Request) ([]byte, error)
}

// API is the request boundary exposed to the shell: one entry point that
// picks the public or the authenticated client.
type API struct {
	public  Doer
	private Doer
}

func NewAPI(public, private Doer) *API {
	return &API{public: public, private: private}
}

func (a *API) Public() Doer  { return a.public }
func (a *API) Private() Doer { return a.private }

// Do dispatches r according to r.Authenticated.
func (a *API) Do(ctx context.Context, r Request) ([]byte, error) {
	if r.Authenticated {
		return a.private.Do(ctx, r)
	}
	return a.public.Do(ctx, r)
}

// Request is the positional form of Do.
func (a *API) Request(ctx context.Context, path, method string, body any, authenticated bool) ([]byte, error) {
	return a.Do(ctx, Request{Method: method, Path: path, Body: body, Authenticated: authenticated})
}

// envelope is the common response wrapper of the backend.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Envelope is the decoded wrapper of a successful response.
type Envelope struct {
	// Success is true unless the payload explicitly says otherwise.
	Success bool
	Message string
	Data    json.RawMessage
}

// DecodeEnvelope parses a 2xx body. A malformed body is a backend fault
// and is reported as KindServer.
func DecodeEnvelope(body []byte) (Envelope, error) {
	var e envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &e); err != nil {
			return Envelope{}, &Error{Kind: KindServer, Message: MsgBadResponse, Err: err}
		}
	}
	return Envelope{Success: e.Success == nil || *e.Success, Message: e.Message, Data: e.Data}, nil
}

// DecodeData unmarshals the "data" member of body into v. A missing data
// member is reported as KindServer when required is true.
func DecodeData(body []byte, v any, required bool) error {
	env, err := DecodeEnvelope(body)
	if err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if required {
			return &Error{Kind: KindServer, Message: MsgBadResponse}
		}
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &Error{Kind: KindServer, Message: MsgBadResponse, Err: err}
	}
	return nil
}
