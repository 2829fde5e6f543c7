package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/memberclient/internal/client/client"
)

type reply struct {
	body string
	err  error
}

// fakeDoer answers by "METHOD path" and records every request.
type fakeDoer struct {
	replies  map[string]reply
	requests []client.Request
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{replies: map[string]reply{}}
}

func (f *fakeDoer) on(method, path, body string) *fakeDoer {
	f.replies[method+" "+path] = reply{body: body}
	return f
}

func (f *fakeDoer) fail(method, path string, err error) *fakeDoer {
	f.replies[method+" "+path] = reply{err: err}
	return f
}

func (f *fakeDoer) Do(_ context.Context, r client.Request) ([]byte, error) {
	f.requests = append(f.requests, r)
	rep, ok := f.replies[r.Method+" "+r.Path]
	if !ok {
		return nil, &client.Error{Kind: client.KindClient, Message: fmt.Sprintf("no route %s %s", r.Method, r.Path), Status: 404}
	}
	if rep.err != nil {
		return nil, rep.err
	}
	return []byte(rep.body), nil
}

func (f *fakeDoer) paths() []string {
	out := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

// bodyOf re-encodes the body of the i-th request as a generic map.
func (f *fakeDoer) bodyOf(i int) map[string]any {
	b, _ := json.Marshal(f.requests[i].Body)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}
