package evaluator

import (
	"context"
	"encoding/json"
)

type fakeRemote struct {
	payload string
	err     error
	calls   []Request
}

func (f *fakeRemote) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.payload), nil
}
