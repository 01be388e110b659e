package campaign

import (
	"context"
	"sync"

	"github.com/fundmate/fundmate-backend/internal/notify"
)

var _ notify.Emitter = &emitterMock{}

type emitterMock struct {
	EmitFunc func(ctx context.Context, event notify.Event) error

	calls struct {
		Emit []struct{ Event notify.Event }
	}
	lockEmit sync.RWMutex
}

func (mock *emitterMock) Emit(ctx context.Context, event notify.Event) error {
	mock.lockEmit.Lock()
	mock.calls.Emit = append(mock.calls.Emit, struct{ Event notify.Event }{Event: event})
	mock.lockEmit.Unlock()
	if mock.EmitFunc != nil {
		return mock.EmitFunc(ctx, event)
	}
	return nil
}

func (mock *emitterMock) EmitCalls() []struct{ Event notify.Event } {
	mock.lockEmit.RLock()
	calls := mock.calls.Emit
	mock.lockEmit.RUnlock()
	return calls
}
