package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu    *sync.Mutex
	order *[]string
}

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeService) Shutdown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.order = append(*f.order, f.name)
	return nil
}

func TestRun_ShutsDownInReverseOnCancel(t *testing.T) {
	var mu sync.Mutex
	var order []string

	a := &fakeService{name: "a", block: true, mu: &mu, order: &order}
	b := &fakeService{name: "b", mu: &mu, order: &order}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	require.NoError(t, Run(ctx, a, b))
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestRun_StartFailureStopsEverything(t *testing.T) {
	var mu sync.Mutex
	var order []string

	boom := errors.New("port in use")
	a := &fakeService{name: "a", block: true, mu: &mu, order: &order}
	b := &fakeService{name: "b", startErr: boom, mu: &mu, order: &order}

	err := Run(context.Background(), a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ElementsMatch(t, []string{"a", "b"}, order)
}

func TestNewCleanup(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)
}
