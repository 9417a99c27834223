package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSweeper struct {
	mu    sync.Mutex
	calls int
	count int
	err   error
}

func (m *mockSweeper) AdvanceExpired(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.count, m.err
}

func (m *mockSweeper) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	sweeper := &mockSweeper{count: 3}
	p := NewEventStatusProcessor(sweeper, time.Hour, testLogger())

	count, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, sweeper.callCount())
}

func TestRunOnceError(t *testing.T) {
	sweeper := &mockSweeper{err: errors.New("store down")}
	p := NewEventStatusProcessor(sweeper, time.Hour, testLogger())

	_, err := p.RunOnce(context.Background())
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	sweeper := &mockSweeper{}
	p := NewEventStatusProcessor(sweeper, time.Hour, testLogger())

	assert.False(t, p.IsRunning())

	p.Start()
	assert.True(t, p.IsRunning())

	// Start is idempotent
	p.Start()
	assert.True(t, p.IsRunning())

	p.Stop()
	assert.False(t, p.IsRunning())

	// Stop is idempotent
	p.Stop()
	assert.False(t, p.IsRunning())
}

func TestDefaultInterval(t *testing.T) {
	p := NewEventStatusProcessor(&mockSweeper{}, 0, testLogger())
	assert.Equal(t, time.Hour, p.interval)
}
