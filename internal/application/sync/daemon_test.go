package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gematelier/ordersync/internal/domain/commerce"
)

func TestDaemon_StartStop(t *testing.T) {
	platform := new(MockCommercePlatform)
	runLog := new(MockRunLog)

	platform.On("ListOrdersByTag", mock.Anything, mock.Anything).
		Return([]commerce.SourceOrder{}, nil)
	runLog.On("WriteManifest", mock.Anything, mock.Anything).Return(nil)

	orchestrator := newTestOrchestrator(platform, new(MockCustomerRepository), new(MockOrderRepository), runLog, testOptions())
	daemon := NewDaemon(orchestrator, 20*time.Millisecond, zap.NewNop())

	require.NoError(t, daemon.Start(context.Background()))
	assert.ErrorIs(t, daemon.Start(context.Background()), ErrDaemonAlreadyRunning)

	// Long enough for the immediate cycle plus at least one tick
	time.Sleep(70 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, daemon.Stop(stopCtx))

	calls := len(platform.Calls)
	assert.GreaterOrEqual(t, calls, 2)

	// No further cycles after Stop
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, len(platform.Calls))
}

func TestDaemon_StopWithoutStart(t *testing.T) {
	daemon := NewDaemon(nil, time.Second, zap.NewNop())
	assert.NoError(t, daemon.Stop(context.Background()))
}
