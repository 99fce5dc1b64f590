package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

type gatewayStub struct {
	mu      sync.Mutex
	saves   []models.SlotWrite
	failing int
	err     error
	block   chan struct{}
	board   *models.Board
}

func (g *gatewayStub) LoadAll(ctx context.Context) (*models.Board, error) {
	if g.err != nil && g.failing < 0 {
		return nil, g.err
	}
	return g.board, nil
}

func (g *gatewayStub) SaveSlot(ctx context.Context, write models.SlotWrite) error {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, write)
	if g.failing < 0 {
		return g.err
	}
	if g.failing > 0 {
		g.failing--
		return g.err
	}
	return nil
}

func (g *gatewayStub) saved() []models.SlotWrite {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.SlotWrite(nil), g.saves...)
}

var syncTestKey = models.SlotKey{Day: models.Day1, Block: models.Block1, Year: "Year 7", Class: "7.1"}

func startSync(t *testing.T, gateway SyncGateway, retries int) *SyncService {
	t.Helper()
	svc := NewSyncService(gateway, SyncConfig{Workers: 1, BufferSize: 8, MaxRetries: retries, RetryDelay: 5 * time.Millisecond}, nil, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)
	return svc
}

func TestSyncServiceDeliversWrite(t *testing.T) {
	gateway := &gatewayStub{}
	svc := startSync(t, gateway, 2)

	state := svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})
	assert.Equal(t, models.SyncStatusPending, state.Status)
	assert.Equal(t, uint64(1), state.Version)

	require.Eventually(t, func() bool {
		return svc.SlotStatus(syncTestKey) == models.SyncStatusSynced
	}, time.Second, 5*time.Millisecond)
	require.Len(t, gateway.saved(), 1)
	assert.Equal(t, []string{"Tod Baker"}, gateway.saved()[0].Teachers)
	assert.Empty(t, svc.PendingKeys())
}

func TestSyncServiceDropsSupersededWrites(t *testing.T) {
	gateway := &gatewayStub{block: make(chan struct{})}
	svc := startSync(t, gateway, 0)
	other := models.SlotKey{Day: models.Day1, Block: models.Block1, Year: "Year 7", Class: "7.2"}

	// The worker blocks on the first job while the slot is rewritten twice.
	svc.Submit(models.SlotWrite{Key: other, Teachers: []string{"Myra Pyne"}})
	svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})
	svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker", "Kellie Berry"}})
	close(gateway.block)

	require.Eventually(t, func() bool {
		return svc.Pending() == 0
	}, time.Second, 5*time.Millisecond)

	saves := gateway.saved()
	require.Len(t, saves, 2)
	assert.Equal(t, []string{"Tod Baker", "Kellie Berry"}, saves[1].Teachers)
	assert.Equal(t, models.SyncStatusSynced, svc.SlotStatus(syncTestKey))
}

func TestSyncServiceRetriesThenFlagsFailure(t *testing.T) {
	gateway := &gatewayStub{failing: -1, err: errors.New("sheet unavailable")}
	svc := startSync(t, gateway, 2)

	svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})

	require.Eventually(t, func() bool {
		return svc.SlotStatus(syncTestKey) == models.SyncStatusFailed
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, gateway.saved(), 3)

	overview := svc.Overview()
	assert.Equal(t, 1, overview.Failed)
	assert.Equal(t, 0, overview.Pending)
	require.Len(t, overview.Slots, 1)
	assert.Equal(t, "sheet unavailable", overview.Slots[0].LastError)
}

func TestSyncServiceRecoversAfterTransientFailure(t *testing.T) {
	gateway := &gatewayStub{failing: 1, err: errors.New("timeout")}
	svc := startSync(t, gateway, 3)

	svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})

	require.Eventually(t, func() bool {
		return svc.SlotStatus(syncTestKey) == models.SyncStatusSynced
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, gateway.saved(), 2)
	assert.Equal(t, 2, svc.Status()[0].Attempts)
}

func TestSyncServiceDoesNotRetryUnconfiguredGateway(t *testing.T) {
	gateway := &gatewayStub{failing: -1, err: appErrors.ErrGatewayNotConfigured}
	svc := startSync(t, gateway, 5)

	svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})

	require.Eventually(t, func() bool {
		return svc.SlotStatus(syncTestKey) == models.SyncStatusFailed
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, gateway.saved(), 1)
	assert.Equal(t, "No Script URL configured", svc.Status()[0].LastError)
}

func TestSyncServiceSubmitBeforeStartFails(t *testing.T) {
	svc := NewSyncService(&gatewayStub{}, SyncConfig{}, nil, nil)

	state := svc.Submit(models.SlotWrite{Key: syncTestKey})
	assert.Equal(t, models.SyncStatusFailed, state.Status)
	assert.NotEmpty(t, state.LastError)
}

func TestSyncServiceLoad(t *testing.T) {
	svc := NewSyncService(&gatewayStub{}, SyncConfig{}, nil, nil)
	board, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, board)

	svc = NewSyncService(&gatewayStub{failing: -1, err: appErrors.ErrGatewayNotConfigured}, SyncConfig{}, nil, nil)
	_, err = svc.Load(context.Background())
	assert.True(t, appErrors.Is(err, appErrors.ErrGatewayNotConfigured))
}

func TestSyncServiceForgetKeepsPending(t *testing.T) {
	gateway := &gatewayStub{failing: -1, err: appErrors.ErrGatewayNotConfigured}
	svc := startSync(t, gateway, 0)
	svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})
	require.Eventually(t, func() bool {
		return svc.SlotStatus(syncTestKey) == models.SyncStatusFailed
	}, time.Second, 5*time.Millisecond)

	svc.Forget()
	assert.Empty(t, svc.Status())
	assert.Equal(t, models.SyncStatusSynced, svc.SlotStatus(syncTestKey))
}

func TestSyncServiceSubmitDoesNotWaitForFullQueue(t *testing.T) {
	gateway := &gatewayStub{block: make(chan struct{})}
	svc := NewSyncService(gateway, SyncConfig{Workers: 1, BufferSize: 1, RetryDelay: 5 * time.Millisecond}, nil, nil)
	svc.Start(context.Background())
	t.Cleanup(svc.Stop)

	first := models.SlotKey{Day: models.Day1, Block: models.Block1, Year: "Year 7", Class: "7.2"}
	second := models.SlotKey{Day: models.Day1, Block: models.Block2, Year: "Year 7", Class: "7.2"}
	svc.Submit(models.SlotWrite{Key: first, Teachers: []string{"Myra Pyne"}})
	require.Eventually(t, func() bool { return svc.queue.Len() == 0 }, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Submit(models.SlotWrite{Key: second, Teachers: []string{"Myra Pyne"}})
		svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker"}})
		svc.Submit(models.SlotWrite{Key: syncTestKey, Teachers: []string{"Tod Baker", "Kellie Berry"}})
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submit blocked on a full queue")
	}
	assert.Equal(t, 3, svc.Pending())

	close(gateway.block)
	require.Eventually(t, func() bool { return svc.Pending() == 0 }, time.Second, 5*time.Millisecond)

	saves := gateway.saved()
	require.Len(t, saves, 3)
	assert.Equal(t, syncTestKey, saves[2].Key)
	assert.Equal(t, []string{"Tod Baker", "Kellie Berry"}, saves[2].Teachers)
	assert.Equal(t, models.SyncStatusSynced, svc.SlotStatus(syncTestKey))
}
