package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/jobs"
)

const slotSaveJobType = "slot.save"

// SyncGateway is the remote store holding the authoritative copy of the board.
type SyncGateway interface {
	LoadAll(ctx context.Context) (*models.Board, error)
	SaveSlot(ctx context.Context, write models.SlotWrite) error
}

// SyncConfig tunes the write pipeline.
type SyncConfig struct {
	Workers    int
	BufferSize int
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

type slotSaveJob struct {
	Write   models.SlotWrite
	Version uint64
}

// SyncService drains slot writes to the gateway in the background and tracks the delivery state of every slot.
type SyncService struct {
	gateway SyncGateway
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
	timeout time.Duration
	now     func() time.Time

	mu     sync.Mutex
	states map[models.SlotKey]*models.SlotSyncState
	// Latest write per slot that did not fit in the queue buffer.
	parked map[models.SlotKey]slotSaveJob
}

// NewSyncService builds the pipeline. Call Start before submitting writes.
func NewSyncService(gateway SyncGateway, cfg SyncConfig, metrics *MetricsService, logger *zap.Logger) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	s := &SyncService{
		gateway: gateway,
		metrics: metrics,
		logger:  logger,
		timeout: cfg.Timeout,
		now:     time.Now,
		states:  make(map[models.SlotKey]*models.SlotSyncState),
		parked:  make(map[models.SlotKey]slotSaveJob),
	}
	s.queue = jobs.NewQueue("slot-sync", s.handle, jobs.QueueConfig{
		Workers:     cfg.Workers,
		BufferSize:  cfg.BufferSize,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelay,
		OnExhausted: s.exhausted,
		Logger:      logger,
	})
	return s
}

// Start launches the queue workers.
func (s *SyncService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop waits for in-flight writes to finish. Queued writes are dropped and stay pending.
func (s *SyncService) Stop() {
	s.queue.Stop()
}

// Load fetches the whole board from the gateway.
func (s *SyncService) Load(ctx context.Context) (*models.Board, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	board, err := s.gateway.LoadAll(ctx)
	if err != nil {
		s.metrics.RecordLoad("error")
		return nil, err
	}
	s.metrics.RecordLoad("ok")
	if board == nil {
		board = models.NewBoard()
	}
	return board, nil
}

// Submit records a new version of the slot and queues it for delivery without waiting. The newest version always
// wins; when the queue is full the write is parked and replaces any older parked write for the same slot.
func (s *SyncService) Submit(write models.SlotWrite) models.SlotSyncState {
	s.mu.Lock()
	state, ok := s.states[write.Key]
	if !ok {
		state = &models.SlotSyncState{Key: write.Key}
		s.states[write.Key] = state
	}
	state.Version++
	state.Status = models.SyncStatusPending
	state.Attempts = 0
	state.LastError = ""
	state.UpdatedAt = s.now().UTC()
	payload := slotSaveJob{Write: write, Version: state.Version}
	snapshot := *state
	s.mu.Unlock()
	s.publishPending()

	if err := s.dispatch(payload); err != nil {
		s.logger.Error("failed to queue slot write", zap.String("slot", write.Key.String()), zap.Error(err))
		s.markFailed(write.Key, payload.Version, err)
		return s.stateOf(write.Key)
	}
	return snapshot
}

func (s *SyncService) dispatch(payload slotSaveJob) error {
	err := s.queue.TryEnqueue(saveJob(payload))
	if !errors.Is(err, jobs.ErrQueueFull) {
		return err
	}
	s.mu.Lock()
	s.parked[payload.Write.Key] = payload
	parked := len(s.parked)
	s.mu.Unlock()
	s.logger.Warn("sync queue full, slot write parked", zap.String("slot", payload.Write.Key.String()), zap.Int("parked", parked))
	// Workers may have drained the buffer before the write was parked.
	s.releaseParked()
	return nil
}

// releaseParked moves parked writes into the queue while it has room.
func (s *SyncService) releaseParked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, payload := range s.parked {
		if state, ok := s.states[key]; !ok || state.Version != payload.Version {
			delete(s.parked, key)
			continue
		}
		if err := s.queue.TryEnqueue(saveJob(payload)); err != nil {
			if !errors.Is(err, jobs.ErrQueueFull) {
				s.logger.Error("failed to release parked slot write", zap.String("slot", key.String()), zap.Error(err))
			}
			return
		}
		delete(s.parked, key)
	}
}

func saveJob(payload slotSaveJob) jobs.Job {
	return jobs.Job{
		ID:      fmt.Sprintf("%s#%d", payload.Write.Key, payload.Version),
		Type:    slotSaveJobType,
		Payload: payload,
	}
}

func (s *SyncService) handle(ctx context.Context, job jobs.Job) error {
	defer s.releaseParked()
	payload, ok := job.Payload.(slotSaveJob)
	if !ok {
		return fmt.Errorf("%w: unexpected payload %T", jobs.ErrPermanent, job.Payload)
	}
	if !s.isCurrent(payload.Write.Key, payload.Version) {
		s.metrics.RecordSyncWrite("superseded", 0)
		s.logger.Debug("dropping superseded slot write", zap.String("job_id", job.ID))
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.gateway.SaveSlot(callCtx, payload.Write)
	duration := time.Since(start)
	if err != nil {
		s.metrics.RecordSyncWrite("error", duration)
		s.recordAttempt(payload.Write.Key, payload.Version, err)
		if appErrors.Is(err, appErrors.ErrGatewayNotConfigured) {
			return fmt.Errorf("%w: %w", jobs.ErrPermanent, err)
		}
		return err
	}

	s.metrics.RecordSyncWrite("ok", duration)
	s.mu.Lock()
	if state, ok := s.states[payload.Write.Key]; ok && state.Version == payload.Version {
		state.Status = models.SyncStatusSynced
		state.Attempts++
		state.LastError = ""
		state.UpdatedAt = s.now().UTC()
	}
	s.mu.Unlock()
	s.publishPending()
	return nil
}

func (s *SyncService) exhausted(job jobs.Job, err error) {
	payload, ok := job.Payload.(slotSaveJob)
	if !ok {
		return
	}
	s.markFailed(payload.Write.Key, payload.Version, err)
}

func (s *SyncService) recordAttempt(key models.SlotKey, version uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[key]; ok && state.Version == version {
		state.Attempts++
		state.LastError = err.Error()
		state.UpdatedAt = s.now().UTC()
	}
}

func (s *SyncService) markFailed(key models.SlotKey, version uint64, err error) {
	s.mu.Lock()
	state, ok := s.states[key]
	if ok && state.Version == version {
		state.Status = models.SyncStatusFailed
		state.LastError = failureText(err)
		state.UpdatedAt = s.now().UTC()
	}
	s.mu.Unlock()
	if ok {
		s.logger.Warn("slot write abandoned", zap.String("slot", key.String()), zap.Uint64("version", version), zap.Error(err))
	}
	s.publishPending()
}

func failureText(err error) string {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func (s *SyncService) isCurrent(key models.SlotKey, version uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[key]
	return ok && state.Version == version
}

func (s *SyncService) stateOf(key models.SlotKey) models.SlotSyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[key]; ok {
		return *state
	}
	return models.SlotSyncState{Key: key, Status: models.SyncStatusSynced}
}

// SlotStatus returns the delivery state of a slot; untouched slots are synced.
func (s *SyncService) SlotStatus(key models.SlotKey) models.SyncStatus {
	return s.stateOf(key).Status
}

// PendingKeys lists slots whose latest write has not been delivered yet.
func (s *SyncService) PendingKeys() []models.SlotKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []models.SlotKey
	for key, state := range s.states {
		if state.Status == models.SyncStatusPending {
			keys = append(keys, key)
		}
	}
	return keys
}

// Pending counts slots with undelivered writes.
func (s *SyncService) Pending() int {
	return len(s.PendingKeys())
}

// Status lists every tracked slot ordered by key.
func (s *SyncService) Status() []models.SlotSyncState {
	s.mu.Lock()
	out := make([]models.SlotSyncState, 0, len(s.states))
	for _, state := range s.states {
		out = append(out, *state)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out
}

// Overview summarises the pipeline for the status endpoint.
func (s *SyncService) Overview() models.SyncOverview {
	slots := s.Status()
	overview := models.SyncOverview{Slots: slots}
	for _, state := range slots {
		switch state.Status {
		case models.SyncStatusPending:
			overview.Pending++
		case models.SyncStatusFailed:
			overview.Failed++
		}
	}
	return overview
}

// Forget drops tracking for every slot without an undelivered write. Called after a full reload, which makes the
// backing store's copy of those slots authoritative again.
func (s *SyncService) Forget() {
	s.mu.Lock()
	for key, state := range s.states {
		if state.Status != models.SyncStatusPending {
			delete(s.states, key)
		}
	}
	s.mu.Unlock()
}

func (s *SyncService) publishPending() {
	s.metrics.SetPendingSlots(s.Pending())
}
