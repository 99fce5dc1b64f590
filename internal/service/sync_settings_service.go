package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

// ScriptURLStore holds the runtime web app URL.
type ScriptURLStore interface {
	ScriptURL() string
	SetScriptURL(raw string)
}

type boardRefresher interface {
	Refresh(ctx context.Context) error
}

type snapshotDropper interface {
	DropSnapshot(ctx context.Context) error
}

// SyncSettingsService manages the spreadsheet web app URL at runtime.
type SyncSettingsService struct {
	store     ScriptURLStore
	board     boardRefresher
	snapshots snapshotDropper
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSyncSettingsService constructs the service. store is nil when the board is not backed by the spreadsheet;
// snapshots may be nil when no snapshot cache is kept.
func NewSyncSettingsService(store ScriptURLStore, board boardRefresher, snapshots snapshotDropper, validate *validator.Validate, logger *zap.Logger) *SyncSettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncSettingsService{store: store, board: board, snapshots: snapshots, validator: validate, logger: logger}
}

// Current returns the active settings.
func (s *SyncSettingsService) Current() dto.SyncSettingsResponse {
	if s.store == nil {
		return dto.SyncSettingsResponse{Configured: true}
	}
	url := s.store.ScriptURL()
	return dto.SyncSettingsResponse{Configured: url != "", ScriptURL: url}
}

// Update stores the new URL and reloads the board from it. An empty URL disconnects the board.
func (s *SyncSettingsService) Update(ctx context.Context, req dto.SyncSettingsRequest) (dto.SyncSettingsResponse, error) {
	if s.store == nil {
		return dto.SyncSettingsResponse{}, appErrors.Clone(appErrors.ErrValidation, "script url only applies to the spreadsheet backend")
	}
	if err := s.validator.Struct(req); err != nil {
		return dto.SyncSettingsResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sync settings payload")
	}
	previous := s.store.ScriptURL()
	s.store.SetScriptURL(req.ScriptURL)
	s.logger.Info("script url updated", zap.Bool("configured", req.ScriptURL != ""))
	// A snapshot taken from another spreadsheet must not seed the next startup.
	if previous != req.ScriptURL && s.snapshots != nil {
		if err := s.snapshots.DropSnapshot(ctx); err != nil {
			s.logger.Warn("failed to drop board snapshot", zap.Error(err))
		}
	}
	if req.ScriptURL == "" {
		return s.Current(), nil
	}
	if err := s.board.Refresh(ctx); err != nil {
		return s.Current(), err
	}
	return s.Current(), nil
}
