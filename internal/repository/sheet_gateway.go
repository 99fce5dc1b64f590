package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

const sheetResponseLimit = 8 << 20

type sheetResponse struct {
	Success     bool                                  `json:"success"`
	Assignments map[string][]string                   `json:"assignments"`
	Locations   map[string]map[string]json.RawMessage `json:"locations"`
	Error       string                                `json:"error"`
}

// SheetGateway talks to the spreadsheet web app that stores the board.
type SheetGateway struct {
	client *http.Client
	logger *zap.Logger

	mu        sync.RWMutex
	scriptURL string
}

// NewSheetGateway constructs the gateway. An empty URL leaves it unconfigured.
func NewSheetGateway(scriptURL string, timeout time.Duration, logger *zap.Logger) *SheetGateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetGateway{
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
		scriptURL: strings.TrimSpace(scriptURL),
	}
}

// ScriptURL returns the active web app URL.
func (g *SheetGateway) ScriptURL() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scriptURL
}

// SetScriptURL replaces the web app URL at runtime.
func (g *SheetGateway) SetScriptURL(raw string) {
	g.mu.Lock()
	g.scriptURL = strings.TrimSpace(raw)
	g.mu.Unlock()
}

// LoadAll reads every stored slot. Keys that do not parse are skipped.
func (g *SheetGateway) LoadAll(ctx context.Context) (*models.Board, error) {
	params := url.Values{}
	params.Set("action", "read")
	payload, err := g.call(ctx, params)
	if err != nil {
		return nil, err
	}

	board := models.NewBoard()
	for rawKey, teachers := range payload.Assignments {
		key, err := models.ParseSlotKey(rawKey)
		if err != nil {
			g.logger.Warn("skipping malformed slot key", zap.String("key", rawKey), zap.Error(err))
			continue
		}
		names := cleanNames(teachers)
		if len(names) > 0 {
			board.Assignments[key] = names
		}
	}
	for rawKey, locs := range payload.Locations {
		key, err := models.ParseSlotKey(rawKey)
		if err != nil {
			g.logger.Warn("skipping malformed slot key", zap.String("key", rawKey), zap.Error(err))
			continue
		}
		slot := make(map[string]string, len(locs))
		for teacher, raw := range locs {
			var loc string
			if err := json.Unmarshal(raw, &loc); err != nil || loc == "" {
				continue
			}
			slot[teacher] = loc
		}
		if len(slot) > 0 {
			board.Locations[key] = slot
		}
	}
	return board, nil
}

// SaveSlot writes one slot. The web app deletes the row when the slot is empty.
func (g *SheetGateway) SaveSlot(ctx context.Context, write models.SlotWrite) error {
	params := url.Values{}
	params.Set("action", "write")
	params.Set("key", write.Key.String())
	params.Set("day", string(write.Key.Day))
	params.Set("block", string(write.Key.Block))
	params.Set("year", write.Key.Year)
	params.Set("class", write.Key.Class)
	params.Set("teachers", strings.Join(write.Teachers, ","))
	params.Set("locations", write.LocationsJSON())
	_, err := g.call(ctx, params)
	return err
}

func (g *SheetGateway) call(ctx context.Context, params url.Values) (*sheetResponse, error) {
	base := g.ScriptURL()
	if base == "" {
		return nil, appErrors.ErrGatewayNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "invalid script url")
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "spreadsheet request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, sheetResponseLimit))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "read spreadsheet response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, appErrors.Wrap(fmt.Errorf("status %d", resp.StatusCode), appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "spreadsheet returned an error status")
	}

	var payload sheetResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "decode spreadsheet response")
	}
	if !payload.Success {
		msg := payload.Error
		if msg == "" {
			msg = "Unknown error from sheet"
		}
		return nil, appErrors.Clone(appErrors.ErrGatewayUnavailable, msg)
	}
	return &payload, nil
}

func cleanNames(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
