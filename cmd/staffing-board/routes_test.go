package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/handler"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	"github.com/noah-isme/idu-staffing-board/internal/repository"
	"github.com/noah-isme/idu-staffing-board/internal/roster"
	"github.com/noah-isme/idu-staffing-board/internal/service"
	"github.com/noah-isme/idu-staffing-board/pkg/config"
)

type fakeSheet struct {
	mu     sync.Mutex
	writes []string
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("action") == "write" {
		f.mu.Lock()
		f.writes = append(f.writes, q.Get("key")+"="+q.Get("teachers"))
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true}`))
		return
	}
	_, _ = w.Write([]byte(`{"success":true,"assignments":{"Day 2-Block 1-Year 8-8.1":["Alan Kirk"]},"locations":{}}`))
}

func (f *fakeSheet) written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

type testServer struct {
	router *gin.Engine
	sheet  *fakeSheet
	tokens *service.TokenService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sheet := &fakeSheet{}
	srv := httptest.NewServer(sheet)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api/v1", JWT: config.JWTConfig{Enabled: true, Secret: "test"}}
	logr := zap.NewNop()

	def := roster.Default()
	idx := service.BuildRosterIndex(def)
	timetable := service.ImportTimetable(def.TimetableFeed, idx.Names(), logr)
	metrics := service.NewMetricsService()

	gateway := repository.NewSheetGateway(srv.URL, time.Second, logr)
	syncSvc := service.NewSyncService(gateway, service.SyncConfig{RetryDelay: 10 * time.Millisecond}, metrics, logr)
	syncSvc.Start(context.Background())
	t.Cleanup(syncSvc.Stop)

	board := service.NewBoardService(idx, service.NewAvailabilityService(timetable, idx.ManualConflicts()), syncSvc, nil, metrics, nil, logr)
	require.NoError(t, board.Bootstrap(context.Background()))

	tokens := service.NewTokenService("test")
	router := newRouter(cfg, logr, routes{
		board:        handler.NewBoardHandler(board),
		availability: handler.NewAvailabilityHandler(board),
		roster:       handler.NewRosterHandler(idx, board, service.NewLocationService(idx)),
		sync:         handler.NewSyncHandler(board, syncSvc, service.NewSyncSettingsService(gateway, board, nil, nil, logr)),
		exports:      handler.NewExportHandler(service.NewExportService(board, logr, nil, nil, nil)),
		metrics:      handler.NewMetricsHandler(metrics, nil),
		tokens:       tokens,
		observer:     metrics,
	})
	return &testServer{router: router, sheet: sheet, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path string, role models.StaffRole, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := s.tokens.Issue("Staff "+string(role), role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestBoardFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	assign := map[string]string{"day": "Day 1", "block": "Block 1", "year": "Year 7", "class": "7.1", "teacher": "Tod Baker"}

	w := s.do(t, http.MethodGet, "/api/v1/board", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/board", models.RoleViewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alan Kirk")

	w = s.do(t, http.MethodPost, "/api/v1/board/assignments", models.RoleViewer, assign)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/board/assignments", models.RoleEditor, assign)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"editedBy":"Staff editor"`)

	assign["class"] = "7.2"
	w = s.do(t, http.MethodPost, "/api/v1/board/assignments", models.RoleEditor, assign)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Tod Baker is already scheduled in Block 1 on Day 1! Cannot double book.")

	require.Eventually(t, func() bool {
		return len(s.sheet.written()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Day 1-Block 1-Year 7-7.1=Tod Baker", s.sheet.written()[0])

	w = s.do(t, http.MethodGet, "/api/v1/availability/teacher?teacher=Tod+Baker&day=Day+1&block=Block+1", models.RoleViewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"busy":true`)
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sync_board_loads_total")
}
