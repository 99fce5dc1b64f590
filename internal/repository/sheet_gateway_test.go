package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

func TestSheetGatewayLoadAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "read", r.URL.Query().Get("action"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"assignments": {
				"Day 1-Block 1-Year 7-7.1": ["Tod Baker", " ", "Myra Pyne "],
				"Day 2-Block 3-Year 10 (Order in Chaos)-TH + MA": ["Nicola Grant"],
				"garbage": ["Nobody"]
			},
			"locations": {
				"Day 1-Block 1-Year 7-7.1": {"Tod Baker": "Theatre", "Myra Pyne": null}
			}
		}`))
	}))
	defer srv.Close()

	gw := NewSheetGateway(srv.URL, time.Second, nil)
	board, err := gw.LoadAll(context.Background())
	require.NoError(t, err)

	k71 := models.SlotKey{Day: models.Day1, Block: models.Block1, Year: "Year 7", Class: "7.1"}
	k10 := models.SlotKey{Day: models.Day2, Block: models.Block3, Year: "Year 10 (Order in Chaos)", Class: "TH + MA"}
	assert.Len(t, board.Assignments, 2)
	assert.Equal(t, []string{"Tod Baker", "Myra Pyne"}, board.Assignments[k71])
	assert.Equal(t, []string{"Nicola Grant"}, board.Assignments[k10])
	assert.Equal(t, map[string]string{"Tod Baker": "Theatre"}, board.Locations[k71])
}

func TestSheetGatewaySaveSlotParams(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	gw := NewSheetGateway(srv.URL, time.Second, nil)
	key := models.SlotKey{Day: models.Day4, Block: models.BlockDT, Year: "Year 8", Class: "8.4"}
	err := gw.SaveSlot(context.Background(), models.SlotWrite{
		Key:       key,
		Teachers:  []string{"Alan Kirk", "Aj Lim"},
		Locations: map[string]string{"Alan Kirk": "3B3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "write", got.Get("action"))
	assert.Equal(t, "Day 4-DT-Year 8-8.4", got.Get("key"))
	assert.Equal(t, "Day 4", got.Get("day"))
	assert.Equal(t, "DT", got.Get("block"))
	assert.Equal(t, "Year 8", got.Get("year"))
	assert.Equal(t, "8.4", got.Get("class"))
	assert.Equal(t, "Alan Kirk,Aj Lim", got.Get("teachers"))
	assert.JSONEq(t, `{"Alan Kirk":"3B3"}`, got.Get("locations"))
}

func TestSheetGatewayNotConfigured(t *testing.T) {
	gw := NewSheetGateway("  ", time.Second, nil)

	_, err := gw.LoadAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, "No Script URL configured", err.Error())

	err = gw.SaveSlot(context.Background(), models.SlotWrite{})
	assert.True(t, appErrors.Is(err, appErrors.ErrGatewayNotConfigured))
}

func TestSheetGatewayRuntimeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "assignments": {}}`))
	}))
	defer srv.Close()

	gw := NewSheetGateway("", time.Second, nil)
	gw.SetScriptURL(srv.URL)
	assert.Equal(t, srv.URL, gw.ScriptURL())

	board, err := gw.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, board.Assignments)
}

func TestSheetGatewayFailures(t *testing.T) {
	cases := map[string]struct {
		status  int
		body    string
		message string
	}{
		"reported error": {status: http.StatusOK, body: `{"success": false, "error": "Sheet locked"}`, message: "Sheet locked"},
		"silent failure": {status: http.StatusOK, body: `{"success": false}`, message: "Unknown error from sheet"},
		"bad status":     {status: http.StatusInternalServerError, body: `oops`, message: "spreadsheet returned an error status"},
		"bad json":       {status: http.StatusOK, body: `<html>`, message: "decode spreadsheet response"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewSheetGateway(srv.URL, time.Second, nil).LoadAll(context.Background())
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrGatewayUnavailable))
			assert.Equal(t, tc.message, appErrors.FromError(err).Message)
		})
	}
}
