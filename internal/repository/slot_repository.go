package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/models"
)

type slotRow struct {
	SlotKey   string    `db:"slot_key"`
	Day       string    `db:"day"`
	Block     string    `db:"block"`
	YearGroup string    `db:"year_group"`
	ClassName string    `db:"class_name"`
	Teachers  string    `db:"teachers"`
	Locations string    `db:"locations"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SlotRepository stores the board in PostgreSQL, one row per non-empty slot.
type SlotRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSlotRepository builds the repository.
func NewSlotRepository(db *sqlx.DB, logger *zap.Logger) *SlotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotRepository{db: db, logger: logger}
}

// LoadAll returns every stored slot as a board.
func (r *SlotRepository) LoadAll(ctx context.Context) (*models.Board, error) {
	const query = `SELECT slot_key, day, block, year_group, class_name, teachers, locations, updated_at
FROM staffing_slots ORDER BY slot_key ASC`
	var rows []slotRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list staffing slots: %w", err)
	}

	board := models.NewBoard()
	for _, row := range rows {
		key, err := models.ParseSlotKey(row.SlotKey)
		if err != nil {
			r.logger.Warn("skipping malformed slot key", zap.String("key", row.SlotKey), zap.Error(err))
			continue
		}
		if teachers := cleanNames(strings.Split(row.Teachers, ",")); len(teachers) > 0 {
			board.Assignments[key] = teachers
		}
		locs := map[string]string{}
		if row.Locations != "" {
			if err := json.Unmarshal([]byte(row.Locations), &locs); err != nil {
				r.logger.Warn("ignoring unreadable slot locations", zap.String("key", row.SlotKey), zap.Error(err))
				locs = map[string]string{}
			}
		}
		if len(locs) > 0 {
			board.Locations[key] = locs
		}
	}
	return board, nil
}

// SaveSlot upserts the slot, or deletes its row when the slot no longer carries data.
func (r *SlotRepository) SaveSlot(ctx context.Context, write models.SlotWrite) error {
	if write.Empty() {
		const del = `DELETE FROM staffing_slots WHERE slot_key = $1`
		if _, err := r.db.ExecContext(ctx, del, write.Key.String()); err != nil {
			return fmt.Errorf("delete staffing slot: %w", err)
		}
		return nil
	}

	const upsert = `
INSERT INTO staffing_slots (slot_key, day, block, year_group, class_name, teachers, locations, updated_at)
VALUES (:slot_key, :day, :block, :year_group, :class_name, :teachers, CAST(:locations AS JSONB), :updated_at)
ON CONFLICT (slot_key) DO UPDATE
SET teachers = EXCLUDED.teachers,
    locations = EXCLUDED.locations,
    updated_at = EXCLUDED.updated_at`

	row := slotRow{
		SlotKey:   write.Key.String(),
		Day:       string(write.Key.Day),
		Block:     string(write.Key.Block),
		YearGroup: write.Key.Year,
		ClassName: write.Key.Class,
		Teachers:  strings.Join(write.Teachers, ","),
		Locations: write.LocationsJSON(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.db.NamedExecContext(ctx, upsert, row); err != nil {
		return fmt.Errorf("upsert staffing slot: %w", err)
	}
	return nil
}
