package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/dto"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
)

type slotSyncer interface {
	Load(ctx context.Context) (*models.Board, error)
	Submit(write models.SlotWrite) models.SlotSyncState
	SlotStatus(key models.SlotKey) models.SyncStatus
	PendingKeys() []models.SlotKey
	Forget()
}

type snapshotCache interface {
	StoreSnapshot(ctx context.Context, board *models.Board) error
	LoadSnapshot(ctx context.Context) (*models.Board, error)
}

// BoardService owns the assignment store and applies the double-booking rules to every mutation.
type BoardService struct {
	roster       *RosterIndex
	availability *AvailabilityService
	sync         slotSyncer
	cache        snapshotCache
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time

	mu         sync.RWMutex
	board      *models.Board
	lastLoaded *time.Time
	// generation counts local mutations; touched records the generation of each slot's latest one.
	generation uint64
	touched    map[models.SlotKey]uint64
}

// NewBoardService wires the board. cache and metrics may be nil.
func NewBoardService(
	roster *RosterIndex,
	availability *AvailabilityService,
	syncer slotSyncer,
	cache snapshotCache,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *BoardService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{
		roster:       roster,
		availability: availability,
		sync:         syncer,
		cache:        cache,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
		board:        models.NewBoard(),
		touched:      make(map[models.SlotKey]uint64),
	}
}

// Bootstrap performs the startup load. When the backing store cannot be reached the last cached snapshot is used.
func (s *BoardService) Bootstrap(ctx context.Context) error {
	err := s.Refresh(ctx)
	if err == nil || s.cache == nil {
		return err
	}
	snapshot, cacheErr := s.cache.LoadSnapshot(ctx)
	if cacheErr != nil || snapshot == nil {
		return err
	}
	s.mu.Lock()
	s.board = snapshot
	s.mu.Unlock()
	s.logger.Warn("serving cached board snapshot", zap.Int("slots", len(snapshot.Keys())), zap.Error(err))
	return err
}

// Refresh replaces the board with the backing store's copy. Slots with undelivered local writes, and slots changed
// locally while the load was in flight, keep their local content. On failure the current board is left untouched.
func (s *BoardService) Refresh(ctx context.Context) error {
	s.mu.RLock()
	mark := s.generation
	s.mu.RUnlock()

	loaded, err := s.sync.Load(ctx)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrGatewayNotConfigured) {
			return appErrors.ErrGatewayNotConfigured
		}
		s.logger.Error("failed to load board", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrGatewayUnavailable.Code, appErrors.ErrGatewayUnavailable.Status, "failed to load board")
	}

	if loaded.Assignments == nil {
		loaded.Assignments = models.AssignmentMap{}
	}
	if loaded.Locations == nil {
		loaded.Locations = models.LocationAssignmentMap{}
	}

	s.mu.Lock()
	keep := s.sync.PendingKeys()
	for key, gen := range s.touched {
		if gen > mark {
			keep = append(keep, key)
		} else {
			delete(s.touched, key)
		}
	}
	for _, key := range keep {
		delete(loaded.Assignments, key)
		delete(loaded.Locations, key)
		if teachers := s.board.Teachers(key); len(teachers) > 0 {
			loaded.Assignments[key] = teachers
		}
		if locs := s.board.SlotLocations(key); len(locs) > 0 {
			loaded.Locations[key] = locs
		}
	}
	s.board = loaded
	now := s.now().UTC()
	s.lastLoaded = &now
	snapshot := loaded.Clone()
	s.mu.Unlock()
	s.sync.Forget()

	s.logger.Info("board loaded", zap.Int("slots", len(snapshot.Keys())), zap.Int("local_kept", len(keep)))
	if s.cache != nil {
		if err := s.cache.StoreSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn("failed to cache board snapshot", zap.Error(err))
		}
	}
	return nil
}

func (s *BoardService) touchLocked(key models.SlotKey) {
	s.generation++
	s.touched[key] = s.generation
}

// AssignTeacher drops a teacher onto a slot. Dropping a teacher already in the slot is a no-op.
func (s *BoardService) AssignTeacher(ctx context.Context, req dto.TeacherAssignmentRequest) (*models.SlotView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher assignment payload")
	}
	key, err := s.resolveSlot(req.Day, req.Block, req.Year, req.Class)
	if err != nil {
		return nil, err
	}
	teacher := strings.TrimSpace(req.Teacher)

	s.mu.Lock()
	current := s.board.Assignments[key]
	if containsName(current, teacher) {
		view := s.slotViewLocked(key)
		s.mu.Unlock()
		return s.withStatus(view, key), nil
	}
	if s.availability.IsTeacherBusy(s.board, teacher, key.Day, key.Block) {
		s.mu.Unlock()
		s.metrics.RecordRefusal("teacher")
		return nil, appErrors.Clone(appErrors.ErrTeacherBusy,
			fmt.Sprintf("%s is already scheduled in %s on %s! Cannot double book.", teacher, key.Block, key.Day))
	}
	s.board.Assignments[key] = append(s.board.Teachers(key), teacher)
	s.touchLocked(key)
	write := s.board.Write(key)
	view := s.slotViewLocked(key)
	s.mu.Unlock()

	s.submit(write, "assign_teacher")
	s.logger.Info("teacher assigned", zap.String("slot", key.String()), zap.String("teacher", teacher))
	return s.withStatus(view, key), nil
}

// UnassignTeacher removes a teacher and their location from a slot. Removing an absent teacher is a no-op.
func (s *BoardService) UnassignTeacher(ctx context.Context, req dto.TeacherAssignmentRequest) (*models.SlotView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher removal payload")
	}
	key, err := s.resolveSlot(req.Day, req.Block, req.Year, req.Class)
	if err != nil {
		return nil, err
	}
	teacher := strings.TrimSpace(req.Teacher)

	s.mu.Lock()
	changed := false
	if current := s.board.Assignments[key]; containsName(current, teacher) {
		remaining := make([]string, 0, len(current)-1)
		for _, t := range current {
			if t != teacher {
				remaining = append(remaining, t)
			}
		}
		if len(remaining) == 0 {
			delete(s.board.Assignments, key)
		} else {
			s.board.Assignments[key] = remaining
		}
		changed = true
	}
	if locs, ok := s.board.Locations[key]; ok {
		if _, held := locs[teacher]; held {
			delete(locs, teacher)
			if len(locs) == 0 {
				delete(s.board.Locations, key)
			}
			changed = true
		}
	}
	if changed {
		s.touchLocked(key)
	}
	write := s.board.Write(key)
	view := s.slotViewLocked(key)
	s.mu.Unlock()

	if changed {
		s.submit(write, "unassign_teacher")
		s.logger.Info("teacher unassigned", zap.String("slot", key.String()), zap.String("teacher", teacher))
	}
	return s.withStatus(view, key), nil
}

// AssignLocation sets the room a teacher uses in a slot, replacing any earlier room for that teacher.
func (s *BoardService) AssignLocation(ctx context.Context, req dto.LocationAssignmentRequest) (*models.SlotView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid location assignment payload")
	}
	key, err := s.resolveSlot(req.Day, req.Block, req.Year, req.Class)
	if err != nil {
		return nil, err
	}
	teacher := strings.TrimSpace(req.Teacher)
	location := strings.TrimSpace(req.Location)
	if !s.roster.HasLocation(location) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown location %q", location))
	}

	s.mu.Lock()
	if s.board.Locations[key][teacher] == location {
		view := s.slotViewLocked(key)
		s.mu.Unlock()
		return s.withStatus(view, key), nil
	}
	if s.availability.IsLocationBusy(s.board, location, key.Day, key.Block) {
		s.mu.Unlock()
		s.metrics.RecordRefusal("location")
		return nil, appErrors.Clone(appErrors.ErrLocationBusy,
			fmt.Sprintf("%s is already booked in %s on %s!", location, key.Block, key.Day))
	}
	locs, ok := s.board.Locations[key]
	if !ok {
		locs = make(map[string]string)
		s.board.Locations[key] = locs
	}
	locs[teacher] = location
	s.touchLocked(key)
	write := s.board.Write(key)
	view := s.slotViewLocked(key)
	s.mu.Unlock()

	s.submit(write, "assign_location")
	s.logger.Info("location assigned", zap.String("slot", key.String()), zap.String("teacher", teacher), zap.String("location", location))
	return s.withStatus(view, key), nil
}

// Slot renders a single slot.
func (s *BoardService) Slot(ctx context.Context, query dto.SlotQuery) (*models.SlotView, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot query")
	}
	key, err := s.resolveSlot(query.Day, query.Block, query.Year, query.Class)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	view := s.slotViewLocked(key)
	s.mu.RUnlock()
	return s.withStatus(view, key), nil
}

// Sidebar lists the teacher chips for a year group. In by-class view the class subset is shown when one is
// configured. Busy state is only computed in by-block view, where a single block is on screen.
func (s *BoardService) Sidebar(ctx context.Context, query dto.SidebarQuery) ([]models.TeacherChip, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid sidebar query")
	}
	group, ok := s.roster.YearGroup(query.Year)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("year group %q not found", query.Year))
	}
	day, err := models.ParseDay(query.Day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	view := query.View
	if view == "" {
		view = dto.ViewByBlock
	}
	var block models.Block
	if view == dto.ViewByBlock {
		if block, err = models.ParseBlock(query.Block); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}

	names := group.Teachers
	if view == dto.ViewByClass && query.Class != "" {
		names = group.TeachersFor(query.Class)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	chips := make([]models.TeacherChip, 0, len(names))
	for _, name := range names {
		chip := models.TeacherChip{Name: name, IsDP: s.availability.IsDPTeacher(name)}
		if code, ok := s.roster.Names().Code(name); ok {
			chip.Code = code
		}
		if view == dto.ViewByBlock {
			chip.Busy = s.availability.IsTeacherBusy(s.board, name, day, block)
			chip.Conflict = s.availability.TeacherConflict(name, day, block)
		}
		chips = append(chips, chip)
	}
	return chips, nil
}

// DayBoard renders every class row of every year group for one day.
func (s *BoardService) DayBoard(day models.Day) models.DayBoard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.DayBoard{Day: day}
	for _, group := range s.roster.YearGroups() {
		for _, class := range group.Classes {
			row := models.DayBoardRow{Year: group.ID, Class: class, Blocks: make(map[models.Block][]models.SlotTeacher, len(models.Blocks))}
			for _, block := range models.Blocks {
				key := models.SlotKey{Day: day, Block: block, Year: group.ID, Class: class}
				row.Blocks[block] = s.slotTeachersLocked(key)
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Snapshot returns a deep copy of the board.
func (s *BoardService) Snapshot() *models.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Clone()
}

// TeacherBusy reports whether the teacher is placed anywhere at day/block.
func (s *BoardService) TeacherBusy(teacher string, day models.Day, block models.Block) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availability.IsTeacherBusy(s.board, teacher, day, block)
}

// LocationBusy reports whether the location is held anywhere at day/block.
func (s *BoardService) LocationBusy(location string, day models.Day, block models.Block) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.availability.IsLocationBusy(s.board, location, day, block)
}

// TeacherConflict reports the DP conflict of a teacher at day/block.
func (s *BoardService) TeacherConflict(teacher string, day models.Day, block models.Block) models.TeacherConflict {
	return s.availability.TeacherConflict(teacher, day, block)
}

// LastLoadedAt returns when the board was last loaded from the backing store.
func (s *BoardService) LastLoadedAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastLoaded == nil {
		return nil
	}
	t := *s.lastLoaded
	return &t
}

func (s *BoardService) resolveSlot(day, block, year, class string) (models.SlotKey, error) {
	key, err := models.NewSlotKey(day, block, year, class)
	if err != nil {
		return models.SlotKey{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	group, ok := s.roster.YearGroup(key.Year)
	if !ok {
		return models.SlotKey{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("year group %q not found", key.Year))
	}
	if !group.HasClass(key.Class) {
		return models.SlotKey{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("class %q not found in %s", key.Class, key.Year))
	}
	return key, nil
}

func (s *BoardService) submit(write models.SlotWrite, op string) {
	s.metrics.RecordMutation(op)
	s.sync.Submit(write)
}

func (s *BoardService) slotViewLocked(key models.SlotKey) *models.SlotView {
	return &models.SlotView{
		Key:      key.String(),
		Day:      key.Day,
		Block:    key.Block,
		Year:     key.Year,
		Class:    key.Class,
		Teachers: s.slotTeachersLocked(key),
	}
}

func (s *BoardService) slotTeachersLocked(key models.SlotKey) []models.SlotTeacher {
	teachers := s.board.Assignments[key]
	locs := s.board.Locations[key]
	out := make([]models.SlotTeacher, 0, len(teachers))
	for _, name := range teachers {
		out = append(out, models.SlotTeacher{
			Name:     name,
			Location: locs[name],
			Conflict: s.availability.TeacherConflict(name, key.Day, key.Block),
		})
	}
	return out
}

func (s *BoardService) withStatus(view *models.SlotView, key models.SlotKey) *models.SlotView {
	view.SyncStatus = s.sync.SlotStatus(key)
	return view
}

func containsName(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// TeacherAvailability answers whether a teacher can be dropped at a day and block.
func (s *BoardService) TeacherAvailability(query dto.TeacherAvailabilityQuery) (*dto.TeacherAvailabilityResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	day, block, err := parseDayBlock(query.Day, query.Block)
	if err != nil {
		return nil, err
	}
	return &dto.TeacherAvailabilityResponse{
		Teacher:  query.Teacher,
		Day:      string(day),
		Block:    string(block),
		Busy:     s.TeacherBusy(query.Teacher, day, block),
		Conflict: s.TeacherConflict(query.Teacher, day, block),
	}, nil
}

// LocationAvailability answers whether a location can be dropped at a day and block.
func (s *BoardService) LocationAvailability(query dto.LocationAvailabilityQuery) (*dto.LocationAvailabilityResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	day, block, err := parseDayBlock(query.Day, query.Block)
	if err != nil {
		return nil, err
	}
	return &dto.LocationAvailabilityResponse{
		Location: query.Location,
		Day:      string(day),
		Block:    string(block),
		Busy:     s.LocationBusy(query.Location, day, block),
	}, nil
}

func parseDayBlock(rawDay, rawBlock string) (models.Day, models.Block, error) {
	day, err := models.ParseDay(rawDay)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	block, err := models.ParseBlock(rawBlock)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return day, block, nil
}
