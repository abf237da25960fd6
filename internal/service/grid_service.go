package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
	"github.com/Freeeeeet/tutor_dashboard/internal/staging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GridKind вид редактируемой сетки
type GridKind string

const (
	GridTeacherAvailability GridKind = "teacher_availability"
	GridStudentAvailability GridKind = "student_availability"
	GridFees                GridKind = "fees"
)

// Valid проверяет, что вид сетки известен
func (k GridKind) Valid() bool {
	switch k {
	case GridTeacherAvailability, GridStudentAvailability, GridFees:
		return true
	}
	return false
}

// fallback значение ячейки без записи в хранилище.
// Нет записи доступности - человек свободен; нет записи оплаты - ничего не оплачено.
func (k GridKind) fallback() model.SlotFlags {
	if k == GridFees {
		return model.SlotFlags{}
	}
	return model.AllSlotFlags()
}

// Grid открытая сетка одного пользователя по дням
type Grid struct {
	Kind      GridKind
	OwnerID   int64
	SubjectID int64
	From      model.Date
	Days      int

	manager *staging.Manager
}

// NewGrid создаёт сетку поверх снимка базовых значений
func NewGrid(kind GridKind, ownerID, subjectID int64, from model.Date, days int, store staging.BaselineStore) *Grid {
	return &Grid{
		Kind:      kind,
		OwnerID:   ownerID,
		SubjectID: subjectID,
		From:      from,
		Days:      days,
		manager:   staging.NewManager(store),
	}
}

// Dates даты строк сетки
func (g *Grid) Dates() []model.Date {
	dates := make([]model.Date, 0, g.Days)
	for i := 0; i < g.Days; i++ {
		dates = append(dates, g.From.AddDays(i))
	}
	return dates
}

// Contains входит ли дата в сетку
func (g *Grid) Contains(date model.Date) bool {
	return !date.Before(g.From) && date.Before(g.From.AddDays(g.Days))
}

func (g *Grid) key(date model.Date) staging.Key {
	return staging.Key{SubjectID: g.SubjectID, Date: date}
}

// Effective значение ячейки с учётом правок
func (g *Grid) Effective(date model.Date) staging.Effective {
	return g.manager.GetEffective(g.key(date))
}

// IsFieldChanged изменён ли отрезок ячейки
func (g *Grid) IsFieldChanged(date model.Date, slot model.TimeSlot) bool {
	return g.manager.IsFieldChanged(g.key(date), slot)
}

// ChangeCount количество изменённых дней
func (g *Grid) ChangeCount() int {
	return g.manager.ChangeCount()
}

// IsCommitting идёт ли сохранение
func (g *Grid) IsCommitting() bool {
	return g.manager.IsCommitting()
}

type gridKey struct {
	ownerID int64
	kind    GridKind
}

// GridService держит открытые сетки пользователей и сохраняет их правки
type GridService struct {
	repos     repository.Repositories
	txManager repository.TxManager
	logger    *zap.Logger

	mu    sync.RWMutex
	grids map[gridKey]*Grid
}

func NewGridService(repos repository.Repositories, txManager repository.TxManager, logger *zap.Logger) *GridService {
	return &GridService{
		repos:     repos,
		txManager: txManager,
		logger:    logger,
		grids:     make(map[gridKey]*Grid),
	}
}

// Open открывает сетку и загружает базовые значения из хранилища.
// Открытая сетка с несохранёнными правками возвращается как есть,
// если совпадает период и пользователь, иначе ErrUnsavedChanges.
func (s *GridService) Open(ctx context.Context, owner *model.User, kind GridKind, subjectID int64, from model.Date, days int) (*Grid, error) {
	if days <= 0 {
		return nil, fmt.Errorf("open grid: days must be positive, got %d", days)
	}

	if err := s.authorize(ctx, owner, kind, subjectID); err != nil {
		return nil, err
	}

	key := gridKey{ownerID: owner.ID, kind: kind}

	s.mu.RLock()
	existing, ok := s.grids[key]
	s.mu.RUnlock()

	if ok && existing.manager.HasChanges() {
		if existing.SubjectID == subjectID && existing.From == from && existing.Days == days {
			return existing, nil
		}
		return nil, ErrUnsavedChanges
	}

	snapshot := staging.NewSnapshot(kind.fallback())
	to := from.AddDays(days - 1)

	switch kind {
	case GridFees:
		records, err := s.repos.Fees.ListByStudents(ctx, []int64{subjectID}, from, to)
		if err != nil {
			return nil, fmt.Errorf("load fees: %w", err)
		}
		for _, record := range records {
			snapshot.Load(staging.Key{SubjectID: record.StudentID, Date: record.Date}, record.Slots)
		}
	default:
		records, err := s.repos.Availability.ListBySubjects(ctx, []int64{subjectID}, from, to)
		if err != nil {
			return nil, fmt.Errorf("load availability: %w", err)
		}
		for _, record := range records {
			snapshot.Load(staging.Key{SubjectID: record.SubjectID, Date: record.Date}, record.Slots)
		}
	}

	grid := NewGrid(kind, owner.ID, subjectID, from, days, snapshot)

	s.mu.Lock()
	s.grids[key] = grid
	s.mu.Unlock()

	s.logger.Debug("Grid opened",
		zap.Int64("owner_id", owner.ID),
		zap.String("kind", string(kind)),
		zap.Int64("subject_id", subjectID),
		zap.String("from", from.String()),
		zap.Int("days", days),
	)

	return grid, nil
}

// Get возвращает открытую сетку
func (s *GridService) Get(ownerID int64, kind GridKind) (*Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grid, ok := s.grids[gridKey{ownerID: ownerID, kind: kind}]
	if !ok {
		return nil, ErrGridNotOpen
	}
	return grid, nil
}

// Toggle переключает отрезок дня в сетке
func (g *Grid) Toggle(date model.Date, slot model.TimeSlot) (staging.Effective, error) {
	if !g.Contains(date) {
		return staging.Effective{}, ErrDateOutsideGrid
	}
	return g.manager.Toggle(g.key(date), slot)
}

// Toggle переключает отрезок дня в открытой сетке
func (s *GridService) Toggle(ownerID int64, kind GridKind, date model.Date, slot model.TimeSlot) (staging.Effective, error) {
	grid, err := s.Get(ownerID, kind)
	if err != nil {
		return staging.Effective{}, err
	}

	return grid.Toggle(date, slot)
}

// Discard отбрасывает все несохранённые правки сетки
func (s *GridService) Discard(ownerID int64, kind GridKind) error {
	grid, err := s.Get(ownerID, kind)
	if err != nil {
		return err
	}

	grid.manager.Discard()
	return nil
}

// Save сохраняет правки сетки одной транзакцией.
// При ошибке правки остаются, пользователь может повторить.
func (s *GridService) Save(ctx context.Context, ownerID int64, kind GridKind) (staging.CommitResult, error) {
	grid, err := s.Get(ownerID, kind)
	if err != nil {
		return staging.CommitResult{}, err
	}

	commitID := uuid.NewString()
	s.logger.Info("Saving grid",
		zap.String("commit_id", commitID),
		zap.Int64("owner_id", ownerID),
		zap.String("kind", string(kind)),
		zap.Int("changes", grid.ChangeCount()),
	)

	result, err := grid.manager.Commit(ctx, s.persistFunc(kind))
	if err != nil {
		s.logger.Error("Failed to save grid",
			zap.String("commit_id", commitID),
			zap.Int64("owner_id", ownerID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return staging.CommitResult{}, err
	}

	s.logger.Info("Grid saved",
		zap.String("commit_id", commitID),
		zap.Int("updates", result.Count()),
	)

	return result, nil
}

// Close закрывает сетку, несохранённые правки теряются
func (s *GridService) Close(ownerID int64, kind GridKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.grids, gridKey{ownerID: ownerID, kind: kind})
}

func (s *GridService) persistFunc(kind GridKind) staging.PersistFunc {
	if kind == GridFees {
		return func(ctx context.Context, updates []staging.Update) error {
			records := make([]model.FeeRecord, 0, len(updates))
			for _, u := range updates {
				records = append(records, model.FeeRecord{StudentID: u.SubjectID, Date: u.Date, Slots: u.Slots})
			}
			return s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
				return repos.Fees.UpsertBatch(ctx, records)
			})
		}
	}

	return func(ctx context.Context, updates []staging.Update) error {
		records := make([]model.AvailabilityRecord, 0, len(updates))
		for _, u := range updates {
			records = append(records, model.AvailabilityRecord{SubjectID: u.SubjectID, Date: u.Date, Slots: u.Slots})
		}
		return s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			return repos.Availability.UpsertBatch(ctx, records)
		})
	}
}

func (s *GridService) authorize(ctx context.Context, owner *model.User, kind GridKind, subjectID int64) error {
	switch kind {
	case GridTeacherAvailability:
		if owner.IsAdmin() {
			return s.requireRole(ctx, subjectID, model.RoleTeacher)
		}
		if !owner.IsTeacher() {
			return ErrNotATeacher
		}
		if subjectID != owner.ID {
			return ErrForbidden
		}
	case GridStudentAvailability:
		if owner.IsAdmin() {
			return s.requireRole(ctx, subjectID, model.RoleStudent)
		}
		if owner.Role != model.RoleStudent || subjectID != owner.ID {
			return ErrForbidden
		}
	case GridFees:
		if !owner.IsAdmin() && !owner.IsTeacher() {
			return ErrForbidden
		}
		return s.requireRole(ctx, subjectID, model.RoleStudent)
	default:
		return fmt.Errorf("unknown grid kind %q", kind)
	}
	return nil
}

func (s *GridService) requireRole(ctx context.Context, userID int64, role model.Role) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user == nil || user.Role != role {
		return ErrUserNotFound
	}
	return nil
}
