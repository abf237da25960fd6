// Package staging хранит несохранённые правки сеток доступности и оплат
// поверх значений из хранилища и сохраняет их одним пакетом.
package staging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

var ErrUnknownSlot = errors.New("unknown time slot")

// PersistFunc сохраняет пакет обновлений целиком или не сохраняет ничего
type PersistFunc func(ctx context.Context, updates []Update) error

type overlayItem struct {
	entry    OverlayEntry
	revision uint64
}

type snapshotItem struct {
	slots    model.SlotFlags
	revision uint64
}

// Manager слой правок над BaselineStore.
// Каждая сетка (доступность учителя, ученика, оплаты) владеет своим экземпляром.
type Manager struct {
	mu         sync.Mutex
	store      BaselineStore
	overlay    map[Key]*overlayItem
	inFlight   map[Key]int
	committing int
	revision   uint64
}

// NewManager создаёт менеджер правок
func NewManager(store BaselineStore) *Manager {
	return &Manager{
		store:    store,
		overlay:  make(map[Key]*overlayItem),
		inFlight: make(map[Key]int),
	}
}

// GetEffective возвращает значение ячейки с учётом правок
func (m *Manager) GetEffective(key Key) Effective {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.effectiveLocked(key)
}

func (m *Manager) effectiveLocked(key Key) Effective {
	base := m.store.Baseline(key)
	if item, ok := m.overlay[key]; ok {
		return item.entry.Merge(base)
	}
	return Effective{SlotFlags: base.SlotFlags}
}

// Toggle инвертирует флаг отрезка и записывает в правку все три поля.
// Если ячейка вернулась к базовому значению, правка удаляется,
// кроме ячеек, которые сейчас сохраняются.
func (m *Manager) Toggle(key Key, slot model.TimeSlot) (Effective, error) {
	if !slot.Valid() {
		return Effective{}, fmt.Errorf("toggle %q: %w", slot, ErrUnknownSlot)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.effectiveLocked(key)
	next := current.With(slot, !current.Get(slot))

	if next == m.store.Baseline(key).SlotFlags && m.inFlight[key] == 0 {
		delete(m.overlay, key)
		return Effective{SlotFlags: next}, nil
	}

	m.revision++
	m.overlay[key] = &overlayItem{entry: fullEntry(next), revision: m.revision}

	return Effective{SlotFlags: next}, nil
}

// HasChanges есть ли несохранённые правки
func (m *Manager) HasChanges() bool {
	return m.ChangeCount() > 0
}

// ChangeCount количество ячеек с правками
func (m *Manager) ChangeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.overlay)
}

// IsChanged есть ли правка для ячейки
func (m *Manager) IsChanged(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.overlay[key]
	return ok
}

// IsFieldChanged отличается ли отрезок ячейки от базового значения
func (m *Manager) IsFieldChanged(key Key, slot model.TimeSlot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.overlay[key]; !ok {
		return false
	}
	return m.effectiveLocked(key).Get(slot) != m.store.Baseline(key).Get(slot)
}

// IsCommitting идёт ли сохранение
func (m *Manager) IsCommitting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.committing > 0
}

// Keys ключи ячеек с правками в порядке (пользователь, дата)
func (m *Manager) Keys() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]Key, 0, len(m.overlay))
	for key := range m.overlay {
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys
}

// Discard удаляет все правки
func (m *Manager) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overlay = make(map[Key]*overlayItem)
}

// DiscardKeys удаляет правки указанных ячеек целиком
func (m *Manager) DiscardKeys(keys ...Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.overlay, key)
	}
}

// Commit сохраняет снимок правок через persist.
// При успехе базовые значения сдвигаются, а из правок удаляются только ячейки снимка,
// не изменённые во время сохранения. При ошибке состояние не меняется.
func (m *Manager) Commit(ctx context.Context, persist PersistFunc) (CommitResult, error) {
	m.mu.Lock()
	if len(m.overlay) == 0 {
		m.mu.Unlock()
		return CommitResult{}, nil
	}

	snapshot := make(map[Key]snapshotItem, len(m.overlay))
	updates := make([]Update, 0, len(m.overlay))
	for key, item := range m.overlay {
		effective := item.entry.Merge(m.store.Baseline(key))
		snapshot[key] = snapshotItem{slots: effective.SlotFlags, revision: item.revision}
		updates = append(updates, Update{SubjectID: key.SubjectID, Date: key.Date, Slots: effective.SlotFlags})
		m.inFlight[key]++
	}
	m.committing++
	m.mu.Unlock()

	sort.Slice(updates, func(i, j int) bool {
		return keyLess(updates[i].Key(), updates[j].Key())
	})

	err := persist(ctx, updates)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.committing--
	for key := range snapshot {
		m.inFlight[key]--
		if m.inFlight[key] <= 0 {
			delete(m.inFlight, key)
		}
	}

	if err != nil {
		return CommitResult{}, fmt.Errorf("persist %d updates: %w", len(updates), err)
	}

	for key, snap := range snapshot {
		m.store.Advance(key, Baseline{SlotFlags: snap.slots})

		// Ячейку изменили во время сохранения - правка остаётся
		if item, ok := m.overlay[key]; ok && item.revision == snap.revision {
			delete(m.overlay, key)
		}
	}

	return CommitResult{Updates: updates}, nil
}

func keyLess(a, b Key) bool {
	if a.SubjectID != b.SubjectID {
		return a.SubjectID < b.SubjectID
	}
	return a.Date.Before(b.Date)
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keyLess(keys[i], keys[j])
	})
}
