package staging

import (
	"sync"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// BaselineStore источник подтверждённых значений ячеек
type BaselineStore interface {
	// Baseline возвращает значение ячейки из последнего снимка хранилища
	Baseline(key Key) Baseline

	// Advance переводит ячейку на сохранённое значение
	Advance(key Key, value Baseline)
}

// Snapshot хранит загруженные из хранилища значения в памяти.
// Для ячеек без записи возвращается fallback.
type Snapshot struct {
	mu       sync.RWMutex
	values   map[Key]model.SlotFlags
	fallback model.SlotFlags
}

// NewSnapshot создаёт пустой снимок
func NewSnapshot(fallback model.SlotFlags) *Snapshot {
	return &Snapshot{
		values:   make(map[Key]model.SlotFlags),
		fallback: fallback,
	}
}

// Load записывает значение, прочитанное из хранилища
func (s *Snapshot) Load(key Key, flags model.SlotFlags) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = flags
}

// Has проверяет, есть ли в снимке запись для ячейки
func (s *Snapshot) Has(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[key]
	return ok
}

func (s *Snapshot) Baseline(key Key) Baseline {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if flags, ok := s.values[key]; ok {
		return Baseline{SlotFlags: flags}
	}
	return Baseline{SlotFlags: s.fallback}
}

func (s *Snapshot) Advance(key Key, value Baseline) {
	s.Load(key, value.SlotFlags)
}
