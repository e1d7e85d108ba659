package bot

import (
	"sync"

	"mealbot/internal/models"
)

// targetStore хранит дневные нормы КБЖУ по чатам
type targetStore struct {
	sync.RWMutex
	defaults models.Nutrients
	targets  map[int64]models.Nutrients
}

func newTargetStore(defaults models.Nutrients) *targetStore {
	return &targetStore{
		defaults: defaults,
		targets:  make(map[int64]models.Nutrients),
	}
}

// get возвращает норму чата или значение по умолчанию
func (s *targetStore) get(chatID int64) models.Nutrients {
	s.RLock()
	defer s.RUnlock()
	if t, ok := s.targets[chatID]; ok {
		return t
	}
	return s.defaults
}

func (s *targetStore) set(chatID int64, target models.Nutrients) {
	s.Lock()
	s.targets[chatID] = target
	s.Unlock()
}
