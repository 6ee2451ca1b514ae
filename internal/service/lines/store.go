package lines

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// StoreConfig ограничения хранилища черновиков, нулевые значения заменяются значениями по умолчанию
type StoreConfig struct {
	IdleTTL      time.Duration
	MaxDrafts    int
	TimeProvider TimeProvider
}

// Store черновики открытых рабочих процессов записи
// Хранится только в памяти: закрытие процесса, простой дольше IdleTTL или рестарт теряют черновик
type Store struct {
	mu           sync.Mutex
	drafts       *expirable.LRU[string, *Draft]
	timeProvider TimeProvider
}

// NewStore создает пустое хранилище черновиков с ограничениями по умолчанию
func NewStore() *Store {
	return NewStoreWithConfig(StoreConfig{})
}

// NewStoreWithConfig создает пустое хранилище черновиков
func NewStoreWithConfig(cfg StoreConfig) *Store {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = domain.DefaultDraftIdleTTL
	}
	if cfg.MaxDrafts <= 0 {
		cfg.MaxDrafts = domain.DefaultMaxOpenDrafts
	}
	if cfg.TimeProvider == nil {
		cfg.TimeProvider = &RealTimeProvider{}
	}

	return &Store{
		drafts:       expirable.NewLRU[string, *Draft](cfg.MaxDrafts, nil, cfg.IdleTTL),
		timeProvider: cfg.TimeProvider,
	}
}

// Open открывает новый рабочий процесс пользователя ownerID
func (s *Store) Open(ownerID string) *Draft {
	draft := NewDraft(uuid.NewString(), ownerID, s.timeProvider)

	s.mu.Lock()
	s.drafts.Add(draft.ID(), draft)
	s.mu.Unlock()

	return draft
}

// Get возвращает черновик по ID
// Каждое обращение продлевает жизнь черновика на IdleTTL
func (s *Store) Get(id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.drafts.Get(id)
	if !ok {
		return nil, ErrDraftNotFound
	}
	s.drafts.Add(id, draft)
	return draft, nil
}

// Discard закрывает рабочий процесс без сохранения
func (s *Store) Discard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drafts.Remove(id) {
		return ErrDraftNotFound
	}
	return nil
}

// Len количество открытых черновиков
func (s *Store) Len() int {
	return s.drafts.Len()
}
