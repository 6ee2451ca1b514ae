package lines

import (
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Selection выбор клиента, режима и пакета в рабочем процессе записи
type Selection struct {
	ClientID  string
	Mode      domain.Provenance
	PackageID string
}

// State копия состояния черновика
// Version растет с каждым изменением
type State struct {
	ID        string
	OwnerID   string
	Selection Selection
	Lines     []domain.DraftLine
	Version   uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft набор строк мультизаписи одного рабочего процесса
// Всегда содержит хотя бы одну строку
type Draft struct {
	mu sync.Mutex

	id         string
	ownerID    string
	selection  Selection
	lines      []domain.DraftLine
	version    uint64
	confirming bool
	createdAt  time.Time
	updatedAt  time.Time

	timeProvider TimeProvider
}

// NewDraft создает черновик пользователя ownerID в начальном состоянии: одна пустая строка
func NewDraft(id, ownerID string, timeProvider TimeProvider) *Draft {
	now := timeProvider.Now()
	return &Draft{
		id:           id,
		ownerID:      ownerID,
		lines:        []domain.DraftLine{{}},
		createdAt:    now,
		updatedAt:    now,
		timeProvider: timeProvider,
	}
}

// ID идентификатор черновика
func (d *Draft) ID() string {
	return d.id
}

// OwnedBy черновик открыт пользователем userID
func (d *Draft) OwnedBy(userID string) bool {
	return d.ownerID == userID
}

// State возвращает копию состояния
func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state()
}

// BeginConfirm отмечает начало подтверждения и возвращает состояние, которое будет отправлено
// Пока подтверждение не завершено, второе подтверждение того же черновика отклоняется
func (d *Draft) BeginConfirm() (State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.confirming {
		return State{}, ErrConfirmInProgress
	}
	d.confirming = true
	return d.state(), nil
}

// AbortConfirm снимает отметку подтверждения, строки не меняются
func (d *Draft) AbortConfirm() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.confirming = false
}

// CompleteConfirm снимает отметку подтверждения и сбрасывает черновик
// Если после BeginConfirm черновик изменили, изменения сохраняются и возвращается false
func (d *Draft) CompleteConfirm(version uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.confirming = false
	if d.version != version {
		return false
	}
	d.resetLocked()
	return true
}

// Select меняет выбор клиента, режима и пакета, строки не трогает
func (d *Draft) Select(sel Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.selection = sel
	d.touch()
}

// AddLine добавляет пустую строку
func (d *Draft) AddLine() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.lines) >= domain.MaxDraftLines {
		return fmt.Errorf("%w: max %d", ErrTooManyLines, domain.MaxDraftLines)
	}
	d.lines = append(d.lines, domain.DraftLine{})
	d.touch()
	return nil
}

// RemoveLine удаляет строку по индексу, первая строка не удаляется
func (d *Draft) RemoveLine(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index == 0 {
		return ErrFirstLineNotRemovable
	}
	if index < 0 || index >= len(d.lines) {
		return fmt.Errorf("%w: %d", ErrLineIndexOutOfRange, index)
	}

	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	d.touch()
	return nil
}

// UpdateField заменяет одно поле строки, значение не валидируется
func (d *Draft) UpdateField(index int, field domain.LineField, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.lines) {
		return fmt.Errorf("%w: %d", ErrLineIndexOutOfRange, index)
	}
	if err := d.lines[index].Set(field, value); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	d.touch()
	return nil
}

// StartReschedule заменяет ВСЕ строки одной строкой переноса сессии пакета
// Услуга и сотрудник берутся из сессии, дата и время пустые
func (d *Draft) StartReschedule(session domain.SessionHistoryEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lines = []domain.DraftLine{{
		Provenance:            domain.ProvenancePackage,
		ServiceID:             session.ServiceID,
		EmployeeID:            session.EmployeeID,
		OriginalAppointmentID: session.AppointmentID,
	}}
	d.touch()
}

// SelectPendingService заменяет ВСЕ строки одной строкой по долгу клиента
func (d *Draft) SelectPendingService(p domain.PendingService) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lines = []domain.DraftLine{{
		Provenance:       domain.ProvenancePending,
		ServiceID:        p.ServiceID,
		PendingServiceID: p.ID,
	}}
	d.touch()
}

// Reset возвращает черновик в начальное состояние и сбрасывает выбор
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.resetLocked()
}

// Line возвращает копию строки
func (d *Draft) Line(index int) (domain.DraftLine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.lines) {
		return domain.DraftLine{}, fmt.Errorf("%w: %d", ErrLineIndexOutOfRange, index)
	}
	return d.lines[index], nil
}

func (d *Draft) state() State {
	return State{
		ID:        d.id,
		OwnerID:   d.ownerID,
		Selection: d.selection,
		Lines:     append([]domain.DraftLine(nil), d.lines...),
		Version:   d.version,
		CreatedAt: d.createdAt,
		UpdatedAt: d.updatedAt,
	}
}

func (d *Draft) resetLocked() {
	d.lines = []domain.DraftLine{{}}
	d.selection = Selection{}
	d.touch()
}

func (d *Draft) touch() {
	d.version++
	d.updatedAt = d.timeProvider.Now()
}
