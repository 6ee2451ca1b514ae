package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение слотов строки черновика
type Request struct {
	DraftID   string
	LineIndex int
}

// Response модель ответа со списком слотов
type Response struct {
	DraftID         string
	LineIndex       int
	EmployeeID      string
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность записи в минутах
	Conflicts       int              // Пересекающиеся активные записи сотрудника
	Available       bool             // Conflicts == 0
}
