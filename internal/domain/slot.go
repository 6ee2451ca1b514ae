package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// AvailableSlot временной слот сотрудника на дату
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Conflicts       int // активные записи сотрудника, пересекающиеся со слотом
}

// IsFree на слот нет пересекающихся записей
func (s *AvailableSlot) IsFree() bool {
	return s.Conflicts == 0
}
