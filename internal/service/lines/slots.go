package lines

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// TimeSlots варианты времени начала для сотрудника: от windowStart включительно
// до windowEnd исключительно с шагом, равным интервалу записи сотрудника
// Без настроенного интервала слотов нет
func TimeSlots(employee *domain.Employee, windowStart, windowEnd types.TimeString) []types.TimeString {
	if employee == nil || !employee.HasAppointmentInterval() {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)
	current := windowStart
	for current.IsBefore(windowEnd) {
		slots = append(slots, current)

		next, err := current.AddMinutes(employee.AppointmentInterval)
		if err != nil {
			// Переход через полночь
			break
		}
		current = next
	}
	return slots
}

// DefaultTimeSlots слоты в стандартном окне 08:00-20:00
func DefaultTimeSlots(employee *domain.Employee) []types.TimeString {
	return TimeSlots(employee,
		types.MustTimeString(domain.SlotWindowStart),
		types.MustTimeString(domain.SlotWindowEnd),
	)
}

// CountConflicts считает активные записи сотрудника employeeID на дату date,
// пересекающиеся с интервалом [start, start+duration)
//
// Граничащие интервалы не пересекаются:
// - слот 11:30-12:00, запись 11:00-11:30 → нет пересечения
// - слот 11:30-12:00, запись 11:20-11:40 → пересечение
func CountConflicts(
	employeeID string,
	date time.Time,
	start types.TimeString,
	durationMinutes int,
	existing []*domain.Appointment,
) int {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0
	}

	count := 0
	for _, appt := range existing {
		if appt == nil || !appt.IsActive() {
			continue
		}
		if appt.EmployeeID != employeeID || !sameDay(appt.Date, date) {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(end) && apptEnd.IsAfter(start) {
			count++
		}
	}
	return count
}

// SlotsWithConflicts слоты сотрудника на дату с количеством конфликтов для каждого
func SlotsWithConflicts(
	employee *domain.Employee,
	date time.Time,
	durationMinutes int,
	existing []*domain.Appointment,
) []domain.AvailableSlot {
	return SlotsWithConflictsInWindow(employee,
		types.MustTimeString(domain.SlotWindowStart),
		types.MustTimeString(domain.SlotWindowEnd),
		date, durationMinutes, existing,
	)
}

// SlotsWithConflictsInWindow то же, что SlotsWithConflicts, в окне [windowStart, windowEnd)
func SlotsWithConflictsInWindow(
	employee *domain.Employee,
	windowStart, windowEnd types.TimeString,
	date time.Time,
	durationMinutes int,
	existing []*domain.Appointment,
) []domain.AvailableSlot {
	starts := TimeSlots(employee, windowStart, windowEnd)

	result := make([]domain.AvailableSlot, 0, len(starts))
	for _, start := range starts {
		result = append(result, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: durationMinutes,
			Conflicts:       CountConflicts(employee.ID, date, start, durationMinutes, existing),
		})
	}
	return result
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
