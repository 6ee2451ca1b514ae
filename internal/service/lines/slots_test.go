package lines

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func slotStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

func TestTimeSlots(t *testing.T) {
	t.Run("шаг 60 минут: 08:00..19:00", func(t *testing.T) {
		got := DefaultTimeSlots(&domain.Employee{AppointmentInterval: 60})
		assert.Len(t, got, 12)
		assert.Equal(t, "08:00", got[0].String())
		assert.Equal(t, "19:00", got[len(got)-1].String())
	})

	t.Run("шаг 45 минут: последний слот строго до 20:00", func(t *testing.T) {
		got := DefaultTimeSlots(&domain.Employee{AppointmentInterval: 45})
		assert.Equal(t, "19:15", got[len(got)-1].String())
		assert.Len(t, got, 16)
	})

	t.Run("интервал не настроен", func(t *testing.T) {
		assert.Empty(t, DefaultTimeSlots(&domain.Employee{}))
		assert.Empty(t, DefaultTimeSlots(nil))
	})

	t.Run("окно до конца суток", func(t *testing.T) {
		got := TimeSlots(&domain.Employee{AppointmentInterval: 30},
			types.MustTimeString("23:00"), types.MustTimeString("23:59"))
		assert.Equal(t, []string{"23:00", "23:30"}, slotStrings(got))
	})
}

func TestCountConflicts(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	appt := func(employee, start string, duration int, status domain.AppointmentStatus, date time.Time) *domain.Appointment {
		return &domain.Appointment{
			EmployeeID:      employee,
			Date:            date,
			StartTime:       types.MustTimeString(start),
			DurationMinutes: duration,
			Status:          status,
		}
	}

	existing := []*domain.Appointment{
		appt("emp1", "11:00", 30, domain.AppointmentScheduled, day),                  // граничит со слотом 11:30
		appt("emp1", "11:20", 20, domain.AppointmentConfirmed, day),                  // пересекается
		appt("emp1", "11:45", 60, domain.AppointmentCancelled, day),                  // отменена
		appt("emp1", "11:40", 10, domain.AppointmentNoShow, day),                     // неявка
		appt("emp2", "11:30", 30, domain.AppointmentScheduled, day),                  // другой сотрудник
		appt("emp1", "11:30", 30, domain.AppointmentScheduled, day.AddDate(0, 0, 1)), // другой день
		appt("emp1", "11:50", 30, domain.AppointmentScheduled, day),                  // пересекается
		appt("emp1", "12:00", 30, domain.AppointmentScheduled, day),                  // граничит
	}

	got := CountConflicts("emp1", day, types.MustTimeString("11:30"), 30, existing)
	assert.Equal(t, 2, got)

	assert.Equal(t, 0, CountConflicts("emp1", day, types.MustTimeString("15:00"), 30, existing))
	assert.Equal(t, 0, CountConflicts("emp1", day, types.MustTimeString("11:30"), 30, nil))
}

func TestSlotsWithConflicts(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	employee := &domain.Employee{ID: "emp1", AppointmentInterval: 60}
	existing := []*domain.Appointment{{
		EmployeeID:      "emp1",
		Date:            day,
		StartTime:       types.MustTimeString("09:30"),
		DurationMinutes: 60,
		Status:          domain.AppointmentScheduled,
	}}

	slots := SlotsWithConflicts(employee, day, 60, existing)
	assert.Len(t, slots, 12)

	conflicts := map[string]int{}
	for _, s := range slots {
		conflicts[s.StartTime.String()] = s.Conflicts
	}
	assert.Equal(t, 0, conflicts["08:00"])
	assert.Equal(t, 1, conflicts["09:00"])
	assert.Equal(t, 1, conflicts["10:00"])
	assert.Equal(t, 0, conflicts["11:00"])
}
