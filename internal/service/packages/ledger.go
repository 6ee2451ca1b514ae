package packages

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Sessions остаток сессий пакета по одной услуге
type Sessions struct {
	Total int
	Used  int
	Left  int
}

// SessionsFor считает сессии услуги в пакете
// ok = false, если у пакета нет истории или списка услуг
func SessionsFor(pkg *domain.CanonicalPackage, serviceID string) (Sessions, bool) {
	if pkg == nil || len(pkg.History) == 0 || len(pkg.Services) == 0 {
		return Sessions{}, false
	}

	// Запись без количества и отсутствующая запись дают не больше одного кредита
	total := 1
	ref, found := pkg.Services.Find(serviceID)
	if found {
		total = ref.Count()
	}

	used := 0
	for i := range pkg.History {
		entry := &pkg.History[i]
		if entry.IsConcluded() && historyMatches(entry, serviceID, ref, found) {
			used++
		}
	}

	left := total - used
	if left < 0 {
		left = 0
	}

	return Sessions{Total: total, Used: used, Left: left}, true
}

// ReschedulableSessions сессии услуги, которые не состоялись и могут быть перенесены
func ReschedulableSessions(pkg *domain.CanonicalPackage, serviceID string) []domain.SessionHistoryEntry {
	if pkg == nil {
		return nil
	}
	ref, found := pkg.Services.Find(serviceID)

	result := make([]domain.SessionHistoryEntry, 0)
	for i := range pkg.History {
		entry := &pkg.History[i]
		if !entry.IsConcluded() && historyMatches(entry, serviceID, ref, found) {
			result = append(result, *entry)
		}
	}
	return result
}

// AllReschedulableSessions все несостоявшиеся сессии пакета
func AllReschedulableSessions(pkg *domain.CanonicalPackage) []domain.SessionHistoryEntry {
	if pkg == nil {
		return nil
	}
	result := make([]domain.SessionHistoryEntry, 0)
	for _, entry := range pkg.History {
		if !entry.IsConcluded() {
			result = append(result, entry)
		}
	}
	return result
}

// FindSession ищет сессию по ID исходной записи
func FindSession(pkg *domain.CanonicalPackage, appointmentID string) (domain.SessionHistoryEntry, bool) {
	if pkg == nil || appointmentID == "" {
		return domain.SessionHistoryEntry{}, false
	}
	for _, entry := range pkg.History {
		if entry.AppointmentID == appointmentID {
			return entry, true
		}
	}
	return domain.SessionHistoryEntry{}, false
}

// BookableSessions кредиты услуги, свободные для новых записей:
// остаток минус запланированные сессии, которые еще не заменены переносом
// ok = false, если услуги нет в пакете
func BookableSessions(pkg *domain.CanonicalPackage, serviceID string) (int, bool) {
	if pkg == nil {
		return 0, false
	}
	ref, found := pkg.Services.Find(serviceID)
	if !found {
		return 0, false
	}

	superseded := supersededAppointments(pkg.History)
	taken := 0
	for i := range pkg.History {
		entry := &pkg.History[i]
		if !historyMatches(entry, serviceID, ref, found) {
			continue
		}
		if entry.IsConcluded() || (entry.Status == domain.SessionScheduled && !superseded[entry.AppointmentID]) {
			taken++
		}
	}

	left := ref.Count() - taken
	if left < 0 {
		left = 0
	}
	return left, true
}

// OpenSession сессия, которую еще можно перенести: не состоялась и не заменена другой
func OpenSession(pkg *domain.CanonicalPackage, appointmentID string) (domain.SessionHistoryEntry, bool) {
	entry, ok := FindSession(pkg, appointmentID)
	if !ok || entry.IsConcluded() {
		return domain.SessionHistoryEntry{}, false
	}
	if supersededAppointments(pkg.History)[appointmentID] {
		return domain.SessionHistoryEntry{}, false
	}
	return entry, true
}

// supersededAppointments ID записей, которые уже заменены переносом
func supersededAppointments(history []domain.SessionHistoryEntry) map[string]bool {
	result := make(map[string]bool)
	for _, e := range history {
		if e.OriginalAppointmentID != "" {
			result[e.OriginalAppointmentID] = true
		}
	}
	return result
}

// historyMatches запись истории относится к услуге: по запрошенному ID
// или по ID найденной записи пакета (service_id и собственный id)
func historyMatches(entry *domain.SessionHistoryEntry, serviceID string, ref domain.ServiceRef, found bool) bool {
	if entry.ServiceID == serviceID {
		return true
	}
	return found && ref.Matches(entry.ServiceID)
}
