package clientpackage

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// packageItem документ купленного пакета
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-status-index (PK: client_id, SK: status)
type packageItem struct {
	ID             string             `dynamodbav:"id"`
	ClientID       string             `dynamodbav:"client_id"`
	PackageID      string             `dynamodbav:"package_id,omitempty"`
	Snapshot       *snapshotItem      `dynamodbav:"package_snapshot,omitempty"`
	Name           string             `dynamodbav:"name,omitempty"`
	Services       serviceRefsAV      `dynamodbav:"services,omitempty"`
	Status         string             `dynamodbav:"status"`
	PurchaseDate   string             `dynamodbav:"purchase_date,omitempty"`
	ExpirationDate string             `dynamodbav:"expiration_date,omitempty"`
	TotalSessions  int                `dynamodbav:"total_sessions,omitempty"`
	SessionHistory []SessionEntryItem `dynamodbav:"session_history,omitempty"`
}

type snapshotItem struct {
	Name     string        `dynamodbav:"name,omitempty"`
	Services serviceRefsAV `dynamodbav:"services,omitempty"`
}

// SessionEntryItem запись истории сессий в документе пакета
type SessionEntryItem struct {
	ServiceID             string `dynamodbav:"service_id"`
	EmployeeID            string `dynamodbav:"employee_id,omitempty"`
	Date                  string `dynamodbav:"date,omitempty"`
	Time                  string `dynamodbav:"time,omitempty"`
	Status                string `dynamodbav:"status"`
	AppointmentID         string `dynamodbav:"appointment_id,omitempty"`
	OriginalAppointmentID string `dynamodbav:"original_appointment_id,omitempty"`
}

// ToSessionEntryItem конвертирует доменную запись истории
func ToSessionEntryItem(e domain.SessionHistoryEntry) SessionEntryItem {
	return SessionEntryItem{
		ServiceID:             e.ServiceID,
		EmployeeID:            e.EmployeeID,
		Date:                  e.Date,
		Time:                  e.Time,
		Status:                string(e.Status),
		AppointmentID:         e.AppointmentID,
		OriginalAppointmentID: e.OriginalAppointmentID,
	}
}

func fromPackageItem(it packageItem) *domain.ClientPackage {
	pkg := &domain.ClientPackage{
		ID:            it.ID,
		ClientID:      it.ClientID,
		PackageID:     it.PackageID,
		Name:          it.Name,
		Services:      domain.ServiceRefs(it.Services),
		Status:        domain.PackageStatus(it.Status),
		PurchaseDate:  parseDate(it.PurchaseDate),
		TotalSessions: it.TotalSessions,
	}

	if it.Snapshot != nil {
		pkg.Snapshot = &domain.PackageSnapshot{
			Name:     it.Snapshot.Name,
			Services: domain.ServiceRefs(it.Snapshot.Services),
		}
	}

	if exp := parseDate(it.ExpirationDate); !exp.IsZero() {
		pkg.ExpirationDate = &exp
	}

	pkg.SessionHistory = make([]domain.SessionHistoryEntry, 0, len(it.SessionHistory))
	for _, e := range it.SessionHistory {
		pkg.SessionHistory = append(pkg.SessionHistory, domain.SessionHistoryEntry{
			ServiceID:             e.ServiceID,
			EmployeeID:            e.EmployeeID,
			Date:                  e.Date,
			Time:                  e.Time,
			Status:                domain.SessionStatus(e.Status),
			AppointmentID:         e.AppointmentID,
			OriginalAppointmentID: e.OriginalAppointmentID,
		})
	}
	return pkg
}

// parseDate принимает RFC3339 и YYYY-MM-DD, остальное дает нулевое время
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(domain.DateFormat, s); err == nil {
		return t
	}
	return time.Time{}
}
