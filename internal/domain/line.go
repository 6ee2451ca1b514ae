package domain

import "errors"

// ErrUnknownLineField возвращается при попытке изменить несуществующее поле строки
var ErrUnknownLineField = errors.New("domain: unknown draft line field")

// Provenance источник права на услугу в строке записи
type Provenance string

const (
	ProvenancePackage Provenance = "pacote"
	ProvenanceAdHoc   Provenance = "avulso"
	ProvenancePending Provenance = "pendente"
)

// IsValid известный источник
func (p Provenance) IsValid() bool {
	switch p {
	case ProvenancePackage, ProvenanceAdHoc, ProvenancePending:
		return true
	}
	return false
}

// LineField изменяемое поле строки черновика
type LineField string

const (
	FieldProvenance            LineField = "tipo"
	FieldServiceID             LineField = "service_id"
	FieldEmployeeID            LineField = "employee_id"
	FieldDate                  LineField = "data"
	FieldTime                  LineField = "hora"
	FieldOriginalAppointmentID LineField = "original_appointment_id"
	FieldPendingServiceID      LineField = "pending_service_id"
)

// DraftLine строка черновика мультизаписи
// Существует только внутри рабочего процесса записи и никогда не сохраняется напрямую
type DraftLine struct {
	Provenance            Provenance
	ServiceID             string
	EmployeeID            string
	Date                  string // YYYY-MM-DD
	Time                  string // HH:MM
	OriginalAppointmentID string
	PendingServiceID      string
}

// IsComplete заполнены услуга, сотрудник, дата и время
func (l *DraftLine) IsComplete() bool {
	return l.ServiceID != "" && l.EmployeeID != "" && l.Date != "" && l.Time != ""
}

// Set заменяет одно поле без валидации значения
func (l *DraftLine) Set(field LineField, value string) error {
	switch field {
	case FieldProvenance:
		l.Provenance = Provenance(value)
	case FieldServiceID:
		l.ServiceID = value
	case FieldEmployeeID:
		l.EmployeeID = value
	case FieldDate:
		l.Date = value
	case FieldTime:
		l.Time = value
	case FieldOriginalAppointmentID:
		l.OriginalAppointmentID = value
	case FieldPendingServiceID:
		l.PendingServiceID = value
	default:
		return ErrUnknownLineField
	}
	return nil
}

// BookingRequest запрос на создание нескольких записей одним вызовом
type BookingRequest struct {
	ClientID     string
	PackageID    *string // только для режима pacote
	Mode         Provenance
	Agendamentos []DraftLine
}
