package domain

import "time"

// PackageStatus статус купленного пакета
type PackageStatus string

const (
	PackageActive    PackageStatus = "ativo"
	PackageFinished  PackageStatus = "finalizado"
	PackageExpired   PackageStatus = "expirado"
	PackageCancelled PackageStatus = "cancelado"
)

// SessionStatus статус сессии в истории пакета
type SessionStatus string

const (
	SessionConcluded SessionStatus = "concluido"
	SessionScheduled SessionStatus = "agendado"
	SessionCancelled SessionStatus = "cancelado"
	SessionNoShow    SessionStatus = "faltou"
)

// SessionHistoryEntry запись о сессии, списанной (или запланированной) по пакету
// После создания не изменяется ядром, статус двигает логика завершения записи
type SessionHistoryEntry struct {
	ServiceID             string
	EmployeeID            string
	Date                  string // YYYY-MM-DD
	Time                  string // HH:MM
	Status                SessionStatus
	AppointmentID         string
	OriginalAppointmentID string
}

// IsConcluded сессия состоялась и израсходовала кредит
func (e *SessionHistoryEntry) IsConcluded() bool {
	return e.Status == SessionConcluded
}

// PackageSnapshot копия шаблона пакета на момент покупки
type PackageSnapshot struct {
	Name     string
	Services ServiceRefs
}

// ClientPackage купленный клиентом пакет в том виде, в каком он лежит в хранилище
// Разные поколения документов заполняют разные поля: snapshot, package_id или services
type ClientPackage struct {
	ID             string
	ClientID       string
	PackageID      string // пусто для персонализированных пакетов
	Snapshot       *PackageSnapshot
	Name           string
	Services       ServiceRefs
	Status         PackageStatus
	PurchaseDate   time.Time
	ExpirationDate *time.Time
	TotalSessions  int
	SessionHistory []SessionHistoryEntry
}

// IsActive пакет можно использовать для записи
func (p *ClientPackage) IsActive() bool {
	return p.Status == PackageActive
}

// PackageTier источник состава пакета после нормализации
type PackageTier string

const (
	TierSnapshot PackageTier = "snapshot"
	TierTemplate PackageTier = "template"
	TierRaw      PackageTier = "raw"
)

// CanonicalPackage нормализованное представление купленного пакета
// Name и Services взяты ровно из одного источника (Tier)
type CanonicalPackage struct {
	ID             string
	ClientID       string
	PackageID      string
	Name           string
	Services       ServiceRefs
	History        []SessionHistoryEntry
	Tier           PackageTier
	Status         PackageStatus
	ExpirationDate *time.Time
}

// IsCustom персонализированный пакет без шаблона каталога
func (p *CanonicalPackage) IsCustom() bool {
	return p.PackageID == ""
}
