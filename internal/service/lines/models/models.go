package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
)

// DraftResponse состояние рабочего процесса записи
type DraftResponse struct {
	ID        string         `json:"id"`
	ClientID  string         `json:"clientId,omitempty"`
	Mode      string         `json:"mode,omitempty"`
	PackageID string         `json:"packageId,omitempty"`
	Lines     []LineResponse `json:"agendamentos"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

// LineResponse строка черновика
type LineResponse struct {
	Index                 int    `json:"index"`
	Tipo                  string `json:"tipo,omitempty"`
	ServiceID             string `json:"serviceId"`
	EmployeeID            string `json:"employeeId"`
	Date                  string `json:"data"`
	Time                  string `json:"hora"`
	OriginalAppointmentID string `json:"originalAppointmentId,omitempty"`
	PendingServiceID      string `json:"pendingServiceId,omitempty"`
	Complete              bool   `json:"complete"`
}

// SelectionRequest выбор клиента, режима и пакета
type SelectionRequest struct {
	ClientID  string `json:"clientId"`
	Mode      string `json:"mode"`
	PackageID string `json:"packageId,omitempty"`
}

// ToSelection конвертирует запрос в выбор черновика
func (r *SelectionRequest) ToSelection() lines.Selection {
	return lines.Selection{
		ClientID:  r.ClientID,
		Mode:      domain.Provenance(r.Mode),
		PackageID: r.PackageID,
	}
}

// FromState конвертирует состояние черновика в DTO
func FromState(state lines.State) *DraftResponse {
	resp := &DraftResponse{
		ID:        state.ID,
		ClientID:  state.Selection.ClientID,
		Mode:      string(state.Selection.Mode),
		PackageID: state.Selection.PackageID,
		Lines:     make([]LineResponse, 0, len(state.Lines)),
		CreatedAt: state.CreatedAt.Format(time.RFC3339),
		UpdatedAt: state.UpdatedAt.Format(time.RFC3339),
	}
	for i, l := range state.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			Index:                 i,
			Tipo:                  string(l.Provenance),
			ServiceID:             l.ServiceID,
			EmployeeID:            l.EmployeeID,
			Date:                  l.Date,
			Time:                  l.Time,
			OriginalAppointmentID: l.OriginalAppointmentID,
			PendingServiceID:      l.PendingServiceID,
			Complete:              l.IsComplete(),
		})
	}
	return resp
}
