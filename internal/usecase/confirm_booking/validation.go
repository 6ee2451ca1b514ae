package confirm_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// IsFormValid черновик готов к подтверждению:
// выбраны клиент и режим, для режима pacote есть пакет (явный или единственный активный),
// в каждой строке заполнены услуга, сотрудник, дата и время
func IsFormValid(state lines.State, implicitPackageID string) bool {
	sel := state.Selection
	if sel.ClientID == "" || !sel.Mode.IsValid() {
		return false
	}
	if sel.Mode == domain.ProvenancePackage && effectivePackageID(sel, implicitPackageID) == "" {
		return false
	}
	if len(state.Lines) == 0 {
		return false
	}
	for i := range state.Lines {
		if !state.Lines[i].IsComplete() {
			return false
		}
	}
	return true
}

// BuildRequest собирает запрос на создание записей из черновика
// package_id передается только в режиме pacote, источник каждой строки равен режиму
func BuildRequest(state lines.State, implicitPackageID string) domain.BookingRequest {
	sel := state.Selection

	req := domain.BookingRequest{
		ClientID:     sel.ClientID,
		Mode:         sel.Mode,
		Agendamentos: make([]domain.DraftLine, 0, len(state.Lines)),
	}
	if sel.Mode == domain.ProvenancePackage {
		if id := effectivePackageID(sel, implicitPackageID); id != "" {
			req.PackageID = ptr.Ptr(id)
		}
	}

	for _, line := range state.Lines {
		line.Provenance = sel.Mode
		req.Agendamentos = append(req.Agendamentos, line)
	}
	return req
}

func effectivePackageID(sel lines.Selection, implicitPackageID string) string {
	if sel.PackageID != "" {
		return sel.PackageID
	}
	return implicitPackageID
}
