package manage_draft

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// UpdateLineRequest изменение одного поля строки
type UpdateLineRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ToLineField поле строки из запроса
func (r *UpdateLineRequest) ToLineField() domain.LineField {
	return domain.LineField(r.Field)
}
