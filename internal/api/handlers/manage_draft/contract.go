package manage_draft

import "github.com/m04kA/SMC-SalonBooking/internal/service/lines"

type DraftStore interface {
	Open(ownerID string) *lines.Draft
	Get(id string) (*lines.Draft, error)
	Discard(id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
