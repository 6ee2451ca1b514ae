package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/lines"
)

const msgDraftNotFound = "черновик записи не найден"

// DraftLookup черновики рабочих процессов записи
type DraftLookup interface {
	Get(id string) (*lines.Draft, error)
}

// DraftOwner пускает к черновику {draftId} только пользователя, который его открыл
// Чужой черновик отвечает так же, как несуществующий
func DraftOwner(drafts DraftLookup) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			draft, err := drafts.Get(mux.Vars(r)["draftId"])
			if err != nil {
				// Отсутствующий черновик обрабатывает handler
				next.ServeHTTP(w, r)
				return
			}

			userID, _ := GetUserID(r.Context())
			if !draft.OwnedBy(userID) {
				handlers.RespondNotFound(w, msgDraftNotFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
