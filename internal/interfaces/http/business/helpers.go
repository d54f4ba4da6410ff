package business

import (
	"errors"
	"net/http"

	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
)

func actorFromRequest(r *http.Request) (bizdomain.Actor, bool) {
	user, ok := common.UserFromContext(r.Context())
	if !ok {
		return bizdomain.Actor{}, false
	}
	return bizdomain.Actor{UserID: user.ID, Role: user.Role}, true
}

// writeServiceError はアプリケーション層のエラーを HTTP ステータスへ写像する。
func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	var inputErr *bizapp.InputError
	switch {
	case errors.As(err, &inputErr):
		common.WriteError(h.logger, w, http.StatusBadRequest, inputErr.Error())
	case errors.Is(err, bizapp.ErrInvalidID):
		common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid ID format")
	case errors.Is(err, bizapp.ErrForbidden):
		common.WriteError(h.logger, w, http.StatusForbidden, "User not authorized to modify this resource")
	case errors.Is(err, bizapp.ErrStoreNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "Store not found")
	case errors.Is(err, bizapp.ErrDealNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "Deal not found")
	default:
		h.logger.Printf("%s failed: %v", op, err)
		common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
	}
}
