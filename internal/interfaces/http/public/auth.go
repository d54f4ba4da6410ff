package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
)

// currentUserHandler はトークンの subject に対応するユーザー情報を返す。
func (h *Handler) currentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authUser, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "認証情報の取得に失敗しました")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		user, err := h.userQueries.Profile(ctx, authUser.ID)
		if err != nil {
			if errors.Is(err, publicapp.ErrUserNotFound) || errors.Is(err, publicapp.ErrInvalidID) {
				common.WriteError(h.logger, w, http.StatusNotFound, "User not found")
				return
			}
			h.logger.Printf("current user fetch failed id=%q err=%v", authUser.ID, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, userResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
	}
}
