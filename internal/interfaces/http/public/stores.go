package public

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		stores, err := h.storeQueries.List(ctx)
		if err != nil {
			h.logger.Printf("store list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			return
		}

		items := make([]storeResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, buildStoreResponse(store))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, storeListResponse{Items: items, Count: len(items)})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "storeId"))
		store, err := h.storeQueries.Detail(ctx, id)
		if err != nil {
			switch {
			case errors.Is(err, publicapp.ErrInvalidID):
				common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid store ID format")
			case errors.Is(err, publicapp.ErrStoreNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "Store not found")
			default:
				h.logger.Printf("store detail fetch failed id=%q err=%v", id, err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreResponse(*store))
	}
}
