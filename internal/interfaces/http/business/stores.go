package business

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
)

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		var req storeCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		store, err := h.storeService.Create(ctx, actor, bizapp.CreateStoreCommand{
			Name:         req.StoreName,
			Address:      req.Address,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			ContactInfo:  req.ContactInfo,
			OpeningHours: req.OpeningHours,
			LogoURL:      req.LogoURL,
		})
		if err != nil {
			h.writeServiceError(w, "store create", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, storeToResponse(*store))
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		var req storeUpdateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "storeId"))
		store, err := h.storeService.Update(ctx, actor, id, bizapp.UpdateStoreCommand{
			Name:         req.StoreName,
			Address:      req.Address,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			ContactInfo:  req.ContactInfo,
			OpeningHours: req.OpeningHours,
			LogoURL:      req.LogoURL,
		})
		if err != nil {
			h.writeServiceError(w, "store update", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeToResponse(*store))
	}
}

func (h *Handler) storeDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.storeService.Delete(ctx, actor, strings.TrimSpace(chi.URLParam(r, "storeId"))); err != nil {
			h.writeServiceError(w, "store delete", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Store removed"})
	}
}
