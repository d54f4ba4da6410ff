package business

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
)

func (h *Handler) dealCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		var req dealCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		bestBefore, ok := common.ParseDate(req.BestBeforeDate)
		if !ok {
			common.WriteError(h.logger, w, http.StatusBadRequest, "bestBeforeDate must be a date (YYYY-MM-DD or RFC3339)")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		deal, err := h.dealService.Create(ctx, actor, bizapp.CreateDealCommand{
			StoreID:            req.StoreID,
			ItemName:           req.ItemName,
			Description:        req.Description,
			Category:           req.Category,
			OriginalPrice:      req.OriginalPrice,
			DiscountedPrice:    req.DiscountedPrice,
			QuantityAvailable:  req.QuantityAvailable,
			BestBeforeDate:     bestBefore,
			PickupInstructions: req.PickupInstructions,
			ImageURL:           req.ImageURL,
		})
		if err != nil {
			h.writeServiceError(w, "deal create", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, dealToResponse(*deal))
	}
}

func (h *Handler) dealUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		var req dealUpdateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, err.Error())
			return
		}
		var bestBefore *time.Time
		if req.BestBeforeDate != nil {
			parsed, ok := common.ParseDate(*req.BestBeforeDate)
			if !ok {
				common.WriteError(h.logger, w, http.StatusBadRequest, "bestBeforeDate must be a date (YYYY-MM-DD or RFC3339)")
				return
			}
			bestBefore = &parsed
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "dealId"))
		deal, err := h.dealService.Update(ctx, actor, id, bizapp.UpdateDealCommand{
			ItemName:           req.ItemName,
			Description:        req.Description,
			Category:           req.Category,
			OriginalPrice:      req.OriginalPrice,
			DiscountedPrice:    req.DiscountedPrice,
			QuantityAvailable:  req.QuantityAvailable,
			BestBeforeDate:     bestBefore,
			PickupInstructions: req.PickupInstructions,
			ImageURL:           req.ImageURL,
			IsActive:           req.IsActive,
		})
		if err != nil {
			h.writeServiceError(w, "deal update", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, dealToResponse(*deal))
	}
}

func (h *Handler) dealDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFromRequest(r)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.dealService.Delete(ctx, actor, strings.TrimSpace(chi.URLParam(r, "dealId"))); err != nil {
			h.writeServiceError(w, "deal delete", err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"message": "Deal removed"})
	}
}
