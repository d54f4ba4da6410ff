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

func (h *Handler) productListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		products, err := h.productQueries.List(ctx, r.URL.Query().Get("keyword"))
		if err != nil {
			h.logger.Printf("product list fetch failed: %v", err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			return
		}

		items := make([]productResponse, 0, len(products))
		for _, p := range products {
			items = append(items, buildProductResponse(p))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, productListResponse{Items: items, Count: len(items)})
	}
}

func (h *Handler) productDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, err := h.productQueries.Detail(ctx, id)
		if err != nil {
			switch {
			case errors.Is(err, publicapp.ErrInvalidID), errors.Is(err, publicapp.ErrProductNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "Product not found")
			default:
				h.logger.Printf("product detail fetch failed id=%q err=%v", id, err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildProductResponse(*product))
	}
}
