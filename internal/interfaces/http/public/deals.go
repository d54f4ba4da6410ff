package public

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
	"github.com/mzansi-fresh-finds/api/internal/observability"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
)

// parseDiscoveryQuery は検索クエリ文字列を未検証のまま DiscoveryParams に写す。検証はサービス側で行う。
func parseDiscoveryQuery(query url.Values) publicapp.DiscoveryParams {
	return publicapp.DiscoveryParams{
		Category:  query.Get("category"),
		StoreID:   strings.TrimSpace(query.Get("storeId")),
		MinPrice:  query.Get("minPrice"),
		MaxPrice:  query.Get("maxPrice"),
		Active:    query.Get("active"),
		Latitude:  strings.TrimSpace(query.Get("latitude")),
		Longitude: strings.TrimSpace(query.Get("longitude")),
		Radius:    query.Get("radius"),
		SortBy:    query.Get("sortBy"),
	}
}

func (h *Handler) dealListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		start := time.Now()
		params := parseDiscoveryQuery(r.URL.Query())
		spatial := params.Latitude != "" || params.Longitude != ""

		result, err := h.dealQueries.Discover(ctx, params)
		if err != nil {
			var validationErr *publicapp.ValidationError
			if errors.As(err, &validationErr) {
				observability.ObserveDiscovery("invalid", spatial, start, 0)
				common.WriteError(h.logger, w, http.StatusBadRequest, validationErr.Message)
				return
			}
			observability.ObserveDiscovery("error", spatial, start, 0)
			h.logger.Printf("deal discovery failed query=%q err=%v", r.URL.RawQuery, err)
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			return
		}

		observability.ObserveDiscovery("ok", spatial, start, result.Count)
		common.WriteJSON(h.logger, w, http.StatusOK, buildDealListResponse(result))
	}
}

func (h *Handler) dealDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := strings.TrimSpace(chi.URLParam(r, "dealId"))
		deal, err := h.dealQueries.Detail(ctx, id)
		if err != nil {
			switch {
			case errors.Is(err, publicapp.ErrInvalidID):
				common.WriteError(h.logger, w, http.StatusBadRequest, "Invalid deal ID format")
			case errors.Is(err, publicapp.ErrDealNotFound):
				common.WriteError(h.logger, w, http.StatusNotFound, "Deal not found or no longer available")
			default:
				h.logger.Printf("deal detail fetch failed id=%q err=%v", id, err)
				common.WriteError(h.logger, w, http.StatusInternalServerError, "Server Error")
			}
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildDealResponse(*deal, false))
	}
}
