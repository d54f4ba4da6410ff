package business

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
)

// Handler wires store-owner HTTP endpoints to application services.
type Handler struct {
	logger       *log.Logger
	storeService bizapp.StoreService
	dealService  bizapp.DealService
	timeout      time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger       *log.Logger
	StoreService bizapp.StoreService
	DealService  bizapp.DealService
	Timeout      time.Duration
}

// NewHandler constructs a store-owner HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		storeService: cfg.StoreService,
		dealService:  cfg.DealService,
		timeout:      common.RequestTimeout(cfg.Timeout),
	}
}

// Register は認証と store_owner/admin ロールを要求するグループにルートを登録する。
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(common.RequireRole(h.logger, bizdomain.RoleStoreOwner, bizdomain.RoleAdmin))

		r.Post("/stores", h.storeCreateHandler())
		r.Put("/stores/{storeId}", h.storeUpdateHandler())
		r.Delete("/stores/{storeId}", h.storeDeleteHandler())
		r.Post("/deals", h.dealCreateHandler())
		r.Put("/deals/{dealId}", h.dealUpdateHandler())
		r.Delete("/deals/{dealId}", h.dealDeleteHandler())
	})
}
