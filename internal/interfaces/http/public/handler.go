package public

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger         *log.Logger
	dealQueries    publicapp.DealQueryService
	storeQueries   publicapp.StoreQueryService
	productQueries publicapp.ProductQueryService
	userQueries    publicapp.UserQueryService
	timeout        time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *log.Logger
	DealQueries    publicapp.DealQueryService
	StoreQueries   publicapp.StoreQueryService
	ProductQueries publicapp.ProductQueryService
	UserQueries    publicapp.UserQueryService
	Timeout        time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:         cfg.Logger,
		dealQueries:    cfg.DealQueries,
		storeQueries:   cfg.StoreQueries,
		productQueries: cfg.ProductQueries,
		userQueries:    cfg.UserQueries,
		timeout:        common.RequestTimeout(cfg.Timeout),
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/deals", h.dealListHandler())
	r.Get("/deals/{dealId}", h.dealDetailHandler())
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{storeId}", h.storeDetailHandler())
	r.Get("/products", h.productListHandler())
	r.Get("/products/{productId}", h.productDetailHandler())
	r.With(authMiddleware).Get("/auth/user", h.currentUserHandler())
}
