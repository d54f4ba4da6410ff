package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	"github.com/mzansi-fresh-finds/api/internal/config"
	mongodoc "github.com/mzansi-fresh-finds/api/internal/infrastructure/mongo"
	businesshttp "github.com/mzansi-fresh-finds/api/internal/interfaces/http/business"
	commonhttp "github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
	publichttp "github.com/mzansi-fresh-finds/api/internal/interfaces/http/public"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Business の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *log.Logger
	client         *mongo.Client
	database       *mongo.Database
	collections    mongodoc.Collections
	jwt            config.JWTConfig
	addr           string
	allowedOrigins []string
	metricsEnabled bool
	requestTimeout time.Duration
	dealQueries    publicapp.DealQueryService
	storeQueries   publicapp.StoreQueryService
	productQueries publicapp.ProductQueryService
	userQueries    publicapp.UserQueryService
	storeService   bizapp.StoreService
	dealService    bizapp.DealService
}

const defaultRole = "consumer"

// Run はインデックスを用意してから HTTP サーバーを起動し、シグナルを受けるまでブロックする。
func (s *Server) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongodoc.EnsureIndexes(ctx, s.database, s.collections); err != nil {
		s.logger.Printf("インデックス作成に失敗しました: %v", err)
	}
	cancel()

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// Routes はミドルウェアと全ハンドラを組み立てたルータを返す。
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	if s.metricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:         s.logger,
		DealQueries:    s.dealQueries,
		StoreQueries:   s.storeQueries,
		ProductQueries: s.productQueries,
		UserQueries:    s.userQueries,
		Timeout:        s.requestTimeout,
	})
	publicHandler.Register(router, s.authMiddleware)

	businessHandler := businesshttp.NewHandler(businesshttp.Config{
		Logger:       s.logger,
		StoreService: s.storeService,
		DealService:  s.dealService,
		Timeout:      s.requestTimeout,
	})
	businessHandler.Register(router, s.authMiddleware)

	return router
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB への疎通確認のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
			commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// authMiddleware は Authorization ヘッダーの Bearer JWT を検証し、認証済みユーザーをコンテキストへ詰める。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		const bearerPrefix = "Bearer "
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteError(s.logger, w, http.StatusUnauthorized, "not authorized, token failed")
			return
		}

		role := strings.TrimSpace(claims.Role)
		if role == "" {
			role = defaultRole
		}
		user := commonhttp.AuthenticatedUser{
			ID:   claims.Subject,
			Name: claims.Name,
			Role: role,
		}

		ctx := commonhttp.ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken は HS256 署名と Issuer/Audience/Subject を検証する。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwt.Secret) == 0 {
		return nil, fmt.Errorf("auth is not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithLeeway(30 * time.Second),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if s.jwt.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.jwt.Issuer))
	}
	if s.jwt.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.jwt.Audience))
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.jwt.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid access token")
	}
	return claims, nil
}

type authClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("MongoDB 切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を行う。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
}

// New は Config と Mongo クライアントからリポジトリ・サービスを組み立てた Server を返す。
func New(cfg config.Config, client *mongo.Client) *Server {
	db := client.Database(cfg.MongoDatabase)
	cols := mongodoc.Collections{
		Stores:   cfg.StoreCollection,
		Deals:    cfg.DealCollection,
		Users:    cfg.UserCollection,
		Products: cfg.ProductCollection,
	}

	storeRepo := mongodoc.NewStoreRepository(db, cols.Stores, cols.Users)
	dealRepo := mongodoc.NewDealRepository(db, cols.Deals, cols.Stores, cols.Users)
	bizStoreRepo := mongodoc.NewBusinessStoreRepository(db, cols.Stores)
	bizDealRepo := mongodoc.NewBusinessDealRepository(db, cols.Deals)

	return &Server{
		logger:         cfg.ServerLog,
		client:         client,
		database:       db,
		collections:    cols,
		jwt:            cfg.JWT,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		metricsEnabled: cfg.MetricsEnabled,
		requestTimeout: cfg.RequestTimeout,
		dealQueries:    publicapp.NewDealQueryService(storeRepo, dealRepo, cfg.DefaultRadiusKm),
		storeQueries:   publicapp.NewStoreQueryService(storeRepo),
		productQueries: publicapp.NewProductQueryService(mongodoc.NewProductRepository(db, cols.Products)),
		userQueries:    publicapp.NewUserQueryService(mongodoc.NewUserRepository(db, cols.Users)),
		storeService:   bizapp.NewStoreService(bizStoreRepo),
		dealService:    bizapp.NewDealService(bizDealRepo, bizStoreRepo),
	}
}
