package public

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzansi-fresh-finds/api/internal/geo"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
	publicapp "github.com/mzansi-fresh-finds/api/internal/public/application"
	publicdomain "github.com/mzansi-fresh-finds/api/internal/public/domain"
)

const validID = "64b7f0c2a1b2c3d4e5f60718"

type stubDeals struct {
	result     *publicapp.DiscoveryResult
	err        error
	lastParams publicapp.DiscoveryParams
	detail     *publicdomain.Deal
	detailErr  error
}

func (s *stubDeals) Discover(_ context.Context, params publicapp.DiscoveryParams) (*publicapp.DiscoveryResult, error) {
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	if _, err := publicapp.ParseDiscoveryParams(params, 10); err != nil {
		return nil, err
	}
	return s.result, nil
}

func (s *stubDeals) Detail(context.Context, string) (*publicdomain.Deal, error) {
	return s.detail, s.detailErr
}

type stubStores struct {
	stores []publicdomain.Store
	err    error
}

func (s *stubStores) List(context.Context) ([]publicdomain.Store, error) { return s.stores, s.err }

func (s *stubStores) Detail(_ context.Context, id string) (*publicdomain.Store, error) {
	if !publicdomain.IsValidID(id) {
		return nil, publicapp.ErrInvalidID
	}
	for _, store := range s.stores {
		if store.ID == id {
			return &store, nil
		}
	}
	return nil, publicapp.ErrStoreNotFound
}

type stubProducts struct {
	lastKeyword string
}

func (s *stubProducts) List(_ context.Context, keyword string) ([]publicdomain.Product, error) {
	s.lastKeyword = keyword
	return []publicdomain.Product{{ID: validID, Name: "Rusks", Price: 45}}, nil
}

func (s *stubProducts) Detail(context.Context, string) (*publicdomain.Product, error) {
	return nil, publicapp.ErrProductNotFound
}

type stubUsers struct{}

func (stubUsers) Profile(_ context.Context, id string) (*publicdomain.User, error) {
	if id != validID {
		return nil, publicapp.ErrUserNotFound
	}
	return &publicdomain.User{ID: id, Name: "Thandi", Email: "thandi@example.com", Role: publicdomain.RoleStoreOwner}, nil
}

func newTestRouter(deals *stubDeals, stores *stubStores, products *stubProducts) http.Handler {
	h := NewHandler(Config{
		Logger:         log.New(io.Discard, "", 0),
		DealQueries:    deals,
		StoreQueries:   stores,
		ProductQueries: products,
		UserQueries:    stubUsers{},
		Timeout:        time.Second,
	})
	fakeAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: r.Header.Get("X-Test-User"), Role: "consumer"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	r := chi.NewRouter()
	h.Register(r, fakeAuth)
	return r
}

func sampleDeal(distance *float64) publicdomain.Deal {
	return publicdomain.Deal{
		ID:                 validID,
		ItemName:           "Sourdough",
		Category:           "Bakery",
		OriginalPrice:      100,
		DiscountedPrice:    60,
		QuantityAvailable:  3,
		IsActive:           true,
		BestBeforeDate:     time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC),
		CreatedAt:          time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC),
		DiscountPercentage: 40,
		Store: publicdomain.DealStore{
			ID:       validID,
			Name:     "Corner Bakery",
			Location: &geo.Point{Longitude: 28.0, Latitude: -26.0},
		},
		User:         publicdomain.DealUser{ID: validID, Name: "Thandi"},
		DistanceInKm: distance,
	}
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestParseDiscoveryQuery(t *testing.T) {
	params := parseDiscoveryQuery(url.Values{
		"category":  {"Bakery"},
		"storeId":   {" " + validID + " "},
		"minPrice":  {"1"},
		"maxPrice":  {"9"},
		"active":    {"false"},
		"latitude":  {" -26.0"},
		"longitude": {"28.0 "},
		"radius":    {"5"},
		"sortBy":    {"distance"},
	})

	assert.Equal(t, publicapp.DiscoveryParams{
		Category:  "Bakery",
		StoreID:   validID,
		MinPrice:  "1",
		MaxPrice:  "9",
		Active:    "false",
		Latitude:  "-26.0",
		Longitude: "28.0",
		Radius:    "5",
		SortBy:    "distance",
	}, params)
}

func TestDealList_WithDistance(t *testing.T) {
	zero := 0.0
	deals := &stubDeals{result: &publicapp.DiscoveryResult{
		Items:        []publicdomain.Deal{sampleDeal(&zero), sampleDeal(nil)},
		Count:        2,
		WithDistance: true,
	}}
	router := newTestRouter(deals, &stubStores{}, &stubProducts{})

	rec, body := get(t, router, "/deals?latitude=-26.0&longitude=28.0&radius=10&sortBy=discount")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])

	items := body["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, 0.0, first["distanceInKm"])
	assert.Equal(t, 40.0, first["discountPercentage"])
	assert.Equal(t, "Corner Bakery", first["store"].(map[string]any)["storeName"])
	location := first["store"].(map[string]any)["location"].(map[string]any)
	assert.Equal(t, "Point", location["type"])
	assert.Equal(t, []any{28.0, -26.0}, location["coordinates"])
	assert.Equal(t, "Thandi", first["user"].(map[string]any)["name"])

	second := items[1].(map[string]any)
	value, present := second["distanceInKm"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestDealList_WithoutDistanceOmitsField(t *testing.T) {
	deals := &stubDeals{result: &publicapp.DiscoveryResult{Items: []publicdomain.Deal{sampleDeal(nil)}, Count: 1}}
	router := newTestRouter(deals, &stubStores{}, &stubProducts{})

	rec, body := get(t, router, "/deals?category=Bakery")
	require.Equal(t, http.StatusOK, rec.Code)
	item := body["items"].([]any)[0].(map[string]any)
	_, present := item["distanceInKm"]
	assert.False(t, present)
	assert.Equal(t, "Bakery", deals.lastParams.Category)
}

func TestDealList_EmptyResultIsOK(t *testing.T) {
	deals := &stubDeals{result: &publicapp.DiscoveryResult{Items: []publicdomain.Deal{}}}
	router := newTestRouter(deals, &stubStores{}, &stubProducts{})

	rec, body := get(t, router, "/deals?category=nonexistent")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["items"])
	assert.Equal(t, float64(0), body["count"])
}

func TestDealList_ValidationIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubDeals{}, &stubStores{}, &stubProducts{})

	rec, body := get(t, router, "/deals?latitude=-26.0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Both latitude and longitude are required for location filtering.", body["error"])

	rec, body = get(t, router, "/deals?storeId=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid parameter format: storeId", body["error"])
}

func TestDealList_InfrastructureErrorIsGeneric(t *testing.T) {
	router := newTestRouter(&stubDeals{err: errors.New("server selection timeout")}, &stubStores{}, &stubProducts{})

	rec, body := get(t, router, "/deals")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server Error", body["error"])
}

func TestDealDetail(t *testing.T) {
	deal := sampleDeal(nil)
	router := newTestRouter(&stubDeals{detail: &deal}, &stubStores{}, &stubProducts{})
	rec, body := get(t, router, "/deals/"+validID)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sourdough", body["itemName"])
	assert.Equal(t, "2026-10-21T00:00:00Z", body["bestBeforeDate"])

	router = newTestRouter(&stubDeals{detailErr: publicapp.ErrDealNotFound}, &stubStores{}, &stubProducts{})
	rec, _ = get(t, router, "/deals/"+validID)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	router = newTestRouter(&stubDeals{detailErr: publicapp.ErrInvalidID}, &stubStores{}, &stubProducts{})
	rec, _ = get(t, router, "/deals/xyz")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreEndpoints(t *testing.T) {
	stores := &stubStores{stores: []publicdomain.Store{{
		ID: validID, OwnerID: validID, OwnerName: "Thandi", Name: "Corner Bakery", Address: "1 Main Rd",
	}}}
	router := newTestRouter(&stubDeals{}, stores, &stubProducts{})

	rec, body := get(t, router, "/stores")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
	item := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "Thandi", item["user"].(map[string]any)["name"])
	assert.Nil(t, item["location"])

	rec, _ = get(t, router, "/stores/"+validID)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = get(t, router, "/stores/64b7f0c2a1b2c3d4e5f60719")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = get(t, router, "/stores/nope")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	router = newTestRouter(&stubDeals{}, &stubStores{err: errors.New("down")}, &stubProducts{})
	rec, _ = get(t, router, "/stores")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProductEndpoints(t *testing.T) {
	products := &stubProducts{}
	router := newTestRouter(&stubDeals{}, &stubStores{}, products)

	rec, body := get(t, router, "/products?keyword=rusk")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rusk", products.lastKeyword)
	assert.Equal(t, float64(1), body["count"])

	rec, _ = get(t, router, "/products/"+validID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCurrentUser(t *testing.T) {
	router := newTestRouter(&stubDeals{}, &stubStores{}, &stubProducts{})

	req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	req.Header.Set("X-Test-User", validID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+validID+`","name":"Thandi","email":"thandi@example.com","role":"store_owner"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/auth/user", nil)
	req.Header.Set("X-Test-User", "64b7f0c2a1b2c3d4e5f60719")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
