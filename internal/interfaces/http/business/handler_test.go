package business

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bizapp "github.com/mzansi-fresh-finds/api/internal/business/application"
	bizdomain "github.com/mzansi-fresh-finds/api/internal/business/domain"
	"github.com/mzansi-fresh-finds/api/internal/geo"
	"github.com/mzansi-fresh-finds/api/internal/interfaces/http/common"
)

const (
	storeID = "64b7f0c2a1b2c3d4e5f60718"
	ownerID = "64b7f0c2a1b2c3d4e5f60719"
)

type stubStoreService struct {
	lastActor  bizdomain.Actor
	lastCreate bizapp.CreateStoreCommand
	lastUpdate bizapp.UpdateStoreCommand
	err        error
}

func (s *stubStoreService) Create(_ context.Context, actor bizdomain.Actor, cmd bizapp.CreateStoreCommand) (*bizdomain.Store, error) {
	s.lastActor = actor
	s.lastCreate = cmd
	if s.err != nil {
		return nil, s.err
	}
	store := &bizdomain.Store{ID: storeID, OwnerID: actor.UserID, Name: bizdomain.Text(cmd.Name), Address: bizdomain.Text(cmd.Address)}
	if cmd.Latitude != nil && cmd.Longitude != nil {
		store.Location = &geo.Point{Latitude: *cmd.Latitude, Longitude: *cmd.Longitude}
	}
	return store, nil
}

func (s *stubStoreService) Update(_ context.Context, actor bizdomain.Actor, id string, cmd bizapp.UpdateStoreCommand) (*bizdomain.Store, error) {
	s.lastActor = actor
	s.lastUpdate = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &bizdomain.Store{ID: id, OwnerID: actor.UserID, Name: "Renamed"}, nil
}

func (s *stubStoreService) Delete(_ context.Context, actor bizdomain.Actor, _ string) error {
	s.lastActor = actor
	return s.err
}

type stubDealService struct {
	lastCreate bizapp.CreateDealCommand
	lastUpdate bizapp.UpdateDealCommand
	err        error
}

func (s *stubDealService) Create(_ context.Context, actor bizdomain.Actor, cmd bizapp.CreateDealCommand) (*bizdomain.Deal, error) {
	s.lastCreate = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &bizdomain.Deal{
		ID:              "64b7f0c2a1b2c3d4e5f60720",
		StoreID:         cmd.StoreID,
		UserID:          actor.UserID,
		ItemName:        bizdomain.Text(cmd.ItemName),
		OriginalPrice:   bizdomain.Money(cmd.OriginalPrice),
		DiscountedPrice: bizdomain.Money(cmd.DiscountedPrice),
		BestBeforeDate:  cmd.BestBeforeDate,
		IsActive:        true,
	}, nil
}

func (s *stubDealService) Update(_ context.Context, _ bizdomain.Actor, id string, cmd bizapp.UpdateDealCommand) (*bizdomain.Deal, error) {
	s.lastUpdate = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &bizdomain.Deal{ID: id, IsActive: cmd.IsActive != nil && *cmd.IsActive}, nil
}

func (s *stubDealService) Delete(context.Context, bizdomain.Actor, string) error {
	return s.err
}

// fakeAuth は X-Test-Role ヘッダーがあればそのロールで認証済みとする。
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get("X-Test-Role")
		if role == "" {
			common.WriteError(nil, w, http.StatusUnauthorized, "not authorized, no token")
			return
		}
		ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: ownerID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(stores *stubStoreService, deals *stubDealService) http.Handler {
	h := NewHandler(Config{
		Logger:       log.New(io.Discard, "", 0),
		StoreService: stores,
		DealService:  deals,
		Timeout:      time.Second,
	})
	r := chi.NewRouter()
	h.Register(r, fakeAuth)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, target, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRequireAuthAndRole(t *testing.T) {
	router := newTestRouter(&stubStoreService{}, &stubDealService{})

	rec := doRequest(t, router, http.MethodPost, "/stores", "", `{"storeName":"x","address":"y"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/stores", "consumer", `{"storeName":"x","address":"y"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, http.MethodDelete, "/deals/"+storeID, "consumer", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStoreCreate(t *testing.T) {
	stores := &stubStoreService{}
	router := newTestRouter(stores, &stubDealService{})

	rec := doRequest(t, router, http.MethodPost, "/stores", "store_owner",
		`{"storeName":"Corner Bakery","address":"1 Main Rd","latitude":-26.2,"longitude":28.04}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body storeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, storeID, body.ID)
	assert.Equal(t, ownerID, body.User)
	require.NotNil(t, body.Location)
	assert.Equal(t, []float64{28.04, -26.2}, body.Location.Coordinates)

	assert.Equal(t, bizdomain.Actor{UserID: ownerID, Role: "store_owner"}, stores.lastActor)
	assert.Equal(t, "Corner Bakery", stores.lastCreate.Name)
}

func TestStoreCreateRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(&stubStoreService{}, &stubDealService{})

	rec := doRequest(t, router, http.MethodPost, "/stores", "store_owner", `{"storeName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/stores", "store_owner", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreUpdatePassesPartialFields(t *testing.T) {
	stores := &stubStoreService{}
	router := newTestRouter(stores, &stubDealService{})

	rec := doRequest(t, router, http.MethodPut, "/stores/"+storeID, "admin", `{"storeName":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stores.lastUpdate.Name)
	assert.Equal(t, "Renamed", *stores.lastUpdate.Name)
	assert.Nil(t, stores.lastUpdate.Address)
	assert.Nil(t, stores.lastUpdate.Latitude)
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"input", &bizapp.InputError{Err: errors.New("storeName is required")}, http.StatusBadRequest, "storeName is required"},
		{"invalid id", bizapp.ErrInvalidID, http.StatusBadRequest, "Invalid ID format"},
		{"forbidden", bizapp.ErrForbidden, http.StatusForbidden, "User not authorized to modify this resource"},
		{"store missing", bizapp.ErrStoreNotFound, http.StatusNotFound, "Store not found"},
		{"deal missing", bizapp.ErrDealNotFound, http.StatusNotFound, "Deal not found"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubStoreService{err: tc.err}, &stubDealService{err: tc.err})

			rec := doRequest(t, router, http.MethodDelete, "/stores/"+storeID, "store_owner", "")
			assert.Equal(t, tc.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestStoreDelete(t *testing.T) {
	router := newTestRouter(&stubStoreService{}, &stubDealService{})

	rec := doRequest(t, router, http.MethodDelete, "/stores/"+storeID, "store_owner", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Store removed"}`, rec.Body.String())
}

func TestDealCreate(t *testing.T) {
	deals := &stubDealService{}
	router := newTestRouter(&stubStoreService{}, deals)

	rec := doRequest(t, router, http.MethodPost, "/deals", "store_owner", `{
		"storeId":"`+storeID+`",
		"itemName":"Sourdough",
		"category":"Bakery",
		"originalPrice":100,
		"discountedPrice":60,
		"quantityAvailable":4,
		"bestBeforeDate":"2026-10-21"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, storeID, deals.lastCreate.StoreID)
	require.NotNil(t, deals.lastCreate.QuantityAvailable)
	assert.Equal(t, 4, *deals.lastCreate.QuantityAvailable)
	assert.Equal(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), deals.lastCreate.BestBeforeDate)

	var body dealResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Sourdough", body.ItemName)
	assert.Equal(t, 60.0, body.DiscountedPrice)
	assert.Equal(t, ownerID, body.User)
}

func TestDealCreateRejectsBadDate(t *testing.T) {
	deals := &stubDealService{}
	router := newTestRouter(&stubStoreService{}, deals)

	rec := doRequest(t, router, http.MethodPost, "/deals", "store_owner",
		`{"storeId":"`+storeID+`","itemName":"x","originalPrice":1,"discountedPrice":1,"bestBeforeDate":"tomorrow"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, deals.lastCreate.StoreID)
}

func TestDealUpdate(t *testing.T) {
	deals := &stubDealService{}
	router := newTestRouter(&stubStoreService{}, deals)

	rec := doRequest(t, router, http.MethodPut, "/deals/"+storeID, "store_owner",
		`{"isActive":false,"discountedPrice":5,"bestBeforeDate":"2026-11-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, deals.lastUpdate.IsActive)
	assert.False(t, *deals.lastUpdate.IsActive)
	require.NotNil(t, deals.lastUpdate.DiscountedPrice)
	assert.Equal(t, 5.0, *deals.lastUpdate.DiscountedPrice)
	require.NotNil(t, deals.lastUpdate.BestBeforeDate)
	assert.Equal(t, 1, deals.lastUpdate.BestBeforeDate.Day())
	assert.Nil(t, deals.lastUpdate.ItemName)
}

func TestDealDelete(t *testing.T) {
	router := newTestRouter(&stubStoreService{}, &stubDealService{})

	rec := doRequest(t, router, http.MethodDelete, "/deals/"+storeID, "admin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Deal removed"}`, rec.Body.String())
}
