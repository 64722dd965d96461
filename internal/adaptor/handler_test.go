package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stay-booking/internal/dto/request"
	"stay-booking/internal/dto/response"
	"stay-booking/internal/usecase"
	"stay-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testCookies = utils.CookieConfig{AccessName: "access", RefreshName: "refresh", Path: "/"}

type fakeListingService struct {
	usecase.ListingService
	fetch  func(req *request.FetchListingsRequest) ([]response.ListingResponse, error)
	detail func(id string) (*response.ListingDetailResponse, error)
	avail  func(id string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
}

func (f *fakeListingService) FetchListings(_ context.Context, req *request.FetchListingsRequest) ([]response.ListingResponse, error) {
	return f.fetch(req)
}

func (f *fakeListingService) GetListingDetail(_ context.Context, id string) (*response.ListingDetailResponse, error) {
	return f.detail(id)
}

func (f *fakeListingService) CheckAvailability(_ context.Context, id string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	return f.avail(id, req)
}

type fakeBookingService struct {
	create func(userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	mine   func(userID uuid.UUID, req *request.FetchBookingsRequest) ([]response.BookingResponse, error)
	get    func(userID uuid.UUID, bookingID string) (*response.BookingResponse, error)
}

func (f *fakeBookingService) CreateBooking(_ context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return f.create(userID, req)
}

func (f *fakeBookingService) GetMyBookings(_ context.Context, userID uuid.UUID, req *request.FetchBookingsRequest) ([]response.BookingResponse, error) {
	return f.mine(userID, req)
}

func (f *fakeBookingService) GetBooking(_ context.Context, userID uuid.UUID, bookingID string) (*response.BookingResponse, error) {
	return f.get(userID, bookingID)
}

type fakeAuthService struct {
	usecase.AuthService
	login   func(req *request.LoginRequest) (*utils.TokenPair, error)
	refresh func(token string) (*utils.TokenPair, error)
	logout  func(token string) error
}

func (f *fakeAuthService) Login(_ context.Context, req *request.LoginRequest) (*utils.TokenPair, error) {
	return f.login(req)
}

func (f *fakeAuthService) Refresh(_ context.Context, token string) (*utils.TokenPair, error) {
	return f.refresh(token)
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	return f.logout(token)
}

// asUser stands in for the auth middleware.
func asUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), userID, "guest@example.com")))
		})
	}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateBookingStatusCodes(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"created", nil, http.StatusCreated, "Booking created successfully"},
		{"validation", &usecase.Error{Kind: usecase.KindValidation, Message: usecase.MsgValidationFailed, Fields: map[string]string{"check_in": "Check-in date cannot be in the past"}}, http.StatusBadRequest, usecase.MsgValidationFailed},
		{"missing listing", &usecase.Error{Kind: usecase.KindNotFound, Message: usecase.MsgListingNotFound}, http.StatusBadRequest, usecase.MsgListingNotFound},
		{"taken dates", &usecase.Error{Kind: usecase.KindConflict, Message: usecase.MsgListingUnavailable}, http.StatusBadRequest, usecase.MsgListingUnavailable},
		{"persistence", &usecase.Error{Kind: usecase.KindPersistence, Message: "connection reset"}, http.StatusBadRequest, "connection reset"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, usecase.MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBookingService{create: func(got uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
				assert.Equal(t, userID, got)
				assert.Equal(t, 2, req.NumberOfGuests)
				if tt.err != nil {
					return nil, tt.err
				}
				return &response.BookingResponse{ID: uuid.NewString(), Status: "pending"}, nil
			}}
			r := chi.NewRouter()
			r.With(asUser(userID)).Post("/api/bookings", NewBookingHandler(svc, zap.NewNop()).CreateBooking)

			body := `{"listing_id":"` + uuid.NewString() + `","check_in":"2030-06-01","check_out":"2030-06-03","number_of_guests":2}`
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))

			assert.Equal(t, tt.wantCode, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantMsg, env["message"])
			assert.Equal(t, tt.err == nil, env["status"])
		})
	}
}

func TestCreateBookingValidationFields(t *testing.T) {
	svc := &fakeBookingService{create: func(uuid.UUID, *request.CreateBookingRequest) (*response.BookingResponse, error) {
		return nil, &usecase.Error{Kind: usecase.KindValidation, Message: usecase.MsgValidationFailed, Fields: map[string]string{"listing_id": "Must be a valid UUID"}}
	}}
	r := chi.NewRouter()
	r.With(asUser(uuid.New())).Post("/api/bookings", NewBookingHandler(svc, zap.NewNop()).CreateBooking)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"listing_id":"42"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"listing_id": "Must be a valid UUID"}, decodeEnvelope(t, rec)["errors"])
}

func TestCreateBookingBadBody(t *testing.T) {
	h := NewBookingHandler(&fakeBookingService{}, zap.NewNop())
	r := chi.NewRouter()
	r.With(asUser(uuid.New())).Post("/api/bookings", h.CreateBooking)
	r.Post("/anonymous", h.CreateBooking)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/anonymous", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMyBookingsEmptyBody(t *testing.T) {
	userID := uuid.New()
	svc := &fakeBookingService{mine: func(got uuid.UUID, req *request.FetchBookingsRequest) ([]response.BookingResponse, error) {
		assert.Equal(t, userID, got)
		assert.Nil(t, req.Filters.ListingID)
		return []response.BookingResponse{}, nil
	}}
	r := chi.NewRouter()
	r.With(asUser(userID)).Post("/api/bookings/mine", NewBookingHandler(svc, zap.NewNop()).GetMyBookings)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings/mine", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeEnvelope(t, rec)["data"])
}

func TestListingRoutes(t *testing.T) {
	listingID := uuid.NewString()
	svc := &fakeListingService{
		fetch: func(req *request.FetchListingsRequest) ([]response.ListingResponse, error) {
			require.NotNil(t, req.Filters.City)
			assert.Equal(t, "Miami", *req.Filters.City)
			return []response.ListingResponse{{ID: listingID, PricePerNight: "150.00", Photos: []string{}}}, nil
		},
		detail: func(id string) (*response.ListingDetailResponse, error) {
			if id != listingID {
				return nil, &usecase.Error{Kind: usecase.KindNotFound, Message: usecase.MsgListingNotFound}
			}
			return &response.ListingDetailResponse{ListingResponse: response.ListingResponse{ID: id}, TotalBookings: 3}, nil
		},
		avail: func(id string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
			return &response.AvailabilityResponse{ListingID: id, CheckIn: req.CheckIn, CheckOut: req.CheckOut, Available: true}, nil
		},
	}
	h := NewListingHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/listings", h.FetchListings)
	r.Get("/api/listings/{id}", h.GetListingDetail)
	r.Get("/api/listings/{id}/availability", h.CheckAvailability)

	t.Run("fetch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(`{"filters":{"city":"Miami"}}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Listings fetched successfully", env["message"])
		assert.Len(t, env["data"], 1)
	})

	t.Run("detail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/listings/"+listingID, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, listingID, data["id"])
		assert.Equal(t, 3.0, data["total_bookings"])
	})

	t.Run("detail not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/listings/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, usecase.MsgListingNotFound, decodeEnvelope(t, rec)["message"])
	})

	t.Run("availability", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/listings/"+listingID+"/availability?check_in=2030-06-01&check_out=2030-06-03", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, true, data["available"])
		assert.Equal(t, "2030-06-01", data["check_in"])
	})
}

func TestLoginSetsCookies(t *testing.T) {
	pair := &utils.TokenPair{
		Access:           "a.b.c",
		Refresh:          "d.e.f",
		AccessExpiresAt:  time.Now().Add(time.Minute),
		RefreshExpiresAt: time.Now().Add(time.Hour),
	}
	svc := &fakeAuthService{login: func(req *request.LoginRequest) (*utils.TokenPair, error) {
		if req.Password != "correct-horse" {
			return nil, &usecase.Error{Kind: usecase.KindUnauthorized, Message: usecase.MsgInvalidCredentials}
		}
		return pair, nil
	}}
	h := NewAuthHandler(svc, testCookies, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"email":"guest@example.com","password":"correct-horse"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	names := map[string]string{}
	for _, c := range rec.Result().Cookies() {
		names[c.Name] = c.Value
	}
	assert.Equal(t, map[string]string{"access": "a.b.c", "refresh": "d.e.f"}, names)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"email":"guest@example.com","password":"nope"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestRefreshFallsBackToCookie(t *testing.T) {
	var got string
	svc := &fakeAuthService{refresh: func(token string) (*utils.TokenPair, error) {
		got = token
		return &utils.TokenPair{Access: "x", Refresh: "y"}, nil
	}}
	h := NewAuthHandler(svc, testCookies, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh", Value: "from-cookie"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from-cookie", got)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", strings.NewReader(`{"refresh":"from-body"}`))
	req.AddCookie(&http.Cookie{Name: "refresh", Value: "from-cookie"})
	h.Refresh(httptest.NewRecorder(), req)
	assert.Equal(t, "from-body", got)
}

func TestLogoutClearsCookiesEvenOnError(t *testing.T) {
	svc := &fakeAuthService{logout: func(string) error { return errors.New("redis down") }}
	h := NewAuthHandler(svc, testCookies, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Negative(t, c.MaxAge)
	}
}

func TestGetBooking(t *testing.T) {
	userID := uuid.New()
	bookingID := uuid.NewString()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"own booking", nil, http.StatusOK, "Booking fetched successfully"},
		{"someone else's", &usecase.Error{Kind: usecase.KindNotFound, Message: usecase.MsgBookingNotFound}, http.StatusNotFound, "Booking not found"},
		{"bad id", &usecase.Error{Kind: usecase.KindValidation, Message: usecase.MsgValidationFailed, Fields: map[string]string{"id": "Must be a valid UUID"}}, http.StatusBadRequest, "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeBookingService{get: func(got uuid.UUID, id string) (*response.BookingResponse, error) {
				assert.Equal(t, userID, got)
				assert.Equal(t, bookingID, id)
				if tt.err != nil {
					return nil, tt.err
				}
				return &response.BookingResponse{ID: id, Status: "pending"}, nil
			}}
			r := chi.NewRouter()
			r.With(asUser(userID)).Get("/api/bookings/{id}", NewBookingHandler(svc, zap.NewNop()).GetBooking)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/"+bookingID, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantMsg, env["message"])
		})
	}
}
