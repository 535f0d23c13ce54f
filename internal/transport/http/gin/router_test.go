package httpgin

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	"github.com/olekhv/aero-go/internal/seatmap"
	"github.com/olekhv/aero-go/internal/service"
	"github.com/olekhv/aero-go/internal/service/flights"
	"github.com/olekhv/aero-go/internal/service/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlightStore is a mock implementation of flights.Store
type MockFlightStore struct {
	mock.Mock
}

func (m *MockFlightStore) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightStore) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightStore) Availability(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightStore) OccupiedSeats(ctx context.Context, id int64) ([]seatmap.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seatmap.Place), args.Error(1)
}

// MockOrderStore is a mock implementation of orders.Store
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Submit(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.OrderWithTickets, error) {
	args := m.Called(ctx, userID, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderWithTickets), args.Error(1)
}

func (m *MockOrderStore) GetWithTickets(ctx context.Context, orderID uuid.UUID) (*domain.OrderWithTickets, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderWithTickets), args.Error(1)
}

func (m *MockOrderStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.OrderSummary, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderSummary), args.Error(1)
}

func newTestRouter(fs *MockFlightStore, os *MockOrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svcs := &service.Services{
		Flights: flights.New(fs, nil, flights.Config{}),
		Orders:  orders.New(os, nil, nil, nil, orders.Config{}),
	}
	return NewRouter(svcs, nil, logger)
}

func doJSON(r *gin.Engine, method, target, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListFlights(t *testing.T) {
	fs := &MockFlightStore{}
	fs.On("List", mock.Anything, mock.MatchedBy(func(f domain.FlightFilter) bool {
		return f.SourceCity == "Kyiv" && f.Limit == 100
	})).Return([]domain.FlightSummary{
		{ID: 1, Source: "Boryspil", Destination: "Chopin", TicketsAvailable: 96},
	}, nil)

	r := newTestRouter(fs, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/flights?source_city=Kyiv", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []FlightSummaryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, int64(96), resp[0].TicketsAvailable)
	fs.AssertExpectations(t)
}

func TestListFlightsBadDate(t *testing.T) {
	r := newTestRouter(&MockFlightStore{}, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/flights?departure_time=02-06-2025", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFlightNotFound(t *testing.T) {
	fs := &MockFlightStore{}
	fs.On("GetDetail", mock.Anything, int64(404)).
		Return(nil, repository.ErrNotFound)

	r := newTestRouter(fs, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/flights/404", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAvailability(t *testing.T) {
	fs := &MockFlightStore{}
	fs.On("Availability", mock.Anything, int64(7)).Return(int64(42), nil)

	r := newTestRouter(fs, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/flights/7/availability", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp AvailabilityResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.TicketsAvailable)
	assert.NotEmpty(t, w.Header().Get("ETag"))
}

func TestGetAvailabilityNotModified(t *testing.T) {
	fs := &MockFlightStore{}
	fs.On("Availability", mock.Anything, int64(7)).Return(int64(42), nil)

	r := newTestRouter(fs, &MockOrderStore{})

	first := doJSON(r, http.MethodGet, "/flights/7/availability", "", nil)
	tag := first.Header().Get("ETag")
	assert.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, "/flights/7/availability", nil)
	req.Header.Set("If-None-Match", tag)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestListOccupiedSeats(t *testing.T) {
	fs := &MockFlightStore{}
	fs.On("OccupiedSeats", mock.Anything, int64(7)).
		Return([]seatmap.Place{{Row: 1, Seat: 2}}, nil)

	r := newTestRouter(fs, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/flights/7/seats", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []OccupiedSeatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []OccupiedSeatResponse{{Row: 1, Seat: 2}}, resp)
}

func TestCreateOrderWithoutIdentity(t *testing.T) {
	r := newTestRouter(&MockFlightStore{}, &MockOrderStore{})

	w := doJSON(r, http.MethodPost, "/orders", "", CreateOrderRequest{
		Tickets: []TicketInput{{FlightID: 7, Row: 1, Seat: 1}},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrder(t *testing.T) {
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 1, Seat: 1}}
	orderID := uuid.New()

	os := &MockOrderStore{}
	os.On("Submit", mock.Anything, int64(42), reqs).Return(&domain.OrderWithTickets{
		Order: domain.Order{ID: orderID, UserID: 42, CreatedAt: time.Now()},
		Tickets: []domain.Ticket{
			{ID: uuid.New(), OrderID: orderID, FlightID: 7, Row: 1, Seat: 1},
		},
	}, nil)

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodPost, "/orders", "42", CreateOrderRequest{
		Tickets: []TicketInput{{FlightID: 7, Row: 1, Seat: 1}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp OrderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, orderID.String(), resp.ID)
	assert.Len(t, resp.Tickets, 1)
	os.AssertExpectations(t)
}

func TestCreateOrderEmptyTickets(t *testing.T) {
	os := &MockOrderStore{}
	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodPost, "/orders", "42", map[string]any{"tickets": []any{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	os.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderRowOutOfRange(t *testing.T) {
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 99, Seat: 1}}

	os := &MockOrderStore{}
	os.On("Submit", mock.Anything, int64(42), reqs).
		Return(nil, &seatmap.RangeError{Field: "row", Bound: "rows", Max: 50})

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodPost, "/orders", "42", CreateOrderRequest{
		Tickets: []TicketInput{{FlightID: 7, Row: 99, Seat: 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "row number must be in available range: (1, rows): (1, 50)", resp["row"])
}

func TestCreateOrderRowZeroGetsRangeError(t *testing.T) {
	// row 0 must pass request binding and fail seat-map validation, so
	// the client sees the range message keyed by field
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 0, Seat: 1}}

	os := &MockOrderStore{}
	os.On("Submit", mock.Anything, int64(42), reqs).
		Return(nil, &seatmap.RangeError{Field: "row", Bound: "rows", Max: 2})

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodPost, "/orders", "42", CreateOrderRequest{
		Tickets: []TicketInput{{FlightID: 7, Row: 0, Seat: 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "row number must be in available range: (1, rows): (1, 2)", resp["row"])
	os.AssertExpectations(t)
}

func TestCreateOrderSeatZeroGetsRangeError(t *testing.T) {
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 1, Seat: 0}}

	os := &MockOrderStore{}
	os.On("Submit", mock.Anything, int64(42), reqs).
		Return(nil, &seatmap.RangeError{Field: "seat", Bound: "seats_in_row", Max: 6})

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodPost, "/orders", "42", CreateOrderRequest{
		Tickets: []TicketInput{{FlightID: 7, Row: 1, Seat: 0}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "seat number must be in available range: (1, seats_in_row): (1, 6)", resp["seat"])
}

func TestCreateOrderSeatTaken(t *testing.T) {
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	os := &MockOrderStore{}
	os.On("Submit", mock.Anything, int64(42), reqs).
		Return(nil, &seatmap.ConflictError{FlightID: 7, Row: 2, Seat: 3})

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodPost, "/orders", "42", CreateOrderRequest{
		Tickets: []TicketInput{{FlightID: 7, Row: 2, Seat: 3}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetOrderInvalidID(t *testing.T) {
	r := newTestRouter(&MockFlightStore{}, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/orders/not-a-uuid", "42", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetForeignOrder(t *testing.T) {
	orderID := uuid.New()

	os := &MockOrderStore{}
	os.On("GetWithTickets", mock.Anything, orderID).Return(&domain.OrderWithTickets{
		Order: domain.Order{ID: orderID, UserID: 1},
	}, nil)

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodGet, "/orders/"+orderID.String(), "42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrders(t *testing.T) {
	orderID := uuid.New()
	ticketID := uuid.New()
	dep := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(3 * time.Hour)

	os := &MockOrderStore{}
	os.On("ListByUser", mock.Anything, int64(42), 10, 0).
		Return([]domain.OrderSummary{
			{
				Order: domain.Order{ID: orderID, UserID: 42},
				Tickets: []domain.TicketWithFlight{
					{
						Ticket: domain.Ticket{
							ID:       ticketID,
							OrderID:  orderID,
							FlightID: 7,
							Row:      2,
							Seat:     3,
						},
						Flight: domain.FlightLeg{
							ID:            7,
							Source:        "Heathrow",
							Destination:   "Schiphol",
							DepartureTime: dep,
							ArrivalTime:   arr,
						},
					},
				},
			},
		}, nil)

	r := newTestRouter(&MockFlightStore{}, os)

	w := doJSON(r, http.MethodGet, "/orders", "42", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []OrderSummaryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, orderID.String(), resp[0].ID)

	// each listed ticket carries its flight leg, not a bare flight id
	assert.Len(t, resp[0].Tickets, 1)
	leg := resp[0].Tickets[0].Flight
	assert.Equal(t, int64(7), leg.ID)
	assert.Equal(t, "Heathrow", leg.Source)
	assert.Equal(t, "Schiphol", leg.Destination)
	assert.True(t, dep.Equal(leg.DepartureTime))
	assert.True(t, arr.Equal(leg.ArrivalTime))
	os.AssertExpectations(t)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(&MockFlightStore{}, &MockOrderStore{})

	w := doJSON(r, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}
