package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	"github.com/olekhv/aero-go/internal/seatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of orders.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Submit(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.OrderWithTickets, error) {
	args := m.Called(ctx, userID, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderWithTickets), args.Error(1)
}

func (m *MockStore) GetWithTickets(ctx context.Context, orderID uuid.UUID) (*domain.OrderWithTickets, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderWithTickets), args.Error(1)
}

func (m *MockStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.OrderSummary, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderSummary), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateFlight(ctx context.Context, flightID int64) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishFlightChanged(ctx context.Context, flightID int64) error {
	args := m.Called(ctx, flightID)
	return args.Error(0)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, int64, time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Get(2).(time.Duration), args.Error(3)
}

func committedOrder(userID int64, reqs []domain.TicketRequest) *domain.OrderWithTickets {
	o := &domain.OrderWithTickets{
		Order: domain.Order{ID: uuid.New(), UserID: userID, CreatedAt: time.Now()},
	}
	for _, r := range reqs {
		o.Tickets = append(o.Tickets, domain.Ticket{
			ID:       uuid.New(),
			OrderID:  o.Order.ID,
			FlightID: r.FlightID,
			Row:      r.Row,
			Seat:     r.Seat,
		})
	}
	return o
}

func TestSubmitEmptyOrder(t *testing.T) {
	store := &MockStore{}
	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.Submit(context.Background(), 1, nil, "")

	assert.ErrorIs(t, err, ErrEmptyOrder)
	store.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitSuccessInvalidatesEveryFlight(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{
		{FlightID: 7, Row: 1, Seat: 1},
		{FlightID: 7, Row: 1, Seat: 2},
		{FlightID: 9, Row: 3, Seat: 4},
	}

	store := &MockStore{}
	cache := &MockCache{}
	pubsub := &MockPublisher{}

	store.On("Submit", ctx, int64(42), reqs).Return(committedOrder(42, reqs), nil)
	cache.On("InvalidateFlight", ctx, int64(7)).Return(nil).Once()
	cache.On("InvalidateFlight", ctx, int64(9)).Return(nil).Once()
	pubsub.On("PublishFlightChanged", ctx, int64(7)).Return(nil).Once()
	pubsub.On("PublishFlightChanged", ctx, int64(9)).Return(nil).Once()

	svc := New(store, cache, pubsub, nil, Config{})

	out, err := svc.Submit(ctx, 42, reqs, "")

	assert.NoError(t, err)
	assert.Len(t, out.Tickets, 3)
	assert.Equal(t, int64(42), out.Order.UserID)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
	pubsub.AssertExpectations(t)
}

func TestSubmitRangeErrorPassesThrough(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 99, Seat: 1}}

	store := &MockStore{}
	cache := &MockCache{}
	store.On("Submit", ctx, int64(1), reqs).
		Return(nil, &seatmap.RangeError{Field: "row", Bound: "rows", Max: 50})

	svc := New(store, cache, nil, nil, Config{})

	_, err := svc.Submit(ctx, 1, reqs, "")

	var re *seatmap.RangeError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "row", re.Field)
	assert.Equal(t, "row number must be in available range: (1, rows): (1, 50)", re.Error())
	cache.AssertNotCalled(t, "InvalidateFlight", mock.Anything, mock.Anything)
}

func TestSubmitSeatConflictPassesThrough(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	store := &MockStore{}
	store.On("Submit", ctx, int64(1), reqs).
		Return(nil, &seatmap.ConflictError{FlightID: 7, Row: 2, Seat: 3})

	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.Submit(ctx, 1, reqs, "")

	var ce *seatmap.ConflictError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, int64(7), ce.FlightID)
}

func TestSubmitUnknownFlight(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 404, Row: 1, Seat: 1}}

	store := &MockStore{}
	store.On("Submit", ctx, int64(1), reqs).Return(nil, repository.ErrNotFound)

	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.Submit(ctx, 1, reqs, "")

	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestSubmitConstraintRaceBecomesSeatTaken(t *testing.T) {
	// Two submissions raced; ours lost at commit and the unique
	// constraint reported the conflict instead of the seat map.
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	store := &MockStore{}
	cache := &MockCache{}
	store.On("Submit", ctx, int64(1), reqs).Return(nil, repository.ErrConflict)

	svc := New(store, cache, nil, nil, Config{})

	_, err := svc.Submit(ctx, 1, reqs, "")

	assert.ErrorIs(t, err, ErrSeatTaken)
	cache.AssertNotCalled(t, "InvalidateFlight", mock.Anything, mock.Anything)
}

func TestSubmitRetriesSerializationFailure(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	store := &MockStore{}
	store.On("Submit", ctx, int64(1), reqs).
		Return(nil, &pgconn.PgError{Code: "40001"}).Twice()
	store.On("Submit", ctx, int64(1), reqs).
		Return(committedOrder(1, reqs), nil).Once()

	svc := New(store, nil, nil, nil, Config{SubmitRetries: 3})

	out, err := svc.Submit(ctx, 1, reqs, "")

	assert.NoError(t, err)
	assert.Len(t, out.Tickets, 1)
	store.AssertExpectations(t)
}

func TestSubmitRetriesExhausted(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	store := &MockStore{}
	store.On("Submit", ctx, int64(1), reqs).
		Return(nil, &pgconn.PgError{Code: "40001"}).Times(2)

	svc := New(store, nil, nil, nil, Config{SubmitRetries: 2})

	_, err := svc.Submit(ctx, 1, reqs, "")

	assert.Error(t, err)
	store.AssertNumberOfCalls(t, "Submit", 2)
}

func TestSubmitRateLimited(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	store := &MockStore{}
	limiter := &MockLimiter{}
	limiter.On("Allow", ctx, "user:1").
		Return(false, int64(11), 30*time.Second, nil)

	svc := New(store, nil, nil, limiter, Config{})

	_, err := svc.Submit(ctx, 1, reqs, "user:1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	store.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOwnOrder(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}
	order := committedOrder(42, reqs)

	store := &MockStore{}
	store.On("GetWithTickets", ctx, order.Order.ID).Return(order, nil)

	svc := New(store, nil, nil, nil, Config{})

	out, err := svc.Get(ctx, 42, order.Order.ID)

	assert.NoError(t, err)
	assert.Equal(t, order.Order.ID, out.Order.ID)
}

func TestGetForeignOrderReportedAsNotFound(t *testing.T) {
	ctx := context.Background()
	order := committedOrder(42, []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}})

	store := &MockStore{}
	store.On("GetWithTickets", ctx, order.Order.ID).Return(order, nil)

	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.Get(ctx, 1, order.Order.ID)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetMissingOrder(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	store := &MockStore{}
	store.On("GetWithTickets", ctx, id).Return(nil, repository.ErrNotFound)

	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.Get(ctx, 1, id)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListAppliesDefaultPage(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{}
	store.On("ListByUser", ctx, int64(1), 10, 0).
		Return([]domain.OrderSummary{}, nil)

	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.List(ctx, 1, 0, -5)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestListCapsPageSize(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{}
	store.On("ListByUser", ctx, int64(1), 100, 0).
		Return([]domain.OrderSummary{}, nil)

	svc := New(store, nil, nil, nil, Config{})

	_, err := svc.List(ctx, 1, 10_000, 0)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSubmitLimiterFailure(t *testing.T) {
	ctx := context.Background()
	reqs := []domain.TicketRequest{{FlightID: 7, Row: 2, Seat: 3}}

	store := &MockStore{}
	limiter := &MockLimiter{}
	limiter.On("Allow", ctx, "user:1").
		Return(false, int64(0), time.Duration(0), errors.New("redis down"))

	svc := New(store, nil, nil, limiter, Config{})

	_, err := svc.Submit(ctx, 1, reqs, "user:1")

	assert.Error(t, err)
	store.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}
