package flights

import (
	"context"
	"testing"
	"time"

	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	"github.com/olekhv/aero-go/internal/seatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of flights.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockStore) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockStore) Availability(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) OccupiedSeats(ctx context.Context, id int64) ([]seatmap.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]seatmap.Place), args.Error(1)
}

func TestListAppliesPaging(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{}
	store.On("List", ctx, domain.FlightFilter{Limit: 100}).
		Return([]domain.FlightSummary{}, nil)

	svc := New(store, nil, Config{})

	_, err := svc.List(ctx, domain.FlightFilter{Offset: -1})

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestListKeepsFilter(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	filter := domain.FlightFilter{
		SourceCity:      "Kyiv",
		DestinationCity: "Warsaw",
		DepartureDate:   &day,
		Limit:           20,
	}

	want := []domain.FlightSummary{
		{ID: 1, Source: "Boryspil", Destination: "Chopin", TicketsAvailable: 96},
	}

	store := &MockStore{}
	store.On("List", ctx, filter).Return(want, nil)

	svc := New(store, nil, Config{})

	got, err := svc.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{}
	store.On("GetDetail", ctx, int64(404)).Return(nil, repository.ErrNotFound)

	svc := New(store, nil, Config{})

	_, err := svc.Get(ctx, 404)

	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestGetReturnsDetail(t *testing.T) {
	ctx := context.Background()
	want := &domain.FlightDetail{
		ID:          7,
		Source:      "Boryspil",
		Destination: "Chopin",
		Crew:        []string{"Anna Kovalenko"},
		Airplane: domain.AirplaneInfo{
			Name: "Dreamliner", Rows: 30, SeatsInRow: 9, Capacity: 270,
		},
	}

	store := &MockStore{}
	store.On("GetDetail", ctx, int64(7)).Return(want, nil)

	svc := New(store, nil, Config{})

	got, err := svc.Get(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAvailability(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{}
	store.On("Availability", ctx, int64(7)).Return(int64(42), nil)

	svc := New(store, nil, Config{})

	left, err := svc.Availability(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), left)
}

func TestAvailabilityUnknownFlight(t *testing.T) {
	ctx := context.Background()

	store := &MockStore{}
	store.On("Availability", ctx, int64(404)).Return(int64(0), repository.ErrNotFound)

	svc := New(store, nil, Config{})

	_, err := svc.Availability(ctx, 404)

	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestOccupiedSeats(t *testing.T) {
	ctx := context.Background()
	want := []seatmap.Place{{Row: 1, Seat: 1}, {Row: 2, Seat: 5}}

	store := &MockStore{}
	store.On("OccupiedSeats", ctx, int64(7)).Return(want, nil)

	svc := New(store, nil, Config{})

	got, err := svc.OccupiedSeats(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}
