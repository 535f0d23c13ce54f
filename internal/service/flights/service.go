package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	redisrepo "github.com/olekhv/aero-go/internal/repository/redis"
	"github.com/olekhv/aero-go/internal/seatmap"
)

type UseCase interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	Get(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Availability(ctx context.Context, id int64) (int64, error)
	OccupiedSeats(ctx context.Context, id int64) ([]seatmap.Place, error)
}

// Store is the flight read model.
type Store interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error)
	GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error)
	Availability(ctx context.Context, id int64) (int64, error)
	OccupiedSeats(ctx context.Context, id int64) ([]seatmap.Place, error)
}

type Config struct {
	DetailTTL       time.Duration
	AvailabilityTTL time.Duration
	DefaultPage     int
	MaxPage         int
}

type Service struct {
	store Store
	cache *redisrepo.Cache
	cfg   Config
}

// New builds the flight read service. cache may be nil, in which case
// every read goes to the store.
func New(store Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.DetailTTL <= 0 {
		cfg.DetailTTL = 60 * time.Second
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	if cfg.DefaultPage <= 0 {
		cfg.DefaultPage = 100
	}

	if cfg.MaxPage <= 0 || cfg.MaxPage < cfg.DefaultPage {
		cfg.MaxPage = 500
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

var _ UseCase = (*Service)(nil)

// List lists flights matching the filter, with tickets_available computed
// against the latest committed ticket state.
func (s *Service) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	const op = "service.flights.List"

	if filter.Limit <= 0 {
		filter.Limit = s.cfg.DefaultPage
	}
	if filter.Limit > s.cfg.MaxPage {
		filter.Limit = s.cfg.MaxPage
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	out, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Get retrieves one flight with route, airplane and crew projections,
// served from the cache when warm.
func (s *Service) Get(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	const op = "service.flights.Get"

	load := func(ctx context.Context) (domain.FlightDetail, error) {
		fd, err := s.store.GetDetail(ctx, id)
		if err != nil {
			return domain.FlightDetail{}, err
		}
		return *fd, nil
	}

	var fd domain.FlightDetail
	var err error

	if s.cache != nil {
		fd, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyFlightDetail(id), s.cfg.DetailTTL, load)
	} else {
		fd, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrFlightNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &fd, nil
}

// Availability reports capacity minus sold tickets for one flight.
func (s *Service) Availability(ctx context.Context, id int64) (int64, error) {
	const op = "service.flights.Availability"

	load := func(ctx context.Context) (int64, error) {
		return s.store.Availability(ctx, id)
	}

	var available int64
	var err error

	if s.cache != nil {
		available, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyFlightAvailability(id), s.cfg.AvailabilityTTL, load)
	} else {
		available, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("%s:%w", op, ErrFlightNotFound)
		}

		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return available, nil
}

// OccupiedSeats lists the sold places of one flight.
func (s *Service) OccupiedSeats(ctx context.Context, id int64) ([]seatmap.Place, error) {
	const op = "service.flights.OccupiedSeats"

	load := func(ctx context.Context) ([]seatmap.Place, error) {
		return s.store.OccupiedSeats(ctx, id)
	}

	var out []seatmap.Place
	var err error

	if s.cache != nil {
		out, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyFlightSeats(id), s.cfg.AvailabilityTTL, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrFlightNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
