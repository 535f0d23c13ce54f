// Package catalog implements administration of the reference data the
// booking flow depends on: crews, airports, airplane types, airplanes,
// routes and flight schedules. All writes go through a transactional
// Unit of Work so multi-table changes (a flight and its crew
// assignments) commit or roll back together.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	postgresrepo "github.com/olekhv/aero-go/internal/repository/postgres"
	redisrepo "github.com/olekhv/aero-go/internal/repository/redis"
	"github.com/olekhv/aero-go/internal/uow"
)

// Publisher notifies other replicas about flight changes so they can
// refresh their local caches.
type Publisher interface {
	PublishFlightChanged(ctx context.Context, flightID int64) error
}

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub Publisher
	uow    *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, pubsub Publisher) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
	}
}

func (s *Service) mapWriteErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// CreateCrew creates a crew member record and returns its ID.
func (s *Service) CreateCrew(ctx context.Context, c domain.Crew) (int64, error) {
	const op = "service.catalog.CreateCrew"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateCrew(ctx, c)
		return s.mapWriteErr(op, err)
	})
	return id, err
}

func (s *Service) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	const op = "service.catalog.GetCrew"

	c, err := s.store.Catalog().GetCrew(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) ListCrews(ctx context.Context, limit, offset int) ([]domain.Crew, error) {
	return s.store.Catalog().ListCrews(ctx, limit, offset)
}

func (s *Service) UpdateCrew(ctx context.Context, c domain.Crew) error {
	const op = "service.catalog.UpdateCrew"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		return s.mapWriteErr(op, s.store.Catalog().With(tx).UpdateCrew(ctx, c))
	})
}

// CreateAirport creates an airport record and returns its ID.
//
// Returns catalog.ErrConflict if an airport with the same name already
// exists.
func (s *Service) CreateAirport(ctx context.Context, a domain.Airport) (int64, error) {
	const op = "service.catalog.CreateAirport"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateAirport(ctx, a)
		return s.mapWriteErr(op, err)
	})
	return id, err
}

func (s *Service) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	const op = "service.catalog.GetAirport"

	a, err := s.store.Catalog().GetAirport(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (s *Service) ListAirports(ctx context.Context, limit, offset int) ([]domain.Airport, error) {
	return s.store.Catalog().ListAirports(ctx, limit, offset)
}

func (s *Service) UpdateAirport(ctx context.Context, a domain.Airport) error {
	const op = "service.catalog.UpdateAirport"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		return s.mapWriteErr(op, s.store.Catalog().With(tx).UpdateAirport(ctx, a))
	})
}

func (s *Service) CreateAirplaneType(ctx context.Context, name string) (int64, error) {
	const op = "service.catalog.CreateAirplaneType"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateAirplaneType(ctx, name)
		return s.mapWriteErr(op, err)
	})
	return id, err
}

func (s *Service) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	const op = "service.catalog.GetAirplaneType"

	at, err := s.store.Catalog().GetAirplaneType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return at, nil
}

func (s *Service) ListAirplaneTypes(ctx context.Context, limit, offset int) ([]domain.AirplaneType, error) {
	return s.store.Catalog().ListAirplaneTypes(ctx, limit, offset)
}

func (s *Service) UpdateAirplaneType(ctx context.Context, at domain.AirplaneType) error {
	const op = "service.catalog.UpdateAirplaneType"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		return s.mapWriteErr(op, s.store.Catalog().With(tx).UpdateAirplaneType(ctx, at))
	})
}

// CreateAirplane creates an airplane record and returns its ID. The
// airplane's rows and seats-in-row define the seat map for every flight
// operated on it.
func (s *Service) CreateAirplane(ctx context.Context, a domain.Airplane) (int64, error) {
	const op = "service.catalog.CreateAirplane"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateAirplane(ctx, a)
		return s.mapWriteErr(op, err)
	})
	return id, err
}

func (s *Service) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	const op = "service.catalog.GetAirplane"

	a, err := s.store.Catalog().GetAirplane(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func (s *Service) ListAirplanes(ctx context.Context, limit, offset int) ([]domain.Airplane, error) {
	return s.store.Catalog().ListAirplanes(ctx, limit, offset)
}

func (s *Service) UpdateAirplane(ctx context.Context, a domain.Airplane) error {
	const op = "service.catalog.UpdateAirplane"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		return s.mapWriteErr(op, s.store.Catalog().With(tx).UpdateAirplane(ctx, a))
	})
}

// CreateRoute creates a route between two airports and returns its ID.
//
// Returns catalog.ErrNotFound if either airport does not exist and
// catalog.ErrConflict if the source/destination pair is already taken.
func (s *Service) CreateRoute(ctx context.Context, rt domain.Route) (int64, error) {
	const op = "service.catalog.CreateRoute"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Catalog().With(tx).CreateRoute(ctx, rt)
		return s.mapWriteErr(op, err)
	})
	return id, err
}

func (s *Service) GetRoute(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	const op = "service.catalog.GetRoute"

	rt, err := s.store.Catalog().GetRoute(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rt, nil
}

func (s *Service) ListRoutes(ctx context.Context, limit, offset int) ([]domain.RouteDetail, error) {
	return s.store.Catalog().ListRoutes(ctx, limit, offset)
}

func (s *Service) UpdateRoute(ctx context.Context, rt domain.Route) error {
	const op = "service.catalog.UpdateRoute"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		return s.mapWriteErr(op, s.store.Catalog().With(tx).UpdateRoute(ctx, rt))
	})
}

// CreateFlight creates a flight together with its crew assignments in a
// single transaction.
//
// Returns catalog.ErrNotFound if the route, airplane or any of the
// referenced crew members does not exist.
func (s *Service) CreateFlight(ctx context.Context, f domain.Flight) (int64, error) {
	const op = "service.catalog.CreateFlight"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, _ func(uow.AfterCommit)) error {
		var err error
		id, err = s.store.Flights().With(tx).Create(ctx, f)
		return s.mapWriteErr(op, err)
	})
	return id, err
}

// UpdateFlight rewrites a flight and its crew assignments. After the
// transaction commits, cached flight projections are dropped and other
// replicas are notified so stale availability is not served.
func (s *Service) UpdateFlight(ctx context.Context, f domain.Flight) error {
	const op = "service.catalog.UpdateFlight"

	return s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		if err := s.store.Flights().With(tx).Update(ctx, f); err != nil {
			return s.mapWriteErr(op, err)
		}
		after(func(ctx context.Context) {
			if s.cache != nil {
				_ = s.cache.InvalidateFlight(ctx, f.ID)
			}
			if s.pubsub != nil {
				_ = s.pubsub.PublishFlightChanged(ctx, f.ID)
			}
		})
		return nil
	})
}
