package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	postgresrepo "github.com/olekhv/aero-go/internal/repository/postgres"
	"github.com/olekhv/aero-go/internal/seatmap"
)

type UseCase interface {
	Submit(ctx context.Context, userID int64, reqs []domain.TicketRequest, rlKey string) (*domain.OrderWithTickets, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.OrderSummary, error)
	Get(ctx context.Context, userID int64, orderID uuid.UUID) (*domain.OrderWithTickets, error)
}

// Store is the transactional ticket store behind order submission.
type Store interface {
	Submit(ctx context.Context, userID int64, reqs []domain.TicketRequest) (*domain.OrderWithTickets, error)
	GetWithTickets(ctx context.Context, orderID uuid.UUID) (*domain.OrderWithTickets, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.OrderSummary, error)
}

type Cache interface {
	InvalidateFlight(ctx context.Context, flightID int64) error
}

type Publisher interface {
	PublishFlightChanged(ctx context.Context, flightID int64) error
}

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int64, time.Duration, error)
}

type Config struct {
	// SubmitRetries bounds retries of submissions that lose a
	// serialization race.
	SubmitRetries int
	DefaultPage   int
	MaxPage       int
}

type Service struct {
	store   Store
	cache   Cache
	pubsub  Publisher
	limiter Limiter
	cfg     Config
}

func New(store Store, cache Cache, pubsub Publisher, limiter Limiter, cfg Config) *Service {
	if cfg.SubmitRetries <= 0 {
		cfg.SubmitRetries = 3
	}

	if cfg.DefaultPage <= 0 {
		cfg.DefaultPage = 10
	}

	if cfg.MaxPage <= 0 || cfg.MaxPage < cfg.DefaultPage {
		cfg.MaxPage = 100
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		cfg:     cfg,
	}
}

var _ UseCase = (*Service)(nil)

// Submit validates and commits one order of ticket requests as a single
// all-or-nothing unit.
//
// Parameters:
//   - ctx: request-scoped context.
//   - userID: authenticated owner of the order.
//   - reqs: ordered ticket requests; must be non-empty.
//   - rlKey: rate-limit bucket key; empty disables limiting.
//
// Returns:
//   - *domain.OrderWithTickets: the committed order.
//   - error: orders.ErrEmptyOrder if reqs is empty.
//   - error: orders.ErrFlightNotFound if a request names an unknown flight.
//   - error: *seatmap.RangeError if a coordinate is outside the airplane layout.
//   - error: *seatmap.ConflictError if a seat is taken, by a persisted
//     ticket or earlier in the batch.
//   - error: orders.ErrSeatTaken if the storage constraint detects the
//     conflict at commit time.
func (s *Service) Submit(
	ctx context.Context,
	userID int64,
	reqs []domain.TicketRequest,
	rlKey string,
) (*domain.OrderWithTickets, error) {
	const op = "service.orders.Submit"

	if len(reqs) == 0 {
		return nil, fmt.Errorf("%s:%w", op, ErrEmptyOrder)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	var out *domain.OrderWithTickets
	var err error

	for attempt := 0; attempt < s.cfg.SubmitRetries; attempt++ {
		out, err = s.store.Submit(ctx, userID, reqs)
		if err == nil {
			break
		}
		if !postgresrepo.IsRetryable(err) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, s.translateSubmitErr(err))
	}

	for _, flightID := range distinctFlights(reqs) {
		if s.cache != nil {
			_ = s.cache.InvalidateFlight(ctx, flightID)
		}
		if s.pubsub != nil {
			_ = s.pubsub.PublishFlightChanged(ctx, flightID)
		}
	}

	return out, nil
}

// List lists the user's own orders, newest first, tickets embedded
// with their flight legs.
func (s *Service) List(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]domain.OrderSummary, error) {
	const op = "service.orders.List"

	if limit <= 0 {
		limit = s.cfg.DefaultPage
	}
	if limit > s.cfg.MaxPage {
		limit = s.cfg.MaxPage
	}
	if offset < 0 {
		offset = 0
	}

	out, err := s.store.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Get retrieves one order. Orders belonging to other users are reported
// as not found.
func (s *Service) Get(
	ctx context.Context,
	userID int64,
	orderID uuid.UUID,
) (*domain.OrderWithTickets, error) {
	const op = "service.orders.Get"

	out, err := s.store.GetWithTickets(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrOrderNotFound)
		}

		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if out.Order.UserID != userID {
		return nil, fmt.Errorf("%s:%w", op, ErrOrderNotFound)
	}

	return out, nil
}

// translateSubmitErr folds storage-level failures into the error shapes
// the validation path produces, so callers see one taxonomy regardless of
// which layer caught the problem.
func (s *Service) translateSubmitErr(err error) error {
	var re *seatmap.RangeError
	if errors.As(err, &re) {
		return re
	}

	var ce *seatmap.ConflictError
	if errors.As(err, &ce) {
		return ce
	}

	if errors.Is(err, repository.ErrNotFound) {
		return ErrFlightNotFound
	}

	if errors.Is(err, repository.ErrConflict) {
		return ErrSeatTaken
	}

	return err
}

func distinctFlights(reqs []domain.TicketRequest) []int64 {
	seen := make(map[int64]struct{}, len(reqs))
	var out []int64

	for _, r := range reqs {
		if _, ok := seen[r.FlightID]; ok {
			continue
		}
		seen[r.FlightID] = struct{}{}
		out = append(out, r.FlightID)
	}

	return out
}
