package postgresrepo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/repository"
	"github.com/olekhv/aero-go/internal/seatmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDB satisfies DB in memory so order submission runs against a
// known seat map. It records every write, which lets the tests assert
// that a rejected batch issues none.
type stubDB struct {
	layout        seatmap.Layout
	occupied      []seatmap.Place
	flightMissing bool

	orderInserts int
	ticketBatch  *pgx.Batch
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if strings.Contains(sql, "INSERT INTO orders") {
		s.orderInserts++
		return stubRow{scan: func(dest ...any) error {
			*(dest[0].(*time.Time)) = time.Now()
			return nil
		}}
	}

	return stubRow{scan: func(dest ...any) error {
		if s.flightMissing {
			return pgx.ErrNoRows
		}
		*(dest[0].(*int)) = s.layout.Rows
		*(dest[1].(*int)) = s.layout.SeatsInRow
		return nil
	}}
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &stubSeatRows{places: s.occupied}, nil
}

func (s *stubDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	s.ticketBatch = b
	return stubBatchResults{}
}

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

type stubSeatRows struct {
	places []seatmap.Place
	i      int
}

func (r *stubSeatRows) Close()                                       {}
func (r *stubSeatRows) Err() error                                   { return nil }
func (r *stubSeatRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubSeatRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubSeatRows) Values() ([]any, error)                       { return nil, nil }
func (r *stubSeatRows) RawValues() [][]byte                          { return nil }
func (r *stubSeatRows) Conn() *pgx.Conn                              { return nil }

func (r *stubSeatRows) Next() bool {
	if r.i >= len(r.places) {
		return false
	}
	r.i++
	return true
}

func (r *stubSeatRows) Scan(dest ...any) error {
	p := r.places[r.i-1]
	*(dest[0].(*int)) = p.Row
	*(dest[1].(*int)) = p.Seat
	return nil
}

type stubBatchResults struct{}

func (stubBatchResults) Exec() (pgconn.CommandTag, error) { return pgconn.CommandTag{}, nil }
func (stubBatchResults) Query() (pgx.Rows, error)         { return nil, nil }
func (stubBatchResults) QueryRow() pgx.Row {
	return stubRow{scan: func(dest ...any) error { return nil }}
}
func (stubBatchResults) Close() error { return nil }

func orderRepoOn(db *stubDB) *OrderRepo {
	return (&OrderRepo{}).With(db)
}

func TestSubmitDuplicateInBatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := &stubDB{layout: seatmap.Layout{Rows: 10, SeatsInRow: 6}}

	_, err := orderRepoOn(db).Submit(ctx, 1, []domain.TicketRequest{
		{FlightID: 7, Row: 2, Seat: 3},
		{FlightID: 7, Row: 2, Seat: 3},
	})

	var ce *seatmap.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Row)
	assert.Equal(t, 3, ce.Seat)

	assert.Zero(t, db.orderInserts)
	assert.Nil(t, db.ticketBatch)
}

func TestSubmitLaterTicketOutOfRangeWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := &stubDB{layout: seatmap.Layout{Rows: 10, SeatsInRow: 6}}

	_, err := orderRepoOn(db).Submit(ctx, 1, []domain.TicketRequest{
		{FlightID: 7, Row: 2, Seat: 3},
		{FlightID: 7, Row: 99, Seat: 1},
	})

	var re *seatmap.RangeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "row", re.Field)

	assert.Zero(t, db.orderInserts)
	assert.Nil(t, db.ticketBatch)
}

func TestSubmitOccupiedSeatWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := &stubDB{
		layout:   seatmap.Layout{Rows: 10, SeatsInRow: 6},
		occupied: []seatmap.Place{{Row: 2, Seat: 3}},
	}

	_, err := orderRepoOn(db).Submit(ctx, 1, []domain.TicketRequest{
		{FlightID: 7, Row: 1, Seat: 1},
		{FlightID: 7, Row: 2, Seat: 3},
	})

	var ce *seatmap.ConflictError
	require.ErrorAs(t, err, &ce)

	assert.Zero(t, db.orderInserts)
	assert.Nil(t, db.ticketBatch)
}

func TestSubmitUnknownFlightWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := &stubDB{flightMissing: true}

	_, err := orderRepoOn(db).Submit(ctx, 1, []domain.TicketRequest{
		{FlightID: 404, Row: 1, Seat: 1},
	})

	require.ErrorIs(t, err, repository.ErrNotFound)

	assert.Zero(t, db.orderInserts)
	assert.Nil(t, db.ticketBatch)
}

func TestSubmitPersistsOrderWithAllTickets(t *testing.T) {
	ctx := context.Background()
	db := &stubDB{layout: seatmap.Layout{Rows: 10, SeatsInRow: 6}}

	out, err := orderRepoOn(db).Submit(ctx, 42, []domain.TicketRequest{
		{FlightID: 7, Row: 2, Seat: 3},
		{FlightID: 7, Row: 2, Seat: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, db.orderInserts)
	require.NotNil(t, db.ticketBatch)
	assert.Equal(t, 2, db.ticketBatch.Len())

	assert.Equal(t, int64(42), out.Order.UserID)
	assert.False(t, out.Order.CreatedAt.IsZero())
	require.Len(t, out.Tickets, 2)
	for _, tk := range out.Tickets {
		assert.Equal(t, out.Order.ID, tk.OrderID)
	}
}
