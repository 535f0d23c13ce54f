package postgresrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/seatmap"
)

type OrderRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *OrderRepo) With(db DB) *OrderRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *OrderRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Submit validates a batch of ticket requests against the seat maps of
// their flights and persists the order with all tickets as one unit.
// Validation and writes share a serializable transaction, so either the
// whole order commits or nothing does; the unique constraint on
// (flight_id, row_no, seat_no) arbitrates races the snapshot missed.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - userID: owner of the order.
//   - reqs: non-empty ordered ticket requests.
//
// Returns:
//   - *domain.OrderWithTickets: the persisted order.
//   - error: repository.ErrNotFound if a flight does not exist.
//   - error: *seatmap.RangeError if a coordinate is outside the layout.
//   - error: *seatmap.ConflictError if a seat is taken, in storage or
//     earlier in the batch.
//   - error: repository.ErrConflict if the unique constraint fires at
//     commit time.
func (r *OrderRepo) Submit(
	ctx context.Context,
	userID int64,
	reqs []domain.TicketRequest,
) (*domain.OrderWithTickets, error) {
	const op = "postgresrepo.OrderRepo.Submit"

	if r.db != nil {
		out, err := r.submitCore(ctx, r.db, userID, reqs)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		return out, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer tx.Rollback(ctx)

	out, err := r.submitCore(ctx, tx, userID, reqs)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *OrderRepo) submitCore(
	ctx context.Context,
	db DB,
	userID int64,
	reqs []domain.TicketRequest,
) (*domain.OrderWithTickets, error) {
	const op = "postgresrepo.OrderRepo.submitCore"

	maps := make(map[int64]*seatmap.Map)

	for _, req := range reqs {
		m, ok := maps[req.FlightID]
		if !ok {
			var l seatmap.Layout
			if err := db.QueryRow(ctx,
				`SELECT a.seat_rows, a.seats_in_row
				 FROM flights f
				 JOIN airplanes a ON a.id = f.airplane_id
				 WHERE f.id = $1`,
				req.FlightID,
			).Scan(&l.Rows, &l.SeatsInRow); err != nil {
				return nil, wrapDBErr(op, err)
			}

			occupied, err := r.occupiedCore(ctx, db, req.FlightID)
			if err != nil {
				return nil, err
			}

			m = seatmap.New(req.FlightID, l, occupied)
			maps[req.FlightID] = m
		}

		if err := m.Claim(req.Row, req.Seat); err != nil {
			return nil, err
		}
	}

	order := domain.Order{ID: uuid.New(), UserID: userID}
	if err := db.QueryRow(ctx,
		`INSERT INTO orders(id, user_id)
       	 VALUES ($1, $2)
     	 RETURNING created_at`,
		order.ID, order.UserID,
	).Scan(&order.CreatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	tickets := make([]domain.Ticket, 0, len(reqs))
	batch := &pgx.Batch{}
	for _, req := range reqs {
		t := domain.Ticket{
			ID:       uuid.New(),
			OrderID:  order.ID,
			FlightID: req.FlightID,
			Row:      req.Row,
			Seat:     req.Seat,
		}
		batch.Queue(
			`INSERT INTO tickets(id, order_id, flight_id, row_no, seat_no)
         	 VALUES ($1, $2, $3, $4, $5)`,
			t.ID, t.OrderID, t.FlightID, t.Row, t.Seat,
		)
		tickets = append(tickets, t)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &domain.OrderWithTickets{Order: order, Tickets: tickets}, nil
}

func (r *OrderRepo) occupiedCore(ctx context.Context, db DB, flightID int64) ([]seatmap.Place, error) {
	const op = "postgresrepo.OrderRepo.occupiedCore"

	rows, err := db.Query(ctx,
		`SELECT row_no, seat_no FROM tickets WHERE flight_id = $1`,
		flightID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []seatmap.Place
	for rows.Next() {
		var p seatmap.Place
		if err := rows.Scan(&p.Row, &p.Seat); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// GetWithTickets retrieves an order with its tickets.
//
// Returns:
//   - *domain.OrderWithTickets: the order when found.
//   - error: repository.ErrNotFound if the order does not exist.
func (r *OrderRepo) GetWithTickets(ctx context.Context, orderID uuid.UUID) (*domain.OrderWithTickets, error) {
	const op = "postgresrepo.OrderRepo.GetWithTickets"

	db := r.handle()

	var out domain.OrderWithTickets
	if err := db.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM orders WHERE id = $1`,
		orderID,
	).Scan(&out.Order.ID, &out.Order.UserID, &out.Order.CreatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	rows, err := db.Query(ctx,
		`SELECT id, order_id, flight_id, row_no, seat_no
		 FROM tickets
		 WHERE order_id = $1
		 ORDER BY flight_id, row_no, seat_no`,
		orderID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out.Tickets = append(out.Tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &out, nil
}

// ListByUser lists a user's orders, newest first. Each ticket carries
// the flight leg it claims a seat on.
func (r *OrderRepo) ListByUser(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]domain.OrderSummary, error) {
	const op = "postgresrepo.OrderRepo.ListByUser"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT o.id, o.user_id, o.created_at,
				t.id, t.flight_id, t.row_no, t.seat_no,
				src.name, dst.name, f.departure_time, f.arrival_time
		 FROM (
			SELECT id, user_id, created_at
			FROM orders
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		 ) o
		 LEFT JOIN tickets t ON t.order_id = o.id
		 LEFT JOIN flights f ON f.id = t.flight_id
		 LEFT JOIN routes rt ON rt.id = f.route_id
		 LEFT JOIN airports src ON src.id = rt.source_id
		 LEFT JOIN airports dst ON dst.id = rt.destination_id
		 ORDER BY o.created_at DESC, t.flight_id, t.row_no, t.seat_no`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.OrderSummary
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var o domain.Order
		var ticketID *uuid.UUID
		var flightID *int64
		var rowNo, seatNo *int
		var srcName, dstName *string
		var dep, arr *time.Time

		if err := rows.Scan(
			&o.ID, &o.UserID, &o.CreatedAt,
			&ticketID, &flightID, &rowNo, &seatNo,
			&srcName, &dstName, &dep, &arr,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		i, ok := index[o.ID]
		if !ok {
			out = append(out, domain.OrderSummary{Order: o})
			i = len(out) - 1
			index[o.ID] = i
		}

		if ticketID != nil {
			twf := domain.TicketWithFlight{
				Ticket: domain.Ticket{
					ID:       *ticketID,
					OrderID:  o.ID,
					FlightID: *flightID,
					Row:      *rowNo,
					Seat:     *seatNo,
				},
				Flight: domain.FlightLeg{ID: *flightID},
			}
			if srcName != nil {
				twf.Flight.Source = *srcName
			}
			if dstName != nil {
				twf.Flight.Destination = *dstName
			}
			if dep != nil {
				twf.Flight.DepartureTime = *dep
			}
			if arr != nil {
				twf.Flight.ArrivalTime = *arr
			}
			out[i].Tickets = append(out[i].Tickets, twf)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
