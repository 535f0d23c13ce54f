package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olekhv/aero-go/internal/domain"
	"github.com/olekhv/aero-go/internal/seatmap"
)

type FlightRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FlightRepo) With(db DB) *FlightRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FlightRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// List lists flights matching the filter, ordered by departure time.
// tickets_available is computed per flight as airplane capacity minus
// sold tickets.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - f: listing filter; zero string fields match everything.
//
// Returns:
//   - []domain.FlightSummary: matching flights with availability counters.
func (r *FlightRepo) List(ctx context.Context, f domain.FlightFilter) ([]domain.FlightSummary, error) {
	const op = "postgresrepo.FlightRepo.List"

	db := r.handle()

	var date any
	if f.DepartureDate != nil {
		date = *f.DepartureDate
	}

	rows, err := db.Query(ctx,
		`SELECT f.id, src.name, dst.name, f.departure_time, f.arrival_time,
				a.seat_rows * a.seats_in_row - COUNT(t.id) AS tickets_available
		 FROM flights f
		 JOIN routes r ON r.id = f.route_id
		 JOIN airports src ON src.id = r.source_id
		 JOIN airports dst ON dst.id = r.destination_id
		 JOIN airplanes a ON a.id = f.airplane_id
		 LEFT JOIN tickets t ON t.flight_id = f.id
		 WHERE ($1 = '' OR src.name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR src.closest_big_city ILIKE '%' || $2 || '%')
		   AND ($3 = '' OR dst.name ILIKE '%' || $3 || '%')
		   AND ($4 = '' OR dst.closest_big_city ILIKE '%' || $4 || '%')
		   AND ($5::timestamptz IS NULL OR f.departure_time::date = $5::date)
		 GROUP BY f.id, src.name, dst.name, a.seat_rows, a.seats_in_row
		 ORDER BY f.departure_time
		 LIMIT $6 OFFSET $7`,
		f.SourceAirport, f.SourceCity,
		f.DestinationAirport, f.DestinationCity,
		date, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.FlightSummary
	for rows.Next() {
		var fs domain.FlightSummary
		if err := rows.Scan(
			&fs.ID, &fs.Source, &fs.Destination,
			&fs.DepartureTime, &fs.ArrivalTime,
			&fs.TicketsAvailable,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// GetDetail retrieves a flight with its route airports, airplane and crew
// names.
//
// Returns:
//   - *domain.FlightDetail: the flight when found.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *FlightRepo) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	const op = "postgresrepo.FlightRepo.GetDetail"

	db := r.handle()

	var fd domain.FlightDetail
	if err := db.QueryRow(ctx,
		`SELECT f.id, src.name, COALESCE(src.closest_big_city, ''),
				dst.name, COALESCE(dst.closest_big_city, ''),
				f.departure_time, f.arrival_time,
				a.name, at.name, a.seat_rows, a.seats_in_row
		 FROM flights f
		 JOIN routes r ON r.id = f.route_id
		 JOIN airports src ON src.id = r.source_id
		 JOIN airports dst ON dst.id = r.destination_id
		 JOIN airplanes a ON a.id = f.airplane_id
		 JOIN airplane_types at ON at.id = a.airplane_type_id
		 WHERE f.id = $1`,
		id,
	).Scan(
		&fd.ID, &fd.Source, &fd.SourceCity,
		&fd.Destination, &fd.DestinationCity,
		&fd.DepartureTime, &fd.ArrivalTime,
		&fd.Airplane.Name, &fd.Airplane.TypeName,
		&fd.Airplane.Rows, &fd.Airplane.SeatsInRow,
	); err != nil {
		return nil, wrapDBErr(op, err)
	}

	fd.Airplane.Capacity = fd.Airplane.Rows * fd.Airplane.SeatsInRow

	rows, err := db.Query(ctx,
		`SELECT c.first_name, c.last_name
		 FROM flight_crews fc
		 JOIN crews c ON c.id = fc.crew_id
		 WHERE fc.flight_id = $1
		 ORDER BY c.last_name, c.first_name`,
		id,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.FirstName, &c.LastName); err != nil {
			return nil, wrapDBErr(op, err)
		}
		fd.Crew = append(fd.Crew, c.FullName())
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &fd, nil
}

// Seating retrieves the seat layout of the airplane assigned to a flight.
//
// Returns:
//   - seatmap.Layout: the rows/seats-in-row grid.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *FlightRepo) Seating(ctx context.Context, flightID int64) (seatmap.Layout, error) {
	const op = "postgresrepo.FlightRepo.Seating"

	db := r.handle()

	var l seatmap.Layout
	if err := db.QueryRow(ctx,
		`SELECT a.seat_rows, a.seats_in_row
		 FROM flights f
		 JOIN airplanes a ON a.id = f.airplane_id
		 WHERE f.id = $1`,
		flightID,
	).Scan(&l.Rows, &l.SeatsInRow); err != nil {
		return seatmap.Layout{}, wrapDBErr(op, err)
	}

	return l, nil
}

// OccupiedSeats lists the places already sold on a flight, from persisted
// tickets only.
func (r *FlightRepo) OccupiedSeats(ctx context.Context, flightID int64) ([]seatmap.Place, error) {
	const op = "postgresrepo.FlightRepo.OccupiedSeats"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT row_no, seat_no
		 FROM tickets
		 WHERE flight_id = $1
		 ORDER BY row_no, seat_no`,
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

// Availability computes capacity minus sold tickets for one flight.
//
// Returns:
//   - int64: the number of remaining sellable seats.
//   - error: repository.ErrNotFound if the flight does not exist.
func (r *FlightRepo) Availability(ctx context.Context, flightID int64) (int64, error) {
	const op = "postgresrepo.FlightRepo.Availability"

	db := r.handle()

	var available int64
	if err := db.QueryRow(ctx,
		`SELECT a.seat_rows * a.seats_in_row - COUNT(t.id)
		 FROM flights f
		 JOIN airplanes a ON a.id = f.airplane_id
		 LEFT JOIN tickets t ON t.flight_id = f.id
		 WHERE f.id = $1
		 GROUP BY a.seat_rows, a.seats_in_row`,
		flightID,
	).Scan(&available); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return available, nil
}

// Create inserts a flight and its crew assignments.
func (r *FlightRepo) Create(ctx context.Context, f domain.Flight) (int64, error) {
	const op = "postgresrepo.FlightRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO flights(route_id, airplane_id, departure_time, arrival_time)
       	 VALUES ($1, $2, $3, $4)
     	 RETURNING id`,
		f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	if len(f.CrewIDs) > 0 {
		batch := &pgx.Batch{}
		for _, crewID := range f.CrewIDs {
			batch.Queue(
				`INSERT INTO flight_crews(flight_id, crew_id) VALUES ($1, $2)`,
				id, crewID,
			)
		}
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return 0, wrapDBErr(op, err)
		}
	}

	return id, nil
}

// Update replaces a flight's fields and crew assignments.
func (r *FlightRepo) Update(ctx context.Context, f domain.Flight) error {
	const op = "postgresrepo.FlightRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE flights
		 SET route_id = $2, airplane_id = $3, departure_time = $4, arrival_time = $5
		 WHERE id = $1`,
		f.ID, f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	if _, err := db.Exec(ctx,
		`DELETE FROM flight_crews WHERE flight_id = $1`, f.ID,
	); err != nil {
		return wrapDBErr(op, err)
	}

	if len(f.CrewIDs) > 0 {
		batch := &pgx.Batch{}
		for _, crewID := range f.CrewIDs {
			batch.Queue(
				`INSERT INTO flight_crews(flight_id, crew_id) VALUES ($1, $2)`,
				f.ID, crewID,
			)
		}
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return wrapDBErr(op, err)
		}
	}

	return nil
}
