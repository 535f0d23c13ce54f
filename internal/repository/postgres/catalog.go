package postgresrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olekhv/aero-go/internal/domain"
)

type CatalogRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *CatalogRepo) With(db DB) *CatalogRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *CatalogRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *CatalogRepo) CreateCrew(ctx context.Context, c domain.Crew) (int64, error) {
	const op = "postgresrepo.CatalogRepo.CreateCrew"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO crews(first_name, last_name)
       	 VALUES ($1, $2)
     	 RETURNING id`,
		c.FirstName, c.LastName,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	const op = "postgresrepo.CatalogRepo.GetCrew"

	db := r.handle()

	var c domain.Crew
	if err := db.QueryRow(ctx,
		`SELECT id, first_name, last_name FROM crews WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &c, nil
}

func (r *CatalogRepo) ListCrews(ctx context.Context, limit, offset int) ([]domain.Crew, error) {
	const op = "postgresrepo.CatalogRepo.ListCrews"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, first_name, last_name
		 FROM crews
		 ORDER BY id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Crew
	for rows.Next() {
		var c domain.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) UpdateCrew(ctx context.Context, c domain.Crew) error {
	const op = "postgresrepo.CatalogRepo.UpdateCrew"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE crews SET first_name = $2, last_name = $3 WHERE id = $1`,
		c.ID, c.FirstName, c.LastName,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *CatalogRepo) CreateAirport(ctx context.Context, a domain.Airport) (int64, error) {
	const op = "postgresrepo.CatalogRepo.CreateAirport"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO airports(name, closest_big_city)
       	 VALUES ($1, $2)
     	 RETURNING id`,
		a.Name, a.ClosestBigCity,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	const op = "postgresrepo.CatalogRepo.GetAirport"

	db := r.handle()

	var a domain.Airport
	if err := db.QueryRow(ctx,
		`SELECT id, name, COALESCE(closest_big_city, '') FROM airports WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

func (r *CatalogRepo) ListAirports(ctx context.Context, limit, offset int) ([]domain.Airport, error) {
	const op = "postgresrepo.CatalogRepo.ListAirports"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, COALESCE(closest_big_city, '')
		 FROM airports
		 ORDER BY name
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Airport
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Name, &a.ClosestBigCity); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) UpdateAirport(ctx context.Context, a domain.Airport) error {
	const op = "postgresrepo.CatalogRepo.UpdateAirport"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE airports SET name = $2, closest_big_city = $3 WHERE id = $1`,
		a.ID, a.Name, a.ClosestBigCity,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *CatalogRepo) CreateAirplaneType(ctx context.Context, name string) (int64, error) {
	const op = "postgresrepo.CatalogRepo.CreateAirplaneType"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO airplane_types(name) VALUES ($1) RETURNING id`,
		name,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	const op = "postgresrepo.CatalogRepo.GetAirplaneType"

	db := r.handle()

	var at domain.AirplaneType
	if err := db.QueryRow(ctx,
		`SELECT id, name FROM airplane_types WHERE id = $1`,
		id,
	).Scan(&at.ID, &at.Name); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &at, nil
}

func (r *CatalogRepo) ListAirplaneTypes(ctx context.Context, limit, offset int) ([]domain.AirplaneType, error) {
	const op = "postgresrepo.CatalogRepo.ListAirplaneTypes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name
		 FROM airplane_types
		 ORDER BY name
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.AirplaneType
	for rows.Next() {
		var at domain.AirplaneType
		if err := rows.Scan(&at.ID, &at.Name); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, at)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) UpdateAirplaneType(ctx context.Context, at domain.AirplaneType) error {
	const op = "postgresrepo.CatalogRepo.UpdateAirplaneType"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE airplane_types SET name = $2 WHERE id = $1`,
		at.ID, at.Name,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *CatalogRepo) CreateAirplane(ctx context.Context, a domain.Airplane) (int64, error) {
	const op = "postgresrepo.CatalogRepo.CreateAirplane"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO airplanes(name, seat_rows, seats_in_row, airplane_type_id)
       	 VALUES ($1, $2, $3, $4)
     	 RETURNING id`,
		a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	const op = "postgresrepo.CatalogRepo.GetAirplane"

	db := r.handle()

	var a domain.Airplane
	if err := db.QueryRow(ctx,
		`SELECT id, name, seat_rows, seats_in_row, airplane_type_id
		 FROM airplanes WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

func (r *CatalogRepo) ListAirplanes(ctx context.Context, limit, offset int) ([]domain.Airplane, error) {
	const op = "postgresrepo.CatalogRepo.ListAirplanes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, name, seat_rows, seats_in_row, airplane_type_id
		 FROM airplanes
		 ORDER BY name
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Airplane
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) UpdateAirplane(ctx context.Context, a domain.Airplane) error {
	const op = "postgresrepo.CatalogRepo.UpdateAirplane"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE airplanes
		 SET name = $2, seat_rows = $3, seats_in_row = $4, airplane_type_id = $5
		 WHERE id = $1`,
		a.ID, a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *CatalogRepo) CreateRoute(ctx context.Context, rt domain.Route) (int64, error) {
	const op = "postgresrepo.CatalogRepo.CreateRoute"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO routes(source_id, destination_id, distance)
       	 VALUES ($1, $2, $3)
     	 RETURNING id`,
		rt.SourceID, rt.DestinationID, rt.Distance,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *CatalogRepo) GetRoute(ctx context.Context, id int64) (*domain.RouteDetail, error) {
	const op = "postgresrepo.CatalogRepo.GetRoute"

	db := r.handle()

	var rd domain.RouteDetail
	if err := db.QueryRow(ctx,
		`SELECT r.id, r.source_id, r.destination_id, r.distance,
				src.name, COALESCE(src.closest_big_city, ''),
				dst.name, COALESCE(dst.closest_big_city, '')
		 FROM routes r
		 JOIN airports src ON src.id = r.source_id
		 JOIN airports dst ON dst.id = r.destination_id
		 WHERE r.id = $1`,
		id,
	).Scan(
		&rd.ID, &rd.SourceID, &rd.DestinationID, &rd.Distance,
		&rd.SourceAirport, &rd.SourceCity,
		&rd.DestinationAirport, &rd.DestinationCity,
	); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &rd, nil
}

func (r *CatalogRepo) ListRoutes(ctx context.Context, limit, offset int) ([]domain.RouteDetail, error) {
	const op = "postgresrepo.CatalogRepo.ListRoutes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT r.id, r.source_id, r.destination_id, r.distance,
				src.name, COALESCE(src.closest_big_city, ''),
				dst.name, COALESCE(dst.closest_big_city, '')
		 FROM routes r
		 JOIN airports src ON src.id = r.source_id
		 JOIN airports dst ON dst.id = r.destination_id
		 ORDER BY r.id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.RouteDetail
	for rows.Next() {
		var rd domain.RouteDetail
		if err := rows.Scan(
			&rd.ID, &rd.SourceID, &rd.DestinationID, &rd.Distance,
			&rd.SourceAirport, &rd.SourceCity,
			&rd.DestinationAirport, &rd.DestinationCity,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *CatalogRepo) UpdateRoute(ctx context.Context, rt domain.Route) error {
	const op = "postgresrepo.CatalogRepo.UpdateRoute"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE routes SET source_id = $2, destination_id = $3, distance = $4 WHERE id = $1`,
		rt.ID, rt.SourceID, rt.DestinationID, rt.Distance,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}
