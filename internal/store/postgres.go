package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const vehicleColumns = `id, name, brand, category, price, mileage, performance_score, transmission, image_url`

func (s *PostgresStore) CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO vehicles (id, name, brand, category, price, mileage, performance_score, transmission, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.Name, v.Brand, v.Category,
		metricArg(v.Price), metricArg(v.Mileage), metricArg(v.PerformanceScore),
		v.Transmission, v.ImageURL,
	)
	return err
}

func (s *PostgresStore) GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *PostgresStore) GetVehiclesByIDs(ctx context.Context, ids []string) ([]vehicle.Vehicle, error) {
	if len(ids) == 0 {
		return []vehicle.Vehicle{}, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (s *PostgresStore) ListVehicles(ctx context.Context, filter VehicleFilter) ([]vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	args := []interface{}{}
	n := 0

	if len(filter.IDs) > 0 {
		n++
		query += fmt.Sprintf(" AND id = ANY($%d)", n)
		args = append(args, filter.IDs)
	}
	if filter.Name != "" {
		n++
		query += fmt.Sprintf(" AND name ILIKE $%d", n)
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Brand != "" {
		n++
		query += fmt.Sprintf(" AND brand ILIKE $%d", n)
		args = append(args, "%"+filter.Brand+"%")
	}
	if filter.Category != "" {
		n++
		query += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.MinPrice != nil {
		n++
		query += fmt.Sprintf(" AND price >= $%d", n)
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		n++
		query += fmt.Sprintf(" AND price <= $%d", n)
		args = append(args, *filter.MaxPrice)
	}

	query += " ORDER BY name ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

// GetSimilarVehicles returns vehicles of the same category priced within
// ±20% of the base vehicle. A base vehicle without a price has no peers.
func (s *PostgresStore) GetSimilarVehicles(ctx context.Context, id string, limit int) ([]vehicle.Vehicle, error) {
	base, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, nil
	}
	price, ok := base.Price.Float()
	if !ok {
		return []vehicle.Vehicle{}, nil
	}
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+vehicleColumns+` FROM vehicles
		WHERE id <> $1 AND category = $2 AND price BETWEEN $3 AND $4
		ORDER BY price ASC LIMIT $5`,
		base.ID, base.Category, price*0.8, price*1.2, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func (s *PostgresStore) CreateCompareSession(ctx context.Context, session *CompareSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	vehiclesJSON, _ := json.Marshal(session.Vehicles)
	return s.pool.QueryRow(ctx, `
		INSERT INTO compare_sessions (id, room_id, owner_id, winner_id, verdict, vehicles)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		session.ID, session.RoomID, session.OwnerID, session.WinnerID, session.Verdict, vehiclesJSON,
	).Scan(&session.CreatedAt)
}

func (s *PostgresStore) ListCompareSessions(ctx context.Context, ownerID string, limit int) ([]*CompareSession, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, room_id, owner_id, winner_id, verdict, vehicles, created_at
		FROM compare_sessions
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, ownerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*CompareSession
	for rows.Next() {
		cs := &CompareSession{}
		var vehiclesJSON []byte
		if err := rows.Scan(&cs.ID, &cs.RoomID, &cs.OwnerID, &cs.WinnerID, &cs.Verdict, &vehiclesJSON, &cs.CreatedAt); err != nil {
			return nil, err
		}
		if vehiclesJSON != nil {
			_ = json.Unmarshal(vehiclesJSON, &cs.Vehicles)
		}
		sessions = append(sessions, cs)
	}
	return sessions, rows.Err()
}

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	v := &vehicle.Vehicle{}
	var price, mileage, perf sql.NullFloat64
	err := row.Scan(&v.ID, &v.Name, &v.Brand, &v.Category, &price, &mileage, &perf, &v.Transmission, &v.ImageURL)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		v.Price = vehicle.Number(price.Float64)
	}
	if mileage.Valid {
		v.Mileage = vehicle.Number(mileage.Float64)
	}
	if perf.Valid {
		v.PerformanceScore = vehicle.Number(perf.Float64)
	}
	return v, nil
}

func scanVehicles(rows pgx.Rows) ([]vehicle.Vehicle, error) {
	vehicles := []vehicle.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func metricArg(m vehicle.Metric) interface{} {
	if f, ok := m.Float(); ok {
		return f
	}
	return nil
}
