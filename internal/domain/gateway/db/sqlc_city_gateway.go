package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-weather/internal/domain/entity"
)

const cityTimeLayout = "2006-01-02 15:04:05"

// ErrEmptyCityName is returned when a name is blank after canonicalization
var ErrEmptyCityName = errors.New("city name is empty")

// cityDialect holds the statements that differ between SQL engines
type cityDialect struct {
	createTable string
	insert      string
	selectAll   string
	delete      string
}

var cityDialects = map[string]cityDialect{
	"sqlite": {
		createTable: `CREATE TABLE IF NOT EXISTS cities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		insert:    `INSERT INTO cities (name, created_at) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`,
		selectAll: `SELECT id, name, created_at FROM cities ORDER BY id ASC`,
		delete:    `DELETE FROM cities WHERE name = ?`,
	},
	"postgres": {
		createTable: `CREATE TABLE IF NOT EXISTS cities (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		)`,
		insert:    `INSERT INTO cities (name, created_at) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		selectAll: `SELECT id, name, created_at FROM cities ORDER BY id ASC`,
		delete:    `DELETE FROM cities WHERE name = $1`,
	},
	"mysql": {
		createTable: `CREATE TABLE IF NOT EXISTS cities (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			created_at VARCHAR(19) NOT NULL
		)`,
		insert:    `INSERT IGNORE INTO cities (name, created_at) VALUES (?, ?)`,
		selectAll: `SELECT id, name, created_at FROM cities ORDER BY id ASC`,
		delete:    `DELETE FROM cities WHERE name = ?`,
	},
}

// SQLCCityGateway implements CityGateway over database/sql. Each operation
// runs on its own connection, released on every exit path.
type SQLCCityGateway struct {
	DB      *sql.DB
	dialect cityDialect
}

var _ CityGateway = (*SQLCCityGateway)(nil)

// NewSQLCCityGateway returns a gateway speaking the SQL of driver
// (sqlite, postgres or mysql).
func NewSQLCCityGateway(db *sql.DB, driver string) (*SQLCCityGateway, error) {
	dialect, ok := cityDialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported city store driver %q", driver)
	}
	return &SQLCCityGateway{DB: db, dialect: dialect}, nil
}

func (gateway *SQLCCityGateway) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := gateway.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// Initialize creates the cities table if it does not exist
func (gateway *SQLCCityGateway) Initialize(ctx context.Context) error {
	return gateway.withConn(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, gateway.dialect.createTable); err != nil {
			return fmt.Errorf("failed to create cities table: %w", err)
		}
		return nil
	})
}

// Add inserts the canonical name; an existing name is left untouched
func (gateway *SQLCCityGateway) Add(ctx context.Context, name string) error {
	canonical := entity.CanonicalCityName(name)
	if canonical == "" {
		return ErrEmptyCityName
	}

	return gateway.withConn(ctx, func(conn *sql.Conn) error {
		now := time.Now().UTC().Format(cityTimeLayout)
		if _, err := conn.ExecContext(ctx, gateway.dialect.insert, canonical, now); err != nil {
			return fmt.Errorf("failed to insert city %s: %w", canonical, err)
		}
		return nil
	})
}

// FindAll retrieves all cities ordered by insertion
func (gateway *SQLCCityGateway) FindAll(ctx context.Context) ([]entity.City, error) {
	cities := make([]entity.City, 0)

	err := gateway.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, gateway.dialect.selectAll)
		if err != nil {
			return fmt.Errorf("failed to list cities: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var city entity.City
			if err := rows.Scan(&city.ID, &city.Name, &city.CreatedAt); err != nil {
				return err
			}
			cities = append(cities, city)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return cities, nil
}

// Remove deletes the city matching the canonical name
func (gateway *SQLCCityGateway) Remove(ctx context.Context, name string) (bool, error) {
	canonical := entity.CanonicalCityName(name)
	if canonical == "" {
		return false, ErrEmptyCityName
	}

	var removed bool
	err := gateway.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, gateway.dialect.delete, canonical)
		if err != nil {
			return fmt.Errorf("failed to delete city %s: %w", canonical, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		removed = affected > 0
		return nil
	})

	return removed, err
}
