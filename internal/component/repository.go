package component

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/database"
	"github.com/capacitymarket/capacity-checker/internal/search"
)

// Repository defines the interface for component persistence operations.
type Repository interface {
	Create(ctx context.Context, c *Component) error
	Get(ctx context.Context, id string) (*Component, error)
	GetByComponentID(ctx context.Context, componentID string) (*Component, error)
	List(ctx context.Context, page Page) ([]Component, error)
	Search(ctx context.Context, filter *search.Filter, page Page) ([]Component, error)
	Count(ctx context.Context) (int, error)
	CountMatching(ctx context.Context, filter *search.Filter) (int, error)
	Update(ctx context.Context, c *Component) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// SQLRepository implements Repository against SQLite or PostgreSQL. Queries
// are written with `?` placeholders and rebound per the active backend.
type SQLRepository struct {
	db *database.DB
}

// NewSQLRepository creates a new SQL-backed component repository.
func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const componentColumns = `id, component_id, cmu_id, location, county, outward_code,
	description, technology, company_name, auction_name, delivery_year,
	status, type, derated_capacity_mw, additional_data, created_at, updated_at`

// Create inserts a new component. Timestamps are set here if unset.
func (r *SQLRepository) Create(ctx context.Context, c *Component) error {
	if err := Validate(c); err != nil {
		return err
	}

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	query := r.db.Rebind(`INSERT INTO components (` + componentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.ComponentID, c.CMUID,
		c.Location, c.County, c.OutwardCode,
		c.Description, c.Technology, c.CompanyName,
		c.AuctionName, c.DeliveryYear, c.Status, c.Type,
		nullFloat(c.DeratedCapacityMW), marshalData(c.AdditionalData),
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: component_id %s", ErrDuplicate, c.ComponentID)
		}
		return fmt.Errorf("inserting component %s: %w", c.ID, err)
	}
	return nil
}

// Get returns a single component by internal ID.
func (r *SQLRepository) Get(ctx context.Context, id string) (*Component, error) {
	query := r.db.Rebind(`SELECT ` + componentColumns + ` FROM components WHERE id = ?`)
	row := r.db.QueryRowContext(ctx, query, id)
	return scanComponent(row)
}

// GetByComponentID returns a single component by its registry identifier.
func (r *SQLRepository) GetByComponentID(ctx context.Context, componentID string) (*Component, error) {
	query := r.db.Rebind(`SELECT ` + componentColumns + ` FROM components WHERE component_id = ?`)
	row := r.db.QueryRowContext(ctx, query, componentID)
	return scanComponent(row)
}

// List returns a page of components ordered by company then component ID.
func (r *SQLRepository) List(ctx context.Context, page Page) ([]Component, error) {
	page = page.Normalize()
	query := r.db.Rebind(`SELECT ` + componentColumns + ` FROM components
		ORDER BY company_name, component_id LIMIT ? OFFSET ?`)
	return r.queryComponents(ctx, query, page.Limit, page.Offset)
}

// Search returns a page of components matching the filter. A nil filter
// behaves like List.
func (r *SQLRepository) Search(ctx context.Context, filter *search.Filter, page Page) ([]Component, error) {
	clause, args := filter.SQL()
	if clause == "" {
		return r.List(ctx, page)
	}

	page = page.Normalize()
	query := r.db.Rebind(`SELECT ` + componentColumns + ` FROM components
		WHERE ` + clause + ` ORDER BY company_name, component_id LIMIT ? OFFSET ?`)
	args = append(args, page.Limit, page.Offset)
	return r.queryComponents(ctx, query, args...)
}

// Count returns the total number of components.
func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM components").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting components: %w", err)
	}
	return n, nil
}

// CountMatching returns the number of components matching the filter.
func (r *SQLRepository) CountMatching(ctx context.Context, filter *search.Filter) (int, error) {
	clause, args := filter.SQL()
	if clause == "" {
		return r.Count(ctx)
	}

	query := r.db.Rebind("SELECT COUNT(*) FROM components WHERE " + clause)
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting matching components: %w", err)
	}
	return n, nil
}

// Update updates an existing component record.
func (r *SQLRepository) Update(ctx context.Context, c *Component) error {
	if err := Validate(c); err != nil {
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	query := r.db.Rebind(`UPDATE components SET component_id = ?, cmu_id = ?,
		location = ?, county = ?, outward_code = ?, description = ?,
		technology = ?, company_name = ?, auction_name = ?, delivery_year = ?,
		status = ?, type = ?, derated_capacity_mw = ?, additional_data = ?,
		updated_at = ?
		WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		c.ComponentID, c.CMUID,
		c.Location, c.County, c.OutwardCode, c.Description,
		c.Technology, c.CompanyName, c.AuctionName, c.DeliveryYear,
		c.Status, c.Type, nullFloat(c.DeratedCapacityMW), marshalData(c.AdditionalData),
		c.UpdatedAt.Format(time.RFC3339), c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: component_id %s", ErrDuplicate, c.ComponentID)
		}
		return fmt.Errorf("updating component %s: %w", c.ID, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // both backends support RowsAffected
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a single component by ID.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind("DELETE FROM components WHERE id = ?")
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting component %s: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // both backends support RowsAffected
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every component, returning the number deleted. Used by
// full register re-imports.
func (r *SQLRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM components")
	if err != nil {
		return 0, fmt.Errorf("deleting all components: %w", err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // both backends support RowsAffected
	return n, nil
}

// queryComponents executes a query and returns a slice of Component.
func (r *SQLRepository) queryComponents(ctx context.Context, query string, args ...any) ([]Component, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying components: %w", err)
	}
	defer rows.Close()

	var components []Component
	for rows.Next() {
		c, err := scanComponentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning component row: %w", err)
		}
		components = append(components, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating component rows: %w", err)
	}
	return components, nil
}

// scanComponent scans a single row into a Component (for QueryRow).
func scanComponent(row *sql.Row) (*Component, error) {
	var c Component
	var capacity sql.NullFloat64
	var dataJSON, createdAt, updatedAt string

	err := row.Scan(&c.ID, &c.ComponentID, &c.CMUID,
		&c.Location, &c.County, &c.OutwardCode,
		&c.Description, &c.Technology, &c.CompanyName,
		&c.AuctionName, &c.DeliveryYear, &c.Status, &c.Type,
		&capacity, &dataJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning component: %w", err)
	}

	if capacity.Valid {
		c.DeratedCapacityMW = &capacity.Float64
	}
	c.AdditionalData = parseData(dataJSON)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

// scanComponentRow scans a component from a Rows cursor.
func scanComponentRow(rows *sql.Rows) (*Component, error) {
	var c Component
	var capacity sql.NullFloat64
	var dataJSON, createdAt, updatedAt string

	err := rows.Scan(&c.ID, &c.ComponentID, &c.CMUID,
		&c.Location, &c.County, &c.OutwardCode,
		&c.Description, &c.Technology, &c.CompanyName,
		&c.AuctionName, &c.DeliveryYear, &c.Status, &c.Type,
		&capacity, &dataJSON, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if capacity.Valid {
		c.DeratedCapacityMW = &capacity.Float64
	}
	c.AdditionalData = parseData(dataJSON)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

// nullFloat converts a *float64 to a sql.NullFloat64 for nullable columns.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// marshalData serializes additional data to JSON, defaulting to "{}".
func marshalData(data map[string]any) string {
	if data == nil {
		return "{}"
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// parseData deserializes the additional data column. Malformed JSON yields
// nil rather than an error: the column is advisory.
func parseData(raw string) map[string]any {
	if raw == "" || raw == "{}" {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// parseTime parses an RFC3339 timestamp column, returning the zero time on
// failure.
func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isUniqueViolation reports whether an error is a unique constraint failure
// from either backend.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite3
		strings.Contains(msg, "duplicate key value") // postgres 23505
}
