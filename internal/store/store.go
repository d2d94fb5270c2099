// Package store persists resource envelopes in a relational database.
// SQLite is the default backend; PostgreSQL is supported through the pgx
// stdlib driver. Payloads are stored as JSON text alongside the derived
// search text, which list queries match by substring containment.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	// Database drivers registered for database/sql
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/RamiObaid92/AIProjectTest/internal/query"
	"github.com/RamiObaid92/AIProjectTest/internal/resource"
)

// ErrNotFound is returned when no resource matches the requested ID
var ErrNotFound = errors.New("resource not found")

// sortColumns maps the client-facing sort field names to table columns.
// Anything else falls back to the default ordering.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"type":      "type",
	"ownerId":   "owner_id",
}

// Store provides CRUD and criteria-driven list access to the resources table
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database with the given driver ("sqlite3" or "pgx")
// and verifies the connection
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, driver: driver}, nil
}

// NewWithDB wraps an existing database handle; used by tests
func NewWithDB(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Close releases the underlying database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the resources table if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		search_text TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create resources table: %w", err)
	}

	index := `CREATE INDEX IF NOT EXISTS idx_resources_type_created
		ON resources (type, created_at)`
	if _, err := s.db.ExecContext(ctx, index); err != nil {
		return fmt.Errorf("failed to create resources index: %w", err)
	}

	return nil
}

// Insert persists a new resource
func (s *Store) Insert(ctx context.Context, r *resource.Resource) error {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	stmt := s.rebind(`INSERT INTO resources
		(id, type, owner_id, payload, search_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err = s.db.ExecContext(ctx, stmt,
		r.ID, r.Type, r.OwnerID, string(payload), nullable(r.SearchText), r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert resource: %w", err)
	}

	return nil
}

// Get retrieves a resource by ID
func (s *Store) Get(ctx context.Context, id string) (*resource.Resource, error) {
	stmt := s.rebind(`SELECT id, type, owner_id, payload, search_text, created_at, updated_at
		FROM resources WHERE id = ?`)

	row := s.db.QueryRowContext(ctx, stmt, id)
	r, err := scanResource(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	return r, nil
}

// Update persists the payload, search text, and updated timestamp of an
// existing resource
func (s *Store) Update(ctx context.Context, r *resource.Resource) error {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	stmt := s.rebind(`UPDATE resources
		SET payload = ?, search_text = ?, updated_at = ?
		WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, stmt, string(payload), nullable(r.SearchText), r.UpdatedAt, r.ID)
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, r.ID)
	}

	return nil
}

// Delete removes a resource by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	stmt := s.rebind(`DELETE FROM resources WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return nil
}

// List retrieves resources matching the compiled criteria, newest first
// unless a recognized sort field says otherwise. Empty-string filters are
// treated as "no filter" here; that normalization is deliberately this
// layer's decision, not the criteria compiler's.
func (s *Store) List(ctx context.Context, c query.Criteria) ([]*resource.Resource, error) {
	where, args := buildWhere(c)

	stmt := `SELECT id, type, owner_id, payload, search_text, created_at, updated_at
		FROM resources` + where +
		` ORDER BY ` + orderClause(c) +
		` LIMIT ? OFFSET ?`
	args = append(args, c.Take, c.Skip)

	rows, err := s.db.QueryContext(ctx, s.rebind(stmt), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer rows.Close()

	var results []*resource.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resources: %w", err)
	}

	return results, nil
}

// Count returns the number of resources matching the criteria's filters,
// ignoring paging
func (s *Store) Count(ctx context.Context, c query.Criteria) (int, error) {
	where, args := buildWhere(c)

	var count int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM resources`+where), args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}

	return count, nil
}

// buildWhere assembles the WHERE clause and arguments for the criteria
func buildWhere(c query.Criteria) (string, []any) {
	var clauses []string
	var args []any

	if c.Type != "" {
		clauses = append(clauses, "LOWER(type) = LOWER(?)")
		args = append(args, c.Type)
	}
	if c.OwnerID != "" {
		clauses = append(clauses, "owner_id = ?")
		args = append(args, c.OwnerID)
	}
	if c.CreatedAfter != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, *c.CreatedAfter)
	}
	if c.CreatedBefore != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, *c.CreatedBefore)
	}
	if c.SearchText != "" {
		clauses = append(clauses, "LOWER(search_text) LIKE ?")
		args = append(args, "%"+strings.ToLower(c.SearchText)+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause maps the criteria's sort field and direction to a safe
// ORDER BY clause. Unknown fields fall back to created_at DESC.
func orderClause(c query.Criteria) string {
	column, ok := sortColumns[c.SortField]
	if !ok {
		return "created_at DESC"
	}

	direction := "ASC"
	if strings.EqualFold(c.SortDirection, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanResource reads one resource row, decoding the payload JSON
func scanResource(row rowScanner) (*resource.Resource, error) {
	var r resource.Resource
	var payload string
	var searchText sql.NullString

	err := row.Scan(&r.ID, &r.Type, &r.OwnerID, &payload, &searchText, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(payload), &r.Payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload for %s: %w", r.ID, err)
	}
	if searchText.Valid {
		r.SearchText = &searchText.String
	}

	return &r, nil
}

// nullable converts an optional string to its SQL representation
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// rebind rewrites ? placeholders to $N for drivers that require
// positional parameters (pgx)
func (s *Store) rebind(stmt string) string {
	if s.driver != "pgx" {
		return stmt
	}

	var b strings.Builder
	n := 0
	for _, ch := range stmt {
		if ch == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
