package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Catalog implements tempurl.Catalog using PostgreSQL
type Catalog struct {
	db DBTX
}

// New creates a new PostgreSQL catalog
func New(db DBTX) *Catalog {
	return &Catalog{db: db}
}

// NewWithPool creates a new PostgreSQL catalog with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Catalog {
	return &Catalog{db: pool}
}

func (c *Catalog) GetObject(ctx context.Context, id uuid.UUID) (*tempurl.ObjectInfo, error) {
	query := `
		SELECT id, name, checksum, size, status, created_at, updated_at
		FROM objects
		WHERE id = $1 AND deleted_at IS NULL`

	var info tempurl.ObjectInfo
	err := c.db.QueryRow(ctx, query, id).Scan(
		&info.ID, &info.Name, &info.Checksum, &info.Size,
		&info.Status, &info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tempurl.ErrObjectNotFound
		}
		return nil, c.handlePostgresError("get_object", err)
	}

	return &info, nil
}

// PutObject inserts or replaces a catalog entry
func (c *Catalog) PutObject(ctx context.Context, info *tempurl.ObjectInfo) error {
	query := `
		INSERT INTO objects (id, name, checksum, size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			checksum = EXCLUDED.checksum,
			size = EXCLUDED.size,
			status = EXCLUDED.status,
			updated_at = NOW()`

	_, err := c.db.Exec(ctx, query,
		info.ID, info.Name, info.Checksum, info.Size, info.Status)
	if err != nil {
		return c.handlePostgresError("put_object", err)
	}

	return nil
}

// DeleteObject soft-deletes a catalog entry
func (c *Catalog) DeleteObject(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE objects
		SET status = $2, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := c.db.Exec(ctx, query, id, tempurl.ObjectStatusDeleted)
	if err != nil {
		return c.handlePostgresError("delete_object", err)
	}
	if tag.RowsAffected() == 0 {
		return tempurl.ErrObjectNotFound
	}

	return nil
}

// handlePostgresError translates driver errors into catalog errors
func (c *Catalog) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("object already exists")
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}
