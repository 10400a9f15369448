package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS catalogs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	payload JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_catalogs_updated_at ON catalogs(updated_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Save(ctx context.Context, saved domain.SavedCatalog) error {
	payload, err := json.Marshal(saved.Catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO catalogs (id, name, payload, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
`,
		saved.ID, saved.Name, payload, saved.CreatedAt, saved.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Load(ctx context.Context, id string) (domain.SavedCatalog, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, payload, created_at, updated_at
FROM catalogs
WHERE id = $1
`, id)
	return r.scanSaved(row, id)
}

func (r *CatalogRepository) LoadLatest(ctx context.Context) (domain.SavedCatalog, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, payload, created_at, updated_at
FROM catalogs
ORDER BY updated_at DESC
LIMIT 1
`)
	return r.scanSaved(row, "latest")
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM catalogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete catalog rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrCatalogNotFound, "delete catalog", fmt.Errorf("id %s", id))
	}
	return nil
}

func (r *CatalogRepository) scanSaved(row *sql.Row, id string) (domain.SavedCatalog, error) {
	var saved domain.SavedCatalog
	var payload []byte

	err := row.Scan(&saved.ID, &saved.Name, &payload, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SavedCatalog{}, domain.WrapError(domain.ErrCatalogNotFound, "load catalog", fmt.Errorf("id %s", id))
		}
		return domain.SavedCatalog{}, fmt.Errorf("scan catalog: %w", err)
	}

	if err := json.Unmarshal(payload, &saved.Catalog); err != nil {
		return domain.SavedCatalog{}, fmt.Errorf("unmarshal catalog payload: %w", err)
	}
	return saved, nil
}
